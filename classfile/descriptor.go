// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"fmt"
	"strings"
)

// FieldType is one decoded component of a field or method descriptor
// (JVMS 4.3.2). Descriptors stay opaque strings on ClassFile's own Fields
// and Methods; this splitter is a supplement for callers that want
// structured types instead of re-parsing the descriptor string
// themselves, following pe.go's habit of exposing a small parsing
// helper (ImageDirectoryEntry.String()) alongside the raw field it
// describes.
type FieldType struct {
	// Kind is the descriptor's base letter: one of BCDFIJSZ, 'L' for a
	// class type, or '[' for an array.
	Kind byte
	// ClassName is set when Kind == 'L', holding the internal class name
	// without the leading 'L' or trailing ';'.
	ClassName string
	// ArrayDims is the number of leading '[' characters.
	ArrayDims int
	// Elem is set when ArrayDims > 0, describing the element type.
	Elem *FieldType
}

func (t FieldType) String() string {
	switch t.Kind {
	case 'L':
		return "L" + t.ClassName + ";"
	case '[':
		return strings.Repeat("[", t.ArrayDims) + t.Elem.String()
	default:
		return string(t.Kind)
	}
}

// ParseFieldDescriptor splits a single field descriptor into its FieldType.
func ParseFieldDescriptor(descriptor string) (FieldType, error) {
	t, rest, err := parseFieldType(descriptor)
	if err != nil {
		return FieldType{}, err
	}
	if rest != "" {
		return FieldType{}, fmt.Errorf("classfile: trailing data in field descriptor %q", descriptor)
	}
	return t, nil
}

func parseFieldType(s string) (FieldType, string, error) {
	if s == "" {
		return FieldType{}, "", fmt.Errorf("classfile: empty field descriptor")
	}
	switch s[0] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 'V':
		return FieldType{Kind: s[0]}, s[1:], nil
	case 'L':
		end := strings.IndexByte(s, ';')
		if end < 0 {
			return FieldType{}, "", fmt.Errorf("classfile: unterminated class descriptor %q", s)
		}
		return FieldType{Kind: 'L', ClassName: s[1:end]}, s[end+1:], nil
	case '[':
		dims := 0
		rest := s
		for len(rest) > 0 && rest[0] == '[' {
			dims++
			rest = rest[1:]
		}
		elem, rest, err := parseFieldType(rest)
		if err != nil {
			return FieldType{}, "", err
		}
		return FieldType{Kind: '[', ArrayDims: dims, Elem: &elem}, rest, nil
	default:
		return FieldType{}, "", fmt.Errorf("classfile: invalid field descriptor character %q", s[0])
	}
}

// MethodDescriptor is a decoded "(ParamTypes)ReturnType" descriptor.
type MethodDescriptor struct {
	Params []FieldType
	Return FieldType
}

// ParseMethodDescriptor splits a method descriptor into its parameter
// types and return type.
func ParseMethodDescriptor(descriptor string) (MethodDescriptor, error) {
	if len(descriptor) == 0 || descriptor[0] != '(' {
		return MethodDescriptor{}, fmt.Errorf("classfile: method descriptor %q missing '('", descriptor)
	}
	rest := descriptor[1:]
	var params []FieldType
	for len(rest) > 0 && rest[0] != ')' {
		t, next, err := parseFieldType(rest)
		if err != nil {
			return MethodDescriptor{}, err
		}
		params = append(params, t)
		rest = next
	}
	if len(rest) == 0 {
		return MethodDescriptor{}, fmt.Errorf("classfile: method descriptor %q missing ')'", descriptor)
	}
	rest = rest[1:]
	ret, rest, err := parseFieldType(rest)
	if err != nil {
		return MethodDescriptor{}, err
	}
	if rest != "" {
		return MethodDescriptor{}, fmt.Errorf("classfile: trailing data in method descriptor %q", descriptor)
	}
	return MethodDescriptor{Params: params, Return: ret}, nil
}
