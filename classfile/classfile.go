// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package classfile decodes the Java compiled class file format (magic
// 0xCAFEBABE) into a structured in-memory representation: constant pool,
// access flags, superclass/interface references, fields, methods, and
// attributes, with lazy decoding of the Code attribute.
package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// ClassFile is the decoded structure of a single .class file.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool *ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []Member
	Methods      []Member
	Attributes   AttributeList
}

// ClassName resolves this_class through the pool to its binary class name
// (e.g. "my/MyClass").
func (cf *ClassFile) ClassName() (string, error) {
	return cf.ConstantPool.ClassNameAt(cf.ThisClass)
}

// SuperClassName resolves super_class to its binary class name. It
// returns ("", false, nil) when super_class is zero, the legal case for
// the root Object class: "no superclass" is not an error.
func (cf *ClassFile) SuperClassName() (name string, ok bool, err error) {
	if cf.SuperClass == 0 {
		return "", false, nil
	}
	name, err = cf.ConstantPool.ClassNameAt(cf.SuperClass)
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// FieldName resolves a field's name_index.
func (cf *ClassFile) FieldName(f Member) (string, error) {
	return cf.ConstantPool.Utf8At(f.NameIndex)
}

// FieldDescriptor resolves a field's descriptor_index.
func (cf *ClassFile) FieldDescriptor(f Member) (string, error) {
	return cf.ConstantPool.Utf8At(f.DescriptorIndex)
}

// MethodName resolves a method's name_index.
func (cf *ClassFile) MethodName(m Member) (string, error) {
	return cf.ConstantPool.Utf8At(m.NameIndex)
}

// MethodDescriptor resolves a method's descriptor_index.
func (cf *ClassFile) MethodDescriptor(m Member) (string, error) {
	return cf.ConstantPool.Utf8At(m.DescriptorIndex)
}

// AttributeByName resolves a top-level attribute by its Utf8 name.
func (cf *ClassFile) AttributeByName(name string) (Attribute, bool) {
	return cf.Attributes.FindByName(cf.ConstantPool, name)
}

// OpenFile mmaps path and parses it as a classfile, for callers that want
// a path-based entry point instead of supplying their own byte slice. The
// core Parse function never opens or maps files itself; this mirrors
// saferwall/pe/file.go's
// New(name, opts) convenience wrapper around mmap.Map while keeping the
// pure-bytes Parse path as the primary surface.
func OpenFile(path string, opts *Options) (*ClassFile, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	close := func() error {
		err := data.Unmap()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	cf, err := Parse(data, opts)
	if err != nil {
		close()
		return nil, nil, err
	}
	return cf, close, nil
}
