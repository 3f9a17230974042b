// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"encoding/binary"

	"github.com/saferwall/javaclass/internal/bitreader"
)

// Attribute is a (attribute_name_index, bytes) pair; bytes are opaque
// until a consumer reparses them. Retaining the raw info bytes and
// lazily reparsing well-known attributes isolates the core parser from the
// long tail of attribute kinds, the same pattern saferwall/pe uses for its
// data directories: a fixed header is parsed eagerly, and the payload
// behind each directory is only walked by the specific ParseXDirectory
// call that needs it.
type Attribute struct {
	NameIndex uint16
	Info      []byte
}

// AttributeList is a top-level, field, method, or nested attribute
// sequence.
type AttributeList []Attribute

// FindByName resolves each attribute's name through the pool and returns
// the first one matching name, or false if none match.
func (attrs AttributeList) FindByName(pool *ConstantPool, name string) (Attribute, bool) {
	for _, a := range attrs {
		n, err := pool.Utf8At(a.NameIndex)
		if err != nil {
			continue
		}
		if n == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttribute is the reparsed body of a "Code" attribute.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     AttributeList
}

// CodeAttribute finds the "Code" attribute by Utf8 name resolution and
// lazily reparses its body. It returns false if the list carries no Code
// attribute (legal for abstract and native methods) or the body is
// malformed.
func (attrs AttributeList) CodeAttribute(pool *ConstantPool) (CodeAttribute, bool) {
	raw, ok := attrs.FindByName(pool, "Code")
	if !ok {
		return CodeAttribute{}, false
	}
	c := bitreader.New(raw.Info, binary.BigEndian)

	maxStack, err := c.U16()
	if err != nil {
		return CodeAttribute{}, false
	}
	maxLocals, err := c.U16()
	if err != nil {
		return CodeAttribute{}, false
	}
	codeLength, err := c.U32()
	if err != nil {
		return CodeAttribute{}, false
	}
	code, err := c.Bytes(codeLength)
	if err != nil {
		return CodeAttribute{}, false
	}
	exceptionTableLength, err := c.U16()
	if err != nil {
		return CodeAttribute{}, false
	}
	exceptionTable := make([]ExceptionTableEntry, exceptionTableLength)
	for i := range exceptionTable {
		startPC, err1 := c.U16()
		endPC, err2 := c.U16()
		handlerPC, err3 := c.U16()
		catchType, err4 := c.U16()
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return CodeAttribute{}, false
		}
		exceptionTable[i] = ExceptionTableEntry{
			StartPC:   startPC,
			EndPC:     endPC,
			HandlerPC: handlerPC,
			CatchType: catchType,
		}
	}
	nestedAttrs, err := parseAttributeList(c)
	if err != nil {
		return CodeAttribute{}, false
	}
	return CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: exceptionTable,
		Attributes:     nestedAttrs,
	}, true
}

// LineNumberEntry maps a bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTableAttribute reparses a "LineNumberTable" attribute,
// supplementing the core Code decode with the same lazy-reparse pattern
// CodeAttribute uses.
func (attrs AttributeList) LineNumberTableAttribute(pool *ConstantPool) ([]LineNumberEntry, bool) {
	raw, ok := attrs.FindByName(pool, "LineNumberTable")
	if !ok {
		return nil, false
	}
	c := bitreader.New(raw.Info, binary.BigEndian)
	count, err := c.U16()
	if err != nil {
		return nil, false
	}
	entries := make([]LineNumberEntry, count)
	for i := range entries {
		startPC, err1 := c.U16()
		lineNumber, err2 := c.U16()
		if err1 != nil || err2 != nil {
			return nil, false
		}
		entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: lineNumber}
	}
	return entries, true
}

// SourceFileAttribute reparses a "SourceFile" attribute into the Utf8
// source file name it references.
func (attrs AttributeList) SourceFileAttribute(pool *ConstantPool) (string, bool) {
	raw, ok := attrs.FindByName(pool, "SourceFile")
	if !ok {
		return "", false
	}
	c := bitreader.New(raw.Info, binary.BigEndian)
	idx, err := c.U16()
	if err != nil {
		return "", false
	}
	name, err := pool.Utf8At(idx)
	if err != nil {
		return "", false
	}
	return name, true
}

// ConstantValueAttribute reparses a "ConstantValue" attribute into its
// constant pool index; the caller resolves the index against the variant
// its field descriptor predicts (Integer/Float/Long/Double/String).
func (attrs AttributeList) ConstantValueAttribute(pool *ConstantPool) (uint16, bool) {
	raw, ok := attrs.FindByName(pool, "ConstantValue")
	if !ok {
		return 0, false
	}
	c := bitreader.New(raw.Info, binary.BigEndian)
	idx, err := c.U16()
	if err != nil {
		return 0, false
	}
	return idx, true
}

// StackMapFrameCount reparses a "StackMapTable" attribute only far enough
// to report how many frames it holds; full frame decoding (the verifier's
// concern) stays out of scope here.
func (attrs AttributeList) StackMapFrameCount(pool *ConstantPool) (int, bool) {
	raw, ok := attrs.FindByName(pool, "StackMapTable")
	if !ok {
		return 0, false
	}
	c := bitreader.New(raw.Info, binary.BigEndian)
	count, err := c.U16()
	if err != nil {
		return 0, false
	}
	return int(count), true
}

// parseAttributeList reads a u16 count followed by that many
// (name_index u16, length u32, bytes[length]) records.
func parseAttributeList(c *bitreader.Cursor) (AttributeList, error) {
	count, err := c.U16()
	if err != nil {
		return nil, err
	}
	attrs := make(AttributeList, count)
	for i := range attrs {
		nameIndex, err := c.U16()
		if err != nil {
			return nil, err
		}
		length, err := c.U32()
		if err != nil {
			return nil, err
		}
		info, err := c.Bytes(length)
		if err != nil {
			return nil, err
		}
		attrs[i] = Attribute{NameIndex: nameIndex, Info: info}
	}
	return attrs, nil
}
