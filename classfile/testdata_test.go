// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"bytes"
	"encoding/binary"
	"math"
)

// classBuilder assembles synthetic big-endian classfile bytes for tests.
// saferwall/pe ships real compiled binaries under test/ for its own
// format; we synthesize minimal classfiles instead so coverage doesn't
// depend on checking a real .class fixture into the repo.
type classBuilder struct {
	buf bytes.Buffer
}

func newClassBuilder() *classBuilder { return &classBuilder{} }

func (b *classBuilder) u8(v uint8)   { b.buf.WriteByte(v) }
func (b *classBuilder) u16(v uint16) { binary.Write(&b.buf, binary.BigEndian, v) }
func (b *classBuilder) u32(v uint32) { binary.Write(&b.buf, binary.BigEndian, v) }
func (b *classBuilder) bytes(p []byte) { b.buf.Write(p) }

func (b *classBuilder) utf8(s string) { b.u8(tagUtf8); b.u16(uint16(len(s))); b.bytes([]byte(s)) }
func (b *classBuilder) class(nameIdx uint16) { b.u8(tagClass); b.u16(nameIdx) }
func (b *classBuilder) nameAndType(nameIdx, descIdx uint16) {
	b.u8(tagNameAndType)
	b.u16(nameIdx)
	b.u16(descIdx)
}
func (b *classBuilder) integer(v int32) { b.u8(tagInteger); b.u32(uint32(v)) }
func (b *classBuilder) floatBits(bits uint32) { b.u8(tagFloat); b.u32(bits) }
func (b *classBuilder) longVal(v int64) {
	b.u8(tagLong)
	b.u32(uint32(uint64(v) >> 32))
	b.u32(uint32(uint64(v)))
}
func (b *classBuilder) doubleBits(bits uint64) {
	b.u8(tagDouble)
	b.u32(uint32(bits >> 32))
	b.u32(uint32(bits))
}

func (b *classBuilder) attribute(nameIdx uint16, info []byte) {
	b.u16(nameIdx)
	b.u32(uint32(len(info)))
	b.bytes(info)
}

// minimalClass builds bytes for:
//
//	package my; class MyClass extends Object {
//	    private final int myField;
//	    MyClass() {}
//	    float add(int x) { ... }
//	}
func minimalClass() []byte {
	b := newClassBuilder()
	b.u32(magicIdentifier)
	b.u16(0)      // minor
	b.u16(0x34)   // major (Java 8)

	// Constant pool. Index layout (1-based):
	// 1: Utf8 "my/MyClass"
	// 2: Class -> 1
	// 3: Utf8 "java/lang/Object"
	// 4: Class -> 3
	// 5: Utf8 "myField"
	// 6: Utf8 "I"
	// 7: Utf8 "<init>"
	// 8: Utf8 "()V"
	// 9: Utf8 "add"
	// 10: Utf8 "(I)F"
	// 11: Utf8 "Code"
	b.u16(12) // constant_pool_count = count+1
	b.utf8("my/MyClass")
	b.class(1)
	b.utf8("java/lang/Object")
	b.class(3)
	b.utf8("myField")
	b.utf8("I")
	b.utf8("<init>")
	b.utf8("()V")
	b.utf8("add")
	b.utf8("(I)F")
	b.utf8("Code")

	b.u16(uint16(AccSuper | AccPublic)) // access_flags
	b.u16(2)                            // this_class
	b.u16(4)                            // super_class
	b.u16(0)                            // interfaces_count

	// fields_count = 1
	b.u16(1)
	b.u16(uint16(AccPrivate | AccFinal)) // access_flags
	b.u16(5)                             // name_index -> myField
	b.u16(6)                             // descriptor_index -> I
	b.u16(0)                             // attributes_count

	// methods_count = 2
	b.u16(2)
	// <init>
	b.u16(uint16(AccPublic))
	b.u16(7) // <init>
	b.u16(8) // ()V
	codeInfo := codeAttributeBytes(1, 1, []byte{0xb1}, nil) // return
	b.u16(1) // attributes_count
	b.attribute(11, codeInfo)
	// add
	b.u16(uint16(AccPublic))
	b.u16(9)  // add
	b.u16(10) // (I)F
	addCode := codeAttributeBytes(2, 2, []byte{0x1a, 0x86, 0xae}, nil)
	b.u16(1)
	b.attribute(11, addCode)

	// top-level attributes_count
	b.u16(0)

	return b.buf.Bytes()
}

// codeAttributeBytes assembles a Code attribute body:
// max_stack, max_locals, code_length, code, exception_table_length,
// entries, attributes_count.
func codeAttributeBytes(maxStack, maxLocals uint16, code []byte, exceptions []ExceptionTableEntry) []byte {
	cb := newClassBuilder()
	cb.u16(maxStack)
	cb.u16(maxLocals)
	cb.u32(uint32(len(code)))
	cb.bytes(code)
	cb.u16(uint16(len(exceptions)))
	for _, e := range exceptions {
		cb.u16(e.StartPC)
		cb.u16(e.EndPC)
		cb.u16(e.HandlerPC)
		cb.u16(e.CatchType)
	}
	cb.u16(0) // nested attributes_count
	return cb.buf.Bytes()
}

func float32Bits(f float32) uint32 { return math.Float32bits(f) }
func float64Bits(f float64) uint64 { return math.Float64bits(f) }
