// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Constant pool tags (JVMS 4.4).
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldRef           = 9
	tagMethodRef          = 10
	tagInterfaceMethodRef = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagInvokeDynamic      = 18
)

// CpInfo is the tagged-variant payload of one constant pool slot. Every
// concrete type below implements it as a marker, the same "closed sum
// type via unexported method" idiom used for ImageDirectoryEntry's backing
// int constants in saferwall/pe/pe.go, generalized here to a real sum of
// struct shapes since the payloads are heterogeneous.
type CpInfo interface {
	cpInfo()
}

// Unusable occupies the slot immediately after a Long or Double entry. It
// must never be dereferenced by an accessor.
type Unusable struct{}

func (Unusable) cpInfo() {}

// Utf8 holds a constant UTF-8 (modified UTF-8 on the wire) string.
type Utf8 struct {
	Value string
}

func (Utf8) cpInfo() {}

// Integer holds a 32-bit signed constant.
type Integer struct {
	Value int32
}

func (Integer) cpInfo() {}

// Float holds a 32-bit IEEE-754 constant reconstructed per JVMS 4.4.4.
type Float struct {
	Value float32
}

func (Float) cpInfo() {}

// Long holds a 64-bit signed constant. It occupies two pool slots; the
// second is an Unusable sentinel.
type Long struct {
	Value int64
}

func (Long) cpInfo() {}

// Double holds a 64-bit IEEE-754 constant. Like Long, it occupies two pool
// slots.
type Double struct {
	Value float64
}

func (Double) cpInfo() {}

// Class references a Utf8 entry holding a binary class or interface name.
type Class struct {
	NameIndex uint16
}

func (Class) cpInfo() {}

// String references a Utf8 entry holding the literal's characters.
type String struct {
	StringIndex uint16
}

func (String) cpInfo() {}

// FieldRef references a Class and a NameAndType entry.
type FieldRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (FieldRef) cpInfo() {}

// MethodRef references a Class and a NameAndType entry.
type MethodRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (MethodRef) cpInfo() {}

// InterfaceMethodRef references a Class and a NameAndType entry.
type InterfaceMethodRef struct {
	ClassIndex       uint16
	NameAndTypeIndex uint16
}

func (InterfaceMethodRef) cpInfo() {}

// NameAndType references a name Utf8 entry and a descriptor Utf8 entry.
type NameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

func (NameAndType) cpInfo() {}

// MethodHandleKind is the reference_kind byte of a MethodHandle entry
// (JVMS 4.4.8, Table 4.4.8-A).
type MethodHandleKind uint8

// Method handle reference kinds.
const (
	RefGetField MethodHandleKind = iota + 1
	RefGetStatic
	RefPutField
	RefPutStatic
	RefInvokeVirtual
	RefInvokeStatic
	RefInvokeSpecial
	RefNewInvokeSpecial
	RefInvokeInterface
)

// MethodHandle references a field or method through a reference kind.
type MethodHandle struct {
	ReferenceKind  MethodHandleKind
	ReferenceIndex uint16
}

func (MethodHandle) cpInfo() {}

// MethodType references a Utf8 entry holding a method descriptor.
type MethodType struct {
	DescriptorIndex uint16
}

func (MethodType) cpInfo() {}

// InvokeDynamic references a bootstrap method table entry and a
// NameAndType entry.
type InvokeDynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

func (InvokeDynamic) cpInfo() {}

// ConstantPool is the class's 1-indexed dense sequence of tagged entries
// Index 0 is never valid; index i addresses element i-1 of entries.
type ConstantPool struct {
	entries []CpInfo
}

// Count returns the number of real + sentinel slots (constant_pool_count
// - 1, not the raw constant_pool_count field).
func (cp *ConstantPool) Count() int {
	return len(cp.entries)
}

// At returns the entry at 1-based index, or nil if the index is out of the
// pool's declared range. Index 0 and indices beyond Count() are a
// programmer error and return nil rather than panicking, leaving
// the error path to the typed accessors below.
func (cp *ConstantPool) At(index uint16) CpInfo {
	if index == 0 || int(index) > len(cp.entries) {
		return nil
	}
	return cp.entries[index-1]
}

// Utf8At resolves index to a Utf8 entry or fails with
// UnexpectedConstantPoolEntryError.
func (cp *ConstantPool) Utf8At(index uint16) (string, error) {
	entry := cp.At(index)
	u, ok := entry.(Utf8)
	if !ok {
		return "", &UnexpectedConstantPoolEntryError{Expected: "Utf8", Actual: entry}
	}
	return u.Value, nil
}

// ClassAt resolves index to a Class entry or fails with
// UnexpectedConstantPoolEntryError.
func (cp *ConstantPool) ClassAt(index uint16) (Class, error) {
	entry := cp.At(index)
	c, ok := entry.(Class)
	if !ok {
		return Class{}, &UnexpectedConstantPoolEntryError{Expected: "Class", Actual: entry}
	}
	return c, nil
}

// ClassNameAt resolves index through a Class entry to its underlying Utf8
// name, the transitive resolution primitive classfiles rely on for
// class names, superclass names, and field/method owner references.
func (cp *ConstantPool) ClassNameAt(index uint16) (string, error) {
	c, err := cp.ClassAt(index)
	if err != nil {
		return "", err
	}
	return cp.Utf8At(c.NameIndex)
}

// NameAndTypeAt resolves index to a NameAndType entry.
func (cp *ConstantPool) NameAndTypeAt(index uint16) (NameAndType, error) {
	entry := cp.At(index)
	nt, ok := entry.(NameAndType)
	if !ok {
		return NameAndType{}, &UnexpectedConstantPoolEntryError{Expected: "NameAndType", Actual: entry}
	}
	return nt, nil
}
