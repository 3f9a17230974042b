// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// Errors returned while decoding the fixed structure of a classfile. These
// surface during Parse and are fail-fast: the first invalid byte aborts
// decoding with no partial ClassFile returned, mirroring
// saferwall/pe/helper.go's Err* sentinel block for the PE header chain.
var (
	// ErrInvalidMagicIdentifier is returned when the leading 4 bytes are not
	// 0xCAFEBABE.
	ErrInvalidMagicIdentifier = errors.New("classfile: invalid magic identifier")

	// ErrInvalidCpInfoTag is returned when a constant-pool entry's tag byte
	// does not match any known CONSTANT_* variant.
	ErrInvalidCpInfoTag = errors.New("classfile: invalid constant pool tag")
)

// MagicIdentifierError carries the offending 32-bit value alongside
// ErrInvalidMagicIdentifier, in the spirit of saferwall/pe's
// ErrImageNtSignatureNotFound family which names the failure but not the
// observed byte; here the observed byte is useful enough to keep.
type MagicIdentifierError struct {
	Got uint32
}

func (e *MagicIdentifierError) Error() string {
	return fmt.Sprintf("classfile: invalid magic identifier: 0x%08X", e.Got)
}

func (e *MagicIdentifierError) Unwrap() error { return ErrInvalidMagicIdentifier }

// CpInfoTagError carries the offending tag byte alongside ErrInvalidCpInfoTag.
type CpInfoTagError struct {
	Tag uint8
}

func (e *CpInfoTagError) Error() string {
	return fmt.Sprintf("classfile: invalid constant pool tag: %d", e.Tag)
}

func (e *CpInfoTagError) Unwrap() error { return ErrInvalidCpInfoTag }

// UnexpectedConstantPoolEntryError is raised only by accessor use (late
// resolution), never during the initial Parse — the pool tolerates forward
// references that only need to resolve when read.
type UnexpectedConstantPoolEntryError struct {
	// Expected names the CpInfo variant the caller required.
	Expected string
	// Actual is the entry that was found instead.
	Actual CpInfo
}

func (e *UnexpectedConstantPoolEntryError) Error() string {
	return fmt.Sprintf("classfile: expected %s constant pool entry, found %T", e.Expected, e.Actual)
}
