// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import (
	"errors"
	"fmt"
)

// Errors returned while decoding an archive's fixed header and index, in
// the same fail-fast, no-partial-structure style as classfile's error
// taxonomy: a truncated input or unknown byte aborts the whole parse.
var (
	// ErrInvalidMagicIdentifier is returned when the leading 4 bytes are not
	// 0xCAFEDADA in the archive's native byte order.
	ErrInvalidMagicIdentifier = errors.New("jimage: invalid magic identifier")

	// ErrInvalidAttributeKind is returned when an attribute record's kind
	// nibble names a value outside 0..7.
	ErrInvalidAttributeKind = errors.New("jimage: invalid attribute kind")
)

// MagicIdentifierError carries the offending 32-bit value.
type MagicIdentifierError struct {
	Got uint32
}

func (e *MagicIdentifierError) Error() string {
	return fmt.Sprintf("jimage: invalid magic identifier: 0x%08X", e.Got)
}

func (e *MagicIdentifierError) Unwrap() error { return ErrInvalidMagicIdentifier }

// AttributeKindError carries the offending kind value.
type AttributeKindError struct {
	Kind uint8
}

func (e *AttributeKindError) Error() string {
	return fmt.Sprintf("jimage: invalid attribute kind: %d", e.Kind)
}

func (e *AttributeKindError) Unwrap() error { return ErrInvalidAttributeKind }
