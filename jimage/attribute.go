// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import (
	"encoding/binary"

	"github.com/saferwall/javaclass/internal/bitreader"
)

// AttributeKind names one of the seven attribute slots a resource carries,
// mirrored as a proper enum with a String() method the way
// saferwall/pe/resource.go turns its ResourceType/ResourceLang integers
// into named constants instead of leaving callers to interpret bare ints.
type AttributeKind int

// Resource attribute kinds. Kind 0 is reserved as the stream terminator
// and is never a slot index.
const (
	AttrModule AttributeKind = iota + 1
	AttrParent
	AttrBase
	AttrExtension
	AttrOffset
	AttrCompressed
	AttrUncompressed

	attrTotal // slot count, not a valid kind
)

func (k AttributeKind) String() string {
	switch k {
	case AttrModule:
		return "Module"
	case AttrParent:
		return "Parent"
	case AttrBase:
		return "Base"
	case AttrExtension:
		return "Extension"
	case AttrOffset:
		return "Offset"
	case AttrCompressed:
		return "Compressed"
	case AttrUncompressed:
		return "Uncompressed"
	default:
		return "Unknown"
	}
}

// attributeKindFromByte maps the 5-bit kind field of an attribute header
// byte to an AttributeKind, or reports ok=false for 0 (terminator) or an
// out-of-range value.
func attributeKindFromByte(v uint8) (AttributeKind, bool) {
	if v < 1 || v >= uint8(attrTotal) {
		return 0, false
	}
	return AttributeKind(v), true
}

// decodeAttributeStream reads a packed variable-width attribute stream
// from the start of data until it hits a terminator
// byte (kind == 0), returning the resulting per-kind value array.
// Duplicate kinds are overwritten by the last occurrence.
func decodeAttributeStream(data []byte) ([attrTotal]uint64, error) {
	var attrs [attrTotal]uint64
	c := bitreader.New(data, binary.BigEndian)

	for {
		header, err := c.U8()
		if err != nil {
			return attrs, err
		}
		kindNibble := header >> 3
		length := uint32(header&0x7) + 1

		if kindNibble == 0 {
			return attrs, nil
		}
		kind, ok := attributeKindFromByte(kindNibble)
		if !ok {
			return attrs, &AttributeKindError{Kind: kindNibble}
		}

		var acc uint64
		for i := uint32(0); i < length; i++ {
			b, err := c.U8()
			if err != nil {
				return attrs, err
			}
			acc = (acc << 8) | uint64(b)
		}
		attrs[kind] = acc
	}
}
