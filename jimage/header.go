// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import "fmt"

// Header is the fixed-layout archive header plus the derived sizes of the
// index regions that follow it. It determines the byte layout of
// everything after it.
type Header struct {
	MajorVersion    uint16
	MinorVersion    uint16
	Flags           uint32
	ResourceCount   uint32
	TableLength     uint32
	AttributesSize  uint32
	StringsSize     uint32
}

// RedirectTableSize returns the byte size of the redirect table region.
func (h Header) RedirectTableSize() uint32 { return h.TableLength * 4 }

// AttributeOffsetsSize returns the byte size of the attribute-offsets
// table region.
func (h Header) AttributeOffsetsSize() uint32 { return h.TableLength * 4 }

// IndexSize returns the total byte size of magic + header + all four
// index regions.
func (h Header) IndexSize() uint32 {
	const magicSize = 4
	const headerSize = 2 + 2 + 4 + 4 + 4 + 4 + 4 // minor,major,flags,resource_count,table_length,attrs_size,strings_size
	return magicSize + headerSize + h.RedirectTableSize() + h.AttributeOffsetsSize() + h.AttributesSize + h.StringsSize
}

// String renders the header in the stable text form that matches the
// platform `jimage info` output byte-for-byte.
func (h Header) String() string {
	return fmt.Sprintf(
		" Major Version:  %d\n"+
			" Minor Version:  %d\n"+
			" Flags:          %d\n"+
			" Resource Count: %d\n"+
			" Table Length:   %d\n"+
			" Offsets Size:   %d\n"+
			" Redirects Size: %d\n"+
			" Locations Size: %d\n"+
			" Strings Size:   %d\n"+
			" Index Size:     %d\n",
		h.MajorVersion,
		h.MinorVersion,
		h.Flags,
		h.ResourceCount,
		h.TableLength,
		h.AttributeOffsetsSize(),
		h.RedirectTableSize(),
		h.AttributesSize,
		h.StringsSize,
		h.IndexSize(),
	)
}
