// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import (
	"bytes"
)

// archiveEntry describes one resource to pack into a synthesized archive,
// mirroring the archive's attribute record set.
type archiveEntry struct {
	module, parent, base, extension string
	offset, compressed, uncompressed uint64
}

// encodeAttributeRecord packs one (kind, value) pair using the minimum
// byte width that holds value: header = (kind<<3)|(length-1).
func encodeAttributeRecord(buf *bytes.Buffer, kind AttributeKind, value uint64) {
	length := 1
	for v := value >> 8; v != 0; v >>= 8 {
		length++
	}
	buf.WriteByte(byte(int(kind)<<3 | (length - 1)))
	for i := length - 1; i >= 0; i-- {
		buf.WriteByte(byte(value >> (8 * uint(i))))
	}
}

func encodeStringRecord(buf *bytes.Buffer, kind AttributeKind, offset uint64) {
	encodeAttributeRecord(buf, kind, offset)
}

// archiveBuilder assembles synthetic native-endian archive bytes, interning
// strings and packing attribute streams the way a real `jimage` tool would,
// so lookup and iteration can be exercised without a real platform image.
type archiveBuilder struct {
	entries []archiveEntry
}

func newArchiveBuilder() *archiveBuilder { return &archiveBuilder{} }

func (b *archiveBuilder) add(e archiveEntry) { b.entries = append(b.entries, e) }

// build lays out the archive with a table of len(entries)+extraBuckets
// buckets, each entry placed in the bucket its path hashes to. There is no
// collision chain: when two entries hash to the same bucket, the later one
// takes it. It returns the full byte image, with the resource bytes backing
// each entry placed after the index at the offsets the entries claim.
func (b *archiveBuilder) build(extraBuckets int) []byte {
	tableLength := int32(len(b.entries) + extraBuckets)

	var stringsBuf bytes.Buffer
	stringsBuf.WriteByte(0) // offset 0 is always the empty string (absence sentinel)
	stringOffsets := make(map[string]uint64)
	intern := func(s string) uint64 {
		if s == "" {
			return 0
		}
		if off, ok := stringOffsets[s]; ok {
			return off
		}
		off := uint64(stringsBuf.Len())
		stringOffsets[s] = off
		stringsBuf.WriteString(s)
		stringsBuf.WriteByte(0)
		return off
	}

	type packed struct {
		bucket int32
		data   []byte
	}
	var records []packed
	redirectTable := make([]int32, tableLength)

	for _, e := range b.entries {
		var attrBuf bytes.Buffer
		if e.module != "" {
			encodeStringRecord(&attrBuf, AttrModule, intern(e.module))
		}
		if e.parent != "" {
			encodeStringRecord(&attrBuf, AttrParent, intern(e.parent))
		}
		encodeStringRecord(&attrBuf, AttrBase, intern(e.base))
		if e.extension != "" {
			encodeStringRecord(&attrBuf, AttrExtension, intern(e.extension))
		}
		encodeAttributeRecord(&attrBuf, AttrOffset, e.offset)
		encodeAttributeRecord(&attrBuf, AttrCompressed, e.compressed)
		encodeAttributeRecord(&attrBuf, AttrUncompressed, e.uncompressed)
		attrBuf.WriteByte(0) // terminator

		path := fullNameOf(e)
		bucket := mod(hash(path, HashMultiplier), tableLength)
		records = append(records, packed{bucket: bucket, data: attrBuf.Bytes()})
	}

	// Direct encoding: every non-empty bucket's redirect entry directly
	// names its own table slot via the negative form (-1 - tableIndex),
	// sidestepping the two-round hash entirely. This keeps the fixture
	// builder independent of how the real algorithm picks secondary
	// seeds, while still exercising the real decode-and-verify path in
	// ByName.
	attributeOffsets := make([]uint32, tableLength)
	var attrData bytes.Buffer
	// Offset 0 holds a bare terminator, so buckets left unused point at an
	// empty stream and decode as all-zero resources.
	attrData.WriteByte(0)
	for _, rec := range records {
		attributeOffsets[rec.bucket] = uint32(attrData.Len())
		attrData.Write(rec.data)
		redirectTable[rec.bucket] = -1 - rec.bucket
	}

	var out bytes.Buffer
	order := nativeOrder
	write32 := func(v uint32) {
		var tmp [4]byte
		order.PutUint32(tmp[:], v)
		out.Write(tmp[:])
	}
	write16 := func(v uint16) {
		var tmp [2]byte
		order.PutUint16(tmp[:], v)
		out.Write(tmp[:])
	}

	write32(magicIdentifier)
	write16(0x1234) // minor
	write16(0x5678) // major
	write32(0)      // flags
	write32(uint32(len(b.entries)))
	write32(uint32(tableLength))
	write32(uint32(attrData.Len()))
	write32(uint32(stringsBuf.Len()))

	for _, r := range redirectTable {
		write32(uint32(r))
	}
	for _, o := range attributeOffsets {
		write32(o)
	}
	out.Write(attrData.Bytes())
	out.Write(stringsBuf.Bytes())

	// Resource bytes: concatenate every entry's payload, placed at the
	// Offset each entry claims (so Offset values should be assigned
	// contiguously by the caller before calling build).
	maxEnd := uint64(0)
	for _, e := range b.entries {
		if end := e.offset + e.uncompressed; end > maxEnd {
			maxEnd = end
		}
	}
	payload := make([]byte, maxEnd)
	for i, e := range b.entries {
		for j := uint64(0); j < e.uncompressed; j++ {
			payload[e.offset+j] = byte('A' + i)
		}
	}
	out.Write(payload)

	return out.Bytes()
}

func fullNameOf(e archiveEntry) string {
	var b bytes.Buffer
	if e.module != "" {
		b.WriteByte('/')
		b.WriteString(e.module)
		b.WriteByte('/')
	}
	if e.parent != "" {
		b.WriteString(e.parent)
		b.WriteByte('/')
	}
	b.WriteString(e.base)
	if e.extension != "" {
		b.WriteByte('.')
		b.WriteString(e.extension)
	}
	return b.String()
}
