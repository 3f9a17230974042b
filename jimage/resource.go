// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import "strings"

// Resource is a single addressable file stored in an archive, identified
// by the path /module/parent/base.extension. It borrows its backing
// strings_data and resource bytes from the Archive that produced it; no
// resource payload is ever copied.
type Resource struct {
	archive    *Archive
	attributes [attrTotal]uint64
}

// Module returns the resource's owning module name, or "" if absent.
func (r Resource) Module() string { return r.stringAt(AttrModule) }

// Parent returns the resource's parent package path, or "" if absent.
func (r Resource) Parent() string { return r.stringAt(AttrParent) }

// Base returns the resource's base file name (without extension).
func (r Resource) Base() string { return r.stringAt(AttrBase) }

// Extension returns the resource's file extension, or "" if absent.
func (r Resource) Extension() string { return r.stringAt(AttrExtension) }

// Offset returns the resource's byte offset relative to
// resource_data_start.
func (r Resource) Offset() uint64 { return r.attributes[AttrOffset] }

// Compressed returns the nonzero-if-compressed indicator. Decompression
// itself is out of core scope; see the jimagex package.
func (r Resource) Compressed() uint64 { return r.attributes[AttrCompressed] }

// Uncompressed returns the resource's raw byte count.
func (r Resource) Uncompressed() uint64 { return r.attributes[AttrUncompressed] }

// IsEmpty reports whether every attribute slot is zero, the shape an
// unused redirect-table bucket decodes to during iteration.
func (r Resource) IsEmpty() bool {
	for _, v := range r.attributes {
		if v != 0 {
			return false
		}
	}
	return true
}

// Bytes returns the resource's raw byte range from the archive's backing
// buffer: buf[resource_data_start+Offset : resource_data_start+Offset+Uncompressed].
// If Compressed is nonzero the returned bytes are the compressed payload;
// this package performs no decompression.
func (r Resource) Bytes() []byte {
	start := r.archive.resourceDataStart + r.Offset()
	end := start + r.Uncompressed()
	return r.archive.buf[start:end]
}

// FullName reconstructs the canonical "/module/parent/base.extension" key
// for this resource — the inverse of path verification and the value
// iteration yields for round-tripping through ByName.
func (r Resource) FullName() string {
	var b strings.Builder
	b.Grow(32)
	if m := r.Module(); m != "" {
		b.WriteByte('/')
		b.WriteString(m)
		b.WriteByte('/')
	}
	if p := r.Parent(); p != "" {
		b.WriteString(p)
		b.WriteByte('/')
	}
	b.WriteString(r.Base())
	if e := r.Extension(); e != "" {
		b.WriteByte('.')
		b.WriteString(e)
	}
	return b.String()
}

// stringAt resolves a string-valued attribute slot. An absent attribute
// defaults to offset 0, which every archive's strings_data begins with an
// empty, NUL-terminated entry for, so a zero slot and an explicit
// empty-string record are indistinguishable, both correctly yielding "".
func (r Resource) stringAt(kind AttributeKind) string {
	offset := r.attributes[kind]
	data := r.archive.index.stringsData
	if offset >= uint64(len(data)) {
		return ""
	}
	rest := data[offset:]
	if i := indexByte(rest, 0); i >= 0 {
		rest = rest[:i]
	}
	return string(rest)
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}
