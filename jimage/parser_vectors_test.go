// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

import "testing"

// Exact byte vectors from the parser unit test scenarios: magic decodes in
// native (here: little-endian build host) order, a mismatched trailing
// byte fails, and a packed attribute header decodes (kind, value) exactly.

func TestVector_MagicLittleEndian(t *testing.T) {
	// magic (4) + minor,major,flags,resource_count,table_length,
	// attributes_size,strings_size (24 zero bytes) = 28-byte bare header.
	header := make([]byte, 28)
	copy(header, []byte{0xDA, 0xDA, 0xFE, 0xCA})
	_, err := Parse(header, nil)
	if err != nil {
		t.Fatalf("Parse failed on valid magic: %v", err)
	}
}

func TestVector_MagicMismatch(t *testing.T) {
	header := []byte{0xDA, 0xDA, 0xFE, 0xCB, 0, 0, 0, 0}
	if _, err := Parse(header, nil); err == nil {
		t.Fatal("expected failure for mismatched magic byte")
	}
}

func TestVector_VersionBytes(t *testing.T) {
	// minor=0x1234, major=0x5678 encoded little-endian as bytes
	// [0x34,0x12,0x78,0x56], immediately following the 4-byte magic.
	buf := make([]byte, 28)
	copy(buf, []byte{0xDA, 0xDA, 0xFE, 0xCA, 0x34, 0x12, 0x78, 0x56})
	archive, err := Parse(buf, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h := archive.Header()
	if h.MinorVersion != 0x1234 || h.MajorVersion != 0x5678 {
		t.Fatalf("got minor=0x%X major=0x%X, want minor=0x1234 major=0x5678", h.MinorVersion, h.MajorVersion)
	}
}

func TestVector_AttributeHeaderDecode(t *testing.T) {
	// header byte 0x22 = (kind=4<<3)|(length-1=2) -> kind=AttrExtension,
	// length=3; value bytes 0x03,0x35,0x62 big-endian-accumulated ==
	// 0x033562.
	data := []byte{0x22, 0x03, 0x35, 0x62, 0}
	attrs, err := decodeAttributeStream(data)
	if err != nil {
		t.Fatalf("decodeAttributeStream: %v", err)
	}
	if attrs[AttrExtension] != 0x033562 {
		t.Fatalf("attrs[AttrExtension] = 0x%X, want 0x033562", attrs[AttrExtension])
	}
}

func TestVector_AttributeTerminatorStopsDecoding(t *testing.T) {
	data := []byte{0}
	attrs, err := decodeAttributeStream(data)
	if err != nil {
		t.Fatalf("decodeAttributeStream: %v", err)
	}
	for k, v := range attrs {
		if v != 0 {
			t.Fatalf("attrs[%d] = %d, want 0 for an empty stream", k, v)
		}
	}
}

func TestVector_UnknownAttributeKind(t *testing.T) {
	// a header byte whose kind (upper 5 bits) is 0 is the terminator
	// whatever its length bits; a kind beyond range (here 8, beyond
	// AttrUncompressed=7) must fail.
	data := []byte{byte(8<<3) | 0}
	if _, err := decodeAttributeStream(data); err == nil {
		t.Fatal("expected error for out-of-range attribute kind")
	}
}
