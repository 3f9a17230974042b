// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package bitreader

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestCursor_SequentialReads(t *testing.T) {
	buf := []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x34, 0x01, 0x02}
	c := New(buf, binary.BigEndian)

	magic, err := c.U32()
	if err != nil || magic != 0xCAFEBABE {
		t.Fatalf("U32 = (0x%x, %v)", magic, err)
	}
	minor, err := c.U16()
	if err != nil || minor != 0x0034 {
		t.Fatalf("U16 = (0x%x, %v)", minor, err)
	}
	b1, err := c.U8()
	if err != nil || b1 != 0x01 {
		t.Fatalf("U8 = (0x%x, %v)", b1, err)
	}
	if c.Remaining() != 1 {
		t.Fatalf("Remaining() = %d, want 1", c.Remaining())
	}
}

func TestCursor_OutOfBounds(t *testing.T) {
	c := New([]byte{0x01, 0x02}, binary.BigEndian)
	_, err := c.U32()
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestCursor_SeekTo(t *testing.T) {
	c := New([]byte{1, 2, 3, 4}, binary.LittleEndian)
	if err := c.SeekTo(2); err != nil {
		t.Fatalf("SeekTo: %v", err)
	}
	v, err := c.U16()
	if err != nil || v != 0x0403 {
		t.Fatalf("U16 after seek = (0x%x, %v)", v, err)
	}
	if err := c.SeekTo(100); err == nil {
		t.Fatal("expected error seeking past end")
	}
}

func TestCursor_U32At(t *testing.T) {
	c := New([]byte{0, 0, 0, 0, 0xDE, 0xAD, 0xBE, 0xEF}, binary.BigEndian)
	v, err := c.U32At(4)
	if err != nil || v != 0xDEADBEEF {
		t.Fatalf("U32At = (0x%x, %v)", v, err)
	}
	if c.Pos() != 0 {
		t.Fatalf("U32At should not move cursor, Pos() = %d", c.Pos())
	}
}
