// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package bitreader provides a boundary-checked byte-slice cursor shared by
// the classfile and jimage decoders. Both formats are fixed-layout,
// count-prefixed binary streams read directly out of a caller-supplied byte
// slice rather than an io.Reader; the boundary-check-then-slice idiom here
// is generalized from saferwall/pe's structUnpack/ReadUint32/ReadUint16
// family in helper.go, which performs the same offset+size overflow and
// range checks before every multi-byte read.
package bitreader

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a read would run past the end of the
// backing buffer, or an offset/length combination overflows. It plays the
// role of the classfile/jimage spec's "IOError(end-of-stream)".
var ErrOutOfBounds = errors.New("bitreader: read outside buffer boundary")

// Cursor reads fixed-width integers and byte runs from a backing slice,
// advancing its own position. It never copies the backing slice; returned
// byte runs alias it, mirroring the borrowed-buffer lifetime model both
// decoders rely on.
type Cursor struct {
	buf   []byte
	pos   uint32
	order binary.ByteOrder
}

// New wraps buf for sequential reads in the given byte order.
func New(buf []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{buf: buf, order: order}
}

// Pos returns the current read offset.
func (c *Cursor) Pos() uint32 { return c.pos }

// Len returns the total buffer length.
func (c *Cursor) Len() uint32 { return uint32(len(c.buf)) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() uint32 { return c.Len() - c.pos }

// SeekTo repositions the cursor to an absolute offset within the buffer.
func (c *Cursor) SeekTo(pos uint32) error {
	if pos > c.Len() {
		return fmt.Errorf("%w: seek to %d, size %d", ErrOutOfBounds, pos, c.Len())
	}
	c.pos = pos
	return nil
}

// checkedSlice validates offset+n against the buffer and returns the slice,
// guarding the same integer-overflow case as structUnpack's
// `(totalSize > offset) != (size > 0)` check.
func (c *Cursor) checkedSlice(offset, n uint32) ([]byte, error) {
	end := offset + n
	if (end > offset) != (n > 0) {
		return nil, ErrOutOfBounds
	}
	if offset > c.Len() || end > c.Len() {
		return nil, fmt.Errorf("%w: offset %d, len %d, size %d", ErrOutOfBounds, offset, n, c.Len())
	}
	return c.buf[offset:end], nil
}

// Bytes reads n raw bytes and advances the cursor. The returned slice
// aliases the backing buffer.
func (c *Cursor) Bytes(n uint32) ([]byte, error) {
	b, err := c.checkedSlice(c.pos, n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (c *Cursor) Skip(n uint32) error {
	_, err := c.Bytes(n)
	return err
}

// U8 reads one unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a 2-byte unsigned integer in the cursor's byte order.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return c.order.Uint16(b), nil
}

// U32 reads a 4-byte unsigned integer in the cursor's byte order.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}

// I32 reads a 4-byte signed integer in the cursor's byte order.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// U64 reads an 8-byte unsigned integer in the cursor's byte order.
func (c *Cursor) U64() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return c.order.Uint64(b), nil
}

// PeekAt reads n bytes at an absolute offset without moving the cursor.
func (c *Cursor) PeekAt(offset, n uint32) ([]byte, error) {
	return c.checkedSlice(offset, n)
}

// U32At reads a 4-byte unsigned integer at an absolute offset without
// advancing the cursor, used by the jimage index tables which are accessed
// randomly once parsed.
func (c *Cursor) U32At(offset uint32) (uint32, error) {
	b, err := c.checkedSlice(offset, 4)
	if err != nil {
		return 0, err
	}
	return c.order.Uint32(b), nil
}
