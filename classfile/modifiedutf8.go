// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// decodeModifiedUTF8 decodes the bytes of a CONSTANT_Utf8_info entry per
// JVMS 4.4.7: code point 0 is encoded as the two-byte sequence 0xC0 0x80
// instead of a single 0x00 byte, and supplementary-plane characters are
// encoded as a pair of three-byte sequences carrying a UTF-16 surrogate
// pair rather than a single four-byte UTF-8 sequence. The surrogate-pair
// half hands the decoded UTF-16 code units to
// golang.org/x/text/encoding/unicode for final assembly, BigEndian here
// since JVMS always encodes Utf8 entries big-endian regardless of
// platform.
var utf16BEDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

func decodeModifiedUTF8(b []byte) string {
	out := make([]byte, 0, len(b))
	i := 0
	for i < len(b) {
		c0 := b[i]
		switch {
		case c0&0x80 == 0: // 0xxxxxxx
			out = append(out, c0)
			i++
		case c0&0xE0 == 0xC0 && i+1 < len(b): // 110xxxxx 10xxxxxx
			c1 := b[i+1]
			cp := rune(c0&0x1F)<<6 | rune(c1&0x3F)
			out = appendRune(out, cp)
			i += 2
		case c0&0xF0 == 0xE0 && i+2 < len(b): // 1110xxxx 10xxxxxx 10xxxxxx
			c1, c2 := b[i+1], b[i+2]
			unit := uint16(c0&0x0F)<<12 | uint16(c1&0x3F)<<6 | uint16(c2&0x3F)
			if isHighSurrogate(unit) && i+5 < len(b) && b[i+3]&0xF0 == 0xE0 {
				c4, c5 := b[i+4], b[i+5]
				lowUnit := uint16(b[i+3]&0x0F)<<12 | uint16(c4&0x3F)<<6 | uint16(c5&0x3F)
				if isLowSurrogate(lowUnit) {
					if r, ok := decodeSurrogatePair(unit, lowUnit); ok {
						out = appendRune(out, r)
						i += 6
						continue
					}
				}
			}
			out = appendRune(out, rune(unit))
			i += 3
		default:
			// Malformed trailing bytes: emit the replacement character and
			// resynchronize on the next byte.
			out = appendRune(out, utf8.RuneError)
			i++
		}
	}
	return string(out)
}

func isHighSurrogate(u uint16) bool { return u >= 0xD800 && u <= 0xDBFF }
func isLowSurrogate(u uint16) bool  { return u >= 0xDC00 && u <= 0xDFFF }

func decodeSurrogatePair(high, low uint16) (rune, bool) {
	wire := []byte{byte(high >> 8), byte(high), byte(low >> 8), byte(low)}
	decoded, err := utf16BEDecoder.Bytes(wire)
	if err != nil || len(decoded) == 0 {
		return 0, false
	}
	r, _ := utf8.DecodeRune(decoded)
	if r == utf8.RuneError {
		return 0, false
	}
	return r, true
}

func appendRune(b []byte, r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(b, buf[:n]...)
}
