// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "math"

// reconstructFloat applies the bit-exact JVMS §4.4.4 procedure to a
// CONSTANT_Float_info's raw bits, including the three special-case bit
// patterns (+Inf, -Inf, NaN), which materialize as the corresponding
// IEEE-754 values rather than aborting the parse.
func reconstructFloat(bits uint32) float32 {
	switch {
	case bits == 0x7f800000:
		return float32(math.Inf(1))
	case bits == 0xff800000:
		return float32(math.Inf(-1))
	case (bits >= 0x7f800001 && bits <= 0x7fffffff) || (bits >= 0xff800001):
		return float32(math.NaN())
	}

	s := int32(1)
	if bits>>31 != 0 {
		s = -1
	}
	e := int32((bits >> 23) & 0xff)
	var m int32
	if e == 0 {
		m = int32(bits&0x7fffff) << 1
	} else {
		m = int32(bits&0x7fffff) | 0x800000
	}
	// Scale in float64 with Ldexp so subnormal results (e == 0) are not
	// flushed to zero by an underflowing 2^(e-150) factor.
	return float32(float64(s) * math.Ldexp(float64(m), int(e-150)))
}

// reconstructDouble applies the analogous JVMS §4.4.5 procedure to a
// CONSTANT_Double_info's raw bits, symmetric with reconstructFloat.
func reconstructDouble(bits uint64) float64 {
	switch {
	case bits == 0x7ff0000000000000:
		return math.Inf(1)
	case bits == 0xfff0000000000000:
		return math.Inf(-1)
	case (bits >= 0x7ff0000000000001 && bits <= 0x7fffffffffffffff) || (bits >= 0xfff0000000000001):
		return math.NaN()
	}

	s := int64(1)
	if bits>>63 != 0 {
		s = -1
	}
	e := int64((bits >> 52) & 0x7ff)
	var m int64
	if e == 0 {
		m = int64(bits&0xfffffffffffff) << 1
	} else {
		m = int64(bits&0xfffffffffffff) | 0x10000000000000
	}
	return float64(s) * math.Ldexp(float64(m), int(e-1075))
}
