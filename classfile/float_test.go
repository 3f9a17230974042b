// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"math"
	"testing"
)

func TestReconstructFloat(t *testing.T) {
	tests := []struct {
		name string
		bits uint32
		want float32
	}{
		{"zero", 0x00000000, 0},
		{"one", float32Bits(1.0), 1.0},
		{"negative", float32Bits(-2.5), -2.5},
		{"positive infinity", 0x7f800000, float32(math.Inf(1))},
		{"negative infinity", 0xff800000, float32(math.Inf(-1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructFloat(tt.bits)
			if math.IsInf(float64(tt.want), 0) {
				if got != tt.want {
					t.Errorf("reconstructFloat(0x%x) = %v, want %v", tt.bits, got, tt.want)
				}
				return
			}
			if got != tt.want {
				t.Errorf("reconstructFloat(0x%x) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}

	if !math.IsNaN(float64(reconstructFloat(0x7fc00000))) {
		t.Errorf("reconstructFloat(NaN bits) did not produce NaN")
	}
	if !math.IsNaN(float64(reconstructFloat(0xffc00000))) {
		t.Errorf("reconstructFloat(negative NaN bits) did not produce NaN")
	}
}

func TestReconstructDouble(t *testing.T) {
	tests := []struct {
		name string
		bits uint64
		want float64
	}{
		{"zero", 0x0000000000000000, 0},
		{"one", float64Bits(1.0), 1.0},
		{"negative", float64Bits(-3.25), -3.25},
		{"positive infinity", 0x7ff0000000000000, math.Inf(1)},
		{"negative infinity", 0xfff0000000000000, math.Inf(-1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconstructDouble(tt.bits)
			if got != tt.want {
				t.Errorf("reconstructDouble(0x%x) = %v, want %v", tt.bits, got, tt.want)
			}
		})
	}

	if !math.IsNaN(reconstructDouble(0x7ff8000000000000)) {
		t.Errorf("reconstructDouble(NaN bits) did not produce NaN")
	}
}
