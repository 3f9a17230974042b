// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package jimage

// HashMultiplier is the FNV prime used both as the default hash seed and
// as a candidate secondary seed stored in the redirect table.
const HashMultiplier int32 = 0x01000193

// hash folds data into a non-negative 32-bit value using an FNV-like
// multiply-xor mixer, starting from seed. Used both to compute a path's
// primary bucket (seed == HashMultiplier) and, for buckets whose redirect
// entry is positive, to re-hash with that entry as the seed for a second
// round.
func hash(data string, seed int32) int32 {
	u := uint32(seed)
	for i := 0; i < len(data); i++ {
		u = (u * uint32(HashMultiplier)) ^ uint32(data[i])
	}
	return int32(u & 0x7fffffff)
}
