// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package jimagex layers optional decompression over jimage's raw resource
// byte access. The core jimage package deliberately stops at handing back
// whatever bytes sit at a resource's offset; this package is a separate,
// optional extension kept entirely outside jimage's own import graph so
// the core decoder never pays for, or depends on, a compression codec it
// does not need.
package jimagex

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/saferwall/javaclass/jimage"
)

var decoderPool = sync.Pool{
	New: func() any {
		d, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
		)
		if err != nil {
			panic(fmt.Sprintf("jimagex: failed to create zstd decoder: %v", err))
		}
		return d
	},
}

// Read returns a resource's decoded bytes: the raw payload unchanged if
// Compressed() is zero, or the Zstandard-decompressed payload otherwise.
func Read(r jimage.Resource) ([]byte, error) {
	raw := r.Bytes()
	if r.Compressed() == 0 {
		return raw, nil
	}

	d := decoderPool.Get().(*zstd.Decoder)
	defer decoderPool.Put(d)

	out, err := d.DecodeAll(raw, make([]byte, 0, r.Uncompressed()))
	if err != nil {
		return nil, fmt.Errorf("jimagex: decompressing %q: %w", r.FullName(), err)
	}
	return out, nil
}
