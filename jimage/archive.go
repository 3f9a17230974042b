// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package jimage decodes the Java platform module image archive format
// (magic 0xCAFEDADA), the packed container holding the platform's standard
// library classes. It exposes random-access lookup of resources by path
// using the archive's perfect-hash index, plus sequential iteration over
// all resources. Decompression of archive resources and opening/mapping
// files are non-goals of this package; see jimagex and Open.
package jimage

import (
	"encoding/binary"
	"fmt"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/saferwall/javaclass/internal/bitreader"
	"github.com/saferwall/javaclass/internal/xlog"
)

const magicIdentifier = 0xCAFEDADA

// nativeOrder is the archive's wire byte order: the file is written by the
// platform producing it, so this package restricts itself to
// matching-endian consumption via the host's native order.
var nativeOrder = binary.NativeEndian

// index holds the four parallel regions laid out after the header.
type index struct {
	redirectTable     []int32
	attributeOffsets  []uint32
	attributeData     []byte
	stringsData       []byte
}

// Options configures Parse, parallel to classfile.Options.
type Options struct {
	// Logger receives Debug/Warn diagnostics, e.g. an iteration bucket
	// that fails to decode or a redirect that points outside
	// attribute_offsets. Header flag bits are stored but not inspected.
	Logger xlog.Logger

	// VerifyOnLookup, true by default, runs the mandatory path
	// verification after every hash hit. Disabling it trusts the
	// redirect-table candidate outright; only safe when the caller has
	// independently validated the archive (e.g. re-querying a name this
	// same process just produced via Resources()).
	VerifyOnLookup *bool
}

func (o *Options) helper() *xlog.Helper {
	if o == nil {
		return xlog.NewHelper(nil)
	}
	return xlog.NewHelper(o.Logger)
}

func (o *Options) verify() bool {
	if o == nil || o.VerifyOnLookup == nil {
		return true
	}
	return *o.VerifyOnLookup
}

// Archive is the decoded header and index of a module image, borrowing
// its backing byte slice for its entire lifetime.
type Archive struct {
	buf               []byte
	header            Header
	index             index
	resourceDataStart uint64
	logger            *xlog.Helper
	verify            bool
}

// Parse decodes an archive's header and index from buf. It is a pure
// function: no I/O, no mutation of buf. Every Resource handle later
// produced by ByName or Resources aliases buf for its Bytes().
func Parse(buf []byte, opts *Options) (*Archive, error) {
	logger := opts.helper()
	c := bitreader.New(buf, nativeOrder)

	magic, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading magic: %w", err)
	}
	if magic != magicIdentifier {
		return nil, &MagicIdentifierError{Got: magic}
	}

	minor, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading minor: %w", err)
	}
	major, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading major: %w", err)
	}
	flags, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading flags: %w", err)
	}
	resourceCount, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading resource_count: %w", err)
	}
	tableLength, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading table_length: %w", err)
	}
	attributesSize, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading attributes_size: %w", err)
	}
	stringsSize, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("jimage: reading strings_size: %w", err)
	}

	header := Header{
		MajorVersion:   major,
		MinorVersion:   minor,
		Flags:          flags,
		ResourceCount:  resourceCount,
		TableLength:    tableLength,
		AttributesSize: attributesSize,
		StringsSize:    stringsSize,
	}

	redirectTable := make([]int32, tableLength)
	for i := range redirectTable {
		redirectTable[i], err = c.I32()
		if err != nil {
			return nil, fmt.Errorf("jimage: reading redirect_table[%d]: %w", i, err)
		}
	}

	attributeOffsets := make([]uint32, tableLength)
	for i := range attributeOffsets {
		attributeOffsets[i], err = c.U32()
		if err != nil {
			return nil, fmt.Errorf("jimage: reading attribute_offsets[%d]: %w", i, err)
		}
	}

	attributeData, err := c.Bytes(attributesSize)
	if err != nil {
		return nil, fmt.Errorf("jimage: reading attribute_data: %w", err)
	}
	stringsData, err := c.Bytes(stringsSize)
	if err != nil {
		return nil, fmt.Errorf("jimage: reading strings_data: %w", err)
	}

	logger.Debugf("parsed jimage header: major=%d minor=%d resources=%d table_length=%d",
		major, minor, resourceCount, tableLength)

	return &Archive{
		buf:    buf,
		header: header,
		index: index{
			redirectTable:    redirectTable,
			attributeOffsets: attributeOffsets,
			attributeData:    attributeData,
			stringsData:      stringsData,
		},
		resourceDataStart: uint64(c.Pos()),
		logger:            logger,
		verify:            opts.verify(),
	}, nil
}

// Header returns the archive's decoded header.
func (a *Archive) Header() Header { return a.header }

func (a *Archive) resourceAt(tableIndex int32) (Resource, error) {
	offset := a.index.attributeOffsets[tableIndex]
	data := a.index.attributeData[offset:]
	attrs, err := decodeAttributeStream(data)
	if err != nil {
		return Resource{}, err
	}
	return Resource{archive: a, attributes: attrs}, nil
}

// ByName performs the two-step perfect-hash lookup and returns the
// resource at path, or (Resource{}, false) if absent or the candidate
// fails path verification.
func (a *Archive) ByName(path string) (Resource, bool) {
	tableLength := int32(len(a.index.redirectTable))
	if tableLength == 0 {
		return Resource{}, false
	}

	h := hash(path, HashMultiplier)
	bucket := mod(h, tableLength)
	r := a.index.redirectTable[bucket]
	if r == 0 {
		return Resource{}, false
	}

	var tableIndex int32
	if r > 0 {
		tableIndex = mod(hash(path, r), tableLength)
	} else {
		tableIndex = -1 - r
	}
	if tableIndex < 0 || tableIndex >= int32(len(a.index.attributeOffsets)) {
		a.logger.Warnf("jimage: redirect for %q points outside attribute_offsets", path)
		return Resource{}, false
	}

	candidate, err := a.resourceAt(tableIndex)
	if err != nil {
		a.logger.Warnf("jimage: decoding candidate attributes for %q: %v", path, err)
		return Resource{}, false
	}

	if a.verify && !verifyPath(candidate, path) {
		return Resource{}, false
	}
	return candidate, true
}

// mod is a positive-result modulo; hash() already masks its result
// non-negative, so this is a plain division remainder, named for
// readability at call sites.
func mod(h, m int32) int32 { return h % m }

// resourceIterator walks attribute_offsets from index 0 upward.
type resourceIterator struct {
	archive *Archive
	next    int32
}

// Resources returns an iterator over every bucket in attribute_offsets,
// including empty buckets (decoded as all-zero Resource values). Iteration
// order is bucket order, not sorted — callers that want sorted output
// (e.g. `jimage ls`) sort the collected names themselves rather than
// this iterator changing its contract.
func (a *Archive) Resources() *resourceIterator {
	return &resourceIterator{archive: a}
}

// Next advances the iterator and reports whether a resource was produced.
func (it *resourceIterator) Next() (Resource, bool) {
	if it.next >= int32(len(it.archive.index.attributeOffsets)) {
		return Resource{}, false
	}
	r, err := it.archive.resourceAt(it.next)
	it.next++
	if err != nil {
		it.archive.logger.Warnf("jimage: decoding resource at bucket %d: %v", it.next-1, err)
		return Resource{}, false
	}
	return r, true
}

// Modules returns the distinct, non-empty module names found across every
// resource in the archive: every real .jimage is partitioned by module,
// and this walks the iterator once collecting distinct names, grounded
// on jimage.rs's example binary which groups its printed resource list
// by module.
func (a *Archive) Modules() []string {
	seen := make(map[string]struct{})
	var modules []string
	it := a.Resources()
	for {
		r, ok := it.Next()
		if !ok {
			break
		}
		m := r.Module()
		if m == "" {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		modules = append(modules, m)
	}
	return modules
}

// Open mmaps path and parses it as an archive, for callers that want a
// path-based entry point instead of supplying their own byte slice,
// mirroring classfile.OpenFile and saferwall/pe/file.go's New(name, opts).
func Open(path string, opts *Options) (*Archive, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	closeFn := func() error {
		err := data.Unmap()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}
	archive, err := Parse(data, opts)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return archive, closeFn, nil
}
