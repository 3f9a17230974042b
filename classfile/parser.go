// Copyright 2024 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"encoding/binary"
	"fmt"

	"github.com/saferwall/javaclass/internal/bitreader"
	"github.com/saferwall/javaclass/internal/xlog"
)

const magicIdentifier = 0xCAFEBABE

// Options configures Parse, parallel to saferwall/pe's pe.Options carried
// through File.opts.
type Options struct {
	// Logger receives a Debug summary line after each successful Parse.
	// Lazy attribute reparsers such as CodeAttribute do not log. Defaults to a
	// discarding logger at LevelError, like saferwall/pe/file.go's default
	// `log.NewHelper(log.NewFilter(logger, log.FilterLevel(log.LevelError)))`.
	Logger xlog.Logger
}

func (o *Options) helper() *xlog.Helper {
	if o == nil {
		return xlog.NewHelper(nil)
	}
	return xlog.NewHelper(o.Logger)
}

// Parse decodes a single classfile from bytes. It is a pure function: no
// I/O, no retained reference to bytes beyond the Attribute.Info byte
// slices, which alias it. Utf8 string values are decoded copies.
func Parse(bytes []byte, opts *Options) (*ClassFile, error) {
	logger := opts.helper()
	c := bitreader.New(bytes, binary.BigEndian)

	magic, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading magic: %w", err)
	}
	if magic != magicIdentifier {
		return nil, &MagicIdentifierError{Got: magic}
	}

	minorVersion, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading minor_version: %w", err)
	}
	majorVersion, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading major_version: %w", err)
	}

	pool, err := parseConstantPool(c)
	if err != nil {
		return nil, err
	}

	accessFlags, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading access_flags: %w", err)
	}
	thisClass, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading this_class: %w", err)
	}
	superClass, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading super_class: %w", err)
	}

	interfacesCount, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading interfaces_count: %w", err)
	}
	interfaces := make([]uint16, interfacesCount)
	for i := range interfaces {
		interfaces[i], err = c.U16()
		if err != nil {
			return nil, fmt.Errorf("classfile: reading interfaces[%d]: %w", i, err)
		}
	}

	fields, err := parseMembers(c)
	if err != nil {
		return nil, fmt.Errorf("classfile: reading fields: %w", err)
	}
	methods, err := parseMembers(c)
	if err != nil {
		return nil, fmt.Errorf("classfile: reading methods: %w", err)
	}
	attributes, err := parseAttributeList(c)
	if err != nil {
		return nil, fmt.Errorf("classfile: reading attributes: %w", err)
	}

	logger.Debugf("parsed classfile: major=%d minor=%d constants=%d fields=%d methods=%d",
		majorVersion, minorVersion, pool.Count(), len(fields), len(methods))

	return &ClassFile{
		MinorVersion: minorVersion,
		MajorVersion: majorVersion,
		ConstantPool: pool,
		AccessFlags:  AccessFlags(accessFlags),
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   attributes,
	}, nil
}

// Member is the shared (access_flags, name_index, descriptor_index,
// attributes) shape of field_info and method_info.
type Member struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      AttributeList
}

func parseMembers(c *bitreader.Cursor) ([]Member, error) {
	count, err := c.U16()
	if err != nil {
		return nil, err
	}
	members := make([]Member, count)
	for i := range members {
		accessFlags, err := c.U16()
		if err != nil {
			return nil, err
		}
		nameIndex, err := c.U16()
		if err != nil {
			return nil, err
		}
		descriptorIndex, err := c.U16()
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributeList(c)
		if err != nil {
			return nil, err
		}
		members[i] = Member{
			AccessFlags:     AccessFlags(accessFlags),
			NameIndex:       nameIndex,
			DescriptorIndex: descriptorIndex,
			Attributes:      attrs,
		}
	}
	return members, nil
}

// parseConstantPool reads the constant_pool_count and then repeatedly
// decodes entries until count-1 slots are filled. Long and Double
// entries each push one real entry and one Unusable sentinel.
func parseConstantPool(c *bitreader.Cursor) (*ConstantPool, error) {
	rawCount, err := c.U16()
	if err != nil {
		return nil, fmt.Errorf("classfile: reading constant_pool_count: %w", err)
	}
	remaining := int(rawCount) - 1
	entries := make([]CpInfo, 0, remaining)

	for remaining > 0 {
		entry, slots, err := parseCpInfo(c)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		for i := 1; i < slots; i++ {
			entries = append(entries, Unusable{})
		}
		remaining -= slots
	}

	return &ConstantPool{entries: entries}, nil
}

func parseCpInfo(c *bitreader.Cursor) (CpInfo, int, error) {
	tag, err := c.U8()
	if err != nil {
		return nil, 0, fmt.Errorf("classfile: reading cp_info tag: %w", err)
	}

	switch tag {
	case tagUtf8:
		length, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		raw, err := c.Bytes(uint32(length))
		if err != nil {
			return nil, 0, err
		}
		return Utf8{Value: decodeModifiedUTF8(raw)}, 1, nil

	case tagInteger:
		v, err := c.I32()
		if err != nil {
			return nil, 0, err
		}
		return Integer{Value: v}, 1, nil

	case tagFloat:
		bits, err := c.U32()
		if err != nil {
			return nil, 0, err
		}
		return Float{Value: reconstructFloat(bits)}, 1, nil

	case tagLong:
		hi, err := c.U32()
		if err != nil {
			return nil, 0, err
		}
		lo, err := c.U32()
		if err != nil {
			return nil, 0, err
		}
		return Long{Value: int64(uint64(hi)<<32 | uint64(lo))}, 2, nil

	case tagDouble:
		hi, err := c.U32()
		if err != nil {
			return nil, 0, err
		}
		lo, err := c.U32()
		if err != nil {
			return nil, 0, err
		}
		bits := uint64(hi)<<32 | uint64(lo)
		return Double{Value: reconstructDouble(bits)}, 2, nil

	case tagClass:
		nameIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		return Class{NameIndex: nameIndex}, 1, nil

	case tagString:
		stringIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		return String{StringIndex: stringIndex}, 1, nil

	case tagFieldRef, tagMethodRef, tagInterfaceMethodRef:
		classIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		ntIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		switch tag {
		case tagFieldRef:
			return FieldRef{ClassIndex: classIndex, NameAndTypeIndex: ntIndex}, 1, nil
		case tagMethodRef:
			return MethodRef{ClassIndex: classIndex, NameAndTypeIndex: ntIndex}, 1, nil
		default:
			return InterfaceMethodRef{ClassIndex: classIndex, NameAndTypeIndex: ntIndex}, 1, nil
		}

	case tagNameAndType:
		nameIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		descriptorIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		return NameAndType{NameIndex: nameIndex, DescriptorIndex: descriptorIndex}, 1, nil

	case tagMethodHandle:
		kind, err := c.U8()
		if err != nil {
			return nil, 0, err
		}
		refIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		return MethodHandle{ReferenceKind: MethodHandleKind(kind), ReferenceIndex: refIndex}, 1, nil

	case tagMethodType:
		descriptorIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		return MethodType{DescriptorIndex: descriptorIndex}, 1, nil

	case tagInvokeDynamic:
		bootstrapIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		ntIndex, err := c.U16()
		if err != nil {
			return nil, 0, err
		}
		return InvokeDynamic{BootstrapMethodAttrIndex: bootstrapIndex, NameAndTypeIndex: ntIndex}, 1, nil

	default:
		return nil, 0, &CpInfoTagError{Tag: tag}
	}
}
