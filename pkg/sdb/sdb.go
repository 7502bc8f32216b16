// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implements parsing of the VacVision Symbol Database (SDB): a sequence
// of little-endian tagged records describing every addressable parameter
// on an instrument, and the type table that gives each one its wire
// shape. See spec §4.A.
package sdb

import "fmt"

const (
	tagHeader    = 0x01
	tagTypeDescr = 0x04
	tagStructMbr = 0x05
	tagSeparator = 0x03
	tagParameter = 0x05
	tagTrailer   = 0x06
)

// Sdb is the immutable, in-memory catalog parsed from an SDB blob. It is
// built once and never mutated; Parameter and TypeInfo handles are cheap,
// non-owning (sdb, index) pairs into it, per spec §9 ("flat arena
// addressed by index, never by pointer traversal").
type Sdb struct {
	id         uint32
	checksum   uint32
	totalSize  uint32
	headerWord [3]uint32
	types      []TypeDescriptor
	params     []ParameterRecord
	trailer    []byte

	byName map[string]int // parameter name -> index into params
}

// FromBytes parses a complete SDB blob. The first error encountered aborts
// parsing; no partial catalog is ever returned (spec §4.A, §7).
func FromBytes(blob []byte) (*Sdb, error) {
	s := &Sdb{byName: map[string]int{}}
	pos := 0

	tag, recEnd, body, err := nextRecord(blob, pos)
	if err != nil {
		return nil, err
	}
	if tag != tagHeader {
		return nil, fmt.Errorf("sdb: expected header record, got tag 0x%x", tag)
	}
	typeCount, err := s.parseHeader(body)
	if err != nil {
		return nil, err
	}
	pos = recEnd

	s.types = make([]TypeDescriptor, 0, typeCount)
	for i := uint32(0); i < typeCount; i++ {
		tag, recEnd, body, err := nextRecord(blob, pos)
		if err != nil {
			return nil, err
		}
		if tag != tagTypeDescr {
			return nil, fmt.Errorf("sdb: expected type descriptor record, got tag 0x%x", tag)
		}
		td, err := parseTypeDescriptor(body)
		if err != nil {
			return nil, err
		}
		s.types = append(s.types, td)
		pos = recEnd
	}

	// Separator record (tag 0x03): two opaque u32 words, ignored.
	tag, recEnd, _, err = nextRecord(blob, pos)
	if err != nil {
		return nil, err
	}
	if tag != tagSeparator {
		return nil, fmt.Errorf("sdb: expected separator record, got tag 0x%x", tag)
	}
	pos = recEnd

	if pos+4 > len(blob) {
		return nil, ErrTruncated
	}
	paramCount := le32(blob[pos:])
	pos += 4

	s.params = make([]ParameterRecord, 0, paramCount)
	for i := uint32(0); i < paramCount; i++ {
		tag, recEnd, body, err := nextRecord(blob, pos)
		if err != nil {
			return nil, err
		}
		if tag != tagParameter {
			return nil, fmt.Errorf("sdb: expected parameter record, got tag 0x%x", tag)
		}
		pr, err := parseParameter(body)
		if err != nil {
			return nil, err
		}
		if pr.TypeIndex < 0 || pr.TypeIndex >= len(s.types) {
			return nil, ErrBadTypeIndex
		}
		s.byName[pr.Name] = len(s.params)
		s.params = append(s.params, pr)
		pos = recEnd
	}

	tag, recEnd, body, err = nextRecord(blob, pos)
	if err != nil {
		return nil, err
	}
	if tag != tagTrailer {
		return nil, fmt.Errorf("sdb: expected trailer record, got tag 0x%x", tag)
	}
	s.trailer = append([]byte(nil), body...)
	pos = recEnd

	if err := s.validateTypeIndices(); err != nil {
		return nil, err
	}

	_ = pos // trailing bytes after the trailer, if any, are not an error
	return s, nil
}

// nextRecord reads the 32-bit tag and 32-bit length (the length counts
// from the start of the tag, per spec §4.A) at pos, and returns the tag,
// the position just past the record, and the record's body (the bytes
// between the length field and the record's end).
func nextRecord(blob []byte, pos int) (tag uint32, end int, body []byte, err error) {
	if pos+8 > len(blob) {
		return 0, 0, nil, ErrTruncated
	}
	tag = le32(blob[pos:])
	length := le32(blob[pos+4:])
	if length < 8 {
		return 0, 0, nil, fmt.Errorf("sdb: record length %d shorter than header", length)
	}
	end = pos + int(length)
	if end > len(blob) {
		return 0, 0, nil, ErrTruncated
	}
	return tag, end, blob[pos+8 : end], nil
}

// parseHeader reads the header record's body (spec §4.A item 1). The body
// is fixed at 32 bytes; after the seven named fields, any remaining bytes
// are reserved padding implied by the fixed 40-byte total record size
// and are not interpreted.
func (s *Sdb) parseHeader(body []byte) (typeDescrCount uint32, err error) {
	const minFields = 4 * 7
	if len(body) < minFields {
		return 0, ErrTruncated
	}
	s.id = le32(body[0:])
	s.checksum = le32(body[4:])
	s.totalSize = le32(body[8:])
	s.headerWord[0] = le32(body[12:])
	s.headerWord[1] = le32(body[16:])
	s.headerWord[2] = le32(body[20:])
	typeDescrCount = le32(body[24:])
	return typeDescrCount, nil
}

func parseTypeDescriptor(body []byte) (TypeDescriptor, error) {
	if len(body) < 12 {
		return TypeDescriptor{}, ErrTruncated
	}
	kind := le32(body[0:])
	wireSize := le32(body[4:])
	desc, off, err := readSdbStr(body, 8)
	if err != nil {
		return TypeDescriptor{}, err
	}
	descStr, err := desc.String()
	if err != nil {
		return TypeDescriptor{}, err
	}

	td := TypeDescriptor{
		Kind:        TypeKind(kind),
		WireSize:    wireSize,
		Description: descStr,
	}

	switch td.Kind {
	case KindArray:
		if off+8 > len(body) {
			return TypeDescriptor{}, ErrTruncated
		}
		ad := &ArrayDescriptor{
			ElemTypeIndex: int(le32(body[off:])),
		}
		off += 4
		dimCount := int(le32(body[off:]))
		off += 4
		if dimCount < 1 || dimCount > 2 {
			return TypeDescriptor{}, fmt.Errorf("sdb: array dimension count %d out of range", dimCount)
		}
		ad.DimCount = dimCount
		for i := 0; i < dimCount; i++ {
			if off+8 > len(body) {
				return TypeDescriptor{}, ErrTruncated
			}
			ad.Dims[i][0] = le32(body[off:])
			ad.Dims[i][1] = le32(body[off+4:])
			off += 8
		}
		td.Array = ad

	case KindStruct:
		if off+4 > len(body) {
			return TypeDescriptor{}, ErrTruncated
		}
		memberCount := int(le32(body[off:]))
		off += 4
		sd := &StructDescriptor{Members: make([]StructMember, 0, memberCount)}
		for i := 0; i < memberCount; i++ {
			if off+8 > len(body) {
				return TypeDescriptor{}, ErrTruncated
			}
			mTag := le32(body[off:])
			mLen := le32(body[off+4:])
			if mTag != tagStructMbr || mLen < 8 {
				return TypeDescriptor{}, fmt.Errorf("sdb: malformed struct member record")
			}
			mEnd := off + int(mLen)
			if mEnd > len(body) {
				return TypeDescriptor{}, ErrTruncated
			}
			mBody := body[off+8 : mEnd]
			if len(mBody) < 16 {
				return TypeDescriptor{}, ErrTruncated
			}
			childType := int(le32(mBody[0:]))
			// mBody[4:8] and mBody[8:12] are two opaque words.
			idOffset := le32(mBody[12:])
			name, _, err := readSdbStr(mBody, 16)
			if err != nil {
				return TypeDescriptor{}, err
			}
			nameStr, err := name.String()
			if err != nil {
				return TypeDescriptor{}, err
			}
			sd.Members = append(sd.Members, StructMember{
				Name:      nameStr,
				TypeIndex: childType,
				IDOffset:  idOffset,
			})
			off = mEnd
		}
		td.Struct = sd

	case KindPointer:
		if off+4 > len(body) {
			return TypeDescriptor{}, ErrTruncated
		}
		td.PointerTarget = int(le32(body[off:]))

	case KindBool, KindInt, KindByte, KindWord, KindUint, KindDword, KindUdint,
		KindTime, KindReal, KindString:
		// No kind-dependent payload.

	default:
		return TypeDescriptor{}, &ErrUnknownKind{Kind: kind}
	}

	return td, nil
}

func parseParameter(body []byte) (ParameterRecord, error) {
	if len(body) < 16 {
		return ParameterRecord{}, ErrTruncated
	}
	typeIndex := int(le32(body[0:]))
	flags1 := le16(body[4:])
	flags2 := le16(body[6:])
	access := AccessMode(le16(body[8:]))
	// body[10:12] is the literal 0x0003 marker, not interpreted further.
	id := le32(body[12:])
	name, _, err := readSdbStr(body, 16)
	if err != nil {
		return ParameterRecord{}, err
	}
	nameStr, err := name.String()
	if err != nil {
		return ParameterRecord{}, err
	}

	switch access {
	case AccessRead, AccessReadWrite, accessUnknownObserved:
	default:
		return ParameterRecord{}, &ErrUnknownAccessMode{Mode: uint16(access)}
	}

	return ParameterRecord{
		ID:         id,
		AccessMode: access,
		Flags1:     flags1,
		Flags2:     flags2,
		TypeIndex:  typeIndex,
		Name:       nameStr,
	}, nil
}

// validateTypeIndices walks every Array/Struct-member/Pointer reference
// and confirms it resolves inside the type table (spec §3 invariant).
func (s *Sdb) validateTypeIndices() error {
	inRange := func(idx int) bool { return idx >= 0 && idx < len(s.types) }
	for _, td := range s.types {
		switch td.Kind {
		case KindArray:
			if !inRange(td.Array.ElemTypeIndex) {
				return ErrBadTypeIndex
			}
		case KindStruct:
			for _, m := range td.Struct.Members {
				if !inRange(m.TypeIndex) {
					return ErrBadTypeIndex
				}
			}
		case KindPointer:
			if !inRange(td.PointerTarget) {
				return ErrBadTypeIndex
			}
		}
	}
	return nil
}

// ID returns the sdb_id echoed on every parameter read/write request.
func (s *Sdb) ID() uint32 { return s.id }

// Parameters returns all parameters in declaration order.
func (s *Sdb) Parameters() []Parameter {
	out := make([]Parameter, len(s.params))
	for i, p := range s.params {
		out[i] = Parameter{sdb: s, paramIndex: i, typeIndex: p.TypeIndex}
	}
	return out
}

// ParameterByName resolves a parameter by its exact dotted-path name.
func (s *Sdb) ParameterByName(name string) (Parameter, error) {
	idx, ok := s.byName[name]
	if !ok {
		return Parameter{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Parameter{sdb: s, paramIndex: idx, typeIndex: s.params[idx].TypeIndex}, nil
}

// TypeInfo returns the type-descriptor handle at the given index.
func (s *Sdb) TypeInfo(idx int) (TypeInfo, error) {
	if idx < 0 || idx >= len(s.types) {
		return TypeInfo{}, ErrBadTypeIndex
	}
	return TypeInfo{sdb: s, typeIndex: idx}, nil
}
