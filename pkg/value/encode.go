// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"

	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
)

// Encode produces exactly typeInfo.WireSize() bytes for v, big-endian and
// lossless. Float and compound-type encoding are explicit non-goals of the
// write path; only scalars and strings round-trip for writes (spec §4.B).
func Encode(v Value, t sdb.TypeInfo) ([]byte, error) {
	size := t.WireSize()
	switch t.Kind() {
	case sdb.KindBool:
		b, ok := v.AsBool()
		if !ok {
			return nil, fmt.Errorf("%w: Bool type needs a Bool value", ErrUnsupportedKind)
		}
		if b {
			return []byte{1}, nil
		}
		return []byte{0}, nil

	case sdb.KindByte:
		return encodeUint(v, size, 8)
	case sdb.KindInt:
		return encodeInt(v, size, 16)
	case sdb.KindWord, sdb.KindUint:
		return encodeUint(v, size, 16)
	case sdb.KindDword, sdb.KindUdint:
		return encodeUint(v, size, 32)

	case sdb.KindString:
		s, ok := v.AsString()
		if !ok {
			return nil, fmt.Errorf("%w: String type needs a String value", ErrUnsupportedKind)
		}
		enc, err := charmap.Windows1252.NewEncoder().Bytes([]byte(s))
		if err != nil {
			return nil, ErrBadString
		}
		if len(enc) > size {
			return nil, fmt.Errorf("%w: %d bytes > wire_size %d", ErrStringTooLong, len(enc), size)
		}
		out := make([]byte, size)
		copy(out, enc)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, t.Kind())
	}
}

func encodeUint(v Value, size, bits int) ([]byte, error) {
	i, ok := v.AsInt()
	if !ok {
		return nil, fmt.Errorf("%w: expected an Int value", ErrUnsupportedKind)
	}
	if i < 0 || (bits < 64 && uint64(i) >= uint64(1)<<uint(bits)) {
		return nil, fmt.Errorf("%w: %d does not fit in u%d", ErrOutOfRange, i, bits)
	}
	out := make([]byte, size)
	switch bits {
	case 8:
		out[0] = byte(i)
	case 16:
		binary.BigEndian.PutUint16(out, uint16(i))
	case 32:
		binary.BigEndian.PutUint32(out, uint32(i))
	}
	return out, nil
}

func encodeInt(v Value, size, bits int) ([]byte, error) {
	i, ok := v.AsInt()
	if !ok {
		return nil, fmt.Errorf("%w: expected an Int value", ErrUnsupportedKind)
	}
	lo := -(int64(1) << uint(bits-1))
	hi := int64(1)<<uint(bits-1) - 1
	if i < lo || i > hi {
		return nil, fmt.Errorf("%w: %d does not fit in i%d", ErrOutOfRange, i, bits)
	}
	out := make([]byte, size)
	switch bits {
	case 16:
		binary.BigEndian.PutUint16(out, uint16(int16(i)))
	}
	return out, nil
}

// FromString parses text into a Value whose Kind matches typeInfo.Kind(),
// then trial-encodes it to confirm the value actually fits the type. This
// is a precondition every write path must run before sending bytes.
func FromString(text string, t sdb.TypeInfo) (Value, error) {
	var v Value
	switch t.Kind() {
	case sdb.KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return Value{}, fmt.Errorf("value: %q is not a bool: %w", text, err)
		}
		v = Bool(b)

	case sdb.KindString:
		v = String(text)

	case sdb.KindByte, sdb.KindInt, sdb.KindWord, sdb.KindUint, sdb.KindDword, sdb.KindUdint, sdb.KindTime:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("value: %q is not an integer: %w", text, err)
		}
		v = Int(n)

	default:
		return Value{}, fmt.Errorf("%w: cannot parse a %s value from text", ErrUnsupportedKind, t.Kind())
	}

	if _, err := Encode(v, t); err != nil {
		return Value{}, err
	}
	return v, nil
}
