// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implements encode/decode of instrument parameter values against SDB
// type descriptors, including the protocol's 2-byte alignment rule and
// Windows-1252 string handling.
package value

import (
	"encoding/binary"
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"

	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
)

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindArray
	KindMatrix
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindMatrix:
		return "Matrix"
	case KindStruct:
		return "Struct"
	}
	return "<Unknown>"
}

// Field is one member of a Struct value, in wire declaration order.
type Field struct {
	Name  string
	Value Value
}

// Value is the closed sum type produced by decoding a parameter response
// and consumed when encoding one for a write. Exactly one of the
// accessors below is meaningful, selected by Kind.
type Value struct {
	kind    Kind
	boolV   bool
	intV    int64
	floatV  float32
	stringV string
	arrayV  []Value
	matrixV [][]Value
	structV []Field
}

func Bool(b bool) Value           { return Value{kind: KindBool, boolV: b} }
func Int(i int64) Value           { return Value{kind: KindInt, intV: i} }
func Float(f float32) Value       { return Value{kind: KindFloat, floatV: f} }
func String(s string) Value       { return Value{kind: KindString, stringV: s} }
func Array(vs []Value) Value      { return Value{kind: KindArray, arrayV: vs} }
func Matrix(vs [][]Value) Value   { return Value{kind: KindMatrix, matrixV: vs} }
func Struct(fs []Field) Value     { return Value{kind: KindStruct, structV: fs} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsBool() (bool, bool)         { return v.boolV, v.kind == KindBool }
func (v Value) AsInt() (int64, bool)         { return v.intV, v.kind == KindInt }
func (v Value) AsFloat() (float32, bool)     { return v.floatV, v.kind == KindFloat }
func (v Value) AsString() (string, bool)     { return v.stringV, v.kind == KindString }
func (v Value) AsArray() ([]Value, bool)     { return v.arrayV, v.kind == KindArray }
func (v Value) AsMatrix() ([][]Value, bool)  { return v.matrixV, v.kind == KindMatrix }
func (v Value) AsStruct() ([]Field, bool)    { return v.structV, v.kind == KindStruct }

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%v", v.boolV)
	case KindInt:
		return fmt.Sprintf("%d", v.intV)
	case KindFloat:
		return fmt.Sprintf("%v", v.floatV)
	case KindString:
		return fmt.Sprintf("%q", v.stringV)
	case KindArray:
		return fmt.Sprintf("Array%v", v.arrayV)
	case KindMatrix:
		return fmt.Sprintf("Matrix%v", v.matrixV)
	case KindStruct:
		return fmt.Sprintf("Struct%v", v.structV)
	}
	return "<invalid>"
}

// cursor tracks position within one parameter's response slice. Position
// is relative to the start of that slice, matching the alignment rule in
// spec §4.B: alignment resets at the start of each parameter's bytes, not
// across the whole response body.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) remaining() int { return len(c.data) - c.pos }

func (c *cursor) align2() {
	if c.pos&1 == 1 {
		c.pos++
	}
}

func (c *cursor) take(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, ErrTruncated
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Parse decodes exactly typeInfo.WireSize() bytes of data (the param's own
// byte slice) into a Value, per spec §4.B.
func Parse(data []byte, typeInfo sdb.TypeInfo) (Value, error) {
	c := &cursor{data: data}
	v, err := parseInto(c, typeInfo)
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func parseInto(c *cursor, t sdb.TypeInfo) (Value, error) {
	switch t.Kind() {
	case sdb.KindBool:
		b, err := c.take(1)
		if err != nil {
			return Value{}, err
		}
		return Bool(b[0] != 0), nil

	case sdb.KindByte:
		return parseIntLeaf(c, 1, t.WireSize(), false)

	case sdb.KindInt:
		return parseIntLeaf(c, 2, t.WireSize(), true)

	case sdb.KindWord, sdb.KindUint:
		return parseIntLeaf(c, 2, t.WireSize(), false)

	case sdb.KindDword, sdb.KindUdint, sdb.KindPointer:
		return parseIntLeaf(c, 4, t.WireSize(), false)

	case sdb.KindTime:
		return parseIntLeaf(c, 4, t.WireSize(), false)

	case sdb.KindReal:
		c.align2()
		b, err := c.take(4)
		if err != nil {
			return Value{}, err
		}
		return Float(math.Float32frombits(binary.BigEndian.Uint32(b))), nil

	case sdb.KindString:
		b, err := c.take(t.WireSize())
		if err != nil {
			return Value{}, err
		}
		raw := b
		if i := indexByte(raw, 0); i >= 0 {
			raw = raw[:i]
		}
		s, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return Value{}, ErrBadString
		}
		return String(string(s)), nil

	case sdb.KindArray:
		elem, dims, ok := t.ArrayInfo()
		if !ok {
			return Value{}, fmt.Errorf("value: array type_info has no array payload")
		}
		if dims[1] == 0 {
			out := make([]Value, dims[0])
			for i := range out {
				v, err := parseInto(c, elem)
				if err != nil {
					return Value{}, err
				}
				out[i] = v
			}
			return Array(out), nil
		}
		outer := make([][]Value, dims[0])
		for i := range outer {
			inner := make([]Value, dims[1])
			for j := range inner {
				v, err := parseInto(c, elem)
				if err != nil {
					return Value{}, err
				}
				inner[j] = v
			}
			outer[i] = inner
		}
		return Matrix(outer), nil

	case sdb.KindStruct:
		fields, ok := t.StructInfo()
		if !ok {
			return Value{}, fmt.Errorf("value: struct type_info has no struct payload")
		}
		out := make([]Field, len(fields))
		for i, f := range fields {
			v, err := parseInto(c, f.Type)
			if err != nil {
				return Value{}, err
			}
			out[i] = Field{Name: f.Name, Value: v}
		}
		return Struct(out), nil
	}
	return Value{}, ErrUnsupportedKind
}

// parseIntLeaf reads a big-endian integer leaf of byteWidth bytes, applying
// the 2-byte alignment rule when byteWidth > 1, and widens it into an
// Int64. signed selects i16 (Int) decoding over the unsigned widths used
// by every other integer kind. expectedSize is the descriptor's wire_size,
// checked for consistency with the original's debug assertion.
func parseIntLeaf(c *cursor, byteWidth int, expectedSize int, signed bool) (Value, error) {
	if byteWidth > 1 {
		c.align2()
	}
	if expectedSize != byteWidth {
		return Value{}, fmt.Errorf("value: type size %d and wire_size %d are unequal", byteWidth, expectedSize)
	}
	b, err := c.take(byteWidth)
	if err != nil {
		return Value{}, err
	}
	if signed {
		return Int(int64(int16(binary.BigEndian.Uint16(b)))), nil
	}
	var n uint64
	switch byteWidth {
	case 1:
		n = uint64(b[0])
	case 2:
		n = uint64(binary.BigEndian.Uint16(b))
	case 4:
		n = uint64(binary.BigEndian.Uint32(b))
	}
	return Int(int64(n)), nil
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
