// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
)

// fixture builds a tiny Sdb whose types, in order, are: Word(2), Byte(1),
// String(16). Tests pull TypeInfo handles out of it via TypeInfo(idx).
func fixture(t *testing.T) *sdb.Sdb {
	t.Helper()

	str := func(buf *bytes.Buffer, s string) {
		b := []byte(s)
		binary.Write(buf, binary.LittleEndian, uint16(len(b)))
		buf.Write(b)
	}
	record := func(tag uint32, body []byte) []byte {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, tag)
		binary.Write(&buf, binary.LittleEndian, uint32(8+len(body)))
		buf.Write(body)
		return buf.Bytes()
	}

	var out bytes.Buffer
	var hdr bytes.Buffer
	binary.Write(&hdr, binary.LittleEndian, uint32(1))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(3))
	hdr.Write(make([]byte, 4))
	out.Write(record(0x01, hdr.Bytes()))

	addType := func(kind sdb.TypeKind, wireSize uint32, desc string) {
		var b bytes.Buffer
		binary.Write(&b, binary.LittleEndian, uint32(kind))
		binary.Write(&b, binary.LittleEndian, wireSize)
		str(&b, desc)
		out.Write(record(0x04, b.Bytes()))
	}
	addType(sdb.KindWord, 2, "word")
	addType(sdb.KindByte, 1, "byte")
	addType(sdb.KindString, 16, "string")

	out.Write(record(0x03, make([]byte, 8)))
	binary.Write(&out, binary.LittleEndian, uint32(0)) // no parameters
	out.Write(record(0x06, nil))

	s, err := sdb.FromBytes(out.Bytes())
	require.NoError(t, err)
	return s
}

func mustType(t *testing.T, s *sdb.Sdb, idx int) sdb.TypeInfo {
	t.Helper()
	ti, err := s.TypeInfo(idx)
	require.NoError(t, err)
	return ti
}

// TestAlignmentRule is property 4: a Byte then a Word starting at offset 1
// pads one byte before the Word, landing it at offset 2.
func TestAlignmentRule(t *testing.T) {
	s := fixture(t)
	wordT := mustType(t, s, 0)
	byteT := mustType(t, s, 1)

	data := []byte{0xAA, 0x00, 0xFF, 0x12, 0x34, 0x00}

	c := &cursor{data: data}
	bv, err := parseInto(c, byteT)
	require.NoError(t, err)
	bi, _ := bv.AsInt()
	assert.Equal(t, int64(0xAA), bi)
	assert.Equal(t, 1, c.pos)

	wv, err := parseInto(c, wordT)
	require.NoError(t, err)
	wi, _ := wv.AsInt()
	assert.Equal(t, int64(0xFF12), wi)
	assert.Equal(t, 4, c.pos)
}

// TestAlignmentRule_NoReAlign is the first half of property 4: two u16s at
// offsets 0 and 2 both decode without any padding.
func TestAlignmentRule_NoReAlign(t *testing.T) {
	s := fixture(t)
	wordT := mustType(t, s, 0)
	data := []byte{0x00, 0xFF, 0x12, 0x34}

	c := &cursor{data: data}
	v1, err := parseInto(c, wordT)
	require.NoError(t, err)
	i1, _ := v1.AsInt()
	assert.Equal(t, int64(0x00FF), i1)

	v2, err := parseInto(c, wordT)
	require.NoError(t, err)
	i2, _ := v2.AsInt()
	assert.Equal(t, int64(0x1234), i2)
}

// TestEncodeString_S2 is scenario S2.
func TestEncodeString_S2(t *testing.T) {
	s := fixture(t)
	strT := mustType(t, s, 2)

	b, err := Encode(String("User1234"), strT)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x55, 0x73, 0x65, 0x72, 0x31, 0x32, 0x33, 0x34,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}, b)
}

// TestScalarRoundTrip is property 2, restricted to scalar kinds.
func TestScalarRoundTrip(t *testing.T) {
	s := fixture(t)
	wordT := mustType(t, s, 0)
	byteT := mustType(t, s, 1)

	for _, tc := range []struct {
		t sdb.TypeInfo
		v Value
	}{
		{wordT, Int(0x1234)},
		{byteT, Int(0x42)},
	} {
		enc, err := Encode(tc.v, tc.t)
		require.NoError(t, err)
		dec, err := Parse(enc, tc.t)
		require.NoError(t, err)
		got, _ := dec.AsInt()
		want, _ := tc.v.AsInt()
		assert.Equal(t, want, got)
	}
}

// TestStringRoundTrip covers property 2's String clause: decoding a
// shorter-than-width string strips the NUL padding.
func TestStringRoundTrip(t *testing.T) {
	s := fixture(t)
	strT := mustType(t, s, 2)

	enc, err := Encode(String("hi"), strT)
	require.NoError(t, err)
	require.Len(t, enc, 16)

	dec, err := Parse(enc, strT)
	require.NoError(t, err)
	got, _ := dec.AsString()
	assert.Equal(t, "hi", got)
}

func TestEncode_OutOfRange(t *testing.T) {
	s := fixture(t)
	byteT := mustType(t, s, 1)
	_, err := Encode(Int(256), byteT)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEncode_StringTooLong(t *testing.T) {
	s := fixture(t)
	strT := mustType(t, s, 2)
	_, err := Encode(String("this string is far too long to fit"), strT)
	assert.ErrorIs(t, err, ErrStringTooLong)
}

// TestFloatDecode mirrors scenario S4's raw float bytes (pi, big-endian,
// IEEE-754) to confirm Real decoding. The value starts at offset 0, so no
// alignment padding is involved.
func TestFloatDecode(t *testing.T) {
	data := []byte{0x40, 0x49, 0x0F, 0xDB}
	s := fixture(t)
	// Build a throwaway Real TypeInfo via a second fixture since the base
	// fixture doesn't carry one.
	_ = s
	realSdb := realFixture(t)
	realT := mustType(t, realSdb, 0)

	v, err := Parse(data, realT)
	require.NoError(t, err)
	f, ok := v.AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 3.1415927, float64(f), 1e-6)
}

func realFixture(t *testing.T) *sdb.Sdb {
	t.Helper()
	str := func(buf *bytes.Buffer, s string) {
		b := []byte(s)
		binary.Write(buf, binary.LittleEndian, uint16(len(b)))
		buf.Write(b)
	}
	record := func(tag uint32, body []byte) []byte {
		var buf bytes.Buffer
		binary.Write(&buf, binary.LittleEndian, tag)
		binary.Write(&buf, binary.LittleEndian, uint32(8+len(body)))
		buf.Write(body)
		return buf.Bytes()
	}
	var out bytes.Buffer
	var hdr bytes.Buffer
	binary.Write(&hdr, binary.LittleEndian, uint32(1))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(1))
	hdr.Write(make([]byte, 4))
	out.Write(record(0x01, hdr.Bytes()))

	var rt bytes.Buffer
	binary.Write(&rt, binary.LittleEndian, uint32(sdb.KindReal))
	binary.Write(&rt, binary.LittleEndian, uint32(4))
	str(&rt, "pressure")
	out.Write(record(0x04, rt.Bytes()))

	out.Write(record(0x03, make([]byte, 8)))
	binary.Write(&out, binary.LittleEndian, uint32(0))
	out.Write(record(0x06, nil))

	s, err := sdb.FromBytes(out.Bytes())
	require.NoError(t, err)
	return s
}
