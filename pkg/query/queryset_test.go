// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
)

func buildFixtureSdb(t *testing.T) *sdb.Sdb {
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
	binary.Write(&hdr, binary.LittleEndian, uint32(0x00025334))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(0))
	binary.Write(&hdr, binary.LittleEndian, uint32(2))
	hdr.Write(make([]byte, 4))
	out.Write(record(0x01, hdr.Bytes()))

	addType := func(kind sdb.TypeKind, wireSize uint32, desc string) {
		var b bytes.Buffer
		binary.Write(&b, binary.LittleEndian, uint32(kind))
		binary.Write(&b, binary.LittleEndian, wireSize)
		str(&b, desc)
		out.Write(record(0x04, b.Bytes()))
	}
	addType(sdb.KindWord, 2, "pressure raw")
	addType(sdb.KindDword, 4, "total count")

	out.Write(record(0x03, make([]byte, 8)))
	binary.Write(&out, binary.LittleEndian, uint32(2))

	addParam := func(typeIdx int, id uint32, access sdb.AccessMode, name string) {
		var p bytes.Buffer
		binary.Write(&p, binary.LittleEndian, uint32(typeIdx))
		binary.Write(&p, binary.LittleEndian, uint16(0))
		binary.Write(&p, binary.LittleEndian, uint16(0))
		binary.Write(&p, binary.LittleEndian, uint16(access))
		binary.Write(&p, binary.LittleEndian, uint16(0x0003))
		binary.Write(&p, binary.LittleEndian, id)
		str(&p, name)
		out.Write(record(0x05, p.Bytes()))
	}
	addParam(0, 0x1001, sdb.AccessRead, ".Pressure")
	addParam(1, 0x1002, sdb.AccessReadWrite, ".Count")

	out.Write(record(0x06, nil))

	s, err := sdb.FromBytes(out.Bytes())
	require.NoError(t, err)
	return s
}

func TestQuerySet_BuildRequest(t *testing.T) {
	s := buildFixtureSdb(t)
	b := NewBuilder(s)
	require.NoError(t, b.Add(".Pressure"))
	require.NoError(t, b.Add(".Count"))

	qs, err := b.Build()
	require.NoError(t, err)

	req := qs.BuildRequest()
	assert.Equal(t, byte(0x2e), req[0])
	count := binary.BigEndian.Uint32(req[2:6])
	assert.Equal(t, uint32(2), count)
}

// TestQuerySet_Correspondence is property 5: the i-th Value corresponds
// to the i-th Parameter passed to the builder.
func TestQuerySet_Correspondence(t *testing.T) {
	s := buildFixtureSdb(t)
	b := NewBuilder(s)
	require.NoError(t, b.Add(".Count"))
	require.NoError(t, b.Add(".Pressure"))
	qs, err := b.Build()
	require.NoError(t, err)

	body := []byte{
		0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x01, 0x00, 0x00, 0x00, 0x2A, // .Count: dword = 42
		0x01, 0x00, 0x64, // .Pressure: word = 100
	}

	values, err := qs.ParseResponse(body)
	require.NoError(t, err)
	require.Len(t, values, 2)

	countVal, ok := values[0].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(42), countVal)

	pressureVal, ok := values[1].AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(100), pressureVal)
}

func TestBuilder_EmptyFails(t *testing.T) {
	s := buildFixtureSdb(t)
	b := NewBuilder(s)
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBuilder_UnknownParameter(t *testing.T) {
	s := buildFixtureSdb(t)
	b := NewBuilder(s)
	err := b.Add(".DoesNotExist")
	assert.ErrorIs(t, err, sdb.ErrNotFound)
}
