// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
)

// readItemMarker is the literal 0x0003 preceding every ReadItem/WriteItem
// on the wire (spec §4.C); its meaning is not documented further upstream.
const readItemMarker uint16 = 0x0003

// responseItemMarker is the single 0x01 byte preceding each value in a
// parameter-read response.
const responseItemMarker byte = 0x01

// ReadItem is one entry in a batched parameter-read request: the
// parameter's wire id and the number of bytes expected back for it.
type ReadItem struct {
	ID          uint32
	ExpectedLen uint32
}

// BuildParamReadRequest builds a batched parameter-read body (opcode
// 0x2e). is_poll must be set to true by the caller when framing this
// body, per spec §4.C.
func BuildParamReadRequest(items []ReadItem, sdbID uint32) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(OpParamRead))
	buf.WriteByte(0x00)
	binary.Write(&buf, binary.BigEndian, uint32(len(items)))
	for _, it := range items {
		binary.Write(&buf, binary.BigEndian, readItemMarker)
		binary.Write(&buf, binary.BigEndian, it.ID)
		binary.Write(&buf, binary.BigEndian, it.ExpectedLen)
	}
	binary.Write(&buf, binary.BigEndian, sdbID)
	return buf.Bytes()
}

// ParamReadResponse is the decoded reply to a batched parameter read:
// a status word, a millisecond timestamp, and the raw value bytes for
// each requested parameter, in request order.
type ParamReadResponse struct {
	Status      uint16
	TimestampMs uint32
	Items       [][]byte
}

// ParseParamReadResponse decodes a parameter-read response body, given the
// expected byte length of each requested item (in request order).
// Alignment is not applied here: each returned slice starts fresh at
// offset 0 of its own value, and pkg/value re-derives alignment from
// there.
func ParseParamReadResponse(body []byte, expectedLens []int) (ParamReadResponse, error) {
	if len(body) < 6 {
		return ParamReadResponse{}, ErrTruncated
	}
	resp := ParamReadResponse{
		Status:      binary.BigEndian.Uint16(body[0:2]),
		TimestampMs: binary.BigEndian.Uint32(body[2:6]),
		Items:       make([][]byte, 0, len(expectedLens)),
	}
	pos := 6
	for _, n := range expectedLens {
		if pos+1+n > len(body) {
			return ParamReadResponse{}, ErrTruncated
		}
		if body[pos] != responseItemMarker {
			return ParamReadResponse{}, ErrBadMarker
		}
		pos++
		resp.Items = append(resp.Items, body[pos:pos+n])
		pos += n
	}
	return resp, nil
}
