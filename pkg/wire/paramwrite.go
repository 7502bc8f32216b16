// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/binary"
)

// WriteItem is one entry in a batched parameter-write request: the
// parameter's wire id and the encoded value bytes to send for it.
type WriteItem struct {
	ID   uint32
	Data []byte
}

// BuildParamWriteRequest builds a batched parameter-write body (opcode
// 0x3c).
func BuildParamWriteRequest(items []WriteItem, sdbID uint32) []byte {
	var buf bytes.Buffer
	buf.WriteByte(byte(OpParamWrite))
	buf.WriteByte(0x00)
	binary.Write(&buf, binary.BigEndian, uint32(len(items)))
	for _, it := range items {
		binary.Write(&buf, binary.BigEndian, readItemMarker)
		binary.Write(&buf, binary.BigEndian, it.ID)
		binary.Write(&buf, binary.BigEndian, uint32(len(it.Data)))
		buf.Write(it.Data)
	}
	binary.Write(&buf, binary.BigEndian, sdbID)
	return buf.Bytes()
}

// ParamWriteAck is the opaque acknowledgement a parameter write returns;
// only the status byte/word is interpreted.
type ParamWriteAck struct {
	Status uint16
}

// ParseParamWriteResponse decodes the status word from a parameter-write
// acknowledgement; the remainder of the body is treated as opaque per
// spec §4.C.
func ParseParamWriteResponse(body []byte) (ParamWriteAck, error) {
	if len(body) < 2 {
		return ParamWriteAck{}, ErrTruncated
	}
	return ParamWriteAck{Status: binary.BigEndian.Uint16(body[0:2])}, nil
}
