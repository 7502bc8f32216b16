// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
)

// downloadSdbCommandName is the literal "DOWNLOAD.SDB" name, NUL-padded to
// 14 bytes, shared by the SDB version query and the begin-download
// command (spec §4.C: `0x34 00 00 0e "DOWNLOAD.SDB" 00 00`).
var downloadSdbCommandName = append([]byte("DOWNLOAD.SDB"), 0x00, 0x00)

func buildNamedSdbCommand(op Opcode) []byte {
	buf := make([]byte, 0, 4+len(downloadSdbCommandName))
	buf = append(buf, byte(op), 0x00, 0x00, byte(len(downloadSdbCommandName)))
	buf = append(buf, downloadSdbCommandName...)
	return buf
}

// BuildSdbVersionQuery builds the SDB version query body (opcode 0x34).
func BuildSdbVersionQuery() []byte { return buildNamedSdbCommand(OpSdbVersionQuery) }

// BuildSdbDownloadBegin builds the begin-SDB-download body (opcode 0x31);
// the server responds with the first chunk.
func BuildSdbDownloadBegin() []byte { return buildNamedSdbCommand(OpSdbDownloadBegin) }

// BuildSdbDownloadContinue builds the continue-SDB-download body (opcode
// 0x32); the server responds with the next chunk.
func BuildSdbDownloadContinue() []byte { return []byte{byte(OpSdbDownloadContinue)} }

// SdbVersionInfo is the decoded response to an SDB version query.
type SdbVersionInfo struct {
	Status  uint16
	SdbSize uint32
	Opaque  [16]byte
}

// ParseSdbVersionResponse decodes an SDB version query response body.
func ParseSdbVersionResponse(body []byte) (SdbVersionInfo, error) {
	const wantLen = 2 + 4 + 16
	if len(body) < wantLen {
		return SdbVersionInfo{}, ErrTruncated
	}
	var info SdbVersionInfo
	info.Status = binary.BigEndian.Uint16(body[0:2])
	info.SdbSize = binary.BigEndian.Uint32(body[2:6])
	copy(info.Opaque[:], body[6:22])
	return info, nil
}

// SdbChunk is one chunk of a streamed SDB download.
type SdbChunk struct {
	Continues bool
	Data      []byte
}

// ParseSdbChunkResponse decodes a begin- or continue-download response
// body: `continues` (u32; 0 -> last, 1 -> more, other -> error), chunk
// length (u16), that many SDB bytes.
func ParseSdbChunkResponse(body []byte) (SdbChunk, error) {
	if len(body) < 6 {
		return SdbChunk{}, ErrTruncated
	}
	continuesWord := binary.BigEndian.Uint32(body[0:4])
	chunkLen := int(binary.BigEndian.Uint16(body[4:6]))
	if len(body) < 6+chunkLen {
		return SdbChunk{}, ErrTruncated
	}
	switch continuesWord {
	case 0:
		return SdbChunk{Continues: false, Data: body[6 : 6+chunkLen]}, nil
	case 1:
		return SdbChunk{Continues: true, Data: body[6 : 6+chunkLen]}, nil
	default:
		return SdbChunk{}, fmt.Errorf("wire: bad continues value 0x%x", continuesWord)
	}
}
