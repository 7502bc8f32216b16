// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"

	"golang.org/x/text/encoding/charmap"
)

// BuildVersionQuery builds the instrument version query body (opcode
// 0x11, no further request fields).
func BuildVersionQuery() []byte {
	return []byte{byte(OpVersionQuery)}
}

// VersionInfo is the decoded response to a version query.
type VersionInfo struct {
	Status      uint16
	SdbVersion  uint32
	Opaque      uint32
	Description string
}

// ParseVersionResponse decodes a version query response body.
func ParseVersionResponse(body []byte) (VersionInfo, error) {
	const minLen = 2 + 4 + 4
	if len(body) < minLen {
		return VersionInfo{}, ErrTruncated
	}
	v := VersionInfo{
		Status:     binary.BigEndian.Uint16(body[0:2]),
		SdbVersion: binary.BigEndian.Uint32(body[2:6]),
		Opaque:     binary.BigEndian.Uint32(body[6:10]),
	}
	raw := body[10:]
	if i := indexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	desc, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return VersionInfo{}, ErrBadString
	}
	v.Description = string(desc)
	return v, nil
}

func indexByte(b []byte, c byte) int {
	for i, x := range b {
		if x == c {
			return i
		}
	}
	return -1
}
