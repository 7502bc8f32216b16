// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdb

import (
	"golang.org/x/text/encoding/charmap"
)

// sdbStr parses a length-prefixed string as it appears inline in the SDB
// record stream: a u16 byte count followed by that many raw bytes. Up to
// three trailing NUL bytes are stripped before the Windows-1252 decode.
// Parameter name lookups compare the decoded strings, not these bytes.
type sdbStr struct {
	raw []byte // the byte count's worth of bytes, trailing NULs stripped
}

func readSdbStr(body []byte, off int) (sdbStr, int, error) {
	if off+2 > len(body) {
		return sdbStr{}, 0, ErrTruncated
	}
	n := int(le16(body[off:]))
	off += 2
	if off+n > len(body) {
		return sdbStr{}, 0, ErrTruncated
	}
	raw := body[off : off+n]
	off += n

	stripped := raw
	for i := 0; i < 3 && len(stripped) > 0 && stripped[len(stripped)-1] == 0; i++ {
		stripped = stripped[:len(stripped)-1]
	}
	return sdbStr{raw: stripped}, off, nil
}

// String decodes the stripped bytes as Windows-1252 for display.
func (s sdbStr) String() (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(s.raw)
	if err != nil {
		return "", ErrBadString
	}
	return string(out), nil
}
