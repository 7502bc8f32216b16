// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdb

import "encoding/binary"

// le16/le32 read little-endian integers out of a byte slice at offset 0.
// All multi-byte integers in the SDB blob are little-endian; this is the
// opposite of the big-endian CC wire frames in pkg/wire, and is
// deliberate (see spec §4.C).
func le16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func le32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
