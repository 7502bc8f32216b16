// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

// Opcode identifies the request/response body format carried inside a CC
// frame (spec §4.C). It is the first byte of every body except the "66"
// ack, which is a separate out-of-band exchange.
type Opcode byte

const (
	OpVersionQuery        Opcode = 0x11
	OpSdbVersionQuery     Opcode = 0x34
	OpSdbDownloadBegin    Opcode = 0x31
	OpSdbDownloadContinue Opcode = 0x32
	OpParamRead           Opcode = 0x2e
	OpParamWrite          Opcode = 0x3c
)

func (o Opcode) String() string {
	switch o {
	case OpVersionQuery:
		return "VersionQuery"
	case OpSdbVersionQuery:
		return "SdbVersionQuery"
	case OpSdbDownloadBegin:
		return "SdbDownloadBegin"
	case OpSdbDownloadContinue:
		return "SdbDownloadContinue"
	case OpParamRead:
		return "ParamRead"
	case OpParamWrite:
		return "ParamWrite"
	}
	return "<Unknown>"
}
