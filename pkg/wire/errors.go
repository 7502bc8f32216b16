// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrIO wraps any socket failure below the framing layer.
	ErrIO = errors.New("wire: i/o error")

	// ErrTimeout is returned when a read deadline elapses mid-frame.
	ErrTimeout = errors.New("wire: read timed out")

	// ErrBadMagic is returned when a frame's leading 4 bytes are not
	// 0xCCCC0001.
	ErrBadMagic = errors.New("wire: bad frame magic")

	// ErrBadLength is returned when a declared payload_len cannot be
	// satisfied by the bytes actually available.
	ErrBadLength = errors.New("wire: bad payload length")

	// ErrUnexpectedAck is returned when the "66" ack reply doesn't match
	// the expected byte pattern. Per spec this is logged, not fatal; it
	// is exposed here so callers can choose to log it themselves.
	ErrUnexpectedAck = errors.New("wire: unexpected 66 ack reply")

	// ErrTruncated is returned when a response body ends before a body
	// decoder has consumed everything it expects.
	ErrTruncated = errors.New("wire: response body truncated")

	// ErrBadMarker is returned when a parameter-read response item is
	// missing its leading 0x01 marker byte.
	ErrBadMarker = errors.New("wire: expected 0x01 marker byte")

	// ErrBadString is returned when a description field is not valid
	// Windows-1252.
	ErrBadString = errors.New("wire: string is not valid CP-1252")
)

// ErrBadStatus reports a non-zero status word in a response body.
type ErrBadStatus struct {
	Status uint16
}

func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("wire: bad status 0x%04x", e.Status)
}
