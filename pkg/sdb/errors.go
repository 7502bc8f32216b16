// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdb

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when the blob ends before a record's
	// declared length has been consumed.
	ErrTruncated = errors.New("sdb: blob truncated")

	// ErrBadTypeIndex is returned when an Array, Struct member, or Pointer
	// references a type index outside the descriptor table.
	ErrBadTypeIndex = errors.New("sdb: type index out of range")

	// ErrBadString is returned when an SdbStr cannot be decoded as CP-1252.
	ErrBadString = errors.New("sdb: string is not valid CP-1252")

	// ErrNotFound is returned by ParameterByName when no parameter
	// matches the requested name exactly.
	ErrNotFound = errors.New("sdb: parameter not found")
)

// ErrUnknownKind is returned when a TypeDescriptor carries a kind tag this
// codec does not recognize.
type ErrUnknownKind struct {
	Kind uint32
}

func (e *ErrUnknownKind) Error() string {
	return fmt.Sprintf("sdb: unknown type kind 0x%x", e.Kind)
}

// ErrUnknownAccessMode is returned when a ParameterRecord carries an access
// mode other than Read (0x72) or ReadWrite (0x62).
//
// Per the protocol's observed quirks, 0xFF turns up in captures with
// unknown meaning and is treated as unknown/read-only by default rather
// than rejected outright; see AccessMode.Writable.
type ErrUnknownAccessMode struct {
	Mode uint16
}

func (e *ErrUnknownAccessMode) Error() string {
	return fmt.Sprintf("sdb: unknown access mode 0x%x", e.Mode)
}
