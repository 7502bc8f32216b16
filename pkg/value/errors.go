// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package value

import "errors"

var (
	// ErrTruncated is returned when fewer bytes remain than a type's
	// wire_size requires.
	ErrTruncated = errors.New("value: response truncated")

	// ErrOutOfRange is returned by Encode when an integer does not fit
	// the destination type's width.
	ErrOutOfRange = errors.New("value: integer out of range for type")

	// ErrStringTooLong is returned by Encode when a string's CP-1252
	// encoding is longer than the destination's wire_size.
	ErrStringTooLong = errors.New("value: string too long for type")

	// ErrUnsupportedKind is returned by Encode for kinds the write path
	// does not support (Float, Time, Array, Struct, Pointer), and by Parse for
	// a TypeInfo kind outside the documented set.
	ErrUnsupportedKind = errors.New("value: unsupported kind for this operation")

	// ErrBadString is returned when bytes cannot be interpreted as
	// Windows-1252, or a Go string contains characters outside it.
	ErrBadString = errors.New("value: string is not valid CP-1252")
)
