// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import "errors"

// ErrEmpty is returned by Build when no parameters were added.
var ErrEmpty = errors.New("query: no parameters added")
