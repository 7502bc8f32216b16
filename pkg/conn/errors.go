// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package conn

import "errors"

// ErrConnect wraps any socket failure during Connect.
var ErrConnect = errors.New("conn: failed to connect to instrument")

// ErrDownloadCapExceeded is returned by DownloadSDB when the safety cap on
// chunk count (twice the estimated chunk count) is reached without the
// server signalling the last chunk.
var ErrDownloadCapExceeded = errors.New("conn: sdb download exceeded safety cap")
