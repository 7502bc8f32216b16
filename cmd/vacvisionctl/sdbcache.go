// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/vacvision-oss/go-vacvision/pkg/conn"
	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
)

// loadOrDownloadSdb reads sdbPath if it exists; otherwise it connects to
// ip, runs DownloadSDB, persists the blob to sdbPath (per spec §6, "the
// blob streamed down by DOWNLOAD.SDB is persisted verbatim"), and parses
// the result.
func loadOrDownloadSdb(ip string, timeout, readTimeout time.Duration, sdbPath string) (*sdb.Sdb, error) {
	if blob, err := os.ReadFile(sdbPath); err == nil {
		return sdb.FromBytes(blob)
	}

	c, err := connectWithTimeout(ip, timeout, readTimeout)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := c.DownloadSDB(&buf); err != nil {
		return nil, fmt.Errorf("vacvisionctl: download sdb: %w", err)
	}

	if err := os.WriteFile(sdbPath, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("vacvisionctl: cache sdb at %s: %w", sdbPath, err)
	}

	return sdb.FromBytes(buf.Bytes())
}

func connectWithTimeout(ip string, timeout, readTimeout time.Duration) (*conn.Connection, error) {
	if ip == "" {
		return nil, fmt.Errorf("vacvisionctl: --ip is required")
	}
	var opts []conn.Option
	if timeout > 0 {
		opts = append(opts, conn.WithConnectTimeout(timeout))
	}
	if readTimeout > 0 {
		opts = append(opts, conn.WithReadTimeout(readTimeout))
	}
	return conn.Connect(ip, opts...)
}
