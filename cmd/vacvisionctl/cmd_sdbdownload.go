// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
)

// sdbDownloadCmd is the struct for the sdb-download cmd required by kong
// command line parser.
type sdbDownloadCmd struct {
	globalFlags
	Out string `arg:"" optional:"" help:"Output path; defaults to --sdb or the configured cache path."`
}

// Run executes when the sdb-download command is invoked.
func (d *sdbDownloadCmd) Run(rc *runContext) error {
	ip, timeout, readTimeout, sdbPath, err := d.globalFlags.resolve()
	if err != nil {
		return err
	}
	out := d.Out
	if out == "" {
		out = sdbPath
	}

	c, err := connectWithTimeout(ip, timeout, readTimeout)
	if err != nil {
		return err
	}
	defer c.Close()

	var buf bytes.Buffer
	if err := c.DownloadSDB(&buf); err != nil {
		return fmt.Errorf("vacvisionctl: download sdb: %w", err)
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("vacvisionctl: write %s: %w", out, err)
	}

	fmt.Fprintf(rc.stdout, "wrote %d bytes to %s\n", buf.Len(), out)
	return nil
}
