// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/vacvision-oss/go-vacvision/pkg/wire"
)

// testCmd is the struct for the test cmd required by kong command line
// parser: a minimal connectivity check.
type testCmd struct {
	globalFlags
}

// Run executes when the test command is invoked.
func (t *testCmd) Run(rc *runContext) error {
	ip, timeout, readTimeout, _, err := t.globalFlags.resolve()
	if err != nil {
		return err
	}

	c, err := connectWithTimeout(ip, timeout, readTimeout)
	if err != nil {
		return err
	}
	defer c.Close()

	frame, err := c.Query(wire.BuildVersionQuery(), false)
	if err != nil {
		return err
	}
	info, err := wire.ParseVersionResponse(frame.Body)
	if err != nil {
		return err
	}

	fmt.Fprintf(rc.stdout, "connected to %s: sdb_version=%d %q\n", ip, info.SdbVersion, info.Description)
	return nil
}
