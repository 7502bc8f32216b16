// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
)

// sdbPrintCmd is the struct for the sdb-print cmd required by kong
// command line parser.
type sdbPrintCmd struct {
	globalFlags
	In   string `arg:"" optional:"" help:"Path to a downloaded SDB file; defaults to --sdb or the configured cache path."`
	Dump bool   `help:"Dump the full parsed catalog, including type descriptors, instead of a parameter summary."`
}

// Run executes when the sdb-print command is invoked.
func (s *sdbPrintCmd) Run(rc *runContext) error {
	_, _, _, sdbPath, err := s.globalFlags.resolve()
	if err != nil {
		return err
	}
	in := s.In
	if in == "" {
		in = sdbPath
	}

	blob, err := os.ReadFile(in)
	if err != nil {
		return fmt.Errorf("vacvisionctl: read %s: %w", in, err)
	}
	catalog, err := sdb.FromBytes(blob)
	if err != nil {
		return err
	}

	if s.Dump {
		spew.Fdump(rc.stdout, catalog)
		return nil
	}

	for _, p := range catalog.Parameters() {
		fmt.Fprintf(rc.stdout, "%-40s id=0x%08x access=%-10s kind=%-8s wire_size=%d\n",
			p.Name(), p.ID(), p.AccessMode(), p.TypeInfo().Kind(), p.TypeInfo().WireSize())
	}
	return nil
}
