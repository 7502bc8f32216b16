// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmdutil holds small kong-facing helpers shared by vacvisionctl's
// subcommands: a flag mapper for directory arguments and an interactive
// confirmation prompt for -w writes.
package cmdutil

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// IsInteractive reports whether f is attached to a terminal. ConfirmWrite
// uses this to decide whether to prompt at all.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ConfirmWrite prompts the user to confirm a parameter write before it is
// sent to the instrument. It reads a line from in rather than a password
// (there is no secret here, just a destructive action on live hardware),
// and treats a non-interactive stdin as an implicit "yes" so scripted runs
// piping -w flags don't block forever on a prompt nobody will answer.
func ConfirmWrite(in *os.File, out io.Writer, description string) (bool, error) {
	if !IsInteractive(in) {
		return true, nil
	}

	fmt.Fprintf(out, "About to write: %s\n", description)
	fmt.Fprint(out, "Proceed? [y/N]: ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("cmdutil: reading confirmation: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
