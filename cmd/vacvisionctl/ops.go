// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"
)

// opKind distinguishes a -r read from a -w write within an ordered op list.
type opKind int

const (
	opRead opKind = iota
	opWrite
)

// op is one -r/-w occurrence, in the order it appeared on the command line.
type op struct {
	kind  opKind
	name  string
	value string // set only for opWrite
}

// parseOps walks args looking for -r/--read and -w/--write occurrences and
// returns them in command-line order. kong's own []string flags for -r and
// -w are used for validation and --help text, but kong loses the relative
// order between two distinct flags once parsed into separate slices; spec
// §6 requires that order be preserved ("Read/write ordering preserves CLI
// argument order"), so this package re-walks the raw argv itself rather
// than trusting kong's parsed fields for execution order.
func parseOps(args []string) ([]op, error) {
	var ops []op
	for i := 0; i < len(args); i++ {
		a := args[i]

		switch {
		case a == "-r" || a == "--read":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires a parameter name", a)
			}
			ops = append(ops, op{kind: opRead, name: args[i]})

		case strings.HasPrefix(a, "-r="):
			ops = append(ops, op{kind: opRead, name: a[len("-r="):]})
		case strings.HasPrefix(a, "--read="):
			ops = append(ops, op{kind: opRead, name: a[len("--read="):]})

		case a == "-w" || a == "--write":
			i++
			if i >= len(args) {
				return nil, fmt.Errorf("%s requires name=value", a)
			}
			name, val, err := splitAssignment(args[i])
			if err != nil {
				return nil, err
			}
			ops = append(ops, op{kind: opWrite, name: name, value: val})

		case strings.HasPrefix(a, "-w="):
			name, val, err := splitAssignment(a[len("-w="):])
			if err != nil {
				return nil, err
			}
			ops = append(ops, op{kind: opWrite, name: name, value: val})
		case strings.HasPrefix(a, "--write="):
			name, val, err := splitAssignment(a[len("--write="):])
			if err != nil {
				return nil, err
			}
			ops = append(ops, op{kind: opWrite, name: name, value: val})
		}
	}
	return ops, nil
}

func splitAssignment(s string) (name, value string, err error) {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return "", "", fmt.Errorf("write %q must be name=value", s)
	}
	return s[:idx], s[idx+1:], nil
}

// opGroup is a maximal run of consecutive opRead entries (coalesced into
// one batched QuerySet read) or a single opWrite.
type opGroup struct {
	reads []string // non-empty for a read batch
	write *op      // non-nil for a single write
}

// coalesce groups consecutive reads into one batch per spec §6 ("Consecutive
// -r options are coalesced into one batched request"), leaving writes as
// individual groups so each is sent as its own request in its original
// position.
func coalesce(ops []op) []opGroup {
	var groups []opGroup
	i := 0
	for i < len(ops) {
		if ops[i].kind == opWrite {
			w := ops[i]
			groups = append(groups, opGroup{write: &w})
			i++
			continue
		}
		j := i
		var names []string
		for j < len(ops) && ops[j].kind == opRead {
			names = append(names, ops[j].name)
			j++
		}
		groups = append(groups, opGroup{reads: names})
		i = j
	}
	return groups
}
