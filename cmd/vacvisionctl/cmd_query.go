// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/vacvision-oss/go-vacvision/internal/cmdutil"
	"github.com/vacvision-oss/go-vacvision/pkg/conn"
	"github.com/vacvision-oss/go-vacvision/pkg/query"
	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
	"github.com/vacvision-oss/go-vacvision/pkg/value"
	"github.com/vacvision-oss/go-vacvision/pkg/wire"
)

// queryCmd is the struct for the "query" cmd required by kong command
// line parser: the ad-hoc -r/-w/--poll mode from spec §6.
type queryCmd struct {
	globalFlags

	Read  []string      `short:"r" name:"read" help:"Read a parameter by name; repeatable, consecutive reads are batched."`
	Write []string      `short:"w" name:"write" help:"Write name=value; repeatable."`
	Poll  time.Duration `help:"Repeat the read/write set at this interval until interrupted."`
}

// Run executes when the query command is invoked.
func (q *queryCmd) Run(rc *runContext) error {
	ip, timeout, readTimeout, sdbPath, err := q.globalFlags.resolve()
	if err != nil {
		return err
	}

	ops, err := parseOps(os.Args[1:])
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return fmt.Errorf("vacvisionctl: query requires at least one -r or -w")
	}
	groups := coalesce(ops)

	s, err := loadOrDownloadSdb(ip, timeout, readTimeout, sdbPath)
	if err != nil {
		return err
	}

	c, err := connectWithTimeout(ip, timeout, readTimeout)
	if err != nil {
		return err
	}
	defer c.Close()

	runOnce := func() error {
		for _, g := range groups {
			if g.write != nil {
				if err := runWrite(rc, c, s, *g.write); err != nil {
					return err
				}
				continue
			}
			if err := runReadBatch(rc, c, s, g.reads); err != nil {
				return err
			}
		}
		return nil
	}

	if q.Poll <= 0 {
		return runOnce()
	}

	guard := newInterruptGuard()
	defer guard.Close()

	ticker := time.NewTicker(q.Poll)
	defer ticker.Stop()

	for {
		if err := runOnce(); err != nil {
			return err
		}
		if guard.Stopped() {
			return nil
		}
		<-ticker.C
		if guard.Stopped() {
			return nil
		}
	}
}

func runReadBatch(rc *runContext, c *conn.Connection, s *sdb.Sdb, names []string) error {
	b := query.NewBuilder(s)
	for _, name := range names {
		if err := b.Add(name); err != nil {
			return err
		}
	}
	qs, err := b.Build()
	if err != nil {
		return err
	}

	frame, err := c.Query(qs.BuildRequest(), true)
	if err != nil {
		return err
	}
	values, err := qs.ParseResponse(frame.Body)
	if err != nil {
		return err
	}

	for i, p := range qs.Parameters() {
		fmt.Fprintf(rc.stdout, "%s: %s\n", p.Name(), values[i].String())
	}
	return nil
}

func runWrite(rc *runContext, c *conn.Connection, s *sdb.Sdb, w op) error {
	p, err := s.ParameterByName(w.name)
	if err != nil {
		return err
	}
	if !p.AccessMode().Writable() {
		return fmt.Errorf("vacvisionctl: %s is not writable (access mode %s)", p.Name(), p.AccessMode())
	}

	v, err := value.FromString(w.value, p.TypeInfo())
	if err != nil {
		return fmt.Errorf("vacvisionctl: parsing %s=%s: %w", w.name, w.value, err)
	}
	encoded, err := value.Encode(v, p.TypeInfo())
	if err != nil {
		return err
	}

	ok, err := cmdutil.ConfirmWrite(rc.stdin, rc.stdout, fmt.Sprintf("%s = %s", w.name, w.value))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(rc.stdout, "skipped %s\n", w.name)
		return nil
	}

	body := wire.BuildParamWriteRequest([]wire.WriteItem{{ID: p.ID(), Data: encoded}}, s.ID())
	frame, err := c.Query(body, true)
	if err != nil {
		return err
	}
	ack, err := wire.ParseParamWriteResponse(frame.Body)
	if err != nil {
		return err
	}
	if ack.Status != 0 {
		return &wire.ErrBadStatus{Status: ack.Status}
	}
	fmt.Fprintf(rc.stdout, "%s <- %s\n", w.name, w.value)
	return nil
}
