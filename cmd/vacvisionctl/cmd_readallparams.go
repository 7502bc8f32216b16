// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vacvision-oss/go-vacvision/pkg/query"
)

// readAllParamsCmd is the struct for the read-all-params cmd required by
// kong command line parser.
type readAllParamsCmd struct {
	globalFlags
}

// Run executes when the read-all-params command is invoked. Per spec §6,
// output is a single JSON object keyed by parameter name, in declaration
// order.
func (r *readAllParamsCmd) Run(rc *runContext) error {
	ip, timeout, readTimeout, sdbPath, err := r.globalFlags.resolve()
	if err != nil {
		return err
	}

	s, err := loadOrDownloadSdb(ip, timeout, readTimeout, sdbPath)
	if err != nil {
		return err
	}
	c, err := connectWithTimeout(ip, timeout, readTimeout)
	if err != nil {
		return err
	}
	defer c.Close()

	b := query.NewBuilder(s)
	for _, p := range s.Parameters() {
		if err := b.Add(p.Name()); err != nil {
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

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range qs.Parameters() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Name())
		if err != nil {
			return err
		}
		val, err := values[i].MarshalJSON()
		if err != nil {
			return fmt.Errorf("vacvisionctl: marshal %s: %w", p.Name(), err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')

	fmt.Fprintln(rc.stdout, buf.String())
	return nil
}
