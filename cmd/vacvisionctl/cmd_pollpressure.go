// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vacvision-oss/go-vacvision/internal/metrics"
	"github.com/vacvision-oss/go-vacvision/pkg/query"
)

// pollPressureCmd is the struct for the poll-pressure cmd required by
// kong command line parser.
type pollPressureCmd struct {
	globalFlags
	Poll time.Duration `help:"Read interval." default:"1s"`
}

const pressureParam = ".Pressure"

// Run executes when the poll-pressure command is invoked.
func (p *pollPressureCmd) Run(rc *runContext) error {
	ip, timeout, readTimeout, sdbPath, err := p.globalFlags.resolve()
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

	var metricsSrv *metrics.Server
	if p.MetricsAddr != "" {
		metricsSrv = metrics.Serve(p.MetricsAddr)
	}

	guard := newInterruptGuard()
	defer guard.Close()

	ticker := time.NewTicker(p.Poll)
	defer ticker.Stop()

	for {
		b := query.NewBuilder(s)
		if err := b.Add(pressureParam); err != nil {
			return err
		}
		qs, err := b.Build()
		if err != nil {
			return err
		}

		frame, err := c.Query(qs.BuildRequest(), true)
		if err != nil {
			metrics.PollErrorsTotal.Inc()
			fmt.Fprintf(rc.stdout, "poll-pressure: %v\n", err)
		} else if values, err := qs.ParseResponse(frame.Body); err != nil {
			metrics.PollErrorsTotal.Inc()
			fmt.Fprintf(rc.stdout, "poll-pressure: %v\n", err)
		} else {
			fmt.Fprintf(rc.stdout, "%s: %s\n", pressureParam, values[0].String())
			if f, ok := values[0].AsFloat(); ok {
				metrics.ParameterValue.WithLabelValues(pressureParam).Set(float64(f))
			} else if i, ok := values[0].AsInt(); ok {
				metrics.ParameterValue.WithLabelValues(pressureParam).Set(float64(i))
			}
		}

		if guard.Stopped() {
			break
		}
		<-ticker.C
		if guard.Stopped() {
			break
		}
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsSrv.Shutdown(shutdownCtx)
	}
	return nil
}
