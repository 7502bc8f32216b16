// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics defines the prometheus metrics exported while
// vacvisionctl's poll-pressure subcommand runs with --metrics-addr, and a
// thin helper to serve them. The query subcommand's --poll loop neither
// serves nor updates them.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ParameterValue holds the last numeric value seen for each polled
	// parameter, keyed by name. Non-numeric values (String, Struct,
	// Array, Matrix) are not exported; see pollPressureCmd.Run.
	ParameterValue = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vacvision_parameter_value",
			Help: "Last numeric value read for a polled parameter.",
		},
		[]string{"parameter"})

	// PollErrorsTotal counts failed poll ticks, regardless of cause.
	PollErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vacvision_poll_errors_total",
			Help: "Number of poll iterations that failed to complete.",
		})
)

// Server wraps the http.Server exposing /metrics so the CLI's poll loop
// can start and stop it around the polling lifetime.
type Server struct {
	http *http.Server
}

// Serve starts a background HTTP server on addr exporting the registered
// collectors. It does not block; call Shutdown to stop it.
func Serve(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	s := &Server{http: &http.Server{Addr: addr, Handler: mux}}

	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics: server error: %v", err)
		}
	}()
	log.Printf("metrics: serving on %s", addr)
	return s
}

// Shutdown gracefully stops the metrics server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("metrics: shutdown: %w", err)
	}
	return nil
}
