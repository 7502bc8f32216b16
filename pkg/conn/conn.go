// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implements Connection: ownership of the TCP socket to an instrument,
// one request/response round trip per call including the mandatory "66"
// acknowledgement, and the streaming SDB download. See spec §4.D.
package conn

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strconv"
	"time"

	"github.com/vacvision-oss/go-vacvision/pkg/wire"
)

const (
	// DefaultConnectTimeout is the connect timeout spec §4.D mandates.
	DefaultConnectTimeout = 1 * time.Second
	// DefaultReadTimeout is the read timeout spec §4.D mandates; it is
	// applied as a deadline on reading each response frame and, re-armed,
	// on reading the "66" ack reply.
	DefaultReadTimeout = 2 * time.Second

	instrumentPort = 1202
)

// Option configures a Connection at construction time, mirroring the
// SessionOpt/ControlSessionOpt functional-options pattern.
type Option func(*Connection)

// WithConnectTimeout overrides the default 1s connect timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Connection) { c.connectTimeout = d }
}

// WithReadTimeout overrides the default 2s read timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Connection) { c.readTimeout = d }
}

// Connection owns one TCP socket to an instrument. A single in-flight
// exchange is enforced by construction: callers never interleave Query
// calls on the same Connection (spec §4.D, §5).
type Connection struct {
	rw             io.ReadWriteCloser
	connectTimeout time.Duration
	readTimeout    time.Duration
}

// Connect opens a TCP connection to ip:1202.
func Connect(ip string, opts ...Option) (*Connection, error) {
	c := &Connection{
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	addr := net.JoinHostPort(ip, strconv.Itoa(instrumentPort))
	nc, err := net.DialTimeout("tcp", addr, c.connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	c.rw = nc
	log.Printf("conn: connected to %s", addr)
	return c, nil
}

// newForTest builds a Connection around an arbitrary ReadWriteCloser,
// bypassing the TCP dial, for use against a fake server in tests.
func newForTest(rw io.ReadWriteCloser, opts ...Option) *Connection {
	c := &Connection{
		rw:             rw,
		connectTimeout: DefaultConnectTimeout,
		readTimeout:    DefaultReadTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases the underlying socket.
func (c *Connection) Close() error { return c.rw.Close() }

func (c *Connection) setReadDeadline() {
	if nc, ok := c.rw.(net.Conn); ok {
		_ = nc.SetReadDeadline(time.Now().Add(c.readTimeout))
	}
}

// Query writes a framed request and reads the framed response, then
// performs the "66" handshake. The read timeout bounds reading the whole
// response frame and is re-armed for the ack reply.
func (c *Connection) Query(body []byte, isPoll bool) (*wire.Frame, error) {
	raw := wire.Encode(body, isPoll)
	if _, err := c.rw.Write(raw); err != nil {
		return nil, fmt.Errorf("conn: write request: %w", err)
	}

	c.setReadDeadline()
	frame, err := wire.ReadFrame(c.rw)
	if err != nil {
		return nil, fmt.Errorf("conn: read response: %w", err)
	}
	if len(body) > 0 {
		log.Printf("conn: exchange opcode=0x%02x payload_len=%d", body[0], len(frame.Body))
	}

	c.setReadDeadline()
	if err := wire.SendAck(c.rw); err != nil {
		if errors.Is(err, wire.ErrUnexpectedAck) {
			log.Printf("conn: %v", err)
		} else {
			return nil, fmt.Errorf("conn: ack handshake: %w", err)
		}
	}

	return frame, nil
}

// DownloadSDB performs the one streaming exchange: the version query, the
// begin-download, then a continue-download loop, writing each chunk into
// sink until the server flags continues = 0. A safety cap at twice the
// chunk count estimated from the SDB size guards against a stuck server.
func (c *Connection) DownloadSDB(sink io.Writer) error {
	verFrame, err := c.Query(wire.BuildSdbVersionQuery(), false)
	if err != nil {
		return fmt.Errorf("conn: sdb version query: %w", err)
	}
	verInfo, err := wire.ParseSdbVersionResponse(verFrame.Body)
	if err != nil {
		return fmt.Errorf("conn: parse sdb version: %w", err)
	}

	frame, err := c.Query(wire.BuildSdbDownloadBegin(), false)
	if err != nil {
		return fmt.Errorf("conn: sdb download begin: %w", err)
	}
	chunk, err := wire.ParseSdbChunkResponse(frame.Body)
	if err != nil {
		return fmt.Errorf("conn: parse sdb chunk: %w", err)
	}
	if _, err := sink.Write(chunk.Data); err != nil {
		return fmt.Errorf("conn: sdb sink write: %w", err)
	}

	estimate := 1
	if len(chunk.Data) > 0 {
		estimate = int(verInfo.SdbSize)/len(chunk.Data) + 1
	}
	chunkCap := estimate * 2
	chunkCount := 1

	for chunk.Continues {
		if chunkCount >= chunkCap {
			return fmt.Errorf("%w: received %d of an estimated %d chunks", ErrDownloadCapExceeded, chunkCount, estimate)
		}
		frame, err := c.Query(wire.BuildSdbDownloadContinue(), false)
		if err != nil {
			return fmt.Errorf("conn: sdb download continue: %w", err)
		}
		chunk, err = wire.ParseSdbChunkResponse(frame.Body)
		if err != nil {
			return fmt.Errorf("conn: parse sdb chunk: %w", err)
		}
		if _, err := sink.Write(chunk.Data); err != nil {
			return fmt.Errorf("conn: sdb sink write: %w", err)
		}
		chunkCount++
	}
	return nil
}
