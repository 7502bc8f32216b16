// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implements QuerySet: batching multiple parameter reads into one request
// and correlating the returned bytes back to the originating parameters.
// See spec §4.E.
package query

import (
	"fmt"

	"github.com/vacvision-oss/go-vacvision/pkg/sdb"
	"github.com/vacvision-oss/go-vacvision/pkg/value"
	"github.com/vacvision-oss/go-vacvision/pkg/wire"
)

// Builder accumulates an ordered list of parameters to read in one batch.
type Builder struct {
	sdb    *sdb.Sdb
	params []sdb.Parameter
}

// NewBuilder starts a batch against the given catalog.
func NewBuilder(s *sdb.Sdb) *Builder {
	return &Builder{sdb: s}
}

// Add resolves name against the owning Sdb and appends it to the batch, in
// call order.
func (b *Builder) Add(name string) error {
	p, err := b.sdb.ParameterByName(name)
	if err != nil {
		return err
	}
	b.params = append(b.params, p)
	return nil
}

// Build freezes the accumulated parameters into an immutable QuerySet.
func (b *Builder) Build() (*QuerySet, error) {
	if len(b.params) == 0 {
		return nil, ErrEmpty
	}
	params := make([]sdb.Parameter, len(b.params))
	copy(params, b.params)
	return &QuerySet{sdb: b.sdb, params: params}, nil
}

// QuerySet is an immutable, ordered batch of parameters to read together.
// Value-type and cheap to copy; copies are independent (spec §5).
type QuerySet struct {
	sdb    *sdb.Sdb
	params []sdb.Parameter
}

// Parameters returns the batch in request order.
func (q *QuerySet) Parameters() []sdb.Parameter {
	out := make([]sdb.Parameter, len(q.params))
	copy(out, q.params)
	return out
}

// BuildRequest emits a parameter-read packet body whose ReadItems are
// (parameter.id, parameter.type_info.wire_size) in the same order as the
// batch, with the trailing sdb_id taken from the owning Sdb.
func (q *QuerySet) BuildRequest() []byte {
	items := make([]wire.ReadItem, len(q.params))
	for i, p := range q.params {
		items[i] = wire.ReadItem{
			ID:          p.ID(),
			ExpectedLen: uint32(p.TypeInfo().WireSize()),
		}
	}
	return wire.BuildParamReadRequest(items, q.sdb.ID())
}

// ParseResponse expects the body laid out in spec §4.C and returns, in
// order, the parsed Values. The i-th Value corresponds to the i-th
// Parameter passed to the builder (spec §4.E, property 5).
func (q *QuerySet) ParseResponse(body []byte) ([]value.Value, error) {
	lens := make([]int, len(q.params))
	for i, p := range q.params {
		lens[i] = p.TypeInfo().WireSize()
	}

	resp, err := wire.ParseParamReadResponse(body, lens)
	if err != nil {
		return nil, fmt.Errorf("query: parse response: %w", err)
	}

	values := make([]value.Value, len(q.params))
	for i, p := range q.params {
		v, err := value.Parse(resp.Items[i], p.TypeInfo())
		if err != nil {
			return nil, fmt.Errorf("query: decode parameter %q: %w", p.Name(), err)
		}
		values[i] = v
	}
	return values, nil
}
