// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestParameterValue_SetAndRead(t *testing.T) {
	ParameterValue.WithLabelValues(".Pressure").Set(3.14)
	got := testutil.ToFloat64(ParameterValue.WithLabelValues(".Pressure"))
	assert.InDelta(t, 3.14, got, 1e-9)
}

func TestPollErrorsTotal_Increments(t *testing.T) {
	before := testutil.ToFloat64(PollErrorsTotal)
	PollErrorsTotal.Inc()
	after := testutil.ToFloat64(PollErrorsTotal)
	assert.Equal(t, before+1, after)
}
