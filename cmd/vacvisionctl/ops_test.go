// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOps_PreservesOrder(t *testing.T) {
	ops, err := parseOps([]string{"-r", ".Pressure", "-w", ".Setpoint=5", "-r", ".Count"})
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, op{kind: opRead, name: ".Pressure"}, ops[0])
	assert.Equal(t, op{kind: opWrite, name: ".Setpoint", value: "5"}, ops[1])
	assert.Equal(t, op{kind: opRead, name: ".Count"}, ops[2])
}

func TestParseOps_EqualsForm(t *testing.T) {
	ops, err := parseOps([]string{"--read=.Pressure", "--write=.Setpoint=5"})
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, ".Pressure", ops[0].name)
	assert.Equal(t, ".Setpoint", ops[1].name)
	assert.Equal(t, "5", ops[1].value)
}

func TestParseOps_MissingWriteValue(t *testing.T) {
	_, err := parseOps([]string{"-w", ".Setpoint"})
	assert.Error(t, err)
}

func TestCoalesce_ConsecutiveReadsGrouped(t *testing.T) {
	ops, err := parseOps([]string{"-r", ".A", "-r", ".B", "-w", ".C=1", "-r", ".D"})
	require.NoError(t, err)

	groups := coalesce(ops)
	require.Len(t, groups, 3)
	assert.Equal(t, []string{".A", ".B"}, groups[0].reads)
	require.NotNil(t, groups[1].write)
	assert.Equal(t, ".C", groups[1].write.name)
	assert.Equal(t, []string{".D"}, groups[2].reads)
}
