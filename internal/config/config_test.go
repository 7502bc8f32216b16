// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := []byte("instrument_ip: 10.0.0.5\npoll_interval: 5s\nmetrics_addr: :9090\n")
	require.NoError(t, os.WriteFile(path, contents, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", cfg.InstrumentIP)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, Default().SdbCacheDir, cfg.SdbCacheDir)
}

