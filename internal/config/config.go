// Copyright (c) 2021 by library authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Implements optional file-backed defaults for the CLI's --ip and
// --sdb-cache-dir flags (spec §6). This is a small, purpose-scoped cousin of a full
// layered application config: one file, one env prefix, no validation
// tags, because vacvisionctl has only a handful of settable defaults.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Config holds defaults the CLI falls back to when a flag isn't given
// explicitly. Flags always win; see Precedence.
type Config struct {
	// InstrumentIP is the default --ip value.
	InstrumentIP string `mapstructure:"instrument_ip"`

	// PollInterval is decoded from poll_interval. vacvisionctl does not
	// apply it; each --poll flag keeps its own default.
	PollInterval time.Duration `mapstructure:"poll_interval"`

	// MetricsAddr is decoded from metrics_addr. vacvisionctl does not
	// apply it; only an explicit --metrics-addr starts the exporter.
	MetricsAddr string `mapstructure:"metrics_addr"`

	// SdbCacheDir is where sdb-download writes the catalog when no
	// output path is given on the command line.
	SdbCacheDir string `mapstructure:"sdb_cache_dir"`
}

// Precedence documents the resolution order the CLI applies: kong flags
// (highest) > this file > the defaults below (lowest). This package only
// produces the middle and bottom tiers; cmd/vacvisionctl layers the flags
// on top.
const Precedence = "flags > config file > built-in defaults"

// Default returns the built-in fallback values used when no config file
// is present and no flag is given.
func Default() *Config {
	return &Config{
		PollInterval: 2 * time.Second,
		SdbCacheDir:  ".",
	}
}

// Load reads configPath (YAML or TOML, sniffed by extension) and the
// VACVISION_ environment prefix, merges them over Default(), and returns
// the result. An empty configPath or a missing file is not an error: the
// defaults are returned unchanged.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetEnvPrefix("VACVISION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", configPath, err)
	}
	if err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.StringToTimeDurationHookFunc(),
	)); err != nil {
		return nil, fmt.Errorf("config: decoding %s: %w", configPath, err)
	}
	return cfg, nil
}
