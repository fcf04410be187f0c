/*
 * config.go, part of magio.
 *
 * Copyright 2025 The magio Authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/maglogic/magio"
	"github.com/maglogic/magio/ovf"
	"github.com/maglogic/magio/table"
)

// Config holds the maginfo settings. Command line flags override
// the values read from the file.
type Config struct {
	Verbose   bool      `toml:"verbose"`
	JSON      bool      `toml:"json"`
	Include   []string  `toml:"include"`  // glob patterns used when a directory is given
	Autocorr  []string  `toml:"autocorr"` // table columns to autocorrelate
	Histogram Histogram `toml:"histogram"`
}

type Histogram struct {
	Dir  string `toml:"dir"` // no histograms if empty
	Bins int    `toml:"bins"`
}

// defaultInclude matches every extension the parsers accept, plain or compressed.
var defaultInclude = includePatterns(append(append([]string{}, ovf.Extensions...), table.Extensions...))

func includePatterns(exts []string) []string {
	suffixes := []string{"", magio.SuffixGzip, magio.SuffixZstd, magio.SuffixZlib}
	patterns := make([]string, 0, len(exts)*len(suffixes))
	for _, ext := range exts {
		for _, s := range suffixes {
			patterns = append(patterns, "*"+ext+s)
		}
	}
	return patterns
}

const defaultBins = 36

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// LoadConfig reads a TOML config file. Missing values take their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	cfg.defaults()
	return &cfg, nil
}

func (cfg *Config) defaults() {
	if len(cfg.Include) == 0 {
		cfg.Include = append([]string(nil), defaultInclude...)
	}
	if cfg.Histogram.Bins <= 0 {
		cfg.Histogram.Bins = defaultBins
	}
}
