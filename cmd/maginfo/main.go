/*
 * main.go, part of magio.
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

// maginfo describes micromagnetic output files: OVF vector fields and
// MuMax3/OOMMF tables. For each file it prints what was found and the
// volume-averaged magnetization, and it can plot the distribution of
// the magnetization angles.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/maglogic/magio"
	"github.com/maglogic/magio/histo"
	"github.com/maglogic/magio/magstat"
	"github.com/maglogic/magio/ovf"
	"github.com/maglogic/magio/table"
)

var (
	configPath = flag.String("config", "", "Path to a TOML config file")
	verbose    = flag.Bool("v", false, "Enable verbose logging")
	jsonOut    = flag.Bool("json", false, "Print JSON instead of text")
	histDir    = flag.String("hist", "", "Write theta/phi histograms (PNG) to this directory")
	acf        = flag.String("acf", "", "Comma-separated table columns to autocorrelate")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file|dir ...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", *configPath, err)
			os.Exit(2)
		}
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *jsonOut {
		cfg.JSON = true
	}
	if *histDir != "" {
		cfg.Histogram.Dir = *histDir
	}
	if *acf != "" {
		cfg.Autocorr = strings.Split(*acf, ",")
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	logger := magio.NewLogger(os.Stderr, cfg.Verbose)
	os.Exit(run(cfg, flag.Args(), os.Stdout, logger))
}

// Summary is what maginfo reports for each file.
type Summary struct {
	File     magio.FileInfo         `json:"file"`
	Format   string                 `json:"format,omitempty"`
	Keys     []string               `json:"keys,omitempty"`
	Samples  int                    `json:"samples"`
	Rows     int                    `json:"rows,omitempty"`
	Average  *[3]float64            `json:"average_m,omitempty"`
	Angles   map[string]*histo.Data `json:"angles,omitempty"`
	Autocorr map[string][]float64   `json:"autocorr,omitempty"`
	Metadata map[string]string      `json:"metadata,omitempty"`
	Plots    []string               `json:"plots,omitempty"`
	Error    string                 `json:"error,omitempty"`
}

// run processes all the files named by args and writes the summaries to out.
// It returns the exit status: 1 if any file failed.
func run(cfg *Config, args []string, out io.Writer, logger *slog.Logger) int {
	files, err := expand(args, cfg.Include)
	if err != nil {
		logger.Error("failed to expand arguments", "error", err)
		return 2
	}
	info := magio.NewBase(cfg.Verbose, logger)
	ovfParser := ovf.New(cfg.Verbose, logger)
	tableParser := table.New(cfg.Verbose, logger)
	status := 0
	var all []Summary
	for _, name := range files {
		s := Summary{File: info.FileInfo(name)}
		P := parserFor(name, ovfParser, tableParser)
		if P == nil {
			logger.Warn("no parser for file", "path", name)
			s.Error = "unknown format"
			status = 1
			all = append(all, s)
			continue
		}
		if err := describe(&s, P, name, cfg, logger); err != nil {
			logger.Error("failed to process file", "path", name, "error", err)
			s.Error = err.Error()
			status = 1
		}
		all = append(all, s)
	}
	if cfg.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(all); err != nil {
			logger.Error("failed to write output", "error", err)
			return 1
		}
		return status
	}
	for _, s := range all {
		printText(out, s)
	}
	return status
}

// parserFor picks the parser by the extension of the file, once
// the compression suffix, if any, is removed.
func parserFor(name string, ovfParser *ovf.Parser, tableParser *table.Parser) magio.Parser {
	ext := strings.ToLower(magio.Extension(magio.TrimCompression(name)))
	switch {
	case slices.Contains(ovf.Extensions, ext):
		return ovfParser
	case slices.Contains(table.Extensions, ext):
		return tableParser
	}
	return nil
}

func describe(s *Summary, P magio.Parser, name string, cfg *Config, logger *slog.Logger) error {
	s.File = P.FileInfo(name)
	if !s.File.Readable {
		return fmt.Errorf("file %s can't be read", name)
	}
	res, err := P.ParseFile(name)
	if err != nil {
		return err
	}
	s.Format = res.Metadata["format"]
	s.Keys = res.Keys()
	s.Metadata = res.Metadata
	if res.TimeSeries != nil {
		s.Rows = res.TimeSeries.Len()
		for _, col := range cfg.Autocorr {
			r, err := magstat.ColumnAutoCorrelation(res.TimeSeries, strings.TrimSpace(col))
			if err != nil {
				logger.Warn("no autocorrelation", "path", name, "column", col, "error", err)
				continue
			}
			if s.Autocorr == nil {
				s.Autocorr = make(map[string][]float64)
			}
			s.Autocorr[strings.TrimSpace(col)] = r
		}
	}
	m := res.Magnetization
	if m == nil {
		return nil
	}
	s.Samples = m.Len()
	if m.Len() > 0 {
		avg, err := m.Average(nil)
		if err != nil {
			return err
		}
		s.Average = &avg
	}
	theta, phi := histo.Angles(m, cfg.Histogram.Bins)
	s.Angles = map[string]*histo.Data{"theta": theta, "phi": phi}
	if cfg.Histogram.Dir != "" && m.Len() > 0 {
		base := magio.TrimCompression(s.File.Filename)
		base = strings.TrimSuffix(base, magio.Extension(base))
		s.Plots, err = writeHistograms(cfg.Histogram.Dir, base, theta, phi)
		if err != nil {
			return fmt.Errorf("writing histograms for %s: %w", name, err)
		}
	}
	return nil
}

func printText(out io.Writer, s Summary) {
	fmt.Fprintf(out, "%s: %d bytes", s.File.Path, s.File.Size)
	if s.Error != "" {
		fmt.Fprintf(out, ", error: %s\n", s.Error)
		return
	}
	fmt.Fprintf(out, ", %s", s.Format)
	if v, ok := s.Metadata["variant"]; ok {
		fmt.Fprintf(out, " (%s)", v)
	}
	fmt.Fprintf(out, ", %d samples", s.Samples)
	if s.Rows > 0 {
		fmt.Fprintf(out, ", %d rows", s.Rows)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  keys: %s\n", strings.Join(s.Keys, " "))
	if s.Average != nil {
		fmt.Fprintf(out, "  <m>: %g %g %g\n", s.Average[0], s.Average[1], s.Average[2])
	}
	for _, col := range sortedKeys(s.Autocorr) {
		r := s.Autocorr[col]
		fmt.Fprintf(out, "  acf(%s):", col)
		for _, v := range r[:min(len(r), 5)] {
			fmt.Fprintf(out, " %.3g", v)
		}
		if len(r) > 5 {
			fmt.Fprint(out, " ...")
		}
		fmt.Fprintln(out)
	}
	for _, p := range s.Plots {
		fmt.Fprintf(out, "  plot: %s\n", p)
	}
}

func sortedKeys(m map[string][]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// expand replaces each directory in args by the files in it
// matching any of the patterns. It does not recurse.
func expand(args, patterns []string) ([]string, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	var files []string
	for _, a := range args {
		st, err := os.Stat(a)
		if err != nil || !st.IsDir() {
			files = append(files, a) //the parser will complain if there is a problem
			continue
		}
		entries, err := os.ReadDir(a)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			for _, g := range globs {
				if g.Match(e.Name()) {
					files = append(files, filepath.Join(a, e.Name()))
					break
				}
			}
		}
	}
	return files, nil
}
