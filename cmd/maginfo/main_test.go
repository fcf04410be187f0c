/*
 * main_test.go, part of magio.
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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/maglogic/magio"
	"github.com/maglogic/magio/ovf"
	"github.com/maglogic/magio/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ovfText = `# OOMMF OVF 2.0
# Segment count: 1
# Begin: Segment
# Begin: Header
# Title: m
# meshtype: rectangular
# meshunit: m
# xbase: 5e-10
# ybase: 5e-10
# zbase: 5e-10
# xnodes: 2
# ynodes: 2
# znodes: 1
# xstepsize: 1e-09
# ystepsize: 1e-09
# zstepsize: 1e-09
# valuedim: 3
# End: Header
# Begin: Data Text
1 0 0
0 1 0
-1 0 0
0 0 1
# End: Data Text
# End: Segment
`

const tableText = "# t (s)\tmx ()\tmy ()\tmz ()\n0\t1\t0\t0\n1e-10\t0\t1\t0\n"

func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m000000.ovf"), []byte(ovfText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "table.txt"), []byte(tableText), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("nothing"), 0o644))
	return dir
}

func TestRunJSON(t *testing.T) {
	dir := setup(t)
	cfg := DefaultConfig()
	cfg.JSON = true
	var out, log bytes.Buffer
	status := run(cfg, []string{dir}, &out, magio.NewLogger(&log, false))
	require.Equal(t, 0, status, log.String())

	var got []Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 2)

	o := got[0]
	assert.Equal(t, "m000000.ovf", o.File.Filename)
	assert.True(t, o.File.Readable)
	assert.Equal(t, "ovf", o.Format)
	assert.Equal(t, 4, o.Samples)
	require.NotNil(t, o.Average)
	assert.Equal(t, [3]float64{0, 0.25, 0.25}, *o.Average)
	assert.Equal(t, "2x2x1", o.Metadata["nodes"])
	require.Contains(t, o.Angles, "theta")
	require.Contains(t, o.Angles, "phi")
	assert.Equal(t, 4, o.Angles["theta"].Total())
	assert.Len(t, o.Angles["phi"].View(), defaultBins)
	assert.Equal(t, 3.0, o.Angles["theta"].View()[18]) // three samples in the plane

	tb := got[1]
	assert.Equal(t, "table", tb.Format)
	assert.Equal(t, 2, tb.Rows)
	assert.Equal(t, []string{magio.KeyMagnetization, magio.KeyTimeSeries, magio.KeyMetadata, magio.KeyHeader}, tb.Keys)
	assert.Empty(t, tb.Error)
}

func TestRunText(t *testing.T) {
	dir := setup(t)
	var out bytes.Buffer
	status := run(DefaultConfig(), []string{filepath.Join(dir, "m000000.ovf")}, &out, magio.NewLogger(&bytes.Buffer{}, false))
	assert.Equal(t, 0, status)
	assert.Contains(t, out.String(), "ovf, 4 samples")
	assert.Contains(t, out.String(), "keys: magnetization coordinates metadata header")
	assert.Contains(t, out.String(), "<m>: 0 0.25 0.25")
}

func TestRunFailures(t *testing.T) {
	dir := setup(t)
	broken := filepath.Join(dir, "broken.ovf")
	require.NoError(t, os.WriteFile(broken, []byte("hello\n"), 0o644))
	var out, log bytes.Buffer
	args := []string{broken, filepath.Join(dir, "notes.md"), filepath.Join(dir, "missing.ovf"), filepath.Join(dir, "table.txt")}
	status := run(DefaultConfig(), args, &out, magio.NewLogger(&log, false))
	assert.Equal(t, 1, status)
	assert.Contains(t, out.String(), "invalid format")
	assert.Contains(t, out.String(), "unknown format")
	assert.Contains(t, out.String(), "can't be read")
	assert.Contains(t, out.String(), "table (mumax3), 2 samples, 2 rows")
	assert.Contains(t, log.String(), "failed to process file")
}

func TestRunHistograms(t *testing.T) {
	dir := setup(t)
	plots := t.TempDir()
	cfg := DefaultConfig()
	cfg.Histogram.Dir = plots
	cfg.Histogram.Bins = 8
	var out bytes.Buffer
	status := run(cfg, []string{filepath.Join(dir, "m000000.ovf")}, &out, magio.NewLogger(&bytes.Buffer{}, false))
	require.Equal(t, 0, status)
	for _, name := range []string{"m000000_theta.png", "m000000_phi.png"} {
		st, err := os.Stat(filepath.Join(plots, name))
		require.NoError(t, err)
		assert.Greater(t, st.Size(), int64(0))
	}
	assert.Contains(t, out.String(), "plot: ")
}

func TestExpand(t *testing.T) {
	dir := setup(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ovf"), 0o755))
	files, err := expand([]string{dir, "explicit.md"}, []string{"*.ovf"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "m000000.ovf"), "explicit.md"}, files)

	_, err = expand([]string{dir}, []string{"[unclosed"})
	assert.Error(t, err)

	for _, name := range []string{"m000001.ovf.zz", "m.omf.gz", "run.odt.gz", "table.txt.zst", "junk.gz"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	files, err = expand([]string{dir}, defaultInclude)
	require.NoError(t, err)
	for _, name := range []string{"m000000.ovf", "m000001.ovf.zz", "m.omf.gz", "run.odt.gz", "table.txt", "table.txt.zst"} {
		assert.Contains(t, files, filepath.Join(dir, name))
	}
	assert.NotContains(t, files, filepath.Join(dir, "junk.gz"))
	assert.NotContains(t, files, filepath.Join(dir, "notes.md"))
}

func TestParserFor(t *testing.T) {
	o := ovf.New(false, nil)
	tb := table.New(false, nil)
	assert.Equal(t, magio.Parser(o), parserFor("m.OVF.zz", o, tb))
	assert.Equal(t, magio.Parser(o), parserFor("m.ohf", o, tb))
	assert.Equal(t, magio.Parser(tb), parserFor("run.odt.gz", o, tb))
	assert.Nil(t, parserFor("junk.gz", o, tb))
	assert.Nil(t, parserFor("notes.md", o, tb))
}

func TestRunAutocorr(t *testing.T) {
	dir := setup(t)
	cfg := DefaultConfig()
	cfg.Autocorr = []string{"mx", " nope"}
	var out, log bytes.Buffer
	status := run(cfg, []string{filepath.Join(dir, "table.txt"), filepath.Join(dir, "m000000.ovf")}, &out, magio.NewLogger(&log, false))
	require.Equal(t, 0, status)
	assert.Contains(t, out.String(), "acf(mx): 1 -0.5")
	assert.Contains(t, log.String(), "no autocorrelation")
	assert.Contains(t, log.String(), "nope")
}
