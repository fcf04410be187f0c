/*
 * table.go, part of magio.
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

// Package table reads the scalar output tables of micromagnetic programs:
// the table.txt file written by MuMax3 and the ODT files written by OOMMF.
// Each column becomes a time series. If the table has the average
// magnetization components, they are also returned in standard form.
package table

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/maglogic/magio"
)

// Format is the name used for this format in errors and metadata.
const Format = "table"

const (
	variantMumax = "mumax3"
	variantODT   = "odt"
)

// Extensions are the file suffixes accepted by the table parser.
// Compressed tables are accepted by the suffix before the compression one.
var Extensions = []string{".txt", ".odt"}

var mumaxColumn = regexp.MustCompile(`([^\t()]+?)\s*\(([^)]*)\)`)

// Parser reads MuMax3 and OOMMF tables. It implements magio.Parser.
type Parser struct {
	*magio.Base
}

var _ magio.Parser = (*Parser)(nil)

// New returns a table parser. If logger is nil, one writing to stderr is used.
func New(verbose bool, logger *slog.Logger) *Parser {
	return &Parser{magio.NewBase(verbose, logger, Extensions...)}
}

// table is what is read from the file before standardization.
type table struct {
	variant string
	columns []string
	units   []string
	rows    [][]float64 //one slice per column
	header  map[string]string
}

// ParseFile reads a table file. The result always has a time series,
// metadata and header; it also has the magnetization if the table includes
// the mx, my and mz columns.
func (P *Parser) ParseFile(name string) (*magio.Result, error) {
	if _, err := os.Stat(name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, magio.Wrap(magio.ErrFileNotFound, Format, name, err)
		}
		return nil, magio.Wrap(magio.ErrParseFailure, Format, name, err)
	}
	f, err := magio.Open(name)
	if err != nil {
		var perr *fs.PathError
		if errors.As(err, &perr) {
			return nil, magio.Wrap(magio.ErrParseFailure, Format, name, err)
		}
		return nil, magio.Wrap(magio.ErrCorruptedFile, Format, name, err)
	}
	defer f.Close()
	P.LogInfo("reading table", "path", name)
	t, err := read(bufio.NewReader(f), name)
	if err != nil {
		return nil, magio.ErrDecorate(err, "ParseFile")
	}
	ts := &magio.TimeSeries{
		Columns: t.columns,
		Units:   t.units,
		Data:    make(map[string][]float64, len(t.columns)),
	}
	for i, c := range t.columns {
		ts.Data[c] = t.rows[i]
	}
	ret := &magio.Result{
		TimeSeries: ts,
		Header:     t.header,
		Metadata: map[string]string{
			"format":  Format,
			"variant": t.variant,
			"columns": strconv.Itoa(len(t.columns)),
			"rows":    strconv.Itoa(ts.Len()),
			"source":  name,
		},
	}
	if title, ok := t.header["title"]; ok {
		ret.Metadata["title"] = title
	}
	if mx, my, mz, ok := magnetization(ts); ok {
		ret.Magnetization, err = magio.StandardizeMagnetization(mx, my, mz)
		if err != nil {
			return nil, magio.ErrDecorate(err, "ParseFile")
		}
	} else {
		P.LogInfo("table has no magnetization columns", "path", name)
	}
	return ret, nil
}

// magnetization finds the columns with the average magnetization
// components. MuMax3 calls them mx, my and mz, OOMMF uses names
// like Oxs_TimeDriver::mx.
func magnetization(ts *magio.TimeSeries) (mx, my, mz []float64, ok bool) {
	found := 0
	find := func(comp string) []float64 {
		for _, c := range ts.Columns {
			if c == comp || strings.HasSuffix(c, "::"+comp) {
				found++
				return ts.Data[c]
			}
		}
		return nil
	}
	mx, my, mz = find("mx"), find("my"), find("mz")
	return mx, my, mz, found == 3
}

func read(r *bufio.Reader, name string) (*table, error) {
	t := &table{header: make(map[string]string)}
	first := true
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if err != io.EOF {
				return nil, magio.Wrap(magio.ErrParseFailure, Format, name, err)
			}
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if first {
			first = false
			if err := t.start(line, name); err != nil {
				return nil, err
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			if t.variant == variantODT {
				t.odtLine(line)
			}
			continue
		}
		if t.columns == nil {
			return nil, magio.NewError(magio.ErrInvalidFormat, Format, name, "data found before the column names")
		}
		if err := t.addRow(line, name); err != nil {
			return nil, err
		}
	}
	if first {
		return nil, magio.NewError(magio.ErrInvalidFormat, Format, name, "empty file")
	}
	if t.columns == nil {
		return nil, magio.NewError(magio.ErrInvalidFormat, Format, name, "no column names found")
	}
	return t, nil
}

// start reads the first line of the file, which tells the variant.
func (t *table) start(line, name string) error {
	if !strings.HasPrefix(line, "#") {
		return magio.Errorf(magio.ErrInvalidFormat, Format, name, "no column header, first line is %q", line)
	}
	content := strings.TrimSpace(line[1:])
	if strings.HasPrefix(strings.ToLower(content), "odt") {
		t.variant = variantODT
		t.header["version"] = strings.TrimSpace(content[3:])
		return nil
	}
	t.variant = variantMumax
	t.header["columns"] = content
	t.columns, t.units = mumaxHeader(content)
	t.rows = make([][]float64, len(t.columns))
	return nil
}

// mumaxHeader splits a line like "t (s)\tmx ()\tmy ()" in names and units.
// Columns without units in parentheses are separated by whitespace.
func mumaxHeader(content string) (names, units []string) {
	for _, m := range mumaxColumn.FindAllStringSubmatch(content, -1) {
		names = append(names, strings.TrimSpace(m[1]))
		units = append(units, strings.TrimSpace(m[2]))
	}
	if names == nil {
		names = strings.Fields(content)
		units = make([]string, len(names))
	}
	return unique(names), units
}

func (t *table) odtLine(line string) {
	key, value, found := strings.Cut(strings.TrimSpace(line[1:]), ":")
	if !found {
		return
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)
	t.header[key] = value
	switch key {
	case "columns":
		t.columns = unique(odtFields(value))
		t.rows = make([][]float64, len(t.columns))
		if len(t.units) != len(t.columns) {
			t.units = make([]string, len(t.columns))
		}
	case "units":
		u := odtFields(value)
		if t.columns == nil || len(u) == len(t.columns) {
			t.units = u
		}
	}
}

// odtFields splits an ODT header value in whitespace-separated
// fields. Fields with spaces are enclosed in braces, or have
// the spaces escaped with a backslash.
func odtFields(s string) []string {
	var ret []string
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			return ret
		}
		if s[0] == '{' {
			end := strings.IndexByte(s, '}')
			if end < 0 {
				end = len(s)
				s += "}"
			}
			ret = append(ret, s[1:end])
			s = s[end+1:]
			continue
		}
		var b strings.Builder
		i := 0
		for ; i < len(s) && s[i] != ' ' && s[i] != '\t'; i++ {
			if s[i] == '\\' && i+1 < len(s) {
				i++ //escaped character, usually a space
			}
			b.WriteByte(s[i])
		}
		ret = append(ret, b.String())
		s = s[i:]
	}
}

// unique appends a suffix to repeated names, so each one is
// a distinct key in the time series.
func unique(names []string) []string {
	seen := make(map[string]int, len(names))
	for i, n := range names {
		seen[n]++
		if seen[n] > 1 {
			names[i] = n + "#" + strconv.Itoa(seen[n])
		}
	}
	return names
}

func (t *table) addRow(line, name string) error {
	fields := strings.Fields(line)
	if len(fields) != len(t.columns) {
		return magio.Errorf(magio.ErrCorruptedFile, Format, name, "row has %d fields, %d columns expected", len(fields), len(t.columns))
	}
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return magio.Wrap(magio.ErrParseFailure, Format, name, err)
		}
		t.rows[i] = append(t.rows[i], v)
	}
	return nil
}
