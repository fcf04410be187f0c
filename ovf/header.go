/*
 * header.go, part of magio.
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

package ovf

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/maglogic/magio"
)

// Data representations.
const (
	reprText    = "text"
	reprBinary4 = "binary 4"
	reprBinary8 = "binary 8"
)

const (
	meshRectangular = "rectangular"
	meshIrregular   = "irregular"
)

// maxPoints bounds the number of points a header can announce.
// It is far beyond any mesh a micromagnetic code writes.
const maxPoints = 1 << 28

var simTime = regexp.MustCompile(`(?i)total (?:simulation|sim\.) time:\s*([-+0-9.eE]+)`)

// header contains what is needed to read the data block,
// plus all the key-value pairs found, with lower-case keys.
type header struct {
	version    int
	meshtype   string
	repr       string
	segments   int
	valuedim   int
	points     int
	nodes      [3]int
	base       [3]float64
	step       [3]float64
	multiplier float64
	fields     map[string]string
}

// signature returns the OVF version announced in the first line,
// or 0 if the line is not an OVF signature.
func signature(line string) int {
	l := strings.ToLower(strings.TrimSpace(line))
	if !strings.HasPrefix(l, "#") {
		return 0
	}
	l = strings.TrimSpace(strings.TrimPrefix(l, "#"))
	if !strings.HasPrefix(l, "oommf") {
		return 0
	}
	switch {
	case strings.Contains(l, "2.0"):
		return 2
	case strings.Contains(l, "1.0"):
		return 1
	}
	return 0
}

// readHeader reads from the signature line up to, and including,
// the "# Begin: Data" line.
func readHeader(r *bufio.Reader, name string) (*header, error) {
	first, err := r.ReadString('\n')
	if err != nil && first == "" {
		return nil, magio.NewError(magio.ErrInvalidFormat, Format, name, "empty file")
	}
	h := &header{fields: make(map[string]string), segments: 1, multiplier: 1}
	h.version = signature(first)
	if h.version == 0 {
		return nil, magio.Errorf(magio.ErrInvalidFormat, Format, name, "not an OVF file, first line is %q", strings.TrimSpace(first))
	}
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return nil, magio.NewError(magio.ErrCorruptedFile, Format, name, "no data section found")
			}
			return nil, magio.Wrap(magio.ErrParseFailure, Format, name, err)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "##") {
			continue
		}
		if !strings.HasPrefix(line, "#") {
			return nil, magio.Errorf(magio.ErrCorruptedFile, Format, name, "unexpected line in header: %q", line)
		}
		key, value, found := strings.Cut(strings.TrimSpace(line[1:]), ":")
		if !found {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		switch key {
		case "begin":
			v := strings.ToLower(value)
			if strings.HasPrefix(v, "data") {
				h.repr = strings.Join(strings.Fields(strings.TrimPrefix(v, "data")), " ")
				if err := h.check(name); err != nil {
					return nil, err
				}
				return h, nil
			}
		case "end":
		case "segment count":
			if h.segments, err = strconv.Atoi(value); err != nil {
				return nil, magio.Wrap(magio.ErrParseFailure, Format, name, err)
			}
		default:
			if prev, ok := h.fields[key]; ok {
				value = prev + "\n" + value
			}
			h.fields[key] = value
		}
	}
}

// check fills the numeric fields of h from the key-value pairs, and
// makes sure the file is something this package can read.
func (h *header) check(name string) error {
	var err error
	if h.segments != 1 {
		return magio.Errorf(magio.ErrUnsupportedFormat, Format, name, "%d segments in file, only 1 is supported", h.segments)
	}
	switch h.repr {
	case reprText, reprBinary4, reprBinary8:
	default:
		return magio.Errorf(magio.ErrUnsupportedFormat, Format, name, "data representation %q not supported", h.repr)
	}
	h.valuedim = 3
	if h.version == 2 {
		if h.valuedim, err = h.int("valuedim", name); err != nil {
			return err
		}
	}
	if h.valuedim != 3 {
		return magio.Errorf(magio.ErrUnsupportedFormat, Format, name, "only vector fields are supported, valuedim is %d", h.valuedim)
	}
	if _, ok := h.fields["valuemultiplier"]; ok {
		if h.multiplier, err = h.float("valuemultiplier", name); err != nil {
			return err
		}
	}
	h.meshtype = strings.ToLower(h.fields["meshtype"])
	switch h.meshtype {
	case meshRectangular:
		return h.rectangular(name)
	case meshIrregular:
		if h.points, err = h.int("pointcount", name); err != nil {
			return err
		}
		if h.points <= 0 || h.points > maxPoints {
			return magio.Errorf(magio.ErrCorruptedFile, Format, name, "pointcount is %d", h.points)
		}
		return nil
	case "":
		return magio.NewError(magio.ErrCorruptedFile, Format, name, "header has no meshtype")
	}
	return magio.Errorf(magio.ErrUnsupportedFormat, Format, name, "meshtype %q not supported", h.meshtype)
}

func (h *header) rectangular(name string) error {
	var err error
	h.points = 1
	for i, axis := range []string{"x", "y", "z"} {
		if h.nodes[i], err = h.int(axis+"nodes", name); err != nil {
			return err
		}
		if h.nodes[i] <= 0 {
			return magio.Errorf(magio.ErrCorruptedFile, Format, name, "%snodes is %d", axis, h.nodes[i])
		}
		if h.nodes[i] > maxPoints/h.points {
			return magio.Errorf(magio.ErrCorruptedFile, Format, name, "mesh of %s nodes is too large", strings.Join(h.nodesSoFar(i), "x"))
		}
		h.points *= h.nodes[i]
		if h.step[i], err = h.float(axis+"stepsize", name); err != nil {
			return err
		}
		if _, ok := h.fields[axis+"base"]; ok {
			h.base[i], err = h.float(axis+"base", name)
		} else {
			//no base given, so we take the center of the first cell.
			var lo float64
			lo, err = h.float(axis+"min", name)
			h.base[i] = lo + h.step[i]/2
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (h *header) nodesSoFar(i int) []string {
	ret := make([]string, 0, i+1)
	for _, n := range h.nodes[:i+1] {
		ret = append(ret, strconv.Itoa(n))
	}
	return ret
}

// minBytes returns the smallest size the data block can have.
// A text block needs at least one character per value.
func (h *header) minBytes() int64 {
	n := int64(h.points * h.width())
	switch h.repr {
	case reprBinary4:
		return 4 * (n + 1)
	case reprBinary8:
		return 8 * (n + 1)
	}
	return n
}

func (h *header) int(key, name string) (int, error) {
	v, ok := h.fields[key]
	if !ok {
		return 0, magio.Errorf(magio.ErrCorruptedFile, Format, name, "header has no %s", key)
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, magio.Wrap(magio.ErrParseFailure, Format, name, err)
	}
	return i, nil
}

func (h *header) float(key, name string) (float64, error) {
	v, ok := h.fields[key]
	if !ok {
		return 0, magio.Errorf(magio.ErrCorruptedFile, Format, name, "header has no %s", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, magio.Wrap(magio.ErrParseFailure, Format, name, err)
	}
	return f, nil
}

// metadata returns the most useful header information with stable names.
func (h *header) metadata(name string) map[string]string {
	m := map[string]string{
		"format":   Format,
		"version":  strconv.Itoa(h.version),
		"meshtype": h.meshtype,
		"data":     h.repr,
		"points":   strconv.Itoa(h.points),
		"source":   name,
	}
	if h.meshtype == meshRectangular {
		m["nodes"] = strconv.Itoa(h.nodes[0]) + "x" + strconv.Itoa(h.nodes[1]) + "x" + strconv.Itoa(h.nodes[2])
	}
	copyIf := func(to, from string) {
		if v, ok := h.fields[from]; ok && v != "" {
			m[to] = v
		}
	}
	copyIf("title", "title")
	copyIf("meshunit", "meshunit")
	copyIf("valueunits", "valueunit") //OVF 1.0
	copyIf("valueunits", "valueunits")
	copyIf("valuelabels", "valuelabels")
	copyIf("desc", "desc")
	if t := simTime.FindStringSubmatch(h.fields["desc"]); t != nil {
		m["time"] = t[1]
	}
	return m
}
