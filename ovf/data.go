/*
 * data.go, part of magio.
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
	"encoding/binary"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/maglogic/magio"
)

// chunk caps the values allocated before any is read.
const chunk = 1 << 16

// Check values at the beginning of binary data blocks.
const (
	check4 float32 = 1234567.0
	check8 float64 = 123456789012345.0
)

// width returns the number of values stored per point.
func (h *header) width() int {
	if h.meshtype == meshIrregular {
		return 3 + h.valuedim
	}
	return h.valuedim
}

// readData reads the data block described by h, which must have been
// read from r just before. It returns width*points values, multiplied
// by the value multiplier, and whether the end-of-data mark was found.
func readData(r *bufio.Reader, h *header, name string) ([]float64, bool, error) {
	n := h.points * h.width()
	var values []float64
	var end bool
	var err error
	switch h.repr {
	case reprText:
		values, end, err = readText(r, n, name)
	default:
		values, err = readBinary(r, h, n, name)
		if err == nil {
			end = findEnd(r)
		}
	}
	if err != nil {
		return nil, false, err
	}
	if len(values) != n {
		return nil, false, magio.Errorf(magio.ErrCorruptedFile, Format, name, "%d values found, %d expected", len(values), n)
	}
	if h.multiplier != 1 {
		for i := range values {
			values[i] *= h.multiplier
		}
	}
	return values, end, nil
}

func isEnd(line string) bool {
	l := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, "#")))
	return strings.HasPrefix(l, "end:") && strings.HasPrefix(strings.TrimSpace(l[4:]), "data")
}

// findEnd skips lines until the end-of-data mark.
// It returns false if the mark is not found.
func findEnd(r *bufio.Reader) bool {
	for {
		line, err := r.ReadString('\n')
		if isEnd(line) {
			return true
		}
		if err != nil {
			return false
		}
	}
}

// readText reads at most n whitespace-separated numbers, until the end-of-data
// mark or the end of the file.
func readText(r *bufio.Reader, n int, name string) ([]float64, bool, error) {
	values := make([]float64, 0, min(n, chunk))
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			if err == io.EOF {
				return values, false, nil
			}
			return nil, false, readError(err, name)
		}
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			if isEnd(line) {
				return values, true, nil
			}
			continue
		}
		for _, field := range strings.Fields(line) {
			if len(values) == n {
				return nil, false, magio.Errorf(magio.ErrCorruptedFile, Format, name, "more than %d values in data block", n)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, false, magio.Wrap(magio.ErrParseFailure, Format, name, err)
			}
			values = append(values, v)
		}
	}
}

// readBinary reads the check value and n binary floats.
func readBinary(r *bufio.Reader, h *header, n int, name string) ([]float64, error) {
	size := 4
	if h.repr == reprBinary8 {
		size = 8
	}
	var order binary.ByteOrder = binary.LittleEndian
	if h.version == 1 {
		order = binary.BigEndian
	}
	var b [8]byte
	next := func() (float64, error) {
		if _, err := io.ReadFull(r, b[:size]); err != nil {
			return 0, readError(err, name)
		}
		if size == 4 {
			return float64(math.Float32frombits(order.Uint32(b[:4]))), nil
		}
		return math.Float64frombits(order.Uint64(b[:8])), nil
	}
	check, err := next()
	if err != nil {
		return nil, err
	}
	if (size == 4 && float32(check) != check4) || (size == 8 && check != check8) {
		return nil, magio.Errorf(magio.ErrCorruptedFile, Format, name, "wrong check value %g in %s data block", check, h.repr)
	}
	values := make([]float64, 0, min(n, chunk))
	for len(values) < n {
		v, err := next()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// readError maps a failed read to an error kind. A short read means
// the file was truncated.
func readError(err error, name string) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return magio.NewError(magio.ErrCorruptedFile, Format, name, "data block is truncated")
	}
	return magio.Wrap(magio.ErrParseFailure, Format, name, err)
}
