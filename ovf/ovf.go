/*
 * ovf.go, part of magio.
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
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/maglogic/magio"
	v3 "github.com/maglogic/magio/v3"
)

// Format is the name used for this format in errors and metadata.
const Format = "ovf"

// Extensions are the file suffixes accepted by the OVF parser. Compressed
// files are accepted too, if the suffix before the compression one is here.
var Extensions = []string{".ovf", ".omf", ".ohf", ".oef"}

// Parser reads OVF files. It implements magio.Parser.
type Parser struct {
	*magio.Base
}

var _ magio.Parser = (*Parser)(nil)

// New returns an OVF parser. If logger is nil, one writing to stderr is used.
func New(verbose bool, logger *slog.Logger) *Parser {
	return &Parser{magio.NewBase(verbose, logger, Extensions...)}
}

// ParseFile reads an OVF file. The result has the magnetization, the
// coordinates of each point, metadata and the header key-value pairs.
func (P *Parser) ParseFile(name string) (*magio.Result, error) {
	st, err := os.Stat(name)
	if err != nil {
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
	P.LogInfo("reading OVF file", "path", name)
	r := bufio.NewReader(f)
	h, err := readHeader(r, name)
	if err != nil {
		return nil, magio.ErrDecorate(err, "ParseFile")
	}
	P.LogInfo("OVF header read", "path", name, "version", h.version, "meshtype", h.meshtype, "data", h.repr, "points", h.points)
	if magio.TrimCompression(name) == name && h.minBytes() > st.Size() {
		return nil, magio.Errorf(magio.ErrCorruptedFile, Format, name, "header announces %d points, too many for a file of %d bytes", h.points, st.Size())
	}
	values, end, err := readData(r, h, name)
	if err != nil {
		return nil, magio.ErrDecorate(err, "ParseFile")
	}
	if !end {
		P.LogWarn("OVF data block has no end mark", "path", name)
	}
	pos, m, err := h.split(values)
	if err != nil {
		return nil, magio.Wrap(magio.ErrCorruptedFile, Format, name, err)
	}
	ret := &magio.Result{
		Metadata: h.metadata(name),
		Header:   h.fields,
	}
	ret.Coordinates, err = magio.StandardizeCoordinates(pos.Components())
	if err != nil {
		return nil, magio.ErrDecorate(err, "ParseFile")
	}
	ret.Magnetization, err = magio.StandardizeMagnetization(m.Components())
	if err != nil {
		return nil, magio.ErrDecorate(err, "ParseFile")
	}
	return ret, nil
}

// split returns the position and the value of each point.
func (h *header) split(values []float64) (pos, m *v3.Matrix, err error) {
	if h.meshtype == meshIrregular {
		pos = v3.Zeros(h.points)
		m = v3.Zeros(h.points)
		for i := 0; i < h.points; i++ {
			rec := values[6*i : 6*i+6]
			pos.SetVec(i, [3]float64{rec[0], rec[1], rec[2]})
			m.SetVec(i, [3]float64{rec[3], rec[4], rec[5]})
		}
		return pos, m, nil
	}
	m, err = v3.NewMatrix(values)
	if err != nil {
		return nil, nil, err
	}
	return h.cellCenters(), m, nil
}

// cellCenters returns the position of each cell of a rectangular mesh,
// with x changing fastest.
func (h *header) cellCenters() *v3.Matrix {
	pos := v3.Zeros(h.points)
	i := 0
	for z := 0; z < h.nodes[2]; z++ {
		for y := 0; y < h.nodes[1]; y++ {
			for x := 0; x < h.nodes[0]; x++ {
				pos.SetVec(i, [3]float64{
					h.base[0] + float64(x)*h.step[0],
					h.base[1] + float64(y)*h.step[1],
					h.base[2] + float64(z)*h.step[2],
				})
				i++
			}
		}
	}
	return pos
}
