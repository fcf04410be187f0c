/*
 * result.go, part of magio.
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

package magio

// Names of the keys a Result can populate.
const (
	KeyMagnetization = "magnetization"
	KeyCoordinates   = "coordinates"
	KeyTimeSeries    = "time_series"
	KeyMetadata      = "metadata"
	KeyHeader        = "header"
)

var resultKeys = []string{KeyMagnetization, KeyCoordinates, KeyTimeSeries, KeyMetadata, KeyHeader}

// Result is what a parser returns. Each parser fills the fields its format
// can provide; nil fields are not populated.
type Result struct {
	Magnetization *Magnetization
	Coordinates   *Coordinates
	TimeSeries    *TimeSeries
	Metadata      map[string]string //file and simulation metadata
	Header        map[string]string //the original header, as found in the file
}

// Has returns true if the key is populated in R.
func (R *Result) Has(key string) bool {
	switch key {
	case KeyMagnetization:
		return R.Magnetization != nil
	case KeyCoordinates:
		return R.Coordinates != nil
	case KeyTimeSeries:
		return R.TimeSeries != nil
	case KeyMetadata:
		return R.Metadata != nil
	case KeyHeader:
		return R.Header != nil
	}
	return false
}

// Keys returns the populated keys, in a fixed order.
func (R *Result) Keys() []string {
	ret := make([]string, 0, len(resultKeys))
	for _, k := range resultKeys {
		if R.Has(k) {
			ret = append(ret, k)
		}
	}
	return ret
}

// Coordinates holds the spatial position of each sample point.
// All three slices have the same length.
type Coordinates struct {
	X []float64
	Y []float64
	Z []float64
}

// Len returns the number of sample points.
func (C *Coordinates) Len() int {
	return len(C.X)
}

// Magnetization holds the raw magnetization components of each sample,
// plus the quantities derived from them. All slices have the same length.
type Magnetization struct {
	Mx, My, Mz             []float64
	Magnitude              []float64
	MxNorm, MyNorm, MzNorm []float64
	Theta                  []float64 //polar angle, [0, π]
	Phi                    []float64 //azimuthal angle, (-π, π]
}

// Len returns the number of samples.
func (M *Magnetization) Len() int {
	return len(M.Mx)
}

// Component returns the field with the given name ("mx", "my", "mz",
// "magnitude", "mx_norm", "my_norm", "mz_norm", "theta" or "phi"),
// and false if there is no such field.
func (M *Magnetization) Component(name string) ([]float64, bool) {
	switch name {
	case "mx":
		return M.Mx, true
	case "my":
		return M.My, true
	case "mz":
		return M.Mz, true
	case "magnitude":
		return M.Magnitude, true
	case "mx_norm":
		return M.MxNorm, true
	case "my_norm":
		return M.MyNorm, true
	case "mz_norm":
		return M.MzNorm, true
	case "theta":
		return M.Theta, true
	case "phi":
		return M.Phi, true
	}
	return nil, false
}

// TimeSeries is a table of scalar quantities, one row per output step.
type TimeSeries struct {
	Columns []string //in file order
	Units   []string //same order as Columns, "" if unknown
	Data    map[string][]float64
}

// Column returns the values of the named column, and false
// if the column does not exist.
func (T *TimeSeries) Column(name string) ([]float64, bool) {
	d, ok := T.Data[name]
	return d, ok
}

// Len returns the number of rows.
func (T *TimeSeries) Len() int {
	if len(T.Columns) == 0 {
		return 0
	}
	return len(T.Data[T.Columns[0]])
}
