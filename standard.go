/*
 * standard.go, part of magio.
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

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MagnitudeEpsilon is the magnitude at or below which a magnetization
// vector is not normalized.
const MagnitudeEpsilon = 1e-15

// StandardizeCoordinates puts the coordinate slices in a Coordinates
// structure. The slices are not copied. It returns an error if the
// slices do not have the same length.
func StandardizeCoordinates(x, y, z []float64) (*Coordinates, error) {
	if len(y) != len(x) || len(z) != len(x) {
		return nil, Errorf(ErrInvalidArgument, "", "", "coordinate lengths differ: x=%d y=%d z=%d", len(x), len(y), len(z))
	}
	return &Coordinates{X: x, Y: y, Z: z}, nil
}

// StandardizeMagnetization returns the magnetization components together with
// the magnitude, the normalized components, and the polar (theta) and
// azimuthal (phi) angles of each sample. The given slices are kept, not copied,
// and never modified.
//
// Samples with a magnitude at or below MagnitudeEpsilon are not normalized:
// their "normalized" components are the raw ones. Theta is obtained from the
// normalized z component, clamped to [-1, 1]. Phi is obtained from the raw
// x and y components.
func StandardizeMagnetization(mx, my, mz []float64) (*Magnetization, error) {
	n := len(mx)
	if len(my) != n || len(mz) != n {
		return nil, Errorf(ErrInvalidArgument, "", "", "magnetization lengths differ: mx=%d my=%d mz=%d", len(mx), len(my), len(mz))
	}
	M := &Magnetization{
		Mx:        mx,
		My:        my,
		Mz:        mz,
		Magnitude: make([]float64, n),
		MxNorm:    make([]float64, n),
		MyNorm:    make([]float64, n),
		MzNorm:    make([]float64, n),
		Theta:     make([]float64, n),
		Phi:       make([]float64, n),
	}
	for i := 0; i < n; i++ {
		mag, unit := norm3(mx[i], my[i], mz[i])
		M.Magnitude[i] = mag
		if mag > MagnitudeEpsilon {
			M.MxNorm[i], M.MyNorm[i], M.MzNorm[i] = unit[0], unit[1], unit[2]
		} else {
			M.MxNorm[i], M.MyNorm[i], M.MzNorm[i] = mx[i], my[i], mz[i]
		}
		M.Theta[i] = math.Acos(clamp(M.MzNorm[i], -1, 1))
		M.Phi[i] = math.Atan2(my[i], mx[i])
	}
	return M, nil
}

// norm3 returns the length of (x, y, z) and the vector divided by it.
// The components are scaled by the largest one first, so squaring them
// neither overflows nor underflows. The unit vector is meaningless
// for a zero length.
func norm3(x, y, z float64) (float64, [3]float64) {
	s := math.Max(math.Abs(x), math.Max(math.Abs(y), math.Abs(z)))
	if s == 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		mag := math.Sqrt(x*x + y*y + z*z)
		return mag, [3]float64{x / mag, y / mag, z / mag}
	}
	a, b, c := x/s, y/s, z/s
	r := math.Sqrt(a*a + b*b + c*c)
	return s * r, [3]float64{a / r, b / r, c / r}
}

// clamp keeps NaNs as they are.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// VolumeAverage returns the mean of data. If weights is not nil (for instance,
// the volumes of the cells) the weighted mean sum(data*weights)/sum(weights)
// is returned instead. It returns an error if data is empty, if weights
// and data have different lengths, or if the weights add up to zero.
func VolumeAverage(data, weights []float64) (float64, error) {
	if len(data) == 0 {
		return 0, NewError(ErrInvalidArgument, "", "", "no data to average")
	}
	if weights == nil {
		return stat.Mean(data, nil), nil
	}
	if len(weights) != len(data) {
		return 0, Errorf(ErrInvalidArgument, "", "", "%d weights given for %d data points", len(weights), len(data))
	}
	if floats.Sum(weights) == 0 {
		return 0, NewError(ErrInvalidArgument, "", "", "weights sum to zero")
	}
	return stat.Mean(data, weights), nil
}

// Average returns the volume-averaged raw magnetization vector.
// weights can be nil. See VolumeAverage.
func (M *Magnetization) Average(weights []float64) ([3]float64, error) {
	var ret [3]float64
	for i, c := range [][]float64{M.Mx, M.My, M.Mz} {
		avg, err := VolumeAverage(c, weights)
		if err != nil {
			return ret, ErrDecorate(err, "Average")
		}
		ret[i] = avg
	}
	return ret, nil
}
