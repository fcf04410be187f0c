/*
 * timecorr.go, part of magio.
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

// Package magstat contains statistics over the time series written by
// micromagnetic codes, such as the correlation functions of table columns.
package magstat

import (
	"math"
	"math/cmplx"

	"github.com/maglogic/magio"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

const format = "magstat"

func cmplxMulConj(dst, b []complex128) {
	for i, v := range b {
		dst[i] *= cmplx.Conj(v)
	}
}

// CrossCorrelation returns the normalized cross-correlation of c1 and c2
// for the lags 0 to len(c1)-1:
//
//	r[k] = sum_i (c1[i+k]-<c1>)(c2[i]-<c2>) / (N std(c1) std(c2))
//
// It is computed through FFTs, with both series zero-padded to twice
// their length so the result is not circular. The series must have
// the same length, at least 2, and must not be constant.
func CrossCorrelation(c1, c2 []float64) ([]float64, error) {
	if len(c1) != len(c2) {
		return nil, magio.Errorf(magio.ErrInvalidArgument, format, "", "series of lengths %d and %d can't be correlated", len(c1), len(c2))
	}
	if len(c1) < 2 {
		return nil, magio.Errorf(magio.ErrInvalidArgument, format, "", "%d points are not enough for a correlation", len(c1))
	}
	c1mean, c1var := stat.PopMeanVariance(c1, nil)
	c2mean, c2var := stat.PopMeanVariance(c2, nil)
	norm := math.Sqrt(c1var * c2var)
	if norm == 0 || math.IsNaN(norm) {
		return nil, magio.NewError(magio.ErrInvalidArgument, format, "", "a constant series has no correlation function")
	}
	c1pad := make([]complex128, 2*len(c1))
	c2pad := make([]complex128, 2*len(c2))
	for i, v := range c1 {
		c1pad[i] = complex(v-c1mean, 0)
		c2pad[i] = complex(c2[i]-c2mean, 0)
	}
	f := fourier.NewCmplxFFT(len(c1pad))
	f.Coefficients(c1pad, c1pad)
	f.Coefficients(c2pad, c2pad)
	cmplxMulConj(c1pad, c2pad)
	f.Sequence(c1pad, c1pad)
	//the inverse transform is not normalized.
	scale := 1 / (float64(len(c1pad)) * float64(len(c1)) * norm)
	ret := make([]float64, len(c1))
	for i := range ret {
		ret[i] = real(c1pad[i]) * scale
	}
	return ret, nil
}

// AutoCorrelation returns the normalized autocorrelation function of c,
// for the lags 0 to len(c)-1. See CrossCorrelation.
func AutoCorrelation(c []float64) ([]float64, error) {
	return CrossCorrelation(c, c)
}

// ColumnAutoCorrelation returns the autocorrelation function of the
// column named col in ts.
func ColumnAutoCorrelation(ts *magio.TimeSeries, col string) ([]float64, error) {
	c, ok := ts.Column(col)
	if !ok {
		return nil, magio.Errorf(magio.ErrInvalidArgument, format, "", "no column %q in the time series", col)
	}
	ret, err := AutoCorrelation(c)
	if err != nil {
		return nil, magio.ErrDecorate(err, "ColumnAutoCorrelation")
	}
	return ret, nil
}
