/*
 * timecorr_test.go, part of magio.
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

package magstat

import (
	"errors"
	"math"
	"testing"

	"github.com/maglogic/magio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// direct computes the cross-correlation by the definition.
func direct(c1, c2 []float64) []float64 {
	n := float64(len(c1))
	var m1, m2, v1, v2 float64
	for i := range c1 {
		m1 += c1[i] / n
		m2 += c2[i] / n
	}
	for i := range c1 {
		v1 += (c1[i] - m1) * (c1[i] - m1) / n
		v2 += (c2[i] - m2) * (c2[i] - m2) / n
	}
	ret := make([]float64, len(c1))
	for k := range ret {
		for i := 0; i+k < len(c1); i++ {
			ret[k] += (c1[i+k] - m1) * (c2[i] - m2)
		}
		ret[k] /= n * math.Sqrt(v1*v2)
	}
	return ret
}

func TestAutoCorrelation(Te *testing.T) {
	r, err := AutoCorrelation([]float64{1, -1, 1, -1})
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{1, -0.75, 0.5, -0.25}, r, 1e-12)

	// a damped precession, as in a ringdown table
	mx := make([]float64, 50)
	for i := range mx {
		t := float64(i) * 0.1
		mx[i] = math.Exp(-t/2) * math.Cos(3*t)
	}
	r, err = AutoCorrelation(mx)
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, r[0], 1e-12)
	assert.InDeltaSlice(Te, direct(mx, mx), r, 1e-10)
}

func TestCrossCorrelation(Te *testing.T) {
	a := []float64{0, 1, 3, 1, 0, 0, 0, 2}
	b := []float64{1, 3, 1, 0, 0, 0, 2, 0}
	r, err := CrossCorrelation(a, b)
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, direct(a, b), r, 1e-10)
	// a lags b by one step.
	best := 0
	for k, v := range r {
		if v > r[best] {
			best = k
		}
	}
	assert.Equal(Te, 1, best)
}

func TestCorrelationErrors(Te *testing.T) {
	cases := map[string][2][]float64{
		"mismatch": {{1, 2, 3}, {1, 2}},
		"short":    {{1}, {1}},
		"empty":    {nil, nil},
		"constant": {{2, 2, 2}, {1, 2, 3}},
	}
	for name, c := range cases {
		_, err := CrossCorrelation(c[0], c[1])
		assert.True(Te, errors.Is(err, magio.ErrInvalidArgument), name)
	}
}

func TestColumnAutoCorrelation(Te *testing.T) {
	ts := &magio.TimeSeries{
		Columns: []string{"t", "mx"},
		Units:   []string{"s", ""},
		Data: map[string][]float64{
			"t":  {0, 1, 2, 3},
			"mx": {1, -1, 1, -1},
		},
	}
	r, err := ColumnAutoCorrelation(ts, "mx")
	require.NoError(Te, err)
	assert.Len(Te, r, 4)
	assert.InDelta(Te, -0.75, r[1], 1e-12)

	_, err = ColumnAutoCorrelation(ts, "my")
	assert.True(Te, errors.Is(err, magio.ErrInvalidArgument))
}
