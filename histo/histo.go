/*
 * histo.go, part of magio.
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

// Package histo builds histograms of sampled quantities, mainly the
// distribution of the magnetization angles of a vector field.
package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/maglogic/magio"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram: the number of values between each pair of
// consecutive dividers. Bins are closed on the left, and the last
// bin is also closed on the right. Values outside the dividers are omitted.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// Uniform returns bins+1 evenly spaced dividers from min to max.
// It panics if bins < 1 or min >= max.
func Uniform(min, max float64, bins int) []float64 {
	if bins < 1 || !(min < max) {
		panic(fmt.Sprintf("histo.Uniform: can't divide [%g, %g] in %d bins", min, max, bins))
	}
	d := floats.Span(make([]float64, bins+1), min, max)
	d[bins] = max
	return d
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil, in which case an empty histogram is created.
// Neither slice is modified. It panics if there are less than 2 dividers
// or if they are not sorted.
func NewData(dividers, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: at least 2 sorted dividers are needed")
	}
	d := &Data{dividers: append([]float64(nil), dividers...)}
	d.ReHisto(rawdata)
	return d
}

// ReHisto discards the current counts and bins rawdata instead.
func (D *Data) ReHisto(rawdata []float64) {
	raw := append([]float64(nil), rawdata...)
	sort.Float64s(raw)
	first, last := D.dividers[0], D.dividers[len(D.dividers)-1]
	//stat.Histogram panics for values off limits, so we remove them first.
	mini := sort.SearchFloat64s(raw, first)
	maxi := sort.SearchFloat64s(raw, last)
	edge := 0
	for _, v := range raw[maxi:] {
		if v != last {
			break
		}
		edge++
	}
	raw = raw[mini:maxi]
	D.histo = stat.Histogram(nil, D.dividers, raw, nil)
	D.histo[len(D.histo)-1] += float64(edge)
	D.total = len(raw) + edge
	D.normalized = false
}

// AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v == D.dividers[last] {
			D.histo[last-1]++
			D.total++
			continue
		}
		for j := 0; j < last; j++ {
			if D.dividers[j] <= v && v < D.dividers[j+1] {
				D.histo[j]++
				D.total++
				break
			}
		}
	}
	if norma {
		D.Normalize()
	}
}

// Total returns the number of values counted.
func (D *Data) Total() int {
	return D.total
}

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides each bin by the number of values counted,
// so the histogram adds up to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

// UnNormalize undoes Normalize.
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := float64(D.total)
	if normalize {
		n = 1 / n
	}
	floats.Scale(n, D.histo)
	D.normalized = normalize
}

// Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// View returns the bins of the histogram, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// String prints the histogram in 2 lines: the bin limits and the bin values.
func (D *Data) String() string {
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return fmt.Sprintf("Normalized: %v, TotalData: %d\n%s\n%s", D.normalized, D.total, strings.Join(d, " "), strings.Join(h, " "))
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

// Angles returns histograms, with the given number of bins, of the polar
// (0 to 180) and azimuthal (-180 to 180) angles of m, in degrees.
func Angles(m *magio.Magnetization, bins int) (theta, phi *Data) {
	return NewData(Uniform(0, 180, bins), degrees(m.Theta, 0, 180)),
		NewData(Uniform(-180, 180, bins), degrees(m.Phi, -180, 180))
}

// degrees converts rad to degrees, absorbing the rounding
// that would push an angle just off [lo, hi].
func degrees(rad []float64, lo, hi float64) []float64 {
	ret := make([]float64, len(rad))
	for i, v := range rad {
		ret[i] = math.Min(math.Max(v*180/math.Pi, lo), hi)
	}
	return ret
}
