/*
 * plot.go, part of magio.
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
	"path/filepath"

	"github.com/maglogic/magio/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writeHistograms saves the histograms of the polar and azimuthal angles,
// as given by histo.Angles, to dir/<base>_theta.png and dir/<base>_phi.png.
// It returns the names of the files written.
func writeHistograms(dir, base string, theta, phi *histo.Data) ([]string, error) {
	angles := []struct {
		name string
		data *histo.Data
	}{
		{"theta", theta},
		{"phi", phi},
	}
	var written []string
	for _, a := range angles {
		h, err := histPlotter(a.data)
		if err != nil {
			return written, err
		}
		div := a.data.Dividers()
		p := plot.New()
		p.Title.Text = base + ": " + a.name
		p.Title.Padding = 3 * vg.Millimeter
		p.X.Label.Text = a.name + " (degrees)"
		p.Y.Label.Text = "samples"
		p.X.Min = div[0]
		p.X.Max = div[len(div)-1]
		p.Add(plotter.NewGrid())
		p.Add(h)
		name := filepath.Join(dir, base+"_"+a.name+".png")
		if err := p.Save(6*vg.Inch, 4*vg.Inch, name); err != nil {
			return written, err
		}
		written = append(written, name)
	}
	return written, nil
}

// histPlotter turns d into a plotter.Histogram with the same bins.
func histPlotter(d *histo.Data) (*plotter.Histogram, error) {
	div := d.Dividers()
	counts := d.View()
	xys := make(plotter.XYs, len(counts))
	bins := make([]plotter.HistogramBin, len(counts))
	for i, c := range counts {
		xys[i].X = (div[i] + div[i+1]) / 2
		xys[i].Y = c
		bins[i] = plotter.HistogramBin{Min: div[i], Max: div[i+1], Weight: c}
	}
	h, err := plotter.NewHistogram(xys, len(counts))
	if err != nil {
		return nil, err
	}
	//NewHistogram bins over the range of the data, not over the dividers.
	h.Bins = bins
	h.Width = div[1] - div[0]
	return h, nil
}
