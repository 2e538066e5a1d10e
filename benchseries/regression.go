// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import (
	"math"

	"github.com/benchgraph/benchgraph/benchdata"
	"gonum.org/v1/gonum/stat"
)

// A Regression is an ordinary least-squares line through the samples
// of one series, Value = Slope*Revision + Intercept.
type Regression struct {
	Slope, Intercept float64

	// SError is the standard error of Slope. It is 0 when fewer than
	// three samples were fitted, as there is no residual to measure.
	SError float64

	// ResidualError is the standard error of the residuals, in the
	// units of Value.
	ResidualError float64

	// MinX and MaxX are the lowest and highest fitted revisions.
	MinX, MaxX float64
	N          int
}

// Fit fits a Regression to samples. ok is false if there are fewer
// than two samples.
//
// If every sample has the same revision, the fit is the horizontal
// line through the mean value.
func Fit(samples []Sample) (reg *Regression, ok bool) {
	n := len(samples)
	if n < 2 {
		return nil, false
	}
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range samples {
		xs[i], ys[i] = float64(p.Revision), p.Value
	}
	reg = &Regression{N: n, MinX: xs[0], MaxX: xs[0]}
	for _, x := range xs {
		reg.MinX = math.Min(reg.MinX, x)
		reg.MaxX = math.Max(reg.MaxX, x)
	}

	if reg.MinX == reg.MaxX {
		reg.Intercept = stat.Mean(ys, nil)
	} else {
		reg.Intercept, reg.Slope = stat.LinearRegression(xs, ys, nil, false)
	}

	if n < 3 {
		return reg, true
	}
	mx := stat.Mean(xs, nil)
	var ssr, sxx float64
	for i := range xs {
		r := ys[i] - reg.At(xs[i])
		ssr += r * r
		sxx += (xs[i] - mx) * (xs[i] - mx)
	}
	reg.ResidualError = math.Sqrt(ssr / float64(n-2))
	if sxx > 0 {
		reg.SError = reg.ResidualError / math.Sqrt(sxx)
	}
	return reg, true
}

// At returns the value of the line at revision x.
func (r *Regression) At(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// MinSlope returns the slope shrunk toward zero by one standard error,
// stopping at zero. It is the weakest trend the data supports.
func (r *Regression) MinSlope() float64 {
	switch {
	case r.Slope > 0:
		return math.Max(0, r.Slope-r.SError)
	case r.Slope < 0:
		return math.Min(0, r.Slope+r.SError)
	}
	return 0
}

// Regressions fits a Regression to the samples of each label whose
// revision lies in [lo, hi]. Labels with fewer than two such samples
// are omitted.
func (s Series) Regressions(lo, hi int) map[benchdata.Label]*Regression {
	regs := make(map[benchdata.Label]*Regression)
	for l, samples := range s {
		var window []Sample
		for _, p := range samples {
			if lo <= p.Revision && p.Revision <= hi {
				window = append(window, p)
			}
		}
		if reg, ok := Fit(window); ok {
			regs[l] = reg
		}
	}
	return regs
}

// SlopeRange returns the largest and the most negative MinSlope among
// regs. Both start at 0, so up is never negative and down never
// positive.
func SlopeRange(regs map[benchdata.Label]*Regression) (up, down float64) {
	for _, r := range regs {
		ms := r.MinSlope()
		up = math.Max(up, ms)
		down = math.Min(down, ms)
	}
	return up, down
}
