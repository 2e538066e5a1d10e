// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
)

// A Representation selects how the per-iteration times of one
// measurement are reduced to a single value.
type Representation string

const (
	Average      Representation = "avg"
	Minimum      Representation = "min"
	Median       Representation = "med"
	Percentile25 Representation = "25th"
)

// ParseRepresentation parses the name of a representation.
// The empty string selects Average.
func ParseRepresentation(s string) (Representation, error) {
	switch r := Representation(s); r {
	case "":
		return Average, nil
	case Average, Minimum, Median, Percentile25:
		return r, nil
	}
	return "", fmt.Errorf("unknown representation %q (want avg, min, med or 25th)", s)
}

// String returns the name of r. The zero Representation is Average.
func (r Representation) String() string {
	if r == "" {
		return string(Average)
	}
	return string(r)
}

// Compute reduces xs, which must be non-empty, to one value.
//
// The percentile representations pick the sample below which the
// given fraction of samples lie rather than interpolating, so that
// quantized timings stay on their quanta.
func (r Representation) Compute(xs []float64) float64 {
	switch r {
	case "", Average:
		return stats.Mean(xs)
	case Minimum:
		lo, _ := stats.Bounds(xs)
		return lo
	case Median:
		return pick(xs, 0.5)
	case Percentile25:
		return pick(xs, 0.25)
	}
	panic("unknown representation " + string(r))
}

func pick(xs []float64, p float64) float64 {
	s := stats.Sample{Xs: append([]float64(nil), xs...)}
	s.Sort()
	i := int(math.Round(p*float64(len(s.Xs))+0.5)) - 1
	return s.Xs[i]
}
