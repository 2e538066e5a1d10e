// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchchart renders bench series as an interactive SVG chart
// embedded in an HTML page, or as a static PNG.
package benchchart

import (
	"github.com/aclements/go-moremath/scale"
	"github.com/benchgraph/benchgraph/benchseries"
)

// DefaultHeight is the chart height used when no size is requested.
const DefaultHeight = 800

// ComputeSize resolves a requested chart size against the size of the
// data. A requested dimension of 0 means none was requested.
//
// If both dimensions are requested they are used as is. If only one
// is, the other follows the aspect ratio of the data. If neither is,
// the height is DefaultHeight and the width is the larger of three
// pixels per revision and the width that keeps the aspect ratio.
//
// dataW and dataH must not be zero.
func ComputeSize(reqW, reqH float64, dataW, dataH float64) (w, h float64) {
	switch {
	case reqW != 0 && reqH != 0:
		return reqW, reqH
	case reqW != 0:
		return reqW, reqW * (dataH / dataW)
	case reqH != 0:
		return reqH * (dataW / dataH), reqH
	}
	h = DefaultHeight
	w = dataW * 3
	if aw := h * (dataW / dataH); aw > w {
		w = aw
	}
	return w, h
}

// A Layout maps data space, revisions by value, onto display space,
// where y grows downward. The value axis always starts at 0.
type Layout struct {
	// Width and Height are the display size in pixels.
	Width, Height float64

	// Box is the data rectangle shown. Box.MinY is always 0.
	Box benchseries.Rect

	xs, ys scale.Linear
}

// NewLayout returns the Layout for showing box at the requested size
// (see ComputeSize). The value axis of box is extended down to 0.
// ok is false, and nothing can be drawn, if the shown data has zero
// width or height.
func NewLayout(box benchseries.Rect, reqW, reqH float64) (l *Layout, ok bool) {
	box.MinY = 0
	if box.Width() == 0 || box.Height() == 0 {
		return nil, false
	}
	l = &Layout{Box: box}
	l.Width, l.Height = ComputeSize(reqW, reqH, box.Width(), box.Height())
	l.xs = scale.Linear{Min: box.MinX, Max: box.MaxX}
	l.ys = scale.Linear{Min: box.MinY, Max: box.MaxY}
	return l, true
}

// DW converts a revision difference to a display width.
func (l *Layout) DW(dw float64) float64 {
	return l.Width / l.Box.Width() * dw
}

// X converts a revision to a horizontal display position.
func (l *Layout) X(x float64) float64 {
	return l.xs.Map(x) * l.Width
}

// DH converts a value difference to a display height. The result is
// negated because display y grows downward.
func (l *Layout) DH(dh float64) float64 {
	return -(l.Height / l.Box.Height()) * dh
}

// Y converts a value to a vertical display position.
func (l *Layout) Y(y float64) float64 {
	return l.Height - l.ys.Map(y)*l.Height
}
