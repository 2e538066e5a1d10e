// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchchart

import (
	"math"
	"testing"

	"github.com/benchgraph/benchgraph/benchseries"
)

func TestComputeSize(t *testing.T) {
	for _, test := range []struct {
		name               string
		reqW, reqH, dw, dh float64
		wantW, wantH       float64
	}{
		{"width only", 100, 0, 10, 5, 100, 50},
		{"height only", 0, 50, 10, 5, 100, 50},
		{"both", 100, 50, 1000, 1, 100, 50},
		{"neither, tall data", 0, 0, 10, 5, 1600, 800},
		{"neither, many revisions", 0, 0, 1000, 5000, 3000, 800},
	} {
		w, h := ComputeSize(test.reqW, test.reqH, test.dw, test.dh)
		if w != test.wantW || h != test.wantH {
			t.Errorf("%s: ComputeSize = %v, %v; want %v, %v", test.name, w, h, test.wantW, test.wantH)
		}
	}
}

func TestNewLayoutDegenerate(t *testing.T) {
	for _, box := range []benchseries.Rect{
		{MinX: 5, MaxX: 5, MinY: 1, MaxY: 10},
		{MinX: 1, MaxX: 5, MinY: 0, MaxY: 0},
	} {
		if l, ok := NewLayout(box, 100, 0); ok || l != nil {
			t.Errorf("NewLayout(%+v) = %v, %v; want nil, false", box, l, ok)
		}
	}
	// A flat series above zero still has height once the value axis
	// starts at 0.
	if _, ok := NewLayout(benchseries.Rect{MinX: 1, MaxX: 5, MinY: 3, MaxY: 3}, 0, 0); !ok {
		t.Errorf("NewLayout of flat nonzero series failed")
	}
}

func TestLayoutTransform(t *testing.T) {
	l, ok := NewLayout(benchseries.Rect{MinX: 10, MaxX: 20, MinY: 2, MaxY: 5}, 100, 0)
	if !ok {
		t.Fatal("NewLayout failed")
	}
	if l.Box.MinY != 0 {
		t.Errorf("Box.MinY = %v, want 0", l.Box.MinY)
	}
	if l.Width != 100 || l.Height != 50 {
		t.Fatalf("size = %v x %v, want 100 x 50", l.Width, l.Height)
	}
	near := func(got, want float64) bool { return math.Abs(got-want) < 1e-9 }
	for _, c := range []struct {
		name      string
		got, want float64
	}{
		{"X(10)", l.X(10), 0},
		{"X(15)", l.X(15), 50},
		{"X(20)", l.X(20), 100},
		{"DW(2)", l.DW(2), 20},
		{"Y(0)", l.Y(0), 50},
		{"Y(5)", l.Y(5), 0},
		{"Y(2)", l.Y(2), 30},
		{"DH(1)", l.DH(1), -10},
	} {
		if !near(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}
