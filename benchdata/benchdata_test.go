// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLabelEquality(t *testing.T) {
	a := Settings{}
	a["scalar"] = "float"
	a["alpha"] = "0xFF"
	a["persp"] = ""
	b := Settings{"persp": "", "alpha": "0xFF", "scalar": "float"}

	la := NewLabel("rects", "8888", "", a)
	lb := NewLabel("rects", "8888", "", b)
	if la != lb {
		t.Errorf("labels with equal settings differ: %q vs %q", la.settings, lb.settings)
	}
	m := map[Label]int{la: 1}
	if m[lb] != 1 {
		t.Errorf("equal labels hash differently")
	}

	for _, other := range []Label{
		NewLabel("rects", "8888", "c", a),
		NewLabel("rects", "565", "", a),
		NewLabel("paths", "8888", "", a),
		NewLabel("rects", "8888", "", Settings{"alpha": "0xFF", "scalar": "float"}),
		NewLabel("rects", "8888", "", Settings{"persp": "1", "alpha": "0xFF", "scalar": "float"}),
	} {
		if other == la {
			t.Errorf("%v == %v", other, la)
		}
	}
}

func TestLabelSettingsRoundTrip(t *testing.T) {
	in := Settings{"a": "1", `we"ird`: "x y", "flag": ""}
	l := NewLabel("b", "c", "", in)
	got := l.Settings()
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
	got["a"] = "2"
	if l.Settings()["a"] != "1" {
		t.Errorf("Settings returned shared map")
	}
}

func TestLabelString(t *testing.T) {
	l := NewLabel("bitmap_8888", "8888", "c", Settings{"scalar": "float", "alpha": "0xFF", "clip": ""})
	if got, want := l.Prefix(), "bitmap_8888_8888_c"; got != want {
		t.Errorf("Prefix() = %q, want %q", got, want)
	}
	if got, want := l.String(), "bitmap_8888_8888_c_{alpha:0xFF, clip:true, scalar:float}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	wall := NewLabel("x", "gpu", "", nil)
	if got, want := wall.Prefix(), "x_gpu_"; got != want {
		t.Errorf("wall Prefix() = %q, want %q", got, want)
	}
}

func TestStore(t *testing.T) {
	var s Store
	if _, _, ok := s.Span(); ok {
		t.Fatal("empty store has a span")
	}
	p1 := &Point{Bench: "a", Time: 1}
	p2 := &Point{Bench: "b", Time: 2}
	p3 := &Point{Bench: "c", Time: 3}
	s.Add(12, p1)
	s.Add(3, p2)
	s.Add(12, p3)
	s.Add(7)

	if diff := cmp.Diff([]int{3, 7, 12}, s.Revisions()); diff != "" {
		t.Errorf("Revisions (-want +got):\n%s", diff)
	}
	if got := s.Points(12); len(got) != 2 || got[0] != p1 || got[1] != p3 {
		t.Errorf("Points(12) lost insertion order: %v", got)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if o, n, ok := s.Span(); !ok || o != 3 || n != 12 {
		t.Errorf("Span() = %d, %d, %v; want 3, 12, true", o, n, ok)
	}
}
