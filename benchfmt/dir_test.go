// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"testing"
	"testing/fstest"

	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/google/go-cmp/cmp"
)

func TestParseFileName(t *testing.T) {
	for _, test := range []struct {
		name   string
		rev    int
		scalar string
		ok     bool
	}{
		{"bench_r1234_float", 1234, "float", true},
		{"bench_r7_fixed_data", 7, "fixed_data", true},
		{"bench_r_float", 0, "", false},
		{"xbench_r12_float", 0, "", false},
		{"bench_r12", 0, "", false},
	} {
		rev, scalar, ok := ParseFileName(test.name)
		if rev != test.rev || scalar != test.scalar || ok != test.ok {
			t.Errorf("ParseFileName(%q) = %d, %q, %v; want %d, %q, %v", test.name, rev, scalar, ok, test.rev, test.scalar, test.ok)
		}
	}
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"bench_r10_float": {Data: []byte("running bench a  8888: msecs = 1.00\n")},
		"bench_r10_fixed": {Data: []byte("running bench a  8888: msecs = 3.00\n")},
		"bench_r9_float":  {Data: []byte("running bench a  8888: msecs = 2.00\n")},
		"bench_r12_float": {Data: []byte("  8888: msecs = 1.00\nrunning bench b  565: msecs = 4.00\n")},
		"README":          {Data: []byte("not a bench file\n")},
	}
}

func TestLatestRevision(t *testing.T) {
	rev, ok, err := LatestRevision(testFS())
	if err != nil || !ok || rev != 12 {
		t.Errorf("LatestRevision = %d, %v, %v; want 12, true, nil", rev, ok, err)
	}
	_, ok, err = LatestRevision(fstest.MapFS{"README": {}})
	if err != nil || ok {
		t.Errorf("LatestRevision of dir without bench files = %v, %v; want false, nil", ok, err)
	}
}

func TestDirRead(t *testing.T) {
	var warnings []error
	d := &Dir{
		FS:             testFS(),
		Defaults:       benchdata.Settings{"mode": "x"},
		Representation: Average,
		Oldest:         10,
		Newest:         12,
		Warn:           func(err error) { warnings = append(warnings, err) },
	}
	store, err := d.Read()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{10, 12}, store.Revisions()); diff != "" {
		t.Errorf("revisions (-want +got):\n%s", diff)
	}
	// Files are read in name order, so "fixed" comes before "float".
	want := []*benchdata.Point{
		{Bench: "a", Config: "8888", Settings: benchdata.Settings{"mode": "x", "scalar": "fixed"}, Time: 3},
		{Bench: "a", Config: "8888", Settings: benchdata.Settings{"mode": "x", "scalar": "float"}, Time: 1},
	}
	if diff := cmp.Diff(want, store.Points(10)); diff != "" {
		t.Errorf("revision 10 (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1: %v", len(warnings), warnings)
	}
	if d.Defaults["scalar"] != "" {
		t.Errorf("Read modified Defaults")
	}
}
