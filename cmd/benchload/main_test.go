// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benchgraph/benchgraph/storage/db"
	"github.com/benchgraph/benchgraph/storage/db/sqlite3"
	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "samples.db")
	var stderr bytes.Buffer
	if err := run([]string{"-dsn", dsn, "-v", "-r", "11", "-default-setting", "mode=x", "../benchgraph/testdata/bench"}, &stderr); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(stderr.String(), "stored 3 point(s)"); n != 2 {
		t.Errorf("log reports %d stored revisions, want 2:\n%s", n, stderr.String())
	}

	ctx := context.Background()
	d, err := db.OpenSQL(sqlite3.DriverName, dsn)
	if err != nil {
		t.Fatal(err)
	}
	defer d.Close()
	store, err := d.Query(ctx, 0, 100)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{11, 12}, store.Revisions()); diff != "" {
		t.Errorf("revisions mismatch (-want +got):\n%s", diff)
	}
	for _, p := range store.Points(12) {
		if p.Settings["mode"] != "x" || p.Settings["scalar"] != "float" {
			t.Errorf("%s has settings %s, want mode and scalar", p.Bench, p.Settings)
		}
	}
}

func TestParseRange(t *testing.T) {
	for _, test := range []struct {
		s              string
		oldest, newest int
		ok             bool
	}{
		{"0:", 0, int(^uint(0) >> 1), true},
		{"10:20", 10, 20, true},
		{"-1:", 0, 0, false},
		{"x", 0, 0, false},
	} {
		oldest, newest, err := parseRange(test.s)
		if (err == nil) != test.ok || oldest != test.oldest || newest != test.newest {
			t.Errorf("parseRange(%q) = %d, %d, %v; want %d, %d, ok=%v", test.s, oldest, newest, err, test.oldest, test.newest, test.ok)
		}
	}
}
