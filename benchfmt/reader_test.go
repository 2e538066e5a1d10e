// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/benchgraph/benchgraph/benchdata"
)

func parseAll(t *testing.T, data string, rep Representation) []Record {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test", benchdata.Settings{"scalar": "float"}, rep)
	var out []Record
	for r.Scan() {
		out = append(out, r.Result())
	}
	if err := r.Err(); err != nil {
		t.Fatal("parsing failed: ", err)
	}
	return out
}

func printRecord(w io.Writer, r Record) {
	switch r := r.(type) {
	case *Result:
		p := r.Point
		fmt.Fprintf(w, "%s %s %q %s %v", p.Bench, p.Config, p.TimeType, p.Settings, p.Time)
		if p.TileLayout != "" {
			fmt.Fprintf(w, " %s %v", p.TileLayout, p.PerTile)
		}
		fmt.Fprintf(w, "\n")
	case *SyntaxError:
		fmt.Fprintf(w, "SyntaxError: %s\n", r)
	default:
		fmt.Fprintf(w, "%#v\n", r)
	}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input string
		rep         Representation
		want        string
	}
	for _, test := range []testCase{
		{
			"basic",
			`skia bench: alpha=0xFF antialias=0 scalar=fixed
running bench [640 480]         bitmap_8888   8888:  cmsecs =   2.48  msecs =   2.50  565: msecs =   2.06
running bench [640 480]          rects   8888:  msecs =   1.25  gmsecs = 0.75
`,
			Average,
			`bitmap_8888 8888 "c" {alpha:0xFF, antialias:0, scalar:fixed} 2.48
bitmap_8888 8888 "" {alpha:0xFF, antialias:0, scalar:fixed} 2.5
bitmap_8888 565 "" {alpha:0xFF, antialias:0, scalar:fixed} 2.06
rects 8888 "" {alpha:0xFF, antialias:0, scalar:fixed} 1.25
rects 8888 "g" {alpha:0xFF, antialias:0, scalar:fixed} 0.75
`,
		},
		{
			"flag settings",
			`skia bench: persp rotate=1
running bench paths  8888: msecs = 4.00
`,
			Average,
			`paths 8888 "" {persp:true, rotate:1, scalar:float} 4
`,
		},
		{
			"settings change between benches",
			`skia bench: mode=a
running bench paths  8888: msecs = 4.00
skia bench: mode=b
running bench paths2  8888: msecs = 5.00
`,
			Average,
			`paths 8888 "" {mode:a, scalar:float} 4
paths2 8888 "" {mode:b, scalar:float} 5
`,
		},
		{
			"iterations avg",
			"running bench x  8888: msecs = 1.00,2.00,3.00,10.00\n",
			Average,
			"x 8888 \"\" {scalar:float} 4\n",
		},
		{
			"iterations min",
			"running bench x  8888: msecs = 3.00,2.00,1.00,10.00\n",
			Minimum,
			"x 8888 \"\" {scalar:float} 1\n",
		},
		{
			"iterations med",
			"running bench x  8888: msecs = 4.00, 3.00,2.00,1.00\n",
			Median,
			"x 8888 \"\" {scalar:float} 3\n",
		},
		{
			"iterations 25th",
			"running bench x  8888: msecs = 4.00,3.00,2.00,1.00\n",
			Percentile25,
			"x 8888 \"\" {scalar:float} 2\n",
		},
		{
			"timing lines follow bench",
			`running bench x
  8888: msecs = 1.50
  gpu: msecs = 2.50
running bench y
  8888: msecs = 3.50
`,
			Average,
			`x 8888 "" {scalar:float} 1.5
x gpu "" {scalar:float} 2.5
y 8888 "" {scalar:float} 3.5
`,
		},
		{
			"per tile",
			`running bench [1000 1000] desk.skp
  tile_8888: tile [0,0] out of [2,1] <averaged>: msecs = 1.00
  tile_8888: tile [1,0] out of [2,1] <averaged>: msecs = 2.50
  tile_8888: tile [1,0] out of [2,1]: msecs = 99.00
`,
			Average,
			`desk.skp tile_8888 "" {scalar:float} 3.5 2x1 [1 2.5]
`,
		},
		{
			"timing before bench",
			`  8888: msecs = 1.50
running bench x  8888: msecs = 2.00
`,
			Average,
			`SyntaxError: test:1: timing data outside of a bench
x 8888 "" {scalar:float} 2
`,
		},
		{
			"noise",
			`random text
running bench [640 480]  x
nothing: here
`,
			Average,
			``,
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			var got strings.Builder
			for _, rec := range parseAll(t, test.input, test.rep) {
				printRecord(&got, rec)
			}
			if got.String() != test.want {
				t.Errorf("got:\n%s\nwant:\n%s", got.String(), test.want)
			}
		})
	}
}

func TestReaderPos(t *testing.T) {
	recs := parseAll(t, "running bench a\n\n  8888: msecs = 1.00\n", Average)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if f, l := recs[0].Pos(); f != "test" || l != 3 {
		t.Errorf("Pos() = %s:%d, want test:3", f, l)
	}
}

func TestResultBeforeScan(t *testing.T) {
	r := NewReader(strings.NewReader(""), "", nil, Average)
	if _, ok := r.Result().(*SyntaxError); !ok {
		t.Errorf("Result before Scan = %T, want *SyntaxError", r.Result())
	}
	if r.Scan() {
		t.Errorf("Scan on empty input returned true")
	}
}

func TestParse(t *testing.T) {
	var warnings []error
	pts, err := Parse(benchdata.Settings{"scalar": "float"},
		strings.NewReader("  8888: msecs = 1.00\nrunning bench a  8888: msecs = 1.00\n"),
		Average, func(err error) { warnings = append(warnings, err) })
	if err != nil {
		t.Fatal(err)
	}
	if len(pts) != 1 || pts[0].Bench != "a" {
		t.Errorf("Parse = %v, want one point of bench a", pts)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestParseRepresentation(t *testing.T) {
	for in, want := range map[string]Representation{"": Average, "avg": Average, "min": Minimum, "med": Median, "25th": Percentile25} {
		got, err := ParseRepresentation(in)
		if err != nil || got != want {
			t.Errorf("ParseRepresentation(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseRepresentation("max"); err == nil {
		t.Errorf("ParseRepresentation(max) succeeded")
	}
}
