// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expect

import (
	"errors"
	"strings"
	"testing"

	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/benchgraph/benchgraph/benchseries"
	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	const input = `# bench,config,platform,lower,upper

desk.skp_8888_,Linux-avg,Linux,1.5,2.5
   # indented comment
rects_565_c,Linux-avg,Linux, 10 , 20
`
	got, err := Parse(strings.NewReader(input), "exp.txt")
	if err != nil {
		t.Fatal(err)
	}
	want := Table{
		"desk.skp_8888_,Linux-avg": {1.5, 2.5},
		"rects_565_c,Linux-avg":    {10, 20},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name, input, msg string
	}{
		{"fields", "a,b,c,1\n", "exp.txt:1: want 5 fields, got 4"},
		{"lower", "a,b,c,x,1\n", `exp.txt:1: bad lower bound "x"`},
		{"upper", "a,b,c,1,\n", `exp.txt:1: bad upper bound ""`},
		{"duplicate", "a,b,c,1,2\n#\na,b,d,3,4\n", `exp.txt:3: duplicate key "a,b"`},
	} {
		_, err := Parse(strings.NewReader(test.input), "exp.txt")
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("%s: got %v, want a *FormatError", test.name, err)
			continue
		}
		if err.Error() != test.msg {
			t.Errorf("%s: got %q, want %q", test.name, err, test.msg)
		}
	}
}

func TestCheck(t *testing.T) {
	label := benchdata.NewLabel("A", "cfg", "", nil)
	key := label.Prefix() + ",p-alg"
	table := Table{key: {1.0, 2.0}}

	s := benchseries.Series{label: {{Revision: 9, Value: 1.2}, {Revision: 10, Value: 3.0}}}
	err := Check(s, table, 10, "p-alg", nil)
	var ce *CheckError
	if !errors.As(err, &ce) {
		t.Fatalf("Check = %v, want a *CheckError", err)
	}
	if len(ce.Violations) != 1 {
		t.Fatalf("got %d violations, want 1", len(ce.Violations))
	}
	msg := ce.Violations[0].String()
	if want := "Bench A_cfg_,p-alg value 3.0 out of range [1.0, 2.0]."; msg != want {
		t.Errorf("violation = %q, want %q", msg, want)
	}
	if !strings.HasPrefix(err.Error(), "Bench values out of range:\n") {
		t.Errorf("error = %q", err)
	}

	s[label] = []benchseries.Sample{{Revision: 9, Value: 3.0}, {Revision: 10, Value: 1.5}}
	if err := Check(s, table, 10, "p-alg", nil); err != nil {
		t.Errorf("in-range value: %v", err)
	}
}

func TestCheckSkips(t *testing.T) {
	label := benchdata.NewLabel("A", "cfg", "", nil)
	table := Table{label.Prefix() + ",p-alg": {1.0, 2.0}}

	// Latest sample is not at the newest revision.
	s := benchseries.Series{label: {{Revision: 9, Value: 3.0}}}
	if err := Check(s, table, 10, "p-alg", nil); err != nil {
		t.Errorf("stale series: %v", err)
	}
	// No entry for another platform.
	s = benchseries.Series{label: {{Revision: 10, Value: 3.0}}}
	if err := Check(s, table, 10, "q-alg", nil); err != nil {
		t.Errorf("unknown key: %v", err)
	}
}

func TestCheckAggregatesAndLinks(t *testing.T) {
	a := benchdata.NewLabel("desk.skp", "8888", "", nil)
	b := benchdata.NewLabel("rects", "8888", "", nil)
	table := Table{
		a.Prefix() + ",Linux-x86-avg": {1, 2},
		b.Prefix() + ",Linux-x86-avg": {1, 2},
	}
	s := benchseries.Series{a: {{Revision: 500, Value: 0.5}}, b: {{Revision: 500, Value: 7}}}
	err := Check(s, table, 500, "Linux-x86-avg", &Options{DashboardURL: "https://dash.example.com/"})
	var ce *CheckError
	if !errors.As(err, &ce) || len(ce.Violations) != 2 {
		t.Fatalf("Check = %v, want two violations", err)
	}
	if got, want := ce.Violations[0].Link, "https://dash.example.com/#400~desk.skp~Linux-x86~8888"; got != want {
		t.Errorf("link = %q, want %q", got, want)
	}
	if ce.Violations[1].Link != "" {
		t.Errorf("non-picture bench got link %q", ce.Violations[1].Link)
	}
}

func TestFormatFloat(t *testing.T) {
	for v, want := range map[float64]string{3: "3.0", 1.5: "1.5", -2: "-2.0", 1e21: "1e+21", 0.1: "0.1"} {
		if got := formatFloat(v); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", v, got, want)
		}
	}
}
