// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package expect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/benchgraph/benchgraph/benchseries"
)

// A Violation is a series whose latest value is out of its bounds.
type Violation struct {
	Key   string
	Value float64
	Bound Bound

	// Link, if not empty, points at a dashboard for the bench.
	Link string
}

func (v *Violation) String() string {
	msg := fmt.Sprintf("Bench %s value %s out of range [%s, %s].",
		v.Key, formatFloat(v.Value), formatFloat(v.Bound.Lower), formatFloat(v.Bound.Upper))
	if v.Link != "" {
		msg += " " + v.Link
	}
	return msg
}

// A CheckError lists every violation found by Check.
type CheckError struct {
	Violations []*Violation
}

func (e *CheckError) Error() string {
	lines := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		lines[i] = v.String()
	}
	return "Bench values out of range:\n" + strings.Join(lines, "\n")
}

// Options configure Check.
type Options struct {
	// DashboardURL, if set, is used to link violations of picture
	// benches (".skp_" in the key) to a dashboard. The link is
	// DashboardURL followed by "#start~bench~platform~config", where
	// start is 100 revisions before the newest.
	DashboardURL string
}

// Check compares the latest value of every series with its bound in t.
// A series is checked only if its latest sample is at revision newest
// and t has an entry for it; its key is its label prefix joined to
// platformAlg by a comma. All violations are returned together as a
// *CheckError. opts may be nil.
func Check(s benchseries.Series, t Table, newest int, platformAlg string, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	platform := platformAlg
	if i := strings.LastIndex(platformAlg, "-"); i >= 0 {
		platform = platformAlg[:i]
	}

	var errs []*Violation
	for _, label := range s.Labels() {
		samples := s[label]
		if len(samples) == 0 {
			continue
		}
		last := samples[len(samples)-1]
		if last.Revision != newest {
			continue
		}
		key := label.Prefix() + "," + platformAlg
		b, ok := t[key]
		if !ok || b.Contains(last.Value) {
			continue
		}
		v := &Violation{Key: key, Value: last.Value, Bound: b}
		if opts.DashboardURL != "" && strings.Contains(key, ".skp_") {
			v.Link = fmt.Sprintf("%s#%d~%s~%s~%s", opts.DashboardURL, newest-100, label.Bench, platform, label.Config)
		}
		errs = append(errs, v)
	}
	if len(errs) == 0 {
		return nil
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Key < errs[j].Key })
	return &CheckError{errs}
}

// formatFloat formats v in the shortest form, keeping a decimal point
// on integral values ("3.0", not "3").
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
