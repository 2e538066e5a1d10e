// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchseries

import "github.com/benchgraph/benchgraph/benchdata"

// The default range of plausible times, in milliseconds. Crashed or
// broken benches report sentinel times outside of it.
const (
	MinReasonableTime = 0
	MaxReasonableTime = 99999
)

// FilterOutliers partitions the points of store by whether their time
// lies in [min, max]. Both results keep the revisions and the order of
// points within each revision; a revision appears in a result only if
// it has points there.
func FilterOutliers(store *benchdata.Store, min, max float64) (allowed, ignored *benchdata.Store) {
	allowed, ignored = new(benchdata.Store), new(benchdata.Store)
	for _, rev := range store.Revisions() {
		for _, p := range store.Points(rev) {
			if min <= p.Time && p.Time <= max {
				allowed.Add(rev, p)
			} else {
				ignored.Add(rev, p)
			}
		}
	}
	return allowed, ignored
}
