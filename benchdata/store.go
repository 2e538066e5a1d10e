// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchdata

import "sort"

// A Store holds Points indexed by revision.
//
// Points within a revision keep the order they were added in.
// Traversal across revisions is always in ascending revision order.
// The zero Store is empty and ready to use.
type Store struct {
	points map[int][]*Point
	revs   []int // sorted; nil when stale
}

// Add appends points to revision rev. A revision is recorded even if
// points is empty.
func (s *Store) Add(rev int, points ...*Point) {
	if s.points == nil {
		s.points = make(map[int][]*Point)
	}
	old, ok := s.points[rev]
	if !ok {
		s.revs = nil
	}
	s.points[rev] = append(old, points...)
}

// Revisions returns the revisions in s in ascending order.
// The caller must not modify the returned slice.
func (s *Store) Revisions() []int {
	if s.revs == nil && len(s.points) > 0 {
		revs := make([]int, 0, len(s.points))
		for rev := range s.points {
			revs = append(revs, rev)
		}
		sort.Ints(revs)
		s.revs = revs
	}
	return s.revs
}

// Points returns the points of revision rev in insertion order.
func (s *Store) Points(rev int) []*Point {
	return s.points[rev]
}

// Len returns the total number of points in s.
func (s *Store) Len() int {
	n := 0
	for _, pts := range s.points {
		n += len(pts)
	}
	return n
}

// Span returns the oldest and newest revision in s.
// ok is false if s holds no revisions.
func (s *Store) Span() (oldest, newest int, ok bool) {
	revs := s.Revisions()
	if len(revs) == 0 {
		return 0, 0, false
	}
	return revs[0], revs[len(revs)-1], true
}
