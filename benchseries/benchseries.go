// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchseries groups bench points into labeled series over
// revisions and fits trend lines to them.
package benchseries

import (
	"fmt"
	"math"
	"sort"

	"github.com/benchgraph/benchgraph/benchdata"
)

// A Sample is one value of a series.
type Sample struct {
	Revision int
	Value    float64
}

// A Series maps each label to its samples. The samples of every label
// are in non-decreasing revision order.
type Series map[benchdata.Label][]Sample

// Labels returns the labels of s sorted by their string form.
func (s Series) Labels() []benchdata.Label {
	labels := make([]benchdata.Label, 0, len(s))
	for l := range s {
		labels = append(labels, l)
	}
	sortLabels(labels)
	return labels
}

func sortLabels(labels []benchdata.Label) {
	strs := make(map[benchdata.Label]string, len(labels))
	for _, l := range labels {
		strs[l] = l.String()
	}
	sort.Slice(labels, func(i, j int) bool {
		return strs[labels[i]] < strs[labels[j]]
	})
}

// A Rect is an axis-aligned rectangle in (revision, value) space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX-MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY-MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the smallest rectangle enclosing every sample of s.
// ok is false if s has no samples.
func (s Series) Bounds() (r Rect, ok bool) {
	r = Rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, samples := range s {
		for _, p := range samples {
			x := float64(p.Revision)
			r.MinX = math.Min(r.MinX, x)
			r.MaxX = math.Max(r.MaxX, x)
			r.MinY = math.Min(r.MinY, p.Value)
			r.MaxY = math.Max(r.MaxY, p.Value)
			ok = true
		}
	}
	if !ok {
		return Rect{}, false
	}
	return r, true
}

// A Match is an optional exact-match filter on a string.
// The zero Match matches everything.
type Match struct {
	Value string
	Set   bool
}

// Is returns a Match that matches only v.
func Is(v string) Match {
	return Match{v, true}
}

func (m Match) matches(s string) bool {
	return !m.Set || m.Value == s
}

func (m Match) String() string {
	if !m.Set {
		return "*"
	}
	return m.Value
}

// Options select the points that make up a Series.
type Options struct {
	// Settings drops points that carry one of these settings with a
	// different value. Points that lack a setting are kept.
	Settings benchdata.Settings

	Bench, Config, TimeType Match

	// IgnoreTimeType drops points of this time type. It has no effect
	// when TimeType is set.
	// TODO: decide with the bot owners whether -i and -t should combine.
	IgnoreTimeType Match
}

func (o *Options) keep(p *benchdata.Point) bool {
	if !o.Bench.matches(p.Bench) || !o.Config.matches(p.Config) {
		return false
	}
	if o.TimeType.Set {
		if p.TimeType != o.TimeType.Value {
			return false
		}
	} else if o.IgnoreTimeType.Set && p.TimeType == o.IgnoreTimeType.Value {
		return false
	}
	for k, v := range o.Settings {
		if pv, ok := p.Settings[k]; ok && pv != v {
			return false
		}
	}
	return true
}

// A Builder accumulates revisions of points into a Series.
//
// Revisions must be added in ascending order, which is what keeps the
// samples of every label in revision order.
type Builder struct {
	opts    Options
	series  Series
	last    int
	started bool
}

// NewBuilder returns a Builder that keeps the points selected by opts.
// A nil opts keeps every point.
func NewBuilder(opts *Options) *Builder {
	b := &Builder{series: make(Series)}
	if opts != nil {
		b.opts = *opts
	}
	return b
}

// AddRevision adds the points of revision rev. It returns an error,
// and adds nothing, if rev is lower than a revision already added.
func (b *Builder) AddRevision(rev int, points []*benchdata.Point) error {
	if b.started && rev < b.last {
		return fmt.Errorf("revision %d added after revision %d", rev, b.last)
	}
	b.started, b.last = true, rev
	for _, p := range points {
		if !b.opts.keep(p) {
			continue
		}
		l := p.Label()
		b.series[l] = append(b.series[l], Sample{rev, p.Time})
	}
	return nil
}

// Series returns the series built so far. The Builder must not be
// used afterwards.
func (b *Builder) Series() Series {
	return b.series
}

// Group builds the Series of the points in store selected by opts.
func Group(store *benchdata.Store, opts *Options) Series {
	b := NewBuilder(opts)
	for _, rev := range store.Revisions() {
		if err := b.AddRevision(rev, store.Points(rev)); err != nil {
			// Store.Revisions is sorted.
			panic(err)
		}
	}
	return b.Series()
}
