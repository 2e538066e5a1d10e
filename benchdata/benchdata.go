// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchdata defines the measurements produced by the bench
// tool and the revision-indexed store that holds them.
package benchdata

import (
	"sort"
	"strconv"
	"strings"
)

// Settings are the extra dimensions of a measurement, such as the
// scalar type or alpha mode the bench ran with.
//
// A setting given without a value (a flag) maps to the empty string.
// Parsed settings always carry a non-empty value, so the two forms
// never collide.
type Settings map[string]string

// Clone returns a copy of s. Clone of a nil map is an empty map.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Keys returns the keys of s in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String formats s as "{k1:v1, k2:v2}" in key order.
// A flag setting is shown as "k:true".
func (s Settings) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		v := s[k]
		if v == "" {
			v = "true"
		}
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(v)
	}
	b.WriteByte('}')
	return b.String()
}

// A Point is a single measurement of one bench in one configuration.
// The revision it belongs to is given by the Store holding it.
//
// Points are immutable once produced; callers must not modify the
// Settings map of a Point they did not create.
type Point struct {
	Bench    string
	Config   string
	TimeType string // "" for wall time, "c" for CPU, "g" for GPU
	Settings Settings
	Time     float64 // milliseconds

	// TileLayout and PerTile are set for benches measured per tile.
	// Time is then the sum of PerTile.
	TileLayout string
	PerTile    []float64
}

// Label returns the series label of p.
func (p *Point) Label() Label {
	return NewLabel(p.Bench, p.Config, p.TimeType, p.Settings)
}

// A Label identifies a series: a bench, a configuration, a time type
// and a set of settings.
//
// Label is a comparable value. Two Labels are == exactly when their
// components are equal, with settings compared as sets of key/value
// pairs, so Labels may be used directly as map keys.
type Label struct {
	Bench, Config, TimeType string

	// settings is the canonical encoding of the settings: the
	// quoted key and value of each pair, in key order.
	settings string
}

// NewLabel returns the Label for the given components.
func NewLabel(bench, config, timeType string, settings Settings) Label {
	var b strings.Builder
	for _, k := range settings.Keys() {
		b.WriteString(strconv.Quote(k))
		b.WriteString(strconv.Quote(settings[k]))
	}
	return Label{bench, config, timeType, b.String()}
}

// Settings returns a fresh copy of the settings of l.
func (l Label) Settings() Settings {
	s := make(Settings)
	rest := l.settings
	for rest != "" {
		k, r1, err1 := unquote(rest)
		v, r2, err2 := unquote(r1)
		if err1 != nil || err2 != nil {
			panic("benchdata: corrupt label encoding " + strconv.Quote(l.settings))
		}
		s[k] = v
		rest = r2
	}
	return s
}

func unquote(s string) (string, string, error) {
	q, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", err
	}
	v, err := strconv.Unquote(q)
	return v, s[len(q):], err
}

// Prefix returns "bench_config_timetype", the part of the label string
// used to key expectations.
func (l Label) Prefix() string {
	return l.Bench + "_" + l.Config + "_" + l.TimeType
}

// String returns "bench_config_timetype_{settings}".
func (l Label) String() string {
	return l.Prefix() + "_" + l.Settings().String()
}
