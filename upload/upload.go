// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package upload sends the latest values of picture benches to remote
// metrics stores.
//
// Uploads happen after a chart has been produced and never affect it:
// a failed upload is reported and otherwise ignored.
package upload

import (
	"context"
	"sort"
	"strings"

	"github.com/benchgraph/benchgraph/benchseries"
)

// A Payload holds the latest values of the benches of one config.
type Payload struct {
	Master   string
	Bot      string
	Test     string // the config
	Revision int
	Benches  []Bench
}

// A Bench is the value of one bench, named without its ".skp" suffix.
type Bench struct {
	Name  string
	Value float64
}

// An Uploader sends one Payload to a metrics store.
type Uploader interface {
	Upload(ctx context.Context, p *Payload) error
}

// Payloads collects the wall-time values of picture (".skp") benches
// whose latest sample is at revision newest, one Payload per config,
// ordered by config.
func Payloads(s benchseries.Series, newest int, master, bot string) []*Payload {
	byConfig := make(map[string]*Payload)
	for _, label := range s.Labels() {
		if !strings.HasSuffix(label.Bench, ".skp") || label.TimeType != "" {
			continue
		}
		samples := s[label]
		if len(samples) == 0 {
			continue
		}
		last := samples[len(samples)-1]
		if last.Revision != newest {
			continue
		}
		p := byConfig[label.Config]
		if p == nil {
			p = &Payload{Master: master, Bot: bot, Test: label.Config, Revision: newest}
			byConfig[label.Config] = p
		}
		p.Benches = append(p.Benches, Bench{strings.Replace(label.Bench, ".skp", "", 1), last.Value})
	}

	out := make([]*Payload, 0, len(byConfig))
	for _, p := range byConfig {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Test < out[j].Test })
	return out
}

// UploadAll uploads every payload with u. Failures are passed to warn
// and do not stop the remaining uploads. It returns the number of
// successful uploads.
func UploadAll(ctx context.Context, u Uploader, payloads []*Payload, warn func(format string, args ...interface{})) int {
	n := 0
	for _, p := range payloads {
		if err := u.Upload(ctx, p); err != nil {
			warn("uploading %s at r%d: %v", p.Test, p.Revision, err)
			continue
		}
		n++
	}
	return n
}
