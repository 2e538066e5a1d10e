// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads the output of the bench tool.
//
// A bench run prints a settings line, followed by one line per bench
// giving the time of each configuration:
//
//	skia bench: alpha=0xFF antialias=0 scalar=float
//	running bench [640 480]  bitmap_8888   8888: cmsecs = 2.48 msecs = 2.50  565: msecs = 2.06
//
// The prefix of "msecs" names the time type: "" for wall time, "c" for
// CPU time and "g" for GPU time. A time may be a comma-separated list
// of per-iteration values, which is reduced to one value by a
// Representation.
package benchfmt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/benchgraph/benchgraph/benchdata"
)

// A Reader reads points from bench output.
//
// Its API is modeled on bufio.Scanner. Values for the same bench,
// configuration and time type are summed until the next bench starts,
// which is how per-tile benches report their total.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	s   *bufio.Scanner
	err error // current I/O error

	fileName string
	line     int
	rep      Representation

	// settings is the configuration in effect. It is replaced, not
	// modified, when a settings line is read, because points share it.
	settings benchdata.Settings

	bench   string
	pending []*pending
	byKey   map[pendingKey]*pending

	q    []Record
	qPos int
}

type pendingKey struct {
	config, timeType string
}

type pending struct {
	point  *benchdata.Point
	line   int
	values []float64
	layout string
}

// A Record is a single record read from bench output. It is either a
// *Result or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file.
	Pos() (fileName string, line int)
}

// A Result is a point read from bench output along with its position.
type Result struct {
	Point *benchdata.Point

	fileName string
	line     int
}

// Pos returns the file name and line number of the first timing line
// that contributed to r.
func (r *Result) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// A SyntaxError represents a syntax error on a particular line of a
// bench output file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader for the bench output in r. Every point
// starts from the settings in defaults, which the input may extend or
// override. fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, defaults benchdata.Settings, rep Representation) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, defaults, rep)
	return reader
}

// Reset resets the reader to begin reading from a new input.
// It discards any points not yet returned.
func (r *Reader) Reset(ior io.Reader, fileName string, defaults benchdata.Settings, rep Representation) {
	r.s = bufio.NewScanner(ior)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.err = nil
	r.fileName = fileName
	r.line = 0
	r.rep = rep
	r.settings = defaults.Clone()
	r.bench = ""
	r.pending = r.pending[:0]
	r.byKey = make(map[pendingKey]*pending)
	r.qPos = 0
	r.q = r.q[:0]
}

const (
	perSettingPat = `([^\s=]+)(?:=(\S+))?`
	timePat       = `(?:(\w*)msecs = )?\s*((?:\d+\.\d+)(?:,\s*\d+\.\d+)*)`
)

var (
	settingsRE   = regexp.MustCompile(`skia bench:((?:\s+` + perSettingPat + `)*)`)
	perSettingRE = regexp.MustCompile(perSettingPat)
	benchRE      = regexp.MustCompile(`running bench (?:\[\d+ \d+\] )?\s*(\S+)`)
	timeRE       = regexp.MustCompile(timePat)
	// Configs of whole-picture benches never end in ']' or '>'.
	configRE = regexp.MustCompile(`(\S+[^\]>]):\s+((?:` + timePat + `\s+)+)`)
	// Only the averaged per-tile lines are read.
	tileRE       = regexp.MustCompile(`  tile_(\S+): tile \[\d+,\d+\] out of \[\d+,\d+\] <averaged>: ((?:` + timePat + `\s+)+)`)
	tileLayoutRE = regexp.MustCompile(` out of \[(\d+),(\d+)\] <averaged>: `)
)

// Scan advances the reader to the next result and reports whether a
// result was read.
// The caller should use the Result method to get the result.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	if r.qPos+1 < len(r.q) {
		r.qPos++
		return true
	}
	r.qPos = 0
	r.q = r.q[:0]

	for len(r.q) == 0 && r.s.Scan() {
		r.line++
		// The patterns expect the line terminator the scanner strips.
		line := r.s.Text() + "\n"

		if m := settingsRE.FindStringSubmatch(line); m != nil {
			settings := r.settings.Clone()
			for _, kv := range perSettingRE.FindAllStringSubmatch(m[1], -1) {
				settings[kv[1]] = kv[2]
			}
			r.settings = settings
		}

		if m := benchRE.FindStringSubmatch(line); m != nil && m[1] != r.bench {
			r.flush()
			r.bench = m[1]
		}

		if strings.HasPrefix(line, "  tile_") {
			r.parseTimes(tileRE, true, line)
		} else {
			r.parseTimes(configRE, false, line)
		}
	}
	if len(r.q) > 0 {
		return true
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line, err)
		return false
	}
	// EOF ends the last bench.
	r.flush()
	return len(r.q) > 0
}

// parseTimes records every configuration time on line.
func (r *Reader) parseTimes(re *regexp.Regexp, perTile bool, line string) {
	for _, m := range re.FindAllStringSubmatch(line, -1) {
		if r.bench == "" {
			r.q = append(r.q, &SyntaxError{r.fileName, r.line, "timing data outside of a bench"})
			return
		}
		config, layout := m[1], ""
		if perTile {
			config = "tile_" + config
			if lm := tileLayoutRE.FindStringSubmatch(line); lm != nil {
				layout = lm[1] + "x" + lm[2]
			}
		}
		for _, tm := range timeRE.FindAllStringSubmatch(m[2], -1) {
			iters, err := parseIters(tm[2])
			if err != nil {
				r.q = append(r.q, &SyntaxError{r.fileName, r.line, err.Error()})
				continue
			}
			r.add(config, tm[1], layout, r.rep.Compute(iters))
		}
	}
}

func parseIters(s string) ([]float64, error) {
	fields := strings.Split(strings.TrimSpace(s), ",")
	iters := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("bad time %q", f)
		}
		iters = append(iters, v)
	}
	return iters, nil
}

func (r *Reader) add(config, timeType, layout string, v float64) {
	key := pendingKey{config, timeType}
	p := r.byKey[key]
	if p == nil {
		p = &pending{
			point: &benchdata.Point{
				Bench:    r.bench,
				Config:   config,
				TimeType: timeType,
				Settings: r.settings,
			},
			line:   r.line,
			layout: layout,
		}
		r.byKey[key] = p
		r.pending = append(r.pending, p)
	}
	p.values = append(p.values, v)
}

// flush queues the points of the current bench in the order their
// configurations first appeared.
func (r *Reader) flush() {
	for _, p := range r.pending {
		pt := p.point
		for _, v := range p.values {
			pt.Time += v
		}
		if len(p.values) > 1 {
			pt.PerTile = p.values
			pt.TileLayout = p.layout
		}
		r.q = append(r.q, &Result{pt, r.fileName, p.line})
	}
	r.pending = r.pending[:0]
	for k := range r.byKey {
		delete(r.byKey, k)
	}
}

// Result returns the record that was just read by Scan. This is either
// a *Result or a *SyntaxError indicating a non-fatal problem with the
// input. Unlike the Go benchmark reader, the returned points are not
// reused and may be retained by the caller.
//
// If Scan has not been called or returned false, Result returns a
// *SyntaxError.
func (r *Reader) Result() Record {
	if r.qPos >= len(r.q) {
		return noResult
	}
	return r.q[r.qPos]
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// Parse reads all points from r. Syntax errors are passed to warn, if
// non-nil, and otherwise ignored.
func Parse(defaults benchdata.Settings, r io.Reader, rep Representation, warn func(error)) ([]*benchdata.Point, error) {
	reader := NewReader(r, "", defaults, rep)
	var out []*benchdata.Point
	for reader.Scan() {
		switch rec := reader.Result().(type) {
		case *Result:
			out = append(out, rec.Point)
		case *SyntaxError:
			if warn != nil {
				warn(rec)
			}
		}
	}
	return out, reader.Err()
}
