// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package expect checks the latest bench values against a table of
// expected ranges.
//
// An expectations file has one range per line:
//
//	# bench_config_timetype,platform-alg,platform,lower,upper
//	desk_gmail.skp_8888_,Ubuntu12-ShuttleA-x86-avg,Ubuntu12-ShuttleA-x86,10.5,12.5
//
// The first two fields form the key. Blank lines and lines starting
// with '#' are skipped.
package expect

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Bound is an inclusive range of acceptable values.
type Bound struct {
	Lower, Upper float64
}

// Contains reports whether v lies in b.
func (b Bound) Contains(v float64) bool {
	return b.Lower <= v && v <= b.Upper
}

// A Table maps "bench_config_timetype,platform-alg" keys to bounds.
type Table map[string]Bound

// A FormatError is a malformed line of an expectations file.
type FormatError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// Parse reads an expectations table from r. fileName is used in error
// messages. Any malformed line or duplicate key is an error.
func Parse(r io.Reader, fileName string) (Table, error) {
	t := make(Table)
	s := bufio.NewScanner(r)
	line := 0
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != 5 {
			return nil, &FormatError{fileName, line, fmt.Sprintf("want 5 fields, got %d", len(fields))}
		}
		key := fields[0] + "," + fields[1]
		if _, ok := t[key]; ok {
			return nil, &FormatError{fileName, line, fmt.Sprintf("duplicate key %q", key)}
		}
		var b Bound
		var err error
		if b.Lower, err = strconv.ParseFloat(strings.TrimSpace(fields[3]), 64); err != nil {
			return nil, &FormatError{fileName, line, fmt.Sprintf("bad lower bound %q", fields[3])}
		}
		if b.Upper, err = strconv.ParseFloat(strings.TrimSpace(fields[4]), 64); err != nil {
			return nil, &FormatError{fileName, line, fmt.Sprintf("bad upper bound %q", fields[4])}
		}
		t[key] = b
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s:%d: %w", fileName, line, err)
	}
	return t, nil
}

// ReadFile reads the expectations table in the named file.
func ReadFile(name string) (Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, name)
}
