// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"

	"github.com/benchgraph/benchgraph/benchdata"
)

// fileNameRE matches the names of bench output files. The first group
// is the revision, the second the scalar type the bench was built with.
var fileNameRE = regexp.MustCompile(`^bench_r(\d+)_(\S+)`)

// ParseFileName extracts the revision and scalar token from the name
// of a bench output file. ok is false if name does not follow the
// bench_r<revision>_<scalar> convention.
func ParseFileName(name string) (rev int, scalar string, ok bool) {
	m := fileNameRE.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	rev, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return rev, m[2], true
}

// LatestRevision returns the highest revision among the bench output
// files in the root of fsys. ok is false if there are none.
func LatestRevision(fsys fs.FS) (rev int, ok bool, err error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return 0, false, err
	}
	for _, e := range entries {
		if r, _, match := ParseFileName(e.Name()); match && (!ok || r > rev) {
			rev, ok = r, true
		}
	}
	return rev, ok, nil
}

// A Dir reads the bench output files in the root of a file system
// into a Store.
type Dir struct {
	FS fs.FS

	// Defaults are the initial settings of every point. Each file
	// additionally sets "scalar" from its name.
	Defaults benchdata.Settings

	Representation Representation

	// Oldest and Newest bound the revisions read, inclusive.
	Oldest, Newest int

	// Warn, if non-nil, is called for syntax errors in the input.
	Warn func(err error)
}

// Read reads every file in d within the revision range, in file name
// order, and returns the points keyed by revision.
func (d *Dir) Read() (*benchdata.Store, error) {
	entries, err := fs.ReadDir(d.FS, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	store := new(benchdata.Store)
	for _, name := range names {
		rev, scalar, ok := ParseFileName(name)
		if !ok || rev < d.Oldest || rev > d.Newest {
			continue
		}
		if err := d.readFile(store, name, rev, scalar); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (d *Dir) readFile(store *benchdata.Store, name string, rev int, scalar string) error {
	f, err := d.FS.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	defaults := d.Defaults.Clone()
	defaults["scalar"] = scalar
	r := NewReader(f, name, defaults, d.Representation)
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Result:
			store.Add(rev, rec.Point)
		case *SyntaxError:
			if d.Warn != nil {
				d.Warn(rec)
			}
		}
	}
	if err := r.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}
