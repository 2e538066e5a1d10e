// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchload archives bench results in a database for benchgraph.
//
// Usage:
//
//	benchload [-v] [-dsn dsn] [-driver name] [-r range] [-m rep] dir...
//
// Each dir holds bench output files named bench_r<revision>_<scalar>.
// Benchload parses them and stores the points of every revision in
// the database, replacing points previously stored for the same
// revision. benchgraph -dsn then charts the archive.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/benchgraph/benchgraph/benchfmt"
	"github.com/benchgraph/benchgraph/storage/db"
	"github.com/benchgraph/benchgraph/storage/db/sqlite3"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
)

func main() {
	log.SetPrefix("benchload: ")
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stderr io.Writer) error {
	logger := log.New(stderr, "benchload: ", 0)

	fs := flag.NewFlagSet("benchload", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), `Usage of benchload:
	benchload [flags] dir...
`)
		fs.PrintDefaults()
	}
	var (
		dsn      = fs.String("dsn", "benchgraph.db", "load into the database `dsn`")
		driver   = fs.String("driver", sqlite3.DriverName, "database `driver`")
		revRange = fs.String("r", "0:", "load revisions in `range` <old>[:<new>]")
		rep      = fs.String("m", "avg", "`representation` of bench values: avg, min, med or 25th")
		verbose  = fs.Bool("v", false, "print verbose log messages")
		defaults = make(benchdata.Settings)
	)
	fs.Func("default-setting", "`setting[=value]` for points without it; may be repeated", func(s string) error {
		name, value, _ := strings.Cut(s, "=")
		if name == "" {
			return fmt.Errorf("missing setting name in %q", s)
		}
		defaults[name] = value
		return nil
	})
	if err := fs.Parse(args); err != nil {
		return flag.ErrHelp
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return flag.ErrHelp
	}
	r, err := benchfmt.ParseRepresentation(*rep)
	if err != nil {
		return err
	}
	oldest, newest, err := parseRange(*revRange)
	if err != nil {
		return err
	}

	d, err := db.OpenSQL(*driver, *dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer d.Close()

	ctx := context.Background()
	for _, dir := range fs.Args() {
		dr := &benchfmt.Dir{
			FS:             os.DirFS(dir),
			Defaults:       defaults,
			Representation: r,
			Oldest:         oldest,
			Newest:         newest,
			Warn:           func(err error) { logger.Print(err) },
		}
		store, err := dr.Read()
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		for _, rev := range store.Revisions() {
			pts := store.Points(rev)
			if err := d.InsertRevision(ctx, rev, pts); err != nil {
				return fmt.Errorf("%s: r%d: %w", dir, rev, err)
			}
			if *verbose {
				logger.Printf("%s: stored %d point(s) for r%d", dir, len(pts), rev)
			}
		}
	}
	return nil
}

// parseRange parses "<old>[:<new>]" where a missing <new> means no
// upper bound. Offsets from the latest revision are not supported
// since several directories may be loaded.
func parseRange(s string) (oldest, newest int, err error) {
	o, n, _ := strings.Cut(s, ":")
	if oldest, err = strconv.Atoi(o); err != nil || oldest < 0 {
		return 0, 0, fmt.Errorf("bad revision range %q", s)
	}
	if n == "" {
		return oldest, int(^uint(0) >> 1), nil
	}
	if newest, err = strconv.Atoi(n); err != nil || newest < 0 {
		return 0, 0, fmt.Errorf("bad revision range %q", s)
	}
	return oldest, newest, nil
}
