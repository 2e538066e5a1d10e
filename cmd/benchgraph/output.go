// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benchgraph/benchgraph/benchchart"
	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/benchgraph/benchgraph/benchseries"
	"github.com/benchgraph/benchgraph/storage/fs"
	"github.com/benchgraph/benchgraph/storage/fs/gcs"
	"github.com/benchgraph/benchgraph/storage/fs/local"
	"github.com/benchgraph/benchgraph/upload"
)

// outputs is everything the rendered files are made from.
type outputs struct {
	title          string
	series         benchseries.Series
	regs           map[benchdata.Label]*benchseries.Regression
	ignored        *benchdata.Store
	oldest, newest int
}

func writeOutputs(ctx context.Context, c *config, stdout io.Writer, logger *log.Logger, o *outputs) error {
	if c.output == "" && c.png == "" && c.csv == "" {
		return nil
	}
	var chart *benchchart.Chart
	if box, ok := o.series.Bounds(); !ok {
		logger.Print("no series to chart")
	} else if layout, ok := benchchart.NewLayout(box, float64(c.width), float64(c.height)); !ok {
		logger.Printf("all points lie on one line (%gx%g); no chart drawn", box.Width(), box.Height())
	} else {
		chart = &benchchart.Chart{
			Series:      o.series,
			Regressions: o.regs,
			Layout:      layout,
			RevisionURL: c.revisionURL,
		}
	}

	meta := map[string]string{
		"title":  o.title,
		"oldest": strconv.Itoa(o.oldest),
		"newest": strconv.Itoa(o.newest),
	}
	if c.output != "" {
		page := &benchchart.Page{
			Title:       o.title,
			Chart:       chart,
			Series:      o.series,
			Ignored:     o.ignored,
			MinTime:     c.minTime,
			MaxTime:     c.maxTime,
			Oldest:      o.oldest,
			Newest:      o.newest,
			RevisionURL: c.revisionURL,
		}
		if err := writeFile(ctx, c.output, stdout, meta, func(w io.Writer) error {
			return benchchart.WritePage(w, page)
		}); err != nil {
			return fmt.Errorf("writing page: %w", err)
		}
	}
	if c.png != "" && chart != nil {
		if err := writeFile(ctx, c.png, stdout, meta, func(w io.Writer) error {
			return benchchart.WritePNG(w, chart, o.title)
		}); err != nil {
			return fmt.Errorf("writing png: %w", err)
		}
	}
	if c.csv != "" {
		if err := writeFile(ctx, c.csv, stdout, meta, o.series.WriteCSV); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	return nil
}

// writeFile writes the output of write to path: stdout for "-", a
// Cloud Storage object for "gs://bucket/object", or a local file.
func writeFile(ctx context.Context, path string, stdout io.Writer, meta map[string]string, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	fsys, name, err := openOutput(ctx, path)
	if err != nil {
		return err
	}
	return fs.WriteFile(ctx, fsys, name, meta, write)
}

func openOutput(ctx context.Context, path string) (fs.FS, string, error) {
	rest, ok := strings.CutPrefix(path, "gs://")
	if !ok {
		return local.NewFS(filepath.Dir(path)), filepath.Base(path), nil
	}
	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return nil, "", fmt.Errorf("%s: want gs://bucket/object", path)
	}
	fsys, err := gcs.NewFS(ctx, bucket)
	if err != nil {
		return nil, "", err
	}
	return fsys, object, nil
}

// uploadAll sends the latest picture bench values to the configured
// metrics stores. Failures are logged and never stop the run.
func uploadAll(ctx context.Context, c *config, logger *log.Logger, payloads []*upload.Payload) {
	if c.appengineURL == "" && c.influxURL == "" {
		return
	}
	if len(payloads) == 0 {
		logger.Print("no picture bench values at the newest revision to upload")
		return
	}
	if c.appengineURL != "" {
		d := &upload.Dashboard{URL: c.appengineURL}
		var err error
		if c.auth {
			d.Client, err = upload.AuthClient(ctx)
		}
		if err != nil {
			logger.Printf("dashboard upload: %v", err)
		} else {
			upload.UploadAll(ctx, d, payloads, logger.Printf)
		}
	}
	if c.influxURL != "" {
		var token string
		var err error
		if c.influxSecret != "" {
			token, err = upload.InfluxToken(ctx, c.influxSecret)
		}
		if err != nil {
			logger.Printf("influx upload: %v", err)
			return
		}
		u := upload.NewInflux(c.influxURL, token, c.influxOrg, c.influxBucket)
		defer u.Close()
		upload.UploadAll(ctx, u, payloads, logger.Printf)
	}
}
