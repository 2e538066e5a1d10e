// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchgraph charts bench results across revisions.
//
// Usage:
//
//	benchgraph -d dir [options]
//	benchgraph -dsn dsn [options]
//
// Benchgraph reads the bench output files bench_r<revision>_<scalar>
// in dir (or the samples archived in a database by benchload), drops
// times outside [0, 99999], groups the rest into one series per
// bench, config, time type and settings, and fits a trend line to
// each series over the fitting range. It writes an HTML page with an
// interactive SVG chart of the series, colored by trend.
//
// Revision ranges are written <old>[:<new>]. A negative revision is an
// offset from the latest revision, and a missing <new> is the latest
// revision.
//
// If an expectations file is given with -e, benchgraph exits with an
// error listing every series whose value at the newest revision is
// out of its expected range. Expectation lines have the form
//
//	bench_config_timetype,platform-rep,platform,lower,upper
//
// where platform comes from a title of the form
// Bench_Performance_for_<platform>.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/benchgraph/benchgraph/benchdata"
	"github.com/benchgraph/benchgraph/benchfmt"
	"github.com/benchgraph/benchgraph/benchseries"
	"github.com/benchgraph/benchgraph/expect"
	"github.com/benchgraph/benchgraph/storage/db"
	"github.com/benchgraph/benchgraph/storage/db/sqlite3"
	"github.com/benchgraph/benchgraph/upload"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
)

// titlePreamble starts the titles given by build bots. The rest of
// the title is the bot's platform.
const titlePreamble = "Bench_Performance_for_"

const usageText = `usage: benchgraph (-d dir | -dsn dsn) [options]
options:
`

func main() {
	log.SetPrefix("benchgraph: ")
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var ue usageError
		if errors.As(err, &ue) {
			if ue != "" {
				log.Print(ue)
			}
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

// A usageError reports bad command-line arguments. It is empty if the
// flag package already reported the problem.
type usageError string

func (e usageError) Error() string { return string(e) }

// settingsFlag is a repeatable flag of the form key[=value]. A setting
// without a value is a flag setting.
type settingsFlag benchdata.Settings

func (f settingsFlag) String() string {
	return benchdata.Settings(f).String()
}

func (f settingsFlag) Set(s string) error {
	name, value, _ := strings.Cut(s, "=")
	if name == "" {
		return fmt.Errorf("missing setting name in %q", s)
	}
	f[name] = value
	return nil
}

type config struct {
	appengineURL  string
	bench, cfg    string
	dir           string
	expectations  string
	fitRange      string
	ignoreTime    string
	title         string
	rep           string
	output        string
	revRange      string
	settings      benchdata.Settings
	timeType      string
	width, height int
	defaults      benchdata.Settings

	dsn, driver string
	png, csv    string
	table       bool

	influxURL    string
	influxOrg    string
	influxBucket string
	influxSecret string
	auth         bool
	master       string

	dashboardURL string
	revisionURL  string

	minTime, maxTime float64
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	c := &config{
		settings: make(benchdata.Settings),
		defaults: make(benchdata.Settings),
	}
	fs := flag.NewFlagSet("benchgraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usageText)
		fs.PrintDefaults()
	}
	fs.StringVar(&c.appengineURL, "a", "", "`url` of the dashboard to add bench values to; skipped if empty")
	fs.StringVar(&c.bench, "b", "", "show only `bench`")
	fs.StringVar(&c.cfg, "c", "", "show only `config` (gpu, 8888, 565, ...)")
	fs.StringVar(&c.dir, "d", "", "`dir`ectory containing bench_r<revision>_<scalar> files")
	fs.StringVar(&c.expectations, "e", "", "`file` of expected bench ranges; fail if values are out of range")
	fs.StringVar(&c.fitRange, "f", "0:", "`range` of revisions to fit trend lines over")
	fs.StringVar(&c.ignoreTime, "i", "", "hide the `time` type (w, c, g, ...); ignored when -t is set")
	fs.StringVar(&c.title, "l", "Bench graph", "`title` of the graph")
	fs.StringVar(&c.rep, "m", "avg", "`representation` of bench values: avg, min, med or 25th")
	fs.StringVar(&c.output, "o", "", "write the page to `path` (a file, gs://bucket/object, or - for stdout)")
	fs.StringVar(&c.revRange, "r", "0:", "`range` of revisions to show")
	fs.Var(settingsFlag(c.settings), "s", "show only `setting[=value]`; may be repeated")
	fs.StringVar(&c.timeType, "t", "", "show only the `time` type (w, c, g, ...)")
	fs.IntVar(&c.width, "x", 0, "`width` of the chart")
	fs.IntVar(&c.height, "y", 0, "`height` of the chart")
	fs.Var(settingsFlag(c.defaults), "default-setting", "`setting[=value]` for points without it; may be repeated (not with -dsn)")
	fs.StringVar(&c.dsn, "dsn", "", "read samples from the database `dsn` instead of -d")
	fs.StringVar(&c.driver, "driver", sqlite3.DriverName, "database `driver` for -dsn")
	fs.StringVar(&c.png, "png", "", "also write a static chart to `path`")
	fs.StringVar(&c.csv, "csv", "", "write the series as CSV to `path`")
	fs.BoolVar(&c.table, "table", false, "print the series as a table")
	fs.StringVar(&c.influxURL, "influx-url", "", "`url` of an InfluxDB server to add bench values to")
	fs.StringVar(&c.influxOrg, "influx-org", "benchgraph", "InfluxDB `org`anization")
	fs.StringVar(&c.influxBucket, "influx-bucket", "benchgraph", "InfluxDB `bucket`")
	fs.StringVar(&c.influxSecret, "influx-token-secret", "", "Secret Manager `version` name holding the InfluxDB token")
	fs.BoolVar(&c.auth, "auth", false, "authenticate dashboard uploads with Google default credentials")
	fs.StringVar(&c.master, "master", "Skia", "`name` of the build master in uploads")
	fs.StringVar(&c.dashboardURL, "dashboard-url", "", "`url` of a dashboard to link out-of-range picture benches to")
	fs.StringVar(&c.revisionURL, "revision-url", "", "`prefix` of revision links; the revision number is appended")
	if err := fs.Parse(args); err != nil {
		return nil, usageError("")
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return nil, usageError(fmt.Sprintf("unexpected argument %q", fs.Arg(0)))
	}
	if (c.dir == "") == (c.dsn == "") {
		fs.Usage()
		return nil, usageError("exactly one of -d and -dsn is required")
	}
	if c.width < 0 || c.height < 0 {
		return nil, usageError("-x and -y must not be negative")
	}
	c.minTime, c.maxTime = benchseries.MinReasonableTime, benchseries.MaxReasonableTime
	return c, nil
}

// parseRange parses "<old>[:<new>]". Negative revisions are offsets
// from latest; a missing <new> is latest.
func parseRange(s string, latest int) (oldest, newest int, err error) {
	o, n, _ := strings.Cut(s, ":")
	if oldest, err = strconv.Atoi(o); err != nil {
		return 0, 0, usageError(fmt.Sprintf("bad revision range %q", s))
	}
	if oldest < 0 {
		oldest += latest
	}
	if n == "" {
		return oldest, latest, nil
	}
	if newest, err = strconv.Atoi(n); err != nil {
		return 0, 0, usageError(fmt.Sprintf("bad revision range %q", s))
	}
	if newest < 0 {
		newest += latest
	}
	return oldest, newest, nil
}

// botName returns the bot and the platform-and-representation key
// used to look up expectations for the given title.
func botName(title string, rep benchfmt.Representation) (bot, platformAlg string) {
	if rest, ok := strings.CutPrefix(title, titlePreamble); ok {
		return rest, rest + "-" + rep.String()
	}
	return title, title
}

func run(args []string, stdout, stderr io.Writer) error {
	ctx := context.Background()
	logger := log.New(stderr, "benchgraph: ", 0)

	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	rep, err := benchfmt.ParseRepresentation(c.rep)
	if err != nil {
		return usageError(err.Error())
	}

	// Configuration errors must stop us before reading any data.
	var expectations expect.Table
	if c.expectations != "" {
		if expectations, err = expect.ReadFile(c.expectations); err != nil {
			return err
		}
	}

	if c.output == "" {
		logger.Print("Warning: No output path provided. No graphs will be written.")
	}

	bot, platformAlg := botName(c.title, rep)
	title := fmt.Sprintf("%s [representation: %s]", c.title, rep)

	src, err := openSource(ctx, c, rep, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	latest, ok, err := src.LatestRevision(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no bench results in %s", src)
	}
	oldest, newest, err := parseRange(c.revRange, latest)
	if err != nil {
		return err
	}
	fitOldest, fitNewest, err := parseRange(c.fitRange, latest)
	if err != nil {
		return err
	}

	store, err := src.Read(ctx, oldest, newest)
	if err != nil {
		return err
	}
	allowed, ignored := benchseries.FilterOutliers(store, c.minTime, c.maxTime)
	if n := ignored.Len(); n > 0 {
		logger.Printf("ignored %d point(s) outside [%v, %v]", n, c.minTime, c.maxTime)
	}
	oldest, newest, ok = allowed.Span()
	if !ok {
		logger.Printf("no usable points in revisions %s", c.revRange)
		return nil
	}

	opts := &benchseries.Options{Settings: c.settings}
	if c.bench != "" {
		opts.Bench = benchseries.Is(c.bench)
	}
	if c.cfg != "" {
		opts.Config = benchseries.Is(c.cfg)
	}
	if c.timeType != "" {
		opts.TimeType = benchseries.Is(c.timeType)
	} else if c.ignoreTime != "" {
		opts.IgnoreTimeType = benchseries.Is(c.ignoreTime)
	}
	series := benchseries.Group(allowed, opts)
	regs := series.Regressions(fitOldest, fitNewest)

	if err := writeOutputs(ctx, c, stdout, logger, &outputs{
		title:   title,
		series:  series,
		regs:    regs,
		ignored: ignored,
		oldest:  oldest,
		newest:  newest,
	}); err != nil {
		return err
	}
	if c.table {
		table.Fprint(stdout, series.Table())
	}

	uploadAll(ctx, c, logger, upload.Payloads(series, newest, c.master, bot))

	if len(expectations) > 0 {
		return expect.Check(series, expectations, newest, platformAlg, &expect.Options{DashboardURL: c.dashboardURL})
	}
	return nil
}

// A source holds the bench results to chart.
type source interface {
	LatestRevision(ctx context.Context) (rev int, ok bool, err error)
	Read(ctx context.Context, oldest, newest int) (*benchdata.Store, error)
	Close() error
	String() string
}

func openSource(ctx context.Context, c *config, rep benchfmt.Representation, logger *log.Logger) (source, error) {
	if c.dsn != "" {
		d, err := db.OpenSQL(c.driver, c.dsn)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		return &dbSource{d}, nil
	}
	return &dirSource{
		dir: c.dir,
		Dir: benchfmt.Dir{
			FS:             os.DirFS(c.dir),
			Defaults:       c.defaults,
			Representation: rep,
			Warn:           func(err error) { logger.Print(err) },
		},
	}, nil
}

type dirSource struct {
	dir string
	benchfmt.Dir
}

func (s *dirSource) LatestRevision(context.Context) (int, bool, error) {
	return benchfmt.LatestRevision(s.FS)
}

func (s *dirSource) Read(_ context.Context, oldest, newest int) (*benchdata.Store, error) {
	s.Oldest, s.Newest = oldest, newest
	return s.Dir.Read()
}

func (s *dirSource) Close() error   { return nil }
func (s *dirSource) String() string { return s.dir }

type dbSource struct {
	*db.DB
}

func (s *dbSource) Read(ctx context.Context, oldest, newest int) (*benchdata.Store, error) {
	return s.Query(ctx, oldest, newest)
}

func (s *dbSource) String() string { return "database" }
