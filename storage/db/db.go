// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db archives parsed bench samples in a SQL database, so a
// chart can be drawn from the archive instead of a directory of
// bench output files.
package db

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/benchgraph/benchgraph/benchdata"
)

// DB is a high-level interface to a sample archive. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRevision *sql.Stmt
	insertPoint    *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to limit the number of open connections.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map whose "sqlite3"
// entry reports whether the driver speaks SQLite syntax.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Revisions (
	Revision BIGINT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS Points (
	Revision BIGINT,
	PointID BIGINT,
	Bench VARCHAR(255),
	Config VARCHAR(255),
	TimeType VARCHAR(64),
	Settings {{if .sqlite3}}TEXT{{else}}VARCHAR(8192){{end}},
	Time DOUBLE,
	TileLayout VARCHAR(255),
	PerTile {{if .sqlite3}}TEXT{{else}}MEDIUMTEXT{{end}},
	PRIMARY KEY (Revision, PointID),
{{if not .sqlite3}}
	Index (Bench(100), Config(100)),
{{end}}
	FOREIGN KEY (Revision) REFERENCES Revisions(Revision) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS PointsBenchConfig ON Points(Bench, Config);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{"sqlite3": strings.HasPrefix(driverName, "sqlite3")}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertRevision, err = db.sql.Prepare("INSERT INTO Revisions(Revision) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertPoint, err = db.sql.Prepare("INSERT INTO Points(Revision, PointID, Bench, Config, TimeType, Settings, Time, TileLayout, PerTile) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// InsertRevision stores the points of revision rev, replacing any
// points previously stored for it.
func (db *DB) InsertRevision(ctx context.Context, rev int, points []*benchdata.Point) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, "DELETE FROM Points WHERE Revision = ?", rev); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM Revisions WHERE Revision = ?", rev); err != nil {
		return err
	}
	if _, err = tx.StmtContext(ctx, db.insertRevision).ExecContext(ctx, rev); err != nil {
		return err
	}
	insert := tx.StmtContext(ctx, db.insertPoint)
	for i, p := range points {
		settings, err := json.Marshal(p.Settings)
		if err != nil {
			return err
		}
		var perTile []byte
		if len(p.PerTile) > 0 {
			if perTile, err = json.Marshal(p.PerTile); err != nil {
				return err
			}
		}
		if _, err := insert.ExecContext(ctx, rev, i, p.Bench, p.Config, p.TimeType, string(settings), p.Time, p.TileLayout, string(perTile)); err != nil {
			return fmt.Errorf("inserting %s at r%d: %w", p.Label(), rev, err)
		}
	}
	return nil
}

// Query returns the points stored for revisions in [oldest, newest].
func (db *DB) Query(ctx context.Context, oldest, newest int) (*benchdata.Store, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Revision, Bench, Config, TimeType, Settings, Time, TileLayout, PerTile FROM Points WHERE Revision >= ? AND Revision <= ? ORDER BY Revision, PointID", oldest, newest)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	store := new(benchdata.Store)
	for rows.Next() {
		var (
			rev               int
			settings, perTile string
			p                 benchdata.Point
		)
		if err := rows.Scan(&rev, &p.Bench, &p.Config, &p.TimeType, &settings, &p.Time, &p.TileLayout, &perTile); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(settings), &p.Settings); err != nil {
			return nil, fmt.Errorf("r%d: bad settings %q: %w", rev, settings, err)
		}
		if perTile != "" {
			if err := json.Unmarshal([]byte(perTile), &p.PerTile); err != nil {
				return nil, fmt.Errorf("r%d: bad per-tile values %q: %w", rev, perTile, err)
			}
		}
		store.Add(rev, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return store, nil
}

// LatestRevision returns the newest stored revision.
// ok is false if the archive is empty.
func (db *DB) LatestRevision(ctx context.Context) (rev int, ok bool, err error) {
	var max sql.NullInt64
	if err := db.sql.QueryRowContext(ctx, "SELECT MAX(Revision) FROM Revisions").Scan(&max); err != nil {
		return 0, false, err
	}
	return int(max.Int64), max.Valid, nil
}

// CountPoints returns the number of points stored in the archive.
func (db *DB) CountPoints(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Points").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertRevision.Close(); err != nil {
		return err
	}
	if err := db.insertPoint.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
