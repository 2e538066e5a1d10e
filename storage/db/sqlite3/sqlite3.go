// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build cgo
// +build cgo

// Package sqlite3 provides the sqlite3 driver for
// github.com/benchgraph/benchgraph/storage/db. It must be imported
// instead of go-sqlite3 to ensure foreign keys are properly honored.
package sqlite3

import (
	"database/sql"

	"github.com/benchgraph/benchgraph/storage/db"
	sqlite3 "github.com/mattn/go-sqlite3"
)

func init() {
	sql.Register("sqlite3_benchgraph", &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			_, err := conn.Exec("PRAGMA foreign_keys = ON;", nil)
			return err
		},
	})
	db.RegisterOpenHook("sqlite3_benchgraph", func(db *sql.DB) error {
		// An in-memory database exists once per connection.
		db.SetMaxOpenConns(1)
		return nil
	})
}

// DriverName is the driver name to pass to db.OpenSQL for SQLite
// databases.
const DriverName = "sqlite3_benchgraph"
