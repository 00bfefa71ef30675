//go:build cgo && !purego
// +build cgo,!purego

package db

// Compiled when CGO is available. Uses the C SQLite driver; FTS5 requires
// building with the fts5 tag:
//
//	CGO_ENABLED=1 go build -tags fts5 ./...

import (
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver to open connections with.
const DriverName = "sqlite3"
