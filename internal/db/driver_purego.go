//go:build !cgo || purego
// +build !cgo purego

package db

// Compiled without CGO (or with the purego tag). The pure Go driver ships
// FTS5 built in, so no extra build tags are needed:
//
//	CGO_ENABLED=0 go build ./...

import (
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver to open connections with.
const DriverName = "sqlite"
