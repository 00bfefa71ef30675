// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"database/sql"
	"time"
)

// now returns the current UTC time as an RFC3339 string. Timestamps are
// stamped from Go rather than relying on column defaults so the stored
// format is identical under both drivers.
func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// nullStr maps the empty string to NULL.
func nullStr(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullID maps zero to NULL for optional foreign keys.
func nullID(id int64) sql.NullInt64 {
	if id == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
