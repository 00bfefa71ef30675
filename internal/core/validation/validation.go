// Package validation defines the error taxonomy shared by all entity
// operations: validation failures (raised before any database access),
// not-found failures, and wrapped database failures.
package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Error is a field-keyed validation failure. It is always produced before
// the database is touched.
type Error struct {
	Fields map[string]string
}

// NewError returns an empty validation error ready to collect field issues.
func NewError() *Error {
	return &Error{Fields: make(map[string]string)}
}

// Add records a problem with the named field. The first problem reported
// for a field wins.
func (e *Error) Add(field, problem string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = problem
	}
}

// HasErrors reports whether any field problem was recorded.
func (e *Error) HasErrors() bool {
	return len(e.Fields) > 0
}

// ErrOrNil returns the error if any problem was recorded, nil otherwise.
// Returning a typed nil through an error interface is a classic footgun, so
// callers use this instead of returning e directly.
func (e *Error) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NotFoundError reports an operation targeting an identifier that does not
// exist. Callers distinguish this from validation failure. Name is set
// instead of ID when the lookup was by name or path.
type NotFoundError struct {
	Kind string
	ID   int64
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(kind string, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// NotFoundName builds a NotFoundError for a lookup by name or path.
func NotFoundName(kind, name string) *NotFoundError {
	return &NotFoundError{Kind: kind, Name: name}
}

// DatabaseError wraps an underlying driver failure with the operation that
// triggered it.
type DatabaseError struct {
	Op  string
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// Database wraps err as a DatabaseError, or returns nil when err is nil.
func Database(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Op: op, Err: err}
}
