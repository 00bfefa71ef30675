// Package plan contains the pure business logic for implementation plan
// operations. Guards are pure functions that validate inputs without side
// effects; existence checks happen in the service layer.
package plan

import (
	"fmt"

	"github.com/example/planvault/internal/core/validation"
)

// Statuses a plan can hold.
const (
	StatusDraft      = "draft"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"
	StatusCancelled  = "cancelled"
)

// MaxNameLen bounds the short text fields of a plan.
const MaxNameLen = 255

var validStatuses = map[string]bool{
	StatusDraft:      true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusArchived:   true,
	StatusCancelled:  true,
}

// ValidStatus reports whether s is a recognized plan status.
func ValidStatus(s string) bool {
	return validStatuses[s]
}

// Draft holds the fields checked when creating a plan.
type Draft struct {
	Name   string
	Title  string
	Status string // Optional, empty means draft
}

// Change holds the fields checked when updating a plan. Nil means the
// field is not part of the update.
type Change struct {
	Name   *string
	Title  *string
	Status *string
	Empty  bool
}

// ValidateDraft evaluates whether a plan can be created.
// Rules:
// - Name is required and at most 255 characters
// - Title is optional but at most 255 characters when given
// - Status, when given, must be a recognized status
func ValidateDraft(d Draft) error {
	verr := validation.NewError()
	checkRequired(verr, "name", d.Name)
	if d.Title != "" && len(d.Title) > MaxNameLen {
		verr.Add("title", fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
	if d.Status != "" && !ValidStatus(d.Status) {
		verr.Add("status", fmt.Sprintf("invalid status %q", d.Status))
	}
	return verr.ErrOrNil()
}

// ValidateChange evaluates whether a plan update can be applied.
// Rules:
// - At least one field must be set
// - Name and title, when given, must be non-empty and at most 255 characters
// - Status, when given, must be a recognized status
func ValidateChange(c Change) error {
	verr := validation.NewError()
	if c.Empty {
		verr.Add("update", "no fields to update")
		return verr.ErrOrNil()
	}
	if c.Name != nil {
		checkRequired(verr, "name", *c.Name)
	}
	if c.Title != nil {
		checkRequired(verr, "title", *c.Title)
	}
	if c.Status != nil && !ValidStatus(*c.Status) {
		verr.Add("status", fmt.Sprintf("invalid status %q", *c.Status))
	}
	return verr.ErrOrNil()
}

func checkRequired(verr *validation.Error, field, value string) {
	if value == "" {
		verr.Add(field, "is required")
		return
	}
	if len(value) > MaxNameLen {
		verr.Add(field, fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
}
