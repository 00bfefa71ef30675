// Package skill contains the pure business logic for skill catalog
// operations.
package skill

import (
	"fmt"

	"github.com/example/planvault/internal/core/validation"
)

// MaxNameLen bounds the short text fields of a skill.
const MaxNameLen = 255

// Draft holds the fields checked when creating a skill.
type Draft struct {
	FilePath string
	Name     string
	Category string
}

// Change holds the fields checked when updating a skill.
type Change struct {
	FilePath *string
	Name     *string
	Category *string
	Empty    bool
}

// ValidateDraft evaluates whether a skill can be created.
// Rules:
// - FilePath is required
// - Name is required and at most 255 characters
// - Category, when given, is at most 255 characters
func ValidateDraft(d Draft) error {
	verr := validation.NewError()
	if d.FilePath == "" {
		verr.Add("file_path", "is required")
	}
	if d.Name == "" {
		verr.Add("name", "is required")
	} else if len(d.Name) > MaxNameLen {
		verr.Add("name", fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
	if len(d.Category) > MaxNameLen {
		verr.Add("category", fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
	return verr.ErrOrNil()
}

// ValidateChange evaluates whether a skill update can be applied.
// Rules:
// - At least one field must be set
// - FilePath and name, when given, must be non-empty
func ValidateChange(c Change) error {
	verr := validation.NewError()
	if c.Empty {
		verr.Add("update", "no fields to update")
		return verr.ErrOrNil()
	}
	if c.FilePath != nil && *c.FilePath == "" {
		verr.Add("file_path", "is required")
	}
	if c.Name != nil {
		if *c.Name == "" {
			verr.Add("name", "is required")
		} else if len(*c.Name) > MaxNameLen {
			verr.Add("name", fmt.Sprintf("must be at most %d characters", MaxNameLen))
		}
	}
	if c.Category != nil && len(*c.Category) > MaxNameLen {
		verr.Add("category", fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
	return verr.ErrOrNil()
}
