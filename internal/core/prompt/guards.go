// Package prompt contains the pure business logic for prompt and fragment
// operations, including reference integrity.
package prompt

import (
	"fmt"

	"github.com/example/planvault/internal/core/validation"
)

// Reference types a prompt can carry.
const (
	ReferencePrompt   = "prompt"
	ReferenceFragment = "fragment"
)

// MaxNameLen bounds the short text fields of prompts and fragments.
const MaxNameLen = 255

// Draft holds the fields checked when creating a prompt.
type Draft struct {
	FilePath string
	Name     string
	Category string
}

// FragmentDraft holds the fields checked when creating a fragment.
type FragmentDraft struct {
	Name    string
	Content string
}

// Change holds the fields checked when updating a prompt.
type Change struct {
	FilePath *string
	Name     *string
	Empty    bool
}

// FragmentChange holds the fields checked when updating a fragment.
type FragmentChange struct {
	Name    *string
	Content *string
	Empty   bool
}

// ReferenceDraft holds the fields checked when adding a prompt reference.
type ReferenceDraft struct {
	PromptID       int64
	ReferenceType  string
	TargetPromptID int64
	FragmentID     int64
}

// ValidateDraft evaluates whether a prompt can be created.
// Rules:
// - FilePath is required
// - Name is required and at most 255 characters
func ValidateDraft(d Draft) error {
	verr := validation.NewError()
	if d.FilePath == "" {
		verr.Add("file_path", "is required")
	}
	checkName(verr, d.Name)
	if len(d.Category) > MaxNameLen {
		verr.Add("category", fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
	return verr.ErrOrNil()
}

// ValidateFragmentDraft evaluates whether a fragment can be created.
// Rules:
// - Name is required and at most 255 characters
// - Content is required
func ValidateFragmentDraft(d FragmentDraft) error {
	verr := validation.NewError()
	checkName(verr, d.Name)
	if d.Content == "" {
		verr.Add("content", "is required")
	}
	return verr.ErrOrNil()
}

// ValidateChange evaluates whether a prompt update can be applied.
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
		checkName(verr, *c.Name)
	}
	return verr.ErrOrNil()
}

// ValidateFragmentChange evaluates whether a fragment update can be applied.
func ValidateFragmentChange(c FragmentChange) error {
	verr := validation.NewError()
	if c.Empty {
		verr.Add("update", "no fields to update")
		return verr.ErrOrNil()
	}
	if c.Name != nil {
		checkName(verr, *c.Name)
	}
	if c.Content != nil && *c.Content == "" {
		verr.Add("content", "is required")
	}
	return verr.ErrOrNil()
}

// ValidateReference evaluates whether a prompt reference can be added.
// Rules:
// - PromptID must be positive
// - ReferenceType must be "prompt" or "fragment"
// - A prompt reference sets TargetPromptID and leaves FragmentID unset
// - A fragment reference sets FragmentID and leaves TargetPromptID unset
// - A prompt cannot reference itself
func ValidateReference(d ReferenceDraft) error {
	verr := validation.NewError()
	if d.PromptID <= 0 {
		verr.Add("prompt_id", "is required")
	}
	switch d.ReferenceType {
	case ReferencePrompt:
		if d.TargetPromptID <= 0 {
			verr.Add("target_prompt_id", "is required for prompt references")
		}
		if d.FragmentID != 0 {
			verr.Add("fragment_id", "must not be set for prompt references")
		}
		if d.TargetPromptID == d.PromptID && d.PromptID > 0 {
			verr.Add("target_prompt_id", "prompt cannot reference itself")
		}
	case ReferenceFragment:
		if d.FragmentID <= 0 {
			verr.Add("fragment_id", "is required for fragment references")
		}
		if d.TargetPromptID != 0 {
			verr.Add("target_prompt_id", "must not be set for fragment references")
		}
	default:
		verr.Add("reference_type", fmt.Sprintf("invalid reference type %q", d.ReferenceType))
	}
	return verr.ErrOrNil()
}

func checkName(verr *validation.Error, name string) {
	if name == "" {
		verr.Add("name", "is required")
		return
	}
	if len(name) > MaxNameLen {
		verr.Add("name", fmt.Sprintf("must be at most %d characters", MaxNameLen))
	}
}
