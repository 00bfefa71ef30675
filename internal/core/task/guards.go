// Package task contains the pure business logic for task list and task
// operations.
package task

import (
	"fmt"

	"github.com/example/planvault/internal/core/validation"
)

// MaxNameLen bounds task and task list names.
const MaxNameLen = 255

// ListDraft holds the fields checked when creating a task list.
type ListDraft struct {
	PlanID int64
	Name   string
}

// TaskDraft holds the fields checked when creating a task.
type TaskDraft struct {
	TaskListID int64
	Name       string
}

// Change holds the fields checked when updating a task or task list.
type Change struct {
	Name     *string
	Position *int
	Empty    bool
}

// ValidateListDraft evaluates whether a task list can be created.
// Rules:
// - PlanID must be positive
// - Name is required and at most 255 characters
func ValidateListDraft(d ListDraft) error {
	verr := validation.NewError()
	if d.PlanID <= 0 {
		verr.Add("plan_id", "is required")
	}
	checkName(verr, d.Name)
	return verr.ErrOrNil()
}

// ValidateTaskDraft evaluates whether a task can be created.
// Rules:
// - TaskListID must be positive
// - Name is required and at most 255 characters
func ValidateTaskDraft(d TaskDraft) error {
	verr := validation.NewError()
	if d.TaskListID <= 0 {
		verr.Add("task_list_id", "is required")
	}
	checkName(verr, d.Name)
	return verr.ErrOrNil()
}

// ValidateChange evaluates whether an update can be applied.
// Rules:
// - At least one field must be set
// - Name, when given, must be non-empty and at most 255 characters
// - Position, when given, must not be negative
func ValidateChange(c Change) error {
	verr := validation.NewError()
	if c.Empty {
		verr.Add("update", "no fields to update")
		return verr.ErrOrNil()
	}
	if c.Name != nil {
		checkName(verr, *c.Name)
	}
	if c.Position != nil && *c.Position < 0 {
		verr.Add("position", "must not be negative")
	}
	return verr.ErrOrNil()
}

// ValidateReorder evaluates a reorder mapping.
// Rules:
// - The mapping must not be empty
// - No position may be negative
// Duplicate positions are allowed; reads break ties by id.
func ValidateReorder(positions map[int64]int) error {
	verr := validation.NewError()
	if len(positions) == 0 {
		verr.Add("positions", "no positions to apply")
		return verr.ErrOrNil()
	}
	for id, pos := range positions {
		if pos < 0 {
			verr.Add("positions", fmt.Sprintf("position for id %d must not be negative", id))
			break
		}
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
