// Package secondary defines the persistence-side ports: repository
// interfaces and the record types they exchange. Timestamps cross this
// boundary as RFC3339 strings; empty string means NULL.
package secondary

import (
	"context"
	"errors"
)

// ErrRowNotFound signals a mutation that matched no row. Services map it
// to the caller-facing not-found error.
var ErrRowNotFound = errors.New("no matching row")

// PlanRecord is an implementation plan row at the persistence boundary.
type PlanRecord struct {
	ID          int64
	Name        string
	Title       string
	Summary     string
	Description string
	Content     string
	Status      string
	CreatedBy   string
	AssignedTo  string
	CreatedAt   string
	UpdatedAt   string
	CompletedAt string
}

// PlanUpdate carries the optional fields of a plan update. Nil means
// "leave unchanged"; an all-nil update is rejected before it reaches the
// repository.
type PlanUpdate struct {
	Name        *string
	Title       *string
	Summary     *string
	Description *string
	Content     *string
	Status      *string
	CreatedBy   *string
	AssignedTo  *string
}

// IsEmpty reports whether no field is set.
func (u PlanUpdate) IsEmpty() bool {
	return u.Name == nil && u.Title == nil && u.Summary == nil &&
		u.Description == nil && u.Content == nil && u.Status == nil &&
		u.CreatedBy == nil && u.AssignedTo == nil
}

// PlanFilters restricts a plan listing.
type PlanFilters struct {
	Status     string
	AssignedTo string
	Limit      int
	Offset     int
}

// PlanRepository persists implementation plans.
type PlanRepository interface {
	// Create inserts the plan and fills in its assigned ID.
	Create(ctx context.Context, plan *PlanRecord) error

	// GetByID returns the plan, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*PlanRecord, error)

	// GetByName returns the plan with the given unique name, or (nil, nil).
	GetByName(ctx context.Context, name string) (*PlanRecord, error)

	// List returns plans matching the filters, newest first.
	List(ctx context.Context, filters PlanFilters) ([]*PlanRecord, error)

	// Update applies the set fields as a single statement.
	Update(ctx context.Context, id int64, update PlanUpdate) error

	// Delete removes the plan and returns its final state.
	Delete(ctx context.Context, id int64) (*PlanRecord, error)

	// Complete sets status to completed and stamps completed_at.
	Complete(ctx context.Context, id int64) error

	// Archive sets status to archived without touching completed_at.
	Archive(ctx context.Context, id int64) error
}
