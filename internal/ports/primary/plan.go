package primary

import "context"

// PlanService defines the primary port for implementation plan operations.
type PlanService interface {
	// CreatePlan validates and creates a new plan.
	CreatePlan(ctx context.Context, req CreatePlanRequest) (*Plan, error)

	// GetPlan retrieves a plan by ID.
	GetPlan(ctx context.Context, planID int64) (*Plan, error)

	// GetPlanByName retrieves a plan by its unique name.
	GetPlanByName(ctx context.Context, name string) (*Plan, error)

	// ListPlans lists plans with optional filters, newest first.
	ListPlans(ctx context.Context, filters PlanFilters) ([]*Plan, error)

	// UpdatePlan applies the set fields. An empty update is rejected.
	UpdatePlan(ctx context.Context, planID int64, req UpdatePlanRequest) (*Plan, error)

	// CompletePlan marks the plan completed and stamps its completion time.
	CompletePlan(ctx context.Context, planID int64) (*Plan, error)

	// ArchivePlan marks the plan archived.
	ArchivePlan(ctx context.Context, planID int64) (*Plan, error)

	// DeletePlan deletes the plan and returns its final state.
	DeletePlan(ctx context.Context, planID int64) (*Plan, error)
}

// CreatePlanRequest contains parameters for creating a plan.
type CreatePlanRequest struct {
	Name        string
	Title       string
	Summary     string
	Description string
	Content     string
	Status      string // Optional, defaults to draft
	CreatedBy   string
	AssignedTo  string
}

// UpdatePlanRequest contains the optional fields of a plan update. Nil
// means "leave unchanged".
type UpdatePlanRequest struct {
	Name        *string
	Title       *string
	Summary     *string
	Description *string
	Content     *string
	Status      *string
	CreatedBy   *string
	AssignedTo  *string
}

// Plan represents an implementation plan at the port boundary.
type Plan struct {
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

// PlanFilters contains filter options for listing plans.
type PlanFilters struct {
	Status     string
	AssignedTo string
	Limit      int
	Offset     int
}
