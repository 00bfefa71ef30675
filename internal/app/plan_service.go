// Package app contains the service layer: validation, existence checks,
// and orchestration between the primary ports and the repositories.
package app

import (
	"context"

	"github.com/example/planvault/internal/core/plan"
	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// PlanServiceImpl implements the PlanService interface.
type PlanServiceImpl struct {
	planRepo secondary.PlanRepository
}

// NewPlanService creates a new PlanService with injected dependencies.
func NewPlanService(planRepo secondary.PlanRepository) *PlanServiceImpl {
	return &PlanServiceImpl{planRepo: planRepo}
}

// CreatePlan validates and creates a new plan.
func (s *PlanServiceImpl) CreatePlan(ctx context.Context, req primary.CreatePlanRequest) (*primary.Plan, error) {
	if err := plan.ValidateDraft(plan.Draft{Name: req.Name, Title: req.Title, Status: req.Status}); err != nil {
		return nil, err
	}

	// Names are unique; report a collision as a field problem rather than
	// surfacing the constraint error.
	existing, err := s.planRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, validation.Database("check plan name", err)
	}
	if existing != nil {
		verr := validation.NewError()
		verr.Add("name", "already in use")
		return nil, verr
	}

	record := &secondary.PlanRecord{
		Name:        req.Name,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Content:     req.Content,
		Status:      req.Status,
		CreatedBy:   req.CreatedBy,
		AssignedTo:  req.AssignedTo,
	}
	if err := s.planRepo.Create(ctx, record); err != nil {
		return nil, validation.Database("create plan", err)
	}
	return recordToPlan(record), nil
}

// GetPlan retrieves a plan by ID.
func (s *PlanServiceImpl) GetPlan(ctx context.Context, planID int64) (*primary.Plan, error) {
	record, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, validation.Database("get plan", err)
	}
	if record == nil {
		return nil, validation.NotFound("plan", planID)
	}
	return recordToPlan(record), nil
}

// GetPlanByName retrieves a plan by its unique name.
func (s *PlanServiceImpl) GetPlanByName(ctx context.Context, name string) (*primary.Plan, error) {
	record, err := s.planRepo.GetByName(ctx, name)
	if err != nil {
		return nil, validation.Database("get plan", err)
	}
	if record == nil {
		return nil, validation.NotFoundName("plan", name)
	}
	return recordToPlan(record), nil
}

// ListPlans lists plans with optional filters, newest first.
func (s *PlanServiceImpl) ListPlans(ctx context.Context, filters primary.PlanFilters) ([]*primary.Plan, error) {
	records, err := s.planRepo.List(ctx, secondary.PlanFilters{
		Status:     filters.Status,
		AssignedTo: filters.AssignedTo,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	})
	if err != nil {
		return nil, validation.Database("list plans", err)
	}

	plans := make([]*primary.Plan, 0, len(records))
	for _, record := range records {
		plans = append(plans, recordToPlan(record))
	}
	return plans, nil
}

// UpdatePlan applies the set fields and returns the updated plan. An empty
// update is rejected before touching the database.
func (s *PlanServiceImpl) UpdatePlan(ctx context.Context, planID int64, req primary.UpdatePlanRequest) (*primary.Plan, error) {
	update := secondary.PlanUpdate{
		Name:        req.Name,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Content:     req.Content,
		Status:      req.Status,
		CreatedBy:   req.CreatedBy,
		AssignedTo:  req.AssignedTo,
	}
	change := plan.Change{
		Name:   req.Name,
		Title:  req.Title,
		Status: req.Status,
		Empty:  update.IsEmpty(),
	}
	if err := plan.ValidateChange(change); err != nil {
		return nil, err
	}

	existing, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, validation.Database("get plan", err)
	}
	if existing == nil {
		return nil, validation.NotFound("plan", planID)
	}

	if req.Name != nil && *req.Name != existing.Name {
		collision, err := s.planRepo.GetByName(ctx, *req.Name)
		if err != nil {
			return nil, validation.Database("check plan name", err)
		}
		if collision != nil {
			verr := validation.NewError()
			verr.Add("name", "already in use")
			return nil, verr
		}
	}

	if err := s.planRepo.Update(ctx, planID, update); err != nil {
		return nil, validation.Database("update plan", err)
	}
	return s.GetPlan(ctx, planID)
}

// CompletePlan marks the plan completed and stamps its completion time.
func (s *PlanServiceImpl) CompletePlan(ctx context.Context, planID int64) (*primary.Plan, error) {
	existing, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, validation.Database("get plan", err)
	}
	if existing == nil {
		return nil, validation.NotFound("plan", planID)
	}

	if err := s.planRepo.Complete(ctx, planID); err != nil {
		return nil, validation.Database("complete plan", err)
	}
	return s.GetPlan(ctx, planID)
}

// ArchivePlan marks the plan archived.
func (s *PlanServiceImpl) ArchivePlan(ctx context.Context, planID int64) (*primary.Plan, error) {
	existing, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		return nil, validation.Database("get plan", err)
	}
	if existing == nil {
		return nil, validation.NotFound("plan", planID)
	}

	if err := s.planRepo.Archive(ctx, planID); err != nil {
		return nil, validation.Database("archive plan", err)
	}
	return s.GetPlan(ctx, planID)
}

// DeletePlan deletes the plan and returns its final state.
func (s *PlanServiceImpl) DeletePlan(ctx context.Context, planID int64) (*primary.Plan, error) {
	record, err := s.planRepo.Delete(ctx, planID)
	if err != nil {
		return nil, validation.Database("delete plan", err)
	}
	if record == nil {
		return nil, validation.NotFound("plan", planID)
	}
	return recordToPlan(record), nil
}

func recordToPlan(record *secondary.PlanRecord) *primary.Plan {
	return &primary.Plan{
		ID:          record.ID,
		Name:        record.Name,
		Title:       record.Title,
		Summary:     record.Summary,
		Description: record.Description,
		Content:     record.Content,
		Status:      record.Status,
		CreatedBy:   record.CreatedBy,
		AssignedTo:  record.AssignedTo,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		CompletedAt: record.CompletedAt,
	}
}
