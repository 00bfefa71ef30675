package app

import (
	"context"

	"github.com/example/planvault/internal/core/task"
	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// TaskListServiceImpl implements the TaskListService interface.
type TaskListServiceImpl struct {
	taskListRepo secondary.TaskListRepository
}

// NewTaskListService creates a new TaskListService with injected
// dependencies.
func NewTaskListService(taskListRepo secondary.TaskListRepository) *TaskListServiceImpl {
	return &TaskListServiceImpl{taskListRepo: taskListRepo}
}

// CreateTaskList validates and creates a task list under a plan. A
// negative request position appends after the plan's current lists.
func (s *TaskListServiceImpl) CreateTaskList(ctx context.Context, req primary.CreateTaskListRequest) (*primary.TaskList, error) {
	if err := task.ValidateListDraft(task.ListDraft{PlanID: req.PlanID, Name: req.Name}); err != nil {
		return nil, err
	}

	exists, err := s.taskListRepo.PlanExists(ctx, req.PlanID)
	if err != nil {
		return nil, validation.Database("check plan", err)
	}
	if !exists {
		return nil, validation.NotFound("plan", req.PlanID)
	}

	record := &secondary.TaskListRecord{
		PlanID:      req.PlanID,
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
	}
	if err := s.taskListRepo.Create(ctx, record); err != nil {
		return nil, validation.Database("create task list", err)
	}
	return recordToTaskList(record), nil
}

// GetTaskList retrieves a task list by ID.
func (s *TaskListServiceImpl) GetTaskList(ctx context.Context, taskListID int64) (*primary.TaskList, error) {
	record, err := s.taskListRepo.GetByID(ctx, taskListID)
	if err != nil {
		return nil, validation.Database("get task list", err)
	}
	if record == nil {
		return nil, validation.NotFound("task list", taskListID)
	}
	return recordToTaskList(record), nil
}

// ListTaskLists lists a plan's task lists in position order.
func (s *TaskListServiceImpl) ListTaskLists(ctx context.Context, planID int64, limit, offset int) ([]*primary.TaskList, error) {
	exists, err := s.taskListRepo.PlanExists(ctx, planID)
	if err != nil {
		return nil, validation.Database("check plan", err)
	}
	if !exists {
		return nil, validation.NotFound("plan", planID)
	}

	records, err := s.taskListRepo.ListByPlan(ctx, planID, limit, offset)
	if err != nil {
		return nil, validation.Database("list task lists", err)
	}
	lists := make([]*primary.TaskList, 0, len(records))
	for _, record := range records {
		lists = append(lists, recordToTaskList(record))
	}
	return lists, nil
}

// UpdateTaskList applies the set fields. An empty update is rejected.
func (s *TaskListServiceImpl) UpdateTaskList(ctx context.Context, taskListID int64, req primary.UpdateTaskListRequest) (*primary.TaskList, error) {
	update := secondary.TaskListUpdate{
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
	}
	change := task.Change{Name: req.Name, Position: req.Position, Empty: update.IsEmpty()}
	if err := task.ValidateChange(change); err != nil {
		return nil, err
	}

	existing, err := s.taskListRepo.GetByID(ctx, taskListID)
	if err != nil {
		return nil, validation.Database("get task list", err)
	}
	if existing == nil {
		return nil, validation.NotFound("task list", taskListID)
	}

	if err := s.taskListRepo.Update(ctx, taskListID, update); err != nil {
		return nil, validation.Database("update task list", err)
	}
	return s.GetTaskList(ctx, taskListID)
}

// DeleteTaskList deletes the list and returns its final state.
func (s *TaskListServiceImpl) DeleteTaskList(ctx context.Context, taskListID int64) (*primary.TaskList, error) {
	record, err := s.taskListRepo.Delete(ctx, taskListID)
	if err != nil {
		return nil, validation.Database("delete task list", err)
	}
	if record == nil {
		return nil, validation.NotFound("task list", taskListID)
	}
	return recordToTaskList(record), nil
}

// ReorderTaskLists applies the id -> position mapping atomically.
func (s *TaskListServiceImpl) ReorderTaskLists(ctx context.Context, planID int64, positions map[int64]int) error {
	if err := task.ValidateReorder(positions); err != nil {
		return err
	}

	exists, err := s.taskListRepo.PlanExists(ctx, planID)
	if err != nil {
		return validation.Database("check plan", err)
	}
	if !exists {
		return validation.NotFound("plan", planID)
	}

	if err := s.taskListRepo.Reorder(ctx, planID, positions); err != nil {
		return validation.Database("reorder task lists", err)
	}
	return nil
}

func recordToTaskList(record *secondary.TaskListRecord) *primary.TaskList {
	return &primary.TaskList{
		ID:          record.ID,
		PlanID:      record.PlanID,
		Name:        record.Name,
		Description: record.Description,
		Position:    record.Position,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
