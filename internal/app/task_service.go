package app

import (
	"context"

	"github.com/example/planvault/internal/core/task"
	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskRepo secondary.TaskRepository
}

// NewTaskService creates a new TaskService with injected dependencies.
func NewTaskService(taskRepo secondary.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{taskRepo: taskRepo}
}

// CreateTask validates and creates a task under a task list. A negative
// request position appends after the list's current tasks.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req primary.CreateTaskRequest) (*primary.Task, error) {
	if err := task.ValidateTaskDraft(task.TaskDraft{TaskListID: req.TaskListID, Name: req.Name}); err != nil {
		return nil, err
	}

	exists, err := s.taskRepo.TaskListExists(ctx, req.TaskListID)
	if err != nil {
		return nil, validation.Database("check task list", err)
	}
	if !exists {
		return nil, validation.NotFound("task list", req.TaskListID)
	}

	record := &secondary.TaskRecord{
		TaskListID:  req.TaskListID,
		Name:        req.Name,
		Description: req.Description,
		Position:    req.Position,
		AssignedTo:  req.AssignedTo,
	}
	if err := s.taskRepo.Create(ctx, record); err != nil {
		return nil, validation.Database("create task", err)
	}
	return recordToTask(record), nil
}

// GetTask retrieves a task by ID.
func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID int64) (*primary.Task, error) {
	record, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, validation.Database("get task", err)
	}
	if record == nil {
		return nil, validation.NotFound("task", taskID)
	}
	return recordToTask(record), nil
}

// ListTasks lists a task list's tasks in position order.
func (s *TaskServiceImpl) ListTasks(ctx context.Context, taskListID int64, limit, offset int) ([]*primary.Task, error) {
	exists, err := s.taskRepo.TaskListExists(ctx, taskListID)
	if err != nil {
		return nil, validation.Database("check task list", err)
	}
	if !exists {
		return nil, validation.NotFound("task list", taskListID)
	}

	records, err := s.taskRepo.ListByTaskList(ctx, taskListID, limit, offset)
	if err != nil {
		return nil, validation.Database("list tasks", err)
	}
	tasks := make([]*primary.Task, 0, len(records))
	for _, record := range records {
		tasks = append(tasks, recordToTask(record))
	}
	return tasks, nil
}

// UpdateTask applies the set fields. An empty update is rejected.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID int64, req primary.UpdateTaskRequest) (*primary.Task, error) {
	update := secondary.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		Completed:   req.Completed,
		Position:    req.Position,
		AssignedTo:  req.AssignedTo,
	}
	change := task.Change{Name: req.Name, Position: req.Position, Empty: update.IsEmpty()}
	if err := task.ValidateChange(change); err != nil {
		return nil, err
	}

	existing, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, validation.Database("get task", err)
	}
	if existing == nil {
		return nil, validation.NotFound("task", taskID)
	}

	if err := s.taskRepo.Update(ctx, taskID, update); err != nil {
		return nil, validation.Database("update task", err)
	}
	return s.GetTask(ctx, taskID)
}

// CompleteTask marks the task done and stamps its completion time.
func (s *TaskServiceImpl) CompleteTask(ctx context.Context, taskID int64) (*primary.Task, error) {
	existing, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, validation.Database("get task", err)
	}
	if existing == nil {
		return nil, validation.NotFound("task", taskID)
	}

	if err := s.taskRepo.Complete(ctx, taskID); err != nil {
		return nil, validation.Database("complete task", err)
	}
	return s.GetTask(ctx, taskID)
}

// DeleteTask deletes the task and returns its final state.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID int64) (*primary.Task, error) {
	record, err := s.taskRepo.Delete(ctx, taskID)
	if err != nil {
		return nil, validation.Database("delete task", err)
	}
	if record == nil {
		return nil, validation.NotFound("task", taskID)
	}
	return recordToTask(record), nil
}

// ReorderTasks applies the id -> position mapping atomically.
func (s *TaskServiceImpl) ReorderTasks(ctx context.Context, taskListID int64, positions map[int64]int) error {
	if err := task.ValidateReorder(positions); err != nil {
		return err
	}

	exists, err := s.taskRepo.TaskListExists(ctx, taskListID)
	if err != nil {
		return validation.Database("check task list", err)
	}
	if !exists {
		return validation.NotFound("task list", taskListID)
	}

	if err := s.taskRepo.Reorder(ctx, taskListID, positions); err != nil {
		return validation.Database("reorder tasks", err)
	}
	return nil
}

func recordToTask(record *secondary.TaskRecord) *primary.Task {
	return &primary.Task{
		ID:          record.ID,
		TaskListID:  record.TaskListID,
		Name:        record.Name,
		Description: record.Description,
		Completed:   record.Completed,
		CompletedAt: record.CompletedAt,
		Position:    record.Position,
		AssignedTo:  record.AssignedTo,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
