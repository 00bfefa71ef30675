package secondary

import "context"

// TaskListRecord is a task list row at the persistence boundary.
type TaskListRecord struct {
	ID          int64
	PlanID      int64
	Name        string
	Description string
	Position    int
	CreatedAt   string
	UpdatedAt   string
}

// TaskListUpdate carries the optional fields of a task list update.
type TaskListUpdate struct {
	Name        *string
	Description *string
	Position    *int
}

// IsEmpty reports whether no field is set.
func (u TaskListUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Position == nil
}

// TaskRecord is a task row at the persistence boundary.
type TaskRecord struct {
	ID          int64
	TaskListID  int64
	Name        string
	Description string
	Completed   bool
	CompletedAt string
	Position    int
	AssignedTo  string
	CreatedAt   string
	UpdatedAt   string
}

// TaskUpdate carries the optional fields of a task update.
type TaskUpdate struct {
	Name        *string
	Description *string
	Completed   *bool
	Position    *int
	AssignedTo  *string
}

// IsEmpty reports whether no field is set.
func (u TaskUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Completed == nil &&
		u.Position == nil && u.AssignedTo == nil
}

// TaskListRepository persists task lists and their ordering within a plan.
type TaskListRepository interface {
	// Create inserts the list. A negative Position means "assign the next
	// position among the plan's lists" inside the insert transaction.
	Create(ctx context.Context, list *TaskListRecord) error

	// GetByID returns the list, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*TaskListRecord, error)

	// ListByPlan returns the plan's lists in position order.
	ListByPlan(ctx context.Context, planID int64, limit, offset int) ([]*TaskListRecord, error)

	// Update applies the set fields as a single statement.
	Update(ctx context.Context, id int64, update TaskListUpdate) error

	// Delete removes the list and returns its final state.
	Delete(ctx context.Context, id int64) (*TaskListRecord, error)

	// NextPosition returns max(position)+1 among the plan's lists, 0 when
	// the plan has none.
	NextPosition(ctx context.Context, planID int64) (int, error)

	// Reorder applies the id -> position mapping in one transaction.
	Reorder(ctx context.Context, planID int64, positions map[int64]int) error

	// PlanExists reports whether the owning plan exists.
	PlanExists(ctx context.Context, planID int64) (bool, error)
}

// TaskRepository persists tasks and their ordering within a list.
type TaskRepository interface {
	// Create inserts the task. A negative Position means "assign the next
	// position among the list's tasks" inside the insert transaction.
	Create(ctx context.Context, task *TaskRecord) error

	// GetByID returns the task, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*TaskRecord, error)

	// ListByTaskList returns the list's tasks in position order.
	ListByTaskList(ctx context.Context, taskListID int64, limit, offset int) ([]*TaskRecord, error)

	// Update applies the set fields as a single statement.
	Update(ctx context.Context, id int64, update TaskUpdate) error

	// Delete removes the task and returns its final state.
	Delete(ctx context.Context, id int64) (*TaskRecord, error)

	// Complete marks the task done and stamps completed_at.
	Complete(ctx context.Context, id int64) error

	// NextPosition returns max(position)+1 among the list's tasks.
	NextPosition(ctx context.Context, taskListID int64) (int, error)

	// Reorder applies the id -> position mapping in one transaction.
	Reorder(ctx context.Context, taskListID int64, positions map[int64]int) error

	// TaskListExists reports whether the owning list exists.
	TaskListExists(ctx context.Context, taskListID int64) (bool, error)
}
