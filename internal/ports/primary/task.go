package primary

import "context"

// TaskListService defines the primary port for task list operations.
type TaskListService interface {
	// CreateTaskList validates and creates a task list under a plan.
	CreateTaskList(ctx context.Context, req CreateTaskListRequest) (*TaskList, error)

	// GetTaskList retrieves a task list by ID.
	GetTaskList(ctx context.Context, taskListID int64) (*TaskList, error)

	// ListTaskLists lists a plan's task lists in position order.
	ListTaskLists(ctx context.Context, planID int64, limit, offset int) ([]*TaskList, error)

	// UpdateTaskList applies the set fields. An empty update is rejected.
	UpdateTaskList(ctx context.Context, taskListID int64, req UpdateTaskListRequest) (*TaskList, error)

	// DeleteTaskList deletes the list and returns its final state. Tasks
	// under it are removed as well.
	DeleteTaskList(ctx context.Context, taskListID int64) (*TaskList, error)

	// ReorderTaskLists applies the id -> position mapping atomically.
	ReorderTaskLists(ctx context.Context, planID int64, positions map[int64]int) error
}

// TaskService defines the primary port for task operations.
type TaskService interface {
	// CreateTask validates and creates a task under a task list.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)

	// GetTask retrieves a task by ID.
	GetTask(ctx context.Context, taskID int64) (*Task, error)

	// ListTasks lists a task list's tasks in position order.
	ListTasks(ctx context.Context, taskListID int64, limit, offset int) ([]*Task, error)

	// UpdateTask applies the set fields. An empty update is rejected.
	UpdateTask(ctx context.Context, taskID int64, req UpdateTaskRequest) (*Task, error)

	// CompleteTask marks the task done and stamps its completion time.
	CompleteTask(ctx context.Context, taskID int64) (*Task, error)

	// DeleteTask deletes the task and returns its final state.
	DeleteTask(ctx context.Context, taskID int64) (*Task, error)

	// ReorderTasks applies the id -> position mapping atomically.
	ReorderTasks(ctx context.Context, taskListID int64, positions map[int64]int) error
}

// CreateTaskListRequest contains parameters for creating a task list.
// Position -1 appends after the plan's current lists.
type CreateTaskListRequest struct {
	PlanID      int64
	Name        string
	Description string
	Position    int
}

// UpdateTaskListRequest contains the optional fields of a task list update.
type UpdateTaskListRequest struct {
	Name        *string
	Description *string
	Position    *int
}

// CreateTaskRequest contains parameters for creating a task. Position -1
// appends after the list's current tasks.
type CreateTaskRequest struct {
	TaskListID  int64
	Name        string
	Description string
	Position    int
	AssignedTo  string
}

// UpdateTaskRequest contains the optional fields of a task update.
type UpdateTaskRequest struct {
	Name        *string
	Description *string
	Completed   *bool
	Position    *int
	AssignedTo  *string
}

// TaskList represents a task list at the port boundary.
type TaskList struct {
	ID          int64
	PlanID      int64
	Name        string
	Description string
	Position    int
	CreatedAt   string
	UpdatedAt   string
}

// Task represents a task at the port boundary.
type Task struct {
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
