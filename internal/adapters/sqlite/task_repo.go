package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/ports/secondary"
)

const taskColumns = `id, task_list_id, name, description, completed, completed_at,
	position, assigned_to, created_at, updated_at`

// TaskRepository implements secondary.TaskRepository with SQLite.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new SQLite task repository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task. A negative Position is replaced with the
// next position among the list's tasks, computed inside the insert
// transaction.
func (r *TaskRepository) Create(ctx context.Context, task *secondary.TaskRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pos := task.Position
	if pos < 0 {
		pos, err = nextPosition(ctx, tx, "tasks", "task_list_id", task.TaskListID)
		if err != nil {
			return err
		}
	}

	ts := now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tasks (task_list_id, name, description, completed, position, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?, ?, ?)`,
		task.TaskListID, task.Name, nullStr(task.Description), pos, nullStr(task.AssignedTo), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	task.ID = id
	task.Position = pos
	task.Completed = false
	task.CreatedAt = ts
	task.UpdatedAt = ts
	return nil
}

// GetByID retrieves a task by its ID, (nil, nil) when it does not exist.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*secondary.TaskRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// ListByTaskList retrieves the list's tasks in position order.
func (r *TaskRepository) ListByTaskList(ctx context.Context, taskListID int64, limit, offset int) ([]*secondary.TaskRecord, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE task_list_id = ? ORDER BY position, id"
	args := []any{taskListID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
		if offset > 0 {
			query += " OFFSET ?"
			args = append(args, offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TaskRecord
	for rows.Next() {
		record, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return records, nil
}

// Update applies the set fields as a single statement. Setting Completed
// to true stamps completed_at; setting it to false clears it.
func (r *TaskRepository) Update(ctx context.Context, id int64, update secondary.TaskUpdate) error {
	setClauses := []string{}
	args := []any{}

	if update.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, nullStr(*update.Description))
	}
	if update.Completed != nil {
		setClauses = append(setClauses, "completed = ?", "completed_at = ?")
		if *update.Completed {
			args = append(args, 1, now())
		} else {
			args = append(args, 0, nil)
		}
	}
	if update.Position != nil {
		setClauses = append(setClauses, "position = ?")
		args = append(args, *update.Position)
	}
	if update.AssignedTo != nil {
		setClauses = append(setClauses, "assigned_to = ?")
		args = append(args, nullStr(*update.AssignedTo))
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, now(), id)

	query := "UPDATE tasks SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return requireRow(res, "task", id)
}

// Delete removes the task inside a transaction and returns its final state.
func (r *TaskRepository) Delete(ctx context.Context, id int64) (*secondary.TaskRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	record, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return record, nil
}

// Complete marks the task done and stamps completed_at.
func (r *TaskRepository) Complete(ctx context.Context, id int64) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET completed = 1, completed_at = ?, updated_at = ? WHERE id = ?",
		ts, ts, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete task: %w", err)
	}
	return requireRow(res, "task", id)
}

// NextPosition returns max(position)+1 among the list's tasks.
func (r *TaskRepository) NextPosition(ctx context.Context, taskListID int64) (int, error) {
	return nextPosition(ctx, r.db, "tasks", "task_list_id", taskListID)
}

// Reorder applies the id -> position mapping in one transaction.
func (r *TaskRepository) Reorder(ctx context.Context, taskListID int64, positions map[int64]int) error {
	return reorder(ctx, r.db, "tasks", "task_list_id", taskListID, positions, true)
}

// TaskListExists reports whether the owning task list exists.
func (r *TaskRepository) TaskListExists(ctx context.Context, taskListID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM task_lists WHERE id = ?", taskListID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check task list: %w", err)
	}
	return true, nil
}

func scanTask(s rowScanner) (*secondary.TaskRecord, error) {
	var (
		desc, completedAt    sql.NullString
		assignedTo           sql.NullString
		createdAt, updatedAt sql.NullString
		completed            int
	)

	record := &secondary.TaskRecord{}
	err := s.Scan(&record.ID, &record.TaskListID, &record.Name, &desc, &completed, &completedAt,
		&record.Position, &assignedTo, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task: %w", err)
	}

	record.Description = desc.String
	record.Completed = completed != 0
	record.CompletedAt = completedAt.String
	record.AssignedTo = assignedTo.String
	record.CreatedAt = createdAt.String
	record.UpdatedAt = updatedAt.String
	return record, nil
}
