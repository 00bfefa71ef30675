package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/ports/secondary"
)

const taskListColumns = "id, plan_id, name, description, position, created_at, updated_at"

// TaskListRepository implements secondary.TaskListRepository with SQLite.
type TaskListRepository struct {
	db *sql.DB
}

// NewTaskListRepository creates a new SQLite task list repository.
func NewTaskListRepository(db *sql.DB) *TaskListRepository {
	return &TaskListRepository{db: db}
}

// Create persists a new task list. A negative Position is replaced with
// the next position among the plan's lists, computed inside the insert
// transaction so concurrent appends cannot collide.
func (r *TaskListRepository) Create(ctx context.Context, list *secondary.TaskListRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pos := list.Position
	if pos < 0 {
		pos, err = nextPosition(ctx, tx, "task_lists", "plan_id", list.PlanID)
		if err != nil {
			return err
		}
	}

	ts := now()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO task_lists (plan_id, name, description, position, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		list.PlanID, list.Name, nullStr(list.Description), pos, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to create task list: %w", err)
	}

	list.ID = id
	list.Position = pos
	list.CreatedAt = ts
	list.UpdatedAt = ts
	return nil
}

// GetByID retrieves a task list by its ID, (nil, nil) when it does not
// exist.
func (r *TaskListRepository) GetByID(ctx context.Context, id int64) (*secondary.TaskListRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+taskListColumns+" FROM task_lists WHERE id = ?", id)
	record, err := scanTaskList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// ListByPlan retrieves the plan's task lists in position order.
func (r *TaskListRepository) ListByPlan(ctx context.Context, planID int64, limit, offset int) ([]*secondary.TaskListRecord, error) {
	query := "SELECT " + taskListColumns + " FROM task_lists WHERE plan_id = ? ORDER BY position, id"
	args := []any{planID}
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
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}
	defer rows.Close()

	var records []*secondary.TaskListRecord
	for rows.Next() {
		record, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}
	return records, nil
}

// Update applies the set fields as a single statement.
func (r *TaskListRepository) Update(ctx context.Context, id int64, update secondary.TaskListUpdate) error {
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
	if update.Position != nil {
		setClauses = append(setClauses, "position = ?")
		args = append(args, *update.Position)
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, now(), id)

	query := "UPDATE task_lists SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update task list: %w", err)
	}
	return requireRow(res, "task list", id)
}

// Delete removes the task list inside a transaction and returns its final
// state. Its tasks cascade at the schema level.
func (r *TaskListRepository) Delete(ctx context.Context, id int64) (*secondary.TaskListRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task list: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT "+taskListColumns+" FROM task_lists WHERE id = ?", id)
	record, err := scanTaskList(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM task_lists WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete task list: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to delete task list: %w", err)
	}
	return record, nil
}

// NextPosition returns max(position)+1 among the plan's lists.
func (r *TaskListRepository) NextPosition(ctx context.Context, planID int64) (int, error) {
	return nextPosition(ctx, r.db, "task_lists", "plan_id", planID)
}

// Reorder applies the id -> position mapping in one transaction.
func (r *TaskListRepository) Reorder(ctx context.Context, planID int64, positions map[int64]int) error {
	return reorder(ctx, r.db, "task_lists", "plan_id", planID, positions, true)
}

// PlanExists reports whether the owning plan exists.
func (r *TaskListRepository) PlanExists(ctx context.Context, planID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM implementation_plans WHERE id = ?", planID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check plan: %w", err)
	}
	return true, nil
}

func scanTaskList(s rowScanner) (*secondary.TaskListRecord, error) {
	var desc, createdAt, updatedAt sql.NullString

	record := &secondary.TaskListRecord{}
	err := s.Scan(&record.ID, &record.PlanID, &record.Name, &desc, &record.Position, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan task list: %w", err)
	}

	record.Description = desc.String
	record.CreatedAt = createdAt.String
	record.UpdatedAt = updatedAt.String
	return record, nil
}
