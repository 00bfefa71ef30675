package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/core/plan"
	"github.com/example/planvault/internal/ports/secondary"
)

const planColumns = `id, name, title, summary, description, content, status,
	created_by, assigned_to, created_at, updated_at, completed_at`

// PlanRepository implements secondary.PlanRepository with SQLite.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new SQLite plan repository.
func NewPlanRepository(db *sql.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

// Create persists a new plan and fills in its assigned ID.
func (r *PlanRepository) Create(ctx context.Context, p *secondary.PlanRecord) error {
	status := p.Status
	if status == "" {
		status = plan.StatusDraft
	}
	ts := now()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO implementation_plans
			(name, title, summary, description, content, status, created_by, assigned_to, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, nullStr(p.Title), nullStr(p.Summary), nullStr(p.Description), nullStr(p.Content),
		status, nullStr(p.CreatedBy), nullStr(p.AssignedTo), ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	p.ID = id
	p.Status = status
	p.CreatedAt = ts
	p.UpdatedAt = ts
	return nil
}

// GetByID retrieves a plan by its ID, (nil, nil) when it does not exist.
func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*secondary.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM implementation_plans WHERE id = ?", id)
	return scanPlan(row)
}

// GetByName retrieves a plan by its unique name, (nil, nil) when it does
// not exist.
func (r *PlanRepository) GetByName(ctx context.Context, name string) (*secondary.PlanRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM implementation_plans WHERE name = ?", name)
	return scanPlan(row)
}

// List retrieves plans matching the given filters, newest first.
func (r *PlanRepository) List(ctx context.Context, filters secondary.PlanFilters) ([]*secondary.PlanRecord, error) {
	query := "SELECT " + planColumns + " FROM implementation_plans WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.AssignedTo != "" {
		query += " AND assigned_to = ?"
		args = append(args, filters.AssignedTo)
	}

	query += " ORDER BY created_at DESC, id DESC"
	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
		if filters.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filters.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PlanRecord
	for rows.Next() {
		record, err := scanPlanRow(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return records, nil
}

// Update applies the set fields as a single statement.
func (r *PlanRepository) Update(ctx context.Context, id int64, update secondary.PlanUpdate) error {
	setClauses := []string{}
	args := []any{}

	addSet := func(col string, val any) {
		setClauses = append(setClauses, col+" = ?")
		args = append(args, val)
	}

	if update.Name != nil {
		addSet("name", *update.Name)
	}
	if update.Title != nil {
		addSet("title", nullStr(*update.Title))
	}
	if update.Summary != nil {
		addSet("summary", nullStr(*update.Summary))
	}
	if update.Description != nil {
		addSet("description", nullStr(*update.Description))
	}
	if update.Content != nil {
		addSet("content", nullStr(*update.Content))
	}
	if update.Status != nil {
		addSet("status", *update.Status)
	}
	if update.CreatedBy != nil {
		addSet("created_by", nullStr(*update.CreatedBy))
	}
	if update.AssignedTo != nil {
		addSet("assigned_to", nullStr(*update.AssignedTo))
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}
	addSet("updated_at", now())

	query := "UPDATE implementation_plans SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	return requireRow(res, "plan", id)
}

// Delete removes the plan inside a transaction and returns its final
// state. Task lists and tasks cascade at the schema level.
func (r *PlanRepository) Delete(ctx context.Context, id int64) (*secondary.PlanRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete plan: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT "+planColumns+" FROM implementation_plans WHERE id = ?", id)
	record, err := scanPlan(row)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM implementation_plans WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete plan: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to delete plan: %w", err)
	}
	return record, nil
}

// Complete sets status to completed and stamps completed_at.
func (r *PlanRepository) Complete(ctx context.Context, id int64) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		"UPDATE implementation_plans SET status = ?, completed_at = ?, updated_at = ? WHERE id = ?",
		plan.StatusCompleted, ts, ts, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete plan: %w", err)
	}
	return requireRow(res, "plan", id)
}

// Archive sets status to archived without touching completed_at.
func (r *PlanRepository) Archive(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE implementation_plans SET status = ?, updated_at = ? WHERE id = ?",
		plan.StatusArchived, now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to archive plan: %w", err)
	}
	return requireRow(res, "plan", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row *sql.Row) (*secondary.PlanRecord, error) {
	record, err := scanPlanRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

func scanPlanRow(s rowScanner) (*secondary.PlanRecord, error) {
	var (
		title, summary, desc, content     sql.NullString
		createdBy, assignedTo             sql.NullString
		createdAt, updatedAt, completedAt sql.NullString
	)

	record := &secondary.PlanRecord{}
	err := s.Scan(&record.ID, &record.Name, &title, &summary, &desc, &content, &record.Status,
		&createdBy, &assignedTo, &createdAt, &updatedAt, &completedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan plan: %w", err)
	}

	record.Title = title.String
	record.Summary = summary.String
	record.Description = desc.String
	record.Content = content.String
	record.CreatedBy = createdBy.String
	record.AssignedTo = assignedTo.String
	record.CreatedAt = createdAt.String
	record.UpdatedAt = updatedAt.String
	record.CompletedAt = completedAt.String
	return record, nil
}

func requireRow(res sql.Result, kind string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", kind, id, secondary.ErrRowNotFound)
	}
	return nil
}
