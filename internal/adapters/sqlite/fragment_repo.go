package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/ports/secondary"
)

const fragmentColumns = "id, name, description, content, token_count, created_at, updated_at"

// FragmentRepository implements secondary.FragmentRepository with SQLite.
type FragmentRepository struct {
	db *sql.DB
}

// NewFragmentRepository creates a new SQLite fragment repository.
func NewFragmentRepository(db *sql.DB) *FragmentRepository {
	return &FragmentRepository{db: db}
}

// Create persists a new fragment and fills in its assigned ID.
func (r *FragmentRepository) Create(ctx context.Context, fragment *secondary.FragmentRecord) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO prompt_fragments (name, description, content, token_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		fragment.Name, nullStr(fragment.Description), nullStr(fragment.Content),
		fragment.TokenCount, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create fragment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create fragment: %w", err)
	}
	fragment.ID = id
	fragment.CreatedAt = ts
	fragment.UpdatedAt = ts
	return nil
}

// GetByID retrieves a fragment by its ID, (nil, nil) when it does not
// exist.
func (r *FragmentRepository) GetByID(ctx context.Context, id int64) (*secondary.FragmentRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+fragmentColumns+" FROM prompt_fragments WHERE id = ?", id)
	record, err := scanFragment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// List retrieves fragments ordered by name.
func (r *FragmentRepository) List(ctx context.Context, limit, offset int) ([]*secondary.FragmentRecord, error) {
	query := "SELECT " + fragmentColumns + " FROM prompt_fragments ORDER BY name"
	args := []any{}
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
		return nil, fmt.Errorf("failed to list fragments: %w", err)
	}
	defer rows.Close()

	var records []*secondary.FragmentRecord
	for rows.Next() {
		record, err := scanFragment(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list fragments: %w", err)
	}
	return records, nil
}

// Update applies the set fields as a single statement.
func (r *FragmentRepository) Update(ctx context.Context, id int64, update secondary.FragmentUpdate) error {
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
	if update.Content != nil {
		setClauses = append(setClauses, "content = ?")
		args = append(args, nullStr(*update.Content))
	}
	if update.TokenCount != nil {
		setClauses = append(setClauses, "token_count = ?")
		args = append(args, *update.TokenCount)
	}
	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update")
	}
	setClauses = append(setClauses, "updated_at = ?")
	args = append(args, now(), id)

	query := "UPDATE prompt_fragments SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update fragment: %w", err)
	}
	return requireRow(res, "fragment", id)
}

// Delete removes the fragment inside a transaction and returns its final
// state. Skill links and references to it cascade at the schema level.
func (r *FragmentRepository) Delete(ctx context.Context, id int64) (*secondary.FragmentRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete fragment: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, "SELECT "+fragmentColumns+" FROM prompt_fragments WHERE id = ?", id)
	record, err := scanFragment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM prompt_fragments WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete fragment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to delete fragment: %w", err)
	}
	return record, nil
}

// AttachSkill links a skill to the fragment at the next position.
func (r *FragmentRepository) AttachSkill(ctx context.Context, fragmentID, skillID int64) (*secondary.PromptSkillRecord, error) {
	return attachSkill(ctx, r.db, "prompt_fragment_skills", "fragment_id", fragmentID, skillID)
}

// DetachSkill removes the fragment<->skill link.
func (r *FragmentRepository) DetachSkill(ctx context.Context, fragmentID, skillID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM prompt_fragment_skills WHERE fragment_id = ? AND skill_id = ?", fragmentID, skillID)
	if err != nil {
		return fmt.Errorf("failed to detach skill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to detach skill: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("skill %d on fragment %d: %w", skillID, fragmentID, secondary.ErrRowNotFound)
	}
	return nil
}

// ListSkills retrieves the fragment's skills in position order.
func (r *FragmentRepository) ListSkills(ctx context.Context, fragmentID int64) ([]*secondary.PromptSkillRecord, error) {
	return listAttachedSkills(ctx, r.db, "prompt_fragment_skills", "fragment_id", fragmentID)
}

func scanFragment(s rowScanner) (*secondary.FragmentRecord, error) {
	var desc, content, createdAt, updatedAt sql.NullString

	record := &secondary.FragmentRecord{}
	err := s.Scan(&record.ID, &record.Name, &desc, &content, &record.TokenCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan fragment: %w", err)
	}

	record.Description = desc.String
	record.Content = content.String
	record.CreatedAt = createdAt.String
	record.UpdatedAt = updatedAt.String
	return record, nil
}
