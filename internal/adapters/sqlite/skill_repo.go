package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/ports/secondary"
)

const skillColumns = `id, file_path, file_hash, category, name, title, description,
	content, size_bytes, token_count, created_at, updated_at`

// SkillRepository implements secondary.SkillRepository with SQLite.
type SkillRepository struct {
	db *sql.DB
}

// NewSkillRepository creates a new SQLite skill repository.
func NewSkillRepository(db *sql.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

// Create persists a new skill and fills in its assigned ID. The FTS index
// row is created by trigger.
func (r *SkillRepository) Create(ctx context.Context, skill *secondary.SkillRecord) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO skills
			(file_path, file_hash, category, name, title, description, content, size_bytes, token_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		skill.FilePath, nullStr(skill.FileHash), nullStr(skill.Category), skill.Name,
		nullStr(skill.Title), nullStr(skill.Description), nullStr(skill.Content),
		skill.SizeBytes, skill.TokenCount, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create skill: %w", err)
	}
	skill.ID = id
	skill.CreatedAt = ts
	skill.UpdatedAt = ts
	return nil
}

// GetByID retrieves a skill by its ID, (nil, nil) when it does not exist.
func (r *SkillRepository) GetByID(ctx context.Context, id int64) (*secondary.SkillRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE id = ?", id)
	record, err := scanSkill(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// GetByPath retrieves a skill by its unique file path, (nil, nil) when it
// does not exist.
func (r *SkillRepository) GetByPath(ctx context.Context, filePath string) (*secondary.SkillRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE file_path = ?", filePath)
	record, err := scanSkill(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// List retrieves skills matching the given filters, ordered by file path.
func (r *SkillRepository) List(ctx context.Context, filters secondary.SkillFilters) ([]*secondary.SkillRecord, error) {
	query := "SELECT " + skillColumns + " FROM skills WHERE 1=1"
	args := []any{}

	if filters.Category != "" {
		query += " AND category = ?"
		args = append(args, filters.Category)
	}
	query += " ORDER BY file_path"
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
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer rows.Close()

	var records []*secondary.SkillRecord
	for rows.Next() {
		record, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return records, nil
}

// Update applies the set fields as a single statement. The FTS index row
// is rewritten by trigger.
func (r *SkillRepository) Update(ctx context.Context, id int64, update secondary.SkillUpdate) error {
	setClauses := []string{}
	args := []any{}

	if update.FilePath != nil {
		setClauses = append(setClauses, "file_path = ?")
		args = append(args, *update.FilePath)
	}
	if update.FileHash != nil {
		setClauses = append(setClauses, "file_hash = ?")
		args = append(args, nullStr(*update.FileHash))
	}
	if update.Category != nil {
		setClauses = append(setClauses, "category = ?")
		args = append(args, nullStr(*update.Category))
	}
	if update.Name != nil {
		setClauses = append(setClauses, "name = ?")
		args = append(args, *update.Name)
	}
	if update.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, nullStr(*update.Title))
	}
	if update.Description != nil {
		setClauses = append(setClauses, "description = ?")
		args = append(args, nullStr(*update.Description))
	}
	if update.Content != nil {
		setClauses = append(setClauses, "content = ?")
		args = append(args, nullStr(*update.Content))
	}
	if update.SizeBytes != nil {
		setClauses = append(setClauses, "size_bytes = ?")
		args = append(args, *update.SizeBytes)
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

	query := "UPDATE skills SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update skill: %w", err)
	}
	return requireRow(res, "skill", id)
}

// Delete removes the skill inside a transaction and returns its final
// state. Junction rows cascade and the FTS row is removed by trigger.
func (r *SkillRepository) Delete(ctx context.Context, id int64) (*secondary.SkillRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete skill: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, "SELECT "+skillColumns+" FROM skills WHERE id = ?", id)
	record, err := scanSkill(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM skills WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete skill: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to delete skill: %w", err)
	}
	return record, nil
}

func scanSkill(s rowScanner) (*secondary.SkillRecord, error) {
	var (
		fileHash, category   sql.NullString
		title, desc, content sql.NullString
		createdAt, updatedAt sql.NullString
	)

	record := &secondary.SkillRecord{}
	err := s.Scan(&record.ID, &record.FilePath, &fileHash, &category, &record.Name, &title, &desc,
		&content, &record.SizeBytes, &record.TokenCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan skill: %w", err)
	}

	record.FileHash = fileHash.String
	record.Category = category.String
	record.Title = title.String
	record.Description = desc.String
	record.Content = content.String
	record.CreatedAt = createdAt.String
	record.UpdatedAt = updatedAt.String
	return record, nil
}
