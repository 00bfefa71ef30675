package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/ports/secondary"
)

const promptColumns = `id, file_path, file_hash, category, name, title, description,
	content, size_bytes, token_count, created_at, updated_at`

// PromptRepository implements secondary.PromptRepository with SQLite,
// covering prompts, their skill attachments, and their references.
type PromptRepository struct {
	db *sql.DB
}

// NewPromptRepository creates a new SQLite prompt repository.
func NewPromptRepository(db *sql.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Create persists a new prompt and fills in its assigned ID.
func (r *PromptRepository) Create(ctx context.Context, prompt *secondary.PromptRecord) error {
	ts := now()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO prompts
			(file_path, file_hash, category, name, title, description, content, size_bytes, token_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		prompt.FilePath, nullStr(prompt.FileHash), nullStr(prompt.Category), prompt.Name,
		nullStr(prompt.Title), nullStr(prompt.Description), nullStr(prompt.Content),
		prompt.SizeBytes, prompt.TokenCount, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to create prompt: %w", err)
	}
	prompt.ID = id
	prompt.CreatedAt = ts
	prompt.UpdatedAt = ts
	return nil
}

// GetByID retrieves a prompt by its ID, (nil, nil) when it does not exist.
func (r *PromptRepository) GetByID(ctx context.Context, id int64) (*secondary.PromptRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+promptColumns+" FROM prompts WHERE id = ?", id)
	record, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// GetByPath retrieves a prompt by its unique file path, (nil, nil) when it
// does not exist.
func (r *PromptRepository) GetByPath(ctx context.Context, filePath string) (*secondary.PromptRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+promptColumns+" FROM prompts WHERE file_path = ?", filePath)
	record, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return record, err
}

// List retrieves prompts matching the given filters, ordered by file path.
func (r *PromptRepository) List(ctx context.Context, filters secondary.SkillFilters) ([]*secondary.PromptRecord, error) {
	query := "SELECT " + promptColumns + " FROM prompts WHERE 1=1"
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
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PromptRecord
	for rows.Next() {
		record, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return records, nil
}

// Update applies the set fields as a single statement.
func (r *PromptRepository) Update(ctx context.Context, id int64, update secondary.PromptUpdate) error {
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

	query := "UPDATE prompts SET " + strings.Join(setClauses, ", ") + " WHERE id = ?"
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update prompt: %w", err)
	}
	return requireRow(res, "prompt", id)
}

// Delete removes the prompt inside a transaction and returns its final
// state. Skill attachments and references cascade at the schema level.
func (r *PromptRepository) Delete(ctx context.Context, id int64) (*secondary.PromptRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to delete prompt: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, "SELECT "+promptColumns+" FROM prompts WHERE id = ?", id)
	record, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM prompts WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete prompt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to delete prompt: %w", err)
	}
	return record, nil
}

// AttachSkill links a skill to the prompt at the next position within the
// insert transaction.
func (r *PromptRepository) AttachSkill(ctx context.Context, promptID, skillID int64) (*secondary.PromptSkillRecord, error) {
	return attachSkill(ctx, r.db, "prompt_skills", "prompt_id", promptID, skillID)
}

// DetachSkill removes the prompt<->skill link.
func (r *PromptRepository) DetachSkill(ctx context.Context, promptID, skillID int64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM prompt_skills WHERE prompt_id = ? AND skill_id = ?", promptID, skillID)
	if err != nil {
		return fmt.Errorf("failed to detach skill: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to detach skill: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("skill %d on prompt %d: %w", skillID, promptID, secondary.ErrRowNotFound)
	}
	return nil
}

// ListSkills retrieves the prompt's skills in position order, with each
// skill record populated.
func (r *PromptRepository) ListSkills(ctx context.Context, promptID int64) ([]*secondary.PromptSkillRecord, error) {
	return listAttachedSkills(ctx, r.db, "prompt_skills", "prompt_id", promptID)
}

// ReorderSkills applies the skill id -> position mapping in one
// transaction.
func (r *PromptRepository) ReorderSkills(ctx context.Context, promptID int64, positions map[int64]int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for skillID, pos := range positions {
		res, err := tx.ExecContext(ctx,
			"UPDATE prompt_skills SET position = ? WHERE prompt_id = ? AND skill_id = ?",
			pos, promptID, skillID)
		if err != nil {
			return fmt.Errorf("failed to reorder prompt skills: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to reorder prompt skills: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("skill %d on prompt %d: %w", skillID, promptID, secondary.ErrRowNotFound)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}

// AddReference appends a reference row at the next position within the
// insert transaction and fills in its assigned ID.
func (r *PromptRepository) AddReference(ctx context.Context, ref *secondary.ReferenceRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to add reference: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pos, err := nextPosition(ctx, tx, "prompt_references", "prompt_id", ref.PromptID)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO prompt_references (prompt_id, reference_type, target_prompt_id, fragment_id, position, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ref.PromptID, ref.ReferenceType, nullID(ref.TargetPromptID), nullID(ref.FragmentID), pos, now(),
	)
	if err != nil {
		return fmt.Errorf("failed to add reference: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to add reference: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to add reference: %w", err)
	}

	ref.ID = id
	ref.Position = pos
	return nil
}

// ListReferences retrieves the prompt's references in position order.
func (r *PromptRepository) ListReferences(ctx context.Context, promptID int64) ([]*secondary.ReferenceRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, prompt_id, reference_type, target_prompt_id, fragment_id, position
		FROM prompt_references WHERE prompt_id = ? ORDER BY position, id`, promptID)
	if err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ReferenceRecord
	for rows.Next() {
		var targetPromptID, fragmentID sql.NullInt64
		record := &secondary.ReferenceRecord{}
		if err := rows.Scan(&record.ID, &record.PromptID, &record.ReferenceType,
			&targetPromptID, &fragmentID, &record.Position); err != nil {
			return nil, fmt.Errorf("failed to scan reference: %w", err)
		}
		record.TargetPromptID = targetPromptID.Int64
		record.FragmentID = fragmentID.Int64
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list references: %w", err)
	}
	return records, nil
}

// RemoveReference deletes one reference row.
func (r *PromptRepository) RemoveReference(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM prompt_references WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to remove reference: %w", err)
	}
	return requireRow(res, "reference", id)
}

// SkillExists reports whether the skill exists.
func (r *PromptRepository) SkillExists(ctx context.Context, skillID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM skills WHERE id = ?", skillID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check skill: %w", err)
	}
	return true, nil
}

// FragmentExists reports whether the fragment exists.
func (r *PromptRepository) FragmentExists(ctx context.Context, fragmentID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM prompt_fragments WHERE id = ?", fragmentID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check fragment: %w", err)
	}
	return true, nil
}

// attachSkill inserts a junction row at the next position. The junction
// tables share a shape, differing only in the owner column.
func attachSkill(ctx context.Context, db *sql.DB, table, ownerCol string, ownerID, skillID int64) (*secondary.PromptSkillRecord, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to attach skill: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	pos, err := nextPosition(ctx, tx, table, ownerCol, ownerID)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, skill_id, position, created_at) VALUES (?, ?, ?, ?)",
		table, ownerCol)
	res, err := tx.ExecContext(ctx, query, ownerID, skillID, pos, now())
	if err != nil {
		return nil, fmt.Errorf("failed to attach skill: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to attach skill: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to attach skill: %w", err)
	}

	return &secondary.PromptSkillRecord{
		ID:       id,
		OwnerID:  ownerID,
		SkillID:  skillID,
		Position: pos,
	}, nil
}

// listAttachedSkills joins the junction table with skills in position
// order.
func listAttachedSkills(ctx context.Context, db *sql.DB, table, ownerCol string, ownerID int64) ([]*secondary.PromptSkillRecord, error) {
	query := fmt.Sprintf(
		`SELECT j.id, j.%s, j.skill_id, j.position,
			s.id, s.file_path, s.file_hash, s.category, s.name, s.title, s.description,
			s.content, s.size_bytes, s.token_count, s.created_at, s.updated_at
		FROM %s j JOIN skills s ON s.id = j.skill_id
		WHERE j.%s = ? ORDER BY j.position, j.id`,
		ownerCol, table, ownerCol)

	rows, err := db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attached skills: %w", err)
	}
	defer rows.Close()

	var records []*secondary.PromptSkillRecord
	for rows.Next() {
		var (
			fileHash, category   sql.NullString
			title, desc, content sql.NullString
			createdAt, updatedAt sql.NullString
		)
		record := &secondary.PromptSkillRecord{Skill: &secondary.SkillRecord{}}
		skill := record.Skill
		err := rows.Scan(&record.ID, &record.OwnerID, &record.SkillID, &record.Position,
			&skill.ID, &skill.FilePath, &fileHash, &category, &skill.Name, &title, &desc,
			&content, &skill.SizeBytes, &skill.TokenCount, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attached skill: %w", err)
		}
		skill.FileHash = fileHash.String
		skill.Category = category.String
		skill.Title = title.String
		skill.Description = desc.String
		skill.Content = content.String
		skill.CreatedAt = createdAt.String
		skill.UpdatedAt = updatedAt.String
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list attached skills: %w", err)
	}
	return records, nil
}

func scanPrompt(s rowScanner) (*secondary.PromptRecord, error) {
	var (
		fileHash, category   sql.NullString
		title, desc, content sql.NullString
		createdAt, updatedAt sql.NullString
	)

	record := &secondary.PromptRecord{}
	err := s.Scan(&record.ID, &record.FilePath, &fileHash, &category, &record.Name, &title, &desc,
		&content, &record.SizeBytes, &record.TokenCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan prompt: %w", err)
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
