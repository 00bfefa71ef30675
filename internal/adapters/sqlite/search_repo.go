package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/planvault/internal/ports/secondary"
)

// SearchRepository implements secondary.SearchRepository over the FTS5
// indexes. The indexes are maintained by trigger, so results always match
// the base tables.
type SearchRepository struct {
	db *sql.DB
}

// NewSearchRepository creates a new SQLite search repository.
func NewSearchRepository(db *sql.DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// snippetTokens is the size passed to snippet(): roughly one surrounding
// sentence of context per match.
const snippetTokens = 32

// SearchSkills runs a full-text query against the skill index, best
// matches first. The query goes to MATCH unparsed; a malformed query
// surfaces the engine's syntax error.
func (r *SearchRepository) SearchSkills(ctx context.Context, query string, limit int, opts secondary.SnippetOptions) ([]*secondary.SkillSearchHit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.file_path, s.file_hash, s.category, s.name, s.title, s.description,
			s.content, s.size_bytes, s.token_count, s.created_at, s.updated_at,
			snippet(skills_fts, -1, ?, ?, '...', ?), bm25(skills_fts)
		FROM skills_fts JOIN skills s ON s.id = skills_fts.rowid
		WHERE skills_fts MATCH ? ORDER BY rank LIMIT ?`,
		opts.MarkerOpen, opts.MarkerClose, snippetTokens, query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search skills: %w", err)
	}
	defer rows.Close()

	var hits []*secondary.SkillSearchHit
	for rows.Next() {
		var (
			fileHash, category   sql.NullString
			title, desc, content sql.NullString
			createdAt, updatedAt sql.NullString
		)
		hit := &secondary.SkillSearchHit{Skill: &secondary.SkillRecord{}}
		s := hit.Skill
		err := rows.Scan(&s.ID, &s.FilePath, &fileHash, &category, &s.Name, &title, &desc,
			&content, &s.SizeBytes, &s.TokenCount, &createdAt, &updatedAt,
			&hit.Snippet, &hit.Rank)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skill hit: %w", err)
		}
		s.FileHash = fileHash.String
		s.Category = category.String
		s.Title = title.String
		s.Description = desc.String
		s.Content = content.String
		s.CreatedAt = createdAt.String
		s.UpdatedAt = updatedAt.String
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search skills: %w", err)
	}
	return hits, nil
}

// SearchPrompts runs a full-text query against the prompt index, best
// matches first.
func (r *SearchRepository) SearchPrompts(ctx context.Context, query string, limit int, opts secondary.SnippetOptions) ([]*secondary.PromptSearchHit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.file_path, p.file_hash, p.category, p.name, p.title, p.description,
			p.content, p.size_bytes, p.token_count, p.created_at, p.updated_at,
			snippet(prompts_fts, -1, ?, ?, '...', ?), bm25(prompts_fts)
		FROM prompts_fts JOIN prompts p ON p.id = prompts_fts.rowid
		WHERE prompts_fts MATCH ? ORDER BY rank LIMIT ?`,
		opts.MarkerOpen, opts.MarkerClose, snippetTokens, query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search prompts: %w", err)
	}
	defer rows.Close()

	var hits []*secondary.PromptSearchHit
	for rows.Next() {
		var (
			fileHash, category   sql.NullString
			title, desc, content sql.NullString
			createdAt, updatedAt sql.NullString
		)
		hit := &secondary.PromptSearchHit{Prompt: &secondary.PromptRecord{}}
		p := hit.Prompt
		err := rows.Scan(&p.ID, &p.FilePath, &fileHash, &category, &p.Name, &title, &desc,
			&content, &p.SizeBytes, &p.TokenCount, &createdAt, &updatedAt,
			&hit.Snippet, &hit.Rank)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prompt hit: %w", err)
		}
		p.FileHash = fileHash.String
		p.Category = category.String
		p.Title = title.String
		p.Description = desc.String
		p.Content = content.String
		p.CreatedAt = createdAt.String
		p.UpdatedAt = updatedAt.String
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search prompts: %w", err)
	}
	return hits, nil
}

// SearchPlans runs a full-text query against the plan index, best matches
// first.
func (r *SearchRepository) SearchPlans(ctx context.Context, query string, limit int, opts secondary.SnippetOptions) ([]*secondary.PlanSearchHit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.name, p.title, p.summary, p.description, p.content, p.status,
			p.created_by, p.assigned_to, p.created_at, p.updated_at, p.completed_at,
			snippet(implementation_plans_fts, -1, ?, ?, '...', ?), bm25(implementation_plans_fts)
		FROM implementation_plans_fts
		JOIN implementation_plans p ON p.id = implementation_plans_fts.rowid
		WHERE implementation_plans_fts MATCH ? ORDER BY rank LIMIT ?`,
		opts.MarkerOpen, opts.MarkerClose, snippetTokens, query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search plans: %w", err)
	}
	defer rows.Close()

	var hits []*secondary.PlanSearchHit
	for rows.Next() {
		var (
			title, summary, desc, content     sql.NullString
			createdBy, assignedTo             sql.NullString
			createdAt, updatedAt, completedAt sql.NullString
		)
		hit := &secondary.PlanSearchHit{Plan: &secondary.PlanRecord{}}
		p := hit.Plan
		err := rows.Scan(&p.ID, &p.Name, &title, &summary, &desc, &content, &p.Status,
			&createdBy, &assignedTo, &createdAt, &updatedAt, &completedAt,
			&hit.Snippet, &hit.Rank)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan hit: %w", err)
		}
		p.Title = title.String
		p.Summary = summary.String
		p.Description = desc.String
		p.Content = content.String
		p.CreatedBy = createdBy.String
		p.AssignedTo = assignedTo.String
		p.CreatedAt = createdAt.String
		p.UpdatedAt = updatedAt.String
		p.CompletedAt = completedAt.String
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to search plans: %w", err)
	}
	return hits, nil
}
