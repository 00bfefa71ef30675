package primary

import "context"

// SkillService defines the primary port for skill catalog operations.
type SkillService interface {
	// CreateSkill validates and creates a skill. A zero TokenCount is
	// filled in by counting the content.
	CreateSkill(ctx context.Context, req CreateSkillRequest) (*Skill, error)

	// GetSkill retrieves a skill by ID.
	GetSkill(ctx context.Context, skillID int64) (*Skill, error)

	// GetSkillByPath retrieves a skill by its file path.
	GetSkillByPath(ctx context.Context, filePath string) (*Skill, error)

	// ListSkills lists skills with optional filters, ordered by file path.
	ListSkills(ctx context.Context, filters SkillFilters) ([]*Skill, error)

	// UpdateSkill applies the set fields. An empty update is rejected.
	UpdateSkill(ctx context.Context, skillID int64, req UpdateSkillRequest) (*Skill, error)

	// DeleteSkill deletes the skill and returns its final state.
	DeleteSkill(ctx context.Context, skillID int64) (*Skill, error)
}

// CreateSkillRequest contains parameters for creating a skill.
type CreateSkillRequest struct {
	FilePath    string
	FileHash    string
	Category    string
	Name        string
	Title       string
	Description string
	Content     string
	SizeBytes   int64
	TokenCount  int64
}

// UpdateSkillRequest contains the optional fields of a skill update.
type UpdateSkillRequest struct {
	FilePath    *string
	FileHash    *string
	Category    *string
	Name        *string
	Title       *string
	Description *string
	Content     *string
	SizeBytes   *int64
	TokenCount  *int64
}

// Skill represents a skill document at the port boundary.
type Skill struct {
	ID          int64
	FilePath    string
	FileHash    string
	Category    string
	Name        string
	Title       string
	Description string
	Content     string
	SizeBytes   int64
	TokenCount  int64
	CreatedAt   string
	UpdatedAt   string
}

// SkillFilters contains filter options for listing skills.
type SkillFilters struct {
	Category string
	Limit    int
	Offset   int
}
