package secondary

import "context"

// Reference type discriminators for prompt_references rows. Exactly one of
// the target columns is populated per type.
const (
	ReferenceTypePrompt   = "prompt"
	ReferenceTypeFragment = "fragment"
)

// PromptRecord is a prompt row at the persistence boundary. Prompts share
// the skill shape but live in their own catalog.
type PromptRecord struct {
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

// PromptUpdate carries the optional fields of a prompt update.
type PromptUpdate struct {
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

// IsEmpty reports whether no field is set.
func (u PromptUpdate) IsEmpty() bool {
	return u.FilePath == nil && u.FileHash == nil && u.Category == nil &&
		u.Name == nil && u.Title == nil && u.Description == nil &&
		u.Content == nil && u.SizeBytes == nil && u.TokenCount == nil
}

// FragmentRecord is a prompt fragment row: a named, reusable prompt piece.
type FragmentRecord struct {
	ID          int64
	Name        string
	Description string
	Content     string
	TokenCount  int64
	CreatedAt   string
	UpdatedAt   string
}

// FragmentUpdate carries the optional fields of a fragment update.
type FragmentUpdate struct {
	Name        *string
	Description *string
	Content     *string
	TokenCount  *int64
}

// IsEmpty reports whether no field is set.
func (u FragmentUpdate) IsEmpty() bool {
	return u.Name == nil && u.Description == nil && u.Content == nil &&
		u.TokenCount == nil
}

// PromptSkillRecord is one prompt<->skill (or fragment<->skill) junction
// row. Skill is populated on listing.
type PromptSkillRecord struct {
	ID       int64
	OwnerID  int64
	SkillID  int64
	Position int
	Skill    *SkillRecord
}

// ReferenceRecord is a prompt_references row. TargetPromptID or FragmentID
// is zero depending on ReferenceType.
type ReferenceRecord struct {
	ID             int64
	PromptID       int64
	ReferenceType  string
	TargetPromptID int64
	FragmentID     int64
	Position       int
}

// PromptRepository persists prompts, fragments, and their associations.
type PromptRepository interface {
	// Create inserts the prompt and fills in its assigned ID.
	Create(ctx context.Context, prompt *PromptRecord) error

	// GetByID returns the prompt, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*PromptRecord, error)

	// GetByPath returns the prompt with the given file path, or (nil, nil).
	GetByPath(ctx context.Context, filePath string) (*PromptRecord, error)

	// List returns prompts matching the filters, ordered by file path.
	List(ctx context.Context, filters SkillFilters) ([]*PromptRecord, error)

	// Update applies the set fields as a single statement.
	Update(ctx context.Context, id int64, update PromptUpdate) error

	// Delete removes the prompt and returns its final state. Junction rows
	// and references go with it via cascade.
	Delete(ctx context.Context, id int64) (*PromptRecord, error)

	// AttachSkill links a skill to the prompt at the next position.
	AttachSkill(ctx context.Context, promptID, skillID int64) (*PromptSkillRecord, error)

	// DetachSkill removes the prompt<->skill link.
	DetachSkill(ctx context.Context, promptID, skillID int64) error

	// ListSkills returns the prompt's skills in position order.
	ListSkills(ctx context.Context, promptID int64) ([]*PromptSkillRecord, error)

	// ReorderSkills applies the skill id -> position mapping in one
	// transaction.
	ReorderSkills(ctx context.Context, promptID int64, positions map[int64]int) error

	// AddReference appends a reference row at the next position and fills
	// in its assigned ID.
	AddReference(ctx context.Context, ref *ReferenceRecord) error

	// ListReferences returns the prompt's references in position order.
	ListReferences(ctx context.Context, promptID int64) ([]*ReferenceRecord, error)

	// RemoveReference deletes one reference row.
	RemoveReference(ctx context.Context, id int64) error

	// SkillExists reports whether the skill exists.
	SkillExists(ctx context.Context, skillID int64) (bool, error)

	// FragmentExists reports whether the fragment exists.
	FragmentExists(ctx context.Context, fragmentID int64) (bool, error)
}

// FragmentRepository persists prompt fragments and their skill links.
type FragmentRepository interface {
	// Create inserts the fragment and fills in its assigned ID.
	Create(ctx context.Context, fragment *FragmentRecord) error

	// GetByID returns the fragment, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*FragmentRecord, error)

	// List returns all fragments ordered by name.
	List(ctx context.Context, limit, offset int) ([]*FragmentRecord, error)

	// Update applies the set fields as a single statement.
	Update(ctx context.Context, id int64, update FragmentUpdate) error

	// Delete removes the fragment and returns its final state.
	Delete(ctx context.Context, id int64) (*FragmentRecord, error)

	// AttachSkill links a skill to the fragment at the next position.
	AttachSkill(ctx context.Context, fragmentID, skillID int64) (*PromptSkillRecord, error)

	// DetachSkill removes the fragment<->skill link.
	DetachSkill(ctx context.Context, fragmentID, skillID int64) error

	// ListSkills returns the fragment's skills in position order.
	ListSkills(ctx context.Context, fragmentID int64) ([]*PromptSkillRecord, error)
}
