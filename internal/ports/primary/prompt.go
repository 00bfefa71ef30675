package primary

import "context"

// PromptService defines the primary port for prompt catalog operations,
// including fragments, skill attachments, and prompt references.
type PromptService interface {
	// CreatePrompt validates and creates a prompt. A zero TokenCount is
	// filled in by counting the content.
	CreatePrompt(ctx context.Context, req CreatePromptRequest) (*Prompt, error)

	// GetPrompt retrieves a prompt by ID.
	GetPrompt(ctx context.Context, promptID int64) (*Prompt, error)

	// GetPromptByPath retrieves a prompt by its file path.
	GetPromptByPath(ctx context.Context, filePath string) (*Prompt, error)

	// ListPrompts lists prompts with optional filters, ordered by file path.
	ListPrompts(ctx context.Context, filters SkillFilters) ([]*Prompt, error)

	// UpdatePrompt applies the set fields. An empty update is rejected.
	UpdatePrompt(ctx context.Context, promptID int64, req UpdatePromptRequest) (*Prompt, error)

	// DeletePrompt deletes the prompt and returns its final state.
	DeletePrompt(ctx context.Context, promptID int64) (*Prompt, error)

	// AttachSkillToPrompt links a skill to the prompt at the next position.
	AttachSkillToPrompt(ctx context.Context, promptID, skillID int64) (*AttachedSkill, error)

	// DetachSkillFromPrompt removes the prompt<->skill link.
	DetachSkillFromPrompt(ctx context.Context, promptID, skillID int64) error

	// ListPromptSkills lists the prompt's skills in position order.
	ListPromptSkills(ctx context.Context, promptID int64) ([]*AttachedSkill, error)

	// ReorderPromptSkills applies the skill id -> position mapping
	// atomically.
	ReorderPromptSkills(ctx context.Context, promptID int64, positions map[int64]int) error

	// AddReference appends a reference from the prompt to another prompt
	// or to a fragment.
	AddReference(ctx context.Context, req AddReferenceRequest) (*Reference, error)

	// ListReferences lists the prompt's references in position order.
	ListReferences(ctx context.Context, promptID int64) ([]*Reference, error)

	// RemoveReference deletes one reference.
	RemoveReference(ctx context.Context, referenceID int64) error
}

// FragmentService defines the primary port for prompt fragment operations.
type FragmentService interface {
	// CreateFragment validates and creates a fragment. A zero TokenCount
	// is filled in by counting the content.
	CreateFragment(ctx context.Context, req CreateFragmentRequest) (*Fragment, error)

	// GetFragment retrieves a fragment by ID.
	GetFragment(ctx context.Context, fragmentID int64) (*Fragment, error)

	// ListFragments lists fragments ordered by name.
	ListFragments(ctx context.Context, limit, offset int) ([]*Fragment, error)

	// UpdateFragment applies the set fields. An empty update is rejected.
	UpdateFragment(ctx context.Context, fragmentID int64, req UpdateFragmentRequest) (*Fragment, error)

	// DeleteFragment deletes the fragment and returns its final state.
	DeleteFragment(ctx context.Context, fragmentID int64) (*Fragment, error)

	// AttachSkillToFragment links a skill to the fragment at the next
	// position.
	AttachSkillToFragment(ctx context.Context, fragmentID, skillID int64) (*AttachedSkill, error)

	// DetachSkillFromFragment removes the fragment<->skill link.
	DetachSkillFromFragment(ctx context.Context, fragmentID, skillID int64) error

	// ListFragmentSkills lists the fragment's skills in position order.
	ListFragmentSkills(ctx context.Context, fragmentID int64) ([]*AttachedSkill, error)
}

// CreatePromptRequest contains parameters for creating a prompt.
type CreatePromptRequest struct {
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

// UpdatePromptRequest contains the optional fields of a prompt update.
type UpdatePromptRequest struct {
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

// CreateFragmentRequest contains parameters for creating a fragment.
type CreateFragmentRequest struct {
	Name        string
	Description string
	Content     string
	TokenCount  int64
}

// UpdateFragmentRequest contains the optional fields of a fragment update.
type UpdateFragmentRequest struct {
	Name        *string
	Description *string
	Content     *string
	TokenCount  *int64
}

// AddReferenceRequest contains parameters for adding a prompt reference.
// Exactly one of TargetPromptID and FragmentID must be set, matching
// ReferenceType.
type AddReferenceRequest struct {
	PromptID       int64
	ReferenceType  string
	TargetPromptID int64
	FragmentID     int64
}

// Prompt represents a prompt document at the port boundary.
type Prompt struct {
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

// Fragment represents a prompt fragment at the port boundary.
type Fragment struct {
	ID          int64
	Name        string
	Description string
	Content     string
	TokenCount  int64
	CreatedAt   string
	UpdatedAt   string
}

// AttachedSkill represents one positioned skill attachment.
type AttachedSkill struct {
	SkillID  int64
	Position int
	Skill    *Skill
}

// Reference represents one prompt reference at the port boundary.
type Reference struct {
	ID             int64
	PromptID       int64
	ReferenceType  string
	TargetPromptID int64
	FragmentID     int64
	Position       int
}
