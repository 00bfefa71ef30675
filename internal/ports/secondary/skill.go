package secondary

import "context"

// SkillRecord is a skill row at the persistence boundary. Skills are
// content-addressed by file path, with the hash used for change detection.
type SkillRecord struct {
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

// SkillUpdate carries the optional fields of a skill update.
type SkillUpdate struct {
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
func (u SkillUpdate) IsEmpty() bool {
	return u.FilePath == nil && u.FileHash == nil && u.Category == nil &&
		u.Name == nil && u.Title == nil && u.Description == nil &&
		u.Content == nil && u.SizeBytes == nil && u.TokenCount == nil
}

// SkillFilters restricts a skill listing.
type SkillFilters struct {
	Category string
	Limit    int
	Offset   int
}

// SkillRepository persists skill documents.
type SkillRepository interface {
	// Create inserts the skill and fills in its assigned ID.
	Create(ctx context.Context, skill *SkillRecord) error

	// GetByID returns the skill, or (nil, nil) when it does not exist.
	GetByID(ctx context.Context, id int64) (*SkillRecord, error)

	// GetByPath returns the skill with the given file path, or (nil, nil).
	GetByPath(ctx context.Context, filePath string) (*SkillRecord, error)

	// List returns skills matching the filters, ordered by file path.
	List(ctx context.Context, filters SkillFilters) ([]*SkillRecord, error)

	// Update applies the set fields as a single statement.
	Update(ctx context.Context, id int64, update SkillUpdate) error

	// Delete removes the skill and returns its final state.
	Delete(ctx context.Context, id int64) (*SkillRecord, error)
}
