package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/secondary"
)

// mockPromptRepository implements secondary.PromptRepository for testing.
// Attachments and references live in flat slices keyed by owner.
type mockPromptRepository struct {
	prompts    map[int64]*secondary.PromptRecord
	attached   map[int64][]int64
	references map[int64]*secondary.ReferenceRecord
	skills     map[int64]bool
	nextID     int64
}

var _ secondary.PromptRepository = (*mockPromptRepository)(nil)

func newMockPromptRepository() *mockPromptRepository {
	return &mockPromptRepository{
		prompts:    make(map[int64]*secondary.PromptRecord),
		attached:   make(map[int64][]int64),
		references: make(map[int64]*secondary.ReferenceRecord),
		skills:     make(map[int64]bool),
		nextID:     1,
	}
}

func (m *mockPromptRepository) Create(ctx context.Context, prompt *secondary.PromptRecord) error {
	prompt.ID = m.nextID
	m.nextID++
	clone := *prompt
	m.prompts[prompt.ID] = &clone
	return nil
}

func (m *mockPromptRepository) GetByID(ctx context.Context, id int64) (*secondary.PromptRecord, error) {
	return m.prompts[id], nil
}

func (m *mockPromptRepository) GetByPath(ctx context.Context, filePath string) (*secondary.PromptRecord, error) {
	for _, p := range m.prompts {
		if p.FilePath == filePath {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockPromptRepository) List(ctx context.Context, filters secondary.SkillFilters) ([]*secondary.PromptRecord, error) {
	var result []*secondary.PromptRecord
	for _, p := range m.prompts {
		result = append(result, p)
	}
	return result, nil
}

func (m *mockPromptRepository) Update(ctx context.Context, id int64, update secondary.PromptUpdate) error {
	if _, ok := m.prompts[id]; !ok {
		return errors.New("prompt not found")
	}
	return nil
}

func (m *mockPromptRepository) Delete(ctx context.Context, id int64) (*secondary.PromptRecord, error) {
	p := m.prompts[id]
	delete(m.prompts, id)
	return p, nil
}

func (m *mockPromptRepository) AttachSkill(ctx context.Context, promptID, skillID int64) (*secondary.PromptSkillRecord, error) {
	pos := len(m.attached[promptID])
	m.attached[promptID] = append(m.attached[promptID], skillID)
	return &secondary.PromptSkillRecord{OwnerID: promptID, SkillID: skillID, Position: pos}, nil
}

func (m *mockPromptRepository) DetachSkill(ctx context.Context, promptID, skillID int64) error {
	for i, id := range m.attached[promptID] {
		if id == skillID {
			m.attached[promptID] = append(m.attached[promptID][:i], m.attached[promptID][i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("skill %d on prompt %d: %w", skillID, promptID, secondary.ErrRowNotFound)
}

func (m *mockPromptRepository) ListSkills(ctx context.Context, promptID int64) ([]*secondary.PromptSkillRecord, error) {
	var result []*secondary.PromptSkillRecord
	for i, id := range m.attached[promptID] {
		result = append(result, &secondary.PromptSkillRecord{OwnerID: promptID, SkillID: id, Position: i})
	}
	return result, nil
}

func (m *mockPromptRepository) ReorderSkills(ctx context.Context, promptID int64, positions map[int64]int) error {
	return nil
}

func (m *mockPromptRepository) AddReference(ctx context.Context, ref *secondary.ReferenceRecord) error {
	ref.ID = m.nextID
	m.nextID++
	clone := *ref
	m.references[ref.ID] = &clone
	return nil
}

func (m *mockPromptRepository) ListReferences(ctx context.Context, promptID int64) ([]*secondary.ReferenceRecord, error) {
	var result []*secondary.ReferenceRecord
	for _, r := range m.references {
		if r.PromptID == promptID {
			result = append(result, r)
		}
	}
	return result, nil
}

func (m *mockPromptRepository) RemoveReference(ctx context.Context, id int64) error {
	if _, ok := m.references[id]; !ok {
		return fmt.Errorf("reference %d: %w", id, secondary.ErrRowNotFound)
	}
	delete(m.references, id)
	return nil
}

func (m *mockPromptRepository) SkillExists(ctx context.Context, skillID int64) (bool, error) {
	return m.skills[skillID], nil
}

func (m *mockPromptRepository) FragmentExists(ctx context.Context, fragmentID int64) (bool, error) {
	return false, nil
}

func seedMockPrompt(t *testing.T, repo *mockPromptRepository) int64 {
	t.Helper()
	record := &secondary.PromptRecord{FilePath: "prompts/review.md", Name: "review"}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("seed prompt: %v", err)
	}
	return record.ID
}

func TestPromptService_RemoveReferenceNotFound(t *testing.T) {
	repo := newMockPromptRepository()
	svc := NewPromptService(repo, nil)

	err := svc.RemoveReference(context.Background(), 999)
	var nferr *validation.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if nferr.Kind != "reference" || nferr.ID != 999 {
		t.Errorf("NotFoundError = %+v", nferr)
	}
}

func TestPromptService_DetachSkillNotFound(t *testing.T) {
	repo := newMockPromptRepository()
	svc := NewPromptService(repo, nil)
	ctx := context.Background()

	promptID := seedMockPrompt(t, repo)

	err := svc.DetachSkillFromPrompt(ctx, promptID, 7)
	var nferr *validation.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if nferr.Kind != "skill" || nferr.ID != 7 {
		t.Errorf("NotFoundError = %+v", nferr)
	}
}

func TestPromptService_DetachSkill(t *testing.T) {
	repo := newMockPromptRepository()
	svc := NewPromptService(repo, nil)
	ctx := context.Background()

	promptID := seedMockPrompt(t, repo)
	repo.skills[3] = true
	if _, err := svc.AttachSkillToPrompt(ctx, promptID, 3); err != nil {
		t.Fatalf("AttachSkillToPrompt failed: %v", err)
	}

	if err := svc.DetachSkillFromPrompt(ctx, promptID, 3); err != nil {
		t.Fatalf("DetachSkillFromPrompt failed: %v", err)
	}
}
