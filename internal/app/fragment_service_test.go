package app

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// mockFragmentRepository implements secondary.FragmentRepository for
// testing.
type mockFragmentRepository struct {
	fragments map[int64]*secondary.FragmentRecord
	attached  map[int64][]int64
	nextID    int64
}

var _ secondary.FragmentRepository = (*mockFragmentRepository)(nil)

func newMockFragmentRepository() *mockFragmentRepository {
	return &mockFragmentRepository{
		fragments: make(map[int64]*secondary.FragmentRecord),
		attached:  make(map[int64][]int64),
		nextID:    1,
	}
}

func (m *mockFragmentRepository) Create(ctx context.Context, fragment *secondary.FragmentRecord) error {
	fragment.ID = m.nextID
	m.nextID++
	clone := *fragment
	m.fragments[fragment.ID] = &clone
	return nil
}

func (m *mockFragmentRepository) GetByID(ctx context.Context, id int64) (*secondary.FragmentRecord, error) {
	return m.fragments[id], nil
}

func (m *mockFragmentRepository) List(ctx context.Context, limit, offset int) ([]*secondary.FragmentRecord, error) {
	var result []*secondary.FragmentRecord
	for _, f := range m.fragments {
		result = append(result, f)
	}
	return result, nil
}

func (m *mockFragmentRepository) Update(ctx context.Context, id int64, update secondary.FragmentUpdate) error {
	if _, ok := m.fragments[id]; !ok {
		return errors.New("fragment not found")
	}
	return nil
}

func (m *mockFragmentRepository) Delete(ctx context.Context, id int64) (*secondary.FragmentRecord, error) {
	f := m.fragments[id]
	delete(m.fragments, id)
	return f, nil
}

func (m *mockFragmentRepository) AttachSkill(ctx context.Context, fragmentID, skillID int64) (*secondary.PromptSkillRecord, error) {
	pos := len(m.attached[fragmentID])
	m.attached[fragmentID] = append(m.attached[fragmentID], skillID)
	return &secondary.PromptSkillRecord{OwnerID: fragmentID, SkillID: skillID, Position: pos}, nil
}

func (m *mockFragmentRepository) DetachSkill(ctx context.Context, fragmentID, skillID int64) error {
	for i, id := range m.attached[fragmentID] {
		if id == skillID {
			m.attached[fragmentID] = append(m.attached[fragmentID][:i], m.attached[fragmentID][i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("skill %d on fragment %d: %w", skillID, fragmentID, secondary.ErrRowNotFound)
}

func (m *mockFragmentRepository) ListSkills(ctx context.Context, fragmentID int64) ([]*secondary.PromptSkillRecord, error) {
	var result []*secondary.PromptSkillRecord
	for i, id := range m.attached[fragmentID] {
		result = append(result, &secondary.PromptSkillRecord{OwnerID: fragmentID, SkillID: id, Position: i})
	}
	return result, nil
}

func TestFragmentService_DetachSkillNotFound(t *testing.T) {
	fragRepo := newMockFragmentRepository()
	promptRepo := newMockPromptRepository()
	svc := NewFragmentService(fragRepo, promptRepo, nil)
	ctx := context.Background()

	fragment, err := svc.CreateFragment(ctx, primary.CreateFragmentRequest{
		Name:    "outline",
		Content: "Steps to follow.",
	})
	if err != nil {
		t.Fatalf("CreateFragment failed: %v", err)
	}

	err = svc.DetachSkillFromFragment(ctx, fragment.ID, 5)
	var nferr *validation.NotFoundError
	if !errors.As(err, &nferr) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if nferr.Kind != "skill" || nferr.ID != 5 {
		t.Errorf("NotFoundError = %+v", nferr)
	}
}
