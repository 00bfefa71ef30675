package app

import (
	"context"
	"errors"

	"github.com/example/planvault/internal/core/prompt"
	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// FragmentServiceImpl implements the FragmentService interface.
type FragmentServiceImpl struct {
	fragmentRepo secondary.FragmentRepository
	promptRepo   secondary.PromptRepository
	counter      TokenCounter
}

// NewFragmentService creates a new FragmentService with injected
// dependencies. promptRepo supplies the skill existence check.
func NewFragmentService(fragmentRepo secondary.FragmentRepository, promptRepo secondary.PromptRepository, counter TokenCounter) *FragmentServiceImpl {
	return &FragmentServiceImpl{fragmentRepo: fragmentRepo, promptRepo: promptRepo, counter: counter}
}

// CreateFragment validates and creates a fragment. A zero TokenCount is
// filled in by counting the content.
func (s *FragmentServiceImpl) CreateFragment(ctx context.Context, req primary.CreateFragmentRequest) (*primary.Fragment, error) {
	if err := prompt.ValidateFragmentDraft(prompt.FragmentDraft{Name: req.Name, Content: req.Content}); err != nil {
		return nil, err
	}

	tokenCount := req.TokenCount
	if tokenCount == 0 && s.counter != nil {
		count, err := s.counter.Count(req.Content)
		if err != nil {
			return nil, validation.Database("count tokens", err)
		}
		tokenCount = count
	}

	record := &secondary.FragmentRecord{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		TokenCount:  tokenCount,
	}
	if err := s.fragmentRepo.Create(ctx, record); err != nil {
		return nil, validation.Database("create fragment", err)
	}
	return recordToFragment(record), nil
}

// GetFragment retrieves a fragment by ID.
func (s *FragmentServiceImpl) GetFragment(ctx context.Context, fragmentID int64) (*primary.Fragment, error) {
	record, err := s.fragmentRepo.GetByID(ctx, fragmentID)
	if err != nil {
		return nil, validation.Database("get fragment", err)
	}
	if record == nil {
		return nil, validation.NotFound("fragment", fragmentID)
	}
	return recordToFragment(record), nil
}

// ListFragments lists fragments ordered by name.
func (s *FragmentServiceImpl) ListFragments(ctx context.Context, limit, offset int) ([]*primary.Fragment, error) {
	records, err := s.fragmentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, validation.Database("list fragments", err)
	}
	fragments := make([]*primary.Fragment, 0, len(records))
	for _, record := range records {
		fragments = append(fragments, recordToFragment(record))
	}
	return fragments, nil
}

// UpdateFragment applies the set fields. An empty update is rejected.
func (s *FragmentServiceImpl) UpdateFragment(ctx context.Context, fragmentID int64, req primary.UpdateFragmentRequest) (*primary.Fragment, error) {
	update := secondary.FragmentUpdate{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		TokenCount:  req.TokenCount,
	}
	change := prompt.FragmentChange{Name: req.Name, Content: req.Content, Empty: update.IsEmpty()}
	if err := prompt.ValidateFragmentChange(change); err != nil {
		return nil, err
	}

	existing, err := s.fragmentRepo.GetByID(ctx, fragmentID)
	if err != nil {
		return nil, validation.Database("get fragment", err)
	}
	if existing == nil {
		return nil, validation.NotFound("fragment", fragmentID)
	}

	if req.Content != nil && req.TokenCount == nil && s.counter != nil {
		count, err := s.counter.Count(*req.Content)
		if err != nil {
			return nil, validation.Database("count tokens", err)
		}
		update.TokenCount = &count
	}

	if err := s.fragmentRepo.Update(ctx, fragmentID, update); err != nil {
		return nil, validation.Database("update fragment", err)
	}
	return s.GetFragment(ctx, fragmentID)
}

// DeleteFragment deletes the fragment and returns its final state.
func (s *FragmentServiceImpl) DeleteFragment(ctx context.Context, fragmentID int64) (*primary.Fragment, error) {
	record, err := s.fragmentRepo.Delete(ctx, fragmentID)
	if err != nil {
		return nil, validation.Database("delete fragment", err)
	}
	if record == nil {
		return nil, validation.NotFound("fragment", fragmentID)
	}
	return recordToFragment(record), nil
}

// AttachSkillToFragment links a skill to the fragment at the next
// position.
func (s *FragmentServiceImpl) AttachSkillToFragment(ctx context.Context, fragmentID, skillID int64) (*primary.AttachedSkill, error) {
	if err := s.requireFragment(ctx, fragmentID); err != nil {
		return nil, err
	}
	exists, err := s.promptRepo.SkillExists(ctx, skillID)
	if err != nil {
		return nil, validation.Database("check skill", err)
	}
	if !exists {
		return nil, validation.NotFound("skill", skillID)
	}

	record, err := s.fragmentRepo.AttachSkill(ctx, fragmentID, skillID)
	if err != nil {
		return nil, validation.Database("attach skill", err)
	}
	return &primary.AttachedSkill{SkillID: record.SkillID, Position: record.Position}, nil
}

// DetachSkillFromFragment removes the fragment<->skill link.
func (s *FragmentServiceImpl) DetachSkillFromFragment(ctx context.Context, fragmentID, skillID int64) error {
	if err := s.requireFragment(ctx, fragmentID); err != nil {
		return err
	}
	if err := s.fragmentRepo.DetachSkill(ctx, fragmentID, skillID); err != nil {
		if errors.Is(err, secondary.ErrRowNotFound) {
			return validation.NotFound("skill", skillID)
		}
		return validation.Database("detach skill", err)
	}
	return nil
}

// ListFragmentSkills lists the fragment's skills in position order.
func (s *FragmentServiceImpl) ListFragmentSkills(ctx context.Context, fragmentID int64) ([]*primary.AttachedSkill, error) {
	if err := s.requireFragment(ctx, fragmentID); err != nil {
		return nil, err
	}
	records, err := s.fragmentRepo.ListSkills(ctx, fragmentID)
	if err != nil {
		return nil, validation.Database("list fragment skills", err)
	}
	return attachedSkills(records), nil
}

func (s *FragmentServiceImpl) requireFragment(ctx context.Context, fragmentID int64) error {
	record, err := s.fragmentRepo.GetByID(ctx, fragmentID)
	if err != nil {
		return validation.Database("get fragment", err)
	}
	if record == nil {
		return validation.NotFound("fragment", fragmentID)
	}
	return nil
}

func recordToFragment(record *secondary.FragmentRecord) *primary.Fragment {
	return &primary.Fragment{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		Content:     record.Content,
		TokenCount:  record.TokenCount,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
