package app

import (
	"context"
	"errors"

	"github.com/example/planvault/internal/core/prompt"
	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// PromptServiceImpl implements the PromptService interface.
type PromptServiceImpl struct {
	promptRepo secondary.PromptRepository
	counter    TokenCounter
}

// NewPromptService creates a new PromptService with injected dependencies.
func NewPromptService(promptRepo secondary.PromptRepository, counter TokenCounter) *PromptServiceImpl {
	return &PromptServiceImpl{promptRepo: promptRepo, counter: counter}
}

// CreatePrompt validates and creates a prompt. A zero TokenCount is
// filled in by counting the content; a zero SizeBytes by measuring it.
func (s *PromptServiceImpl) CreatePrompt(ctx context.Context, req primary.CreatePromptRequest) (*primary.Prompt, error) {
	if err := prompt.ValidateDraft(prompt.Draft{FilePath: req.FilePath, Name: req.Name, Category: req.Category}); err != nil {
		return nil, err
	}

	existing, err := s.promptRepo.GetByPath(ctx, req.FilePath)
	if err != nil {
		return nil, validation.Database("check prompt path", err)
	}
	if existing != nil {
		verr := validation.NewError()
		verr.Add("file_path", "already in use")
		return nil, verr
	}

	tokenCount := req.TokenCount
	if tokenCount == 0 && s.counter != nil {
		tokenCount, err = s.counter.Count(req.Content)
		if err != nil {
			return nil, validation.Database("count tokens", err)
		}
	}
	sizeBytes := req.SizeBytes
	if sizeBytes == 0 {
		sizeBytes = int64(len(req.Content))
	}

	record := &secondary.PromptRecord{
		FilePath:    req.FilePath,
		FileHash:    req.FileHash,
		Category:    req.Category,
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		SizeBytes:   sizeBytes,
		TokenCount:  tokenCount,
	}
	if err := s.promptRepo.Create(ctx, record); err != nil {
		return nil, validation.Database("create prompt", err)
	}
	return recordToPrompt(record), nil
}

// GetPrompt retrieves a prompt by ID.
func (s *PromptServiceImpl) GetPrompt(ctx context.Context, promptID int64) (*primary.Prompt, error) {
	record, err := s.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, validation.Database("get prompt", err)
	}
	if record == nil {
		return nil, validation.NotFound("prompt", promptID)
	}
	return recordToPrompt(record), nil
}

// GetPromptByPath retrieves a prompt by its file path.
func (s *PromptServiceImpl) GetPromptByPath(ctx context.Context, filePath string) (*primary.Prompt, error) {
	record, err := s.promptRepo.GetByPath(ctx, filePath)
	if err != nil {
		return nil, validation.Database("get prompt", err)
	}
	if record == nil {
		return nil, validation.NotFoundName("prompt", filePath)
	}
	return recordToPrompt(record), nil
}

// ListPrompts lists prompts with optional filters, ordered by file path.
func (s *PromptServiceImpl) ListPrompts(ctx context.Context, filters primary.SkillFilters) ([]*primary.Prompt, error) {
	records, err := s.promptRepo.List(ctx, secondary.SkillFilters{
		Category: filters.Category,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	})
	if err != nil {
		return nil, validation.Database("list prompts", err)
	}
	prompts := make([]*primary.Prompt, 0, len(records))
	for _, record := range records {
		prompts = append(prompts, recordToPrompt(record))
	}
	return prompts, nil
}

// UpdatePrompt applies the set fields. When content changes without an
// explicit token count, the count is refreshed from the new content.
func (s *PromptServiceImpl) UpdatePrompt(ctx context.Context, promptID int64, req primary.UpdatePromptRequest) (*primary.Prompt, error) {
	update := secondary.PromptUpdate{
		FilePath:    req.FilePath,
		FileHash:    req.FileHash,
		Category:    req.Category,
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		SizeBytes:   req.SizeBytes,
		TokenCount:  req.TokenCount,
	}
	change := prompt.Change{FilePath: req.FilePath, Name: req.Name, Empty: update.IsEmpty()}
	if err := prompt.ValidateChange(change); err != nil {
		return nil, err
	}

	existing, err := s.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, validation.Database("get prompt", err)
	}
	if existing == nil {
		return nil, validation.NotFound("prompt", promptID)
	}

	if req.Content != nil && req.TokenCount == nil && s.counter != nil {
		count, err := s.counter.Count(*req.Content)
		if err != nil {
			return nil, validation.Database("count tokens", err)
		}
		update.TokenCount = &count
	}
	if req.Content != nil && req.SizeBytes == nil {
		size := int64(len(*req.Content))
		update.SizeBytes = &size
	}

	if err := s.promptRepo.Update(ctx, promptID, update); err != nil {
		return nil, validation.Database("update prompt", err)
	}
	return s.GetPrompt(ctx, promptID)
}

// DeletePrompt deletes the prompt and returns its final state.
func (s *PromptServiceImpl) DeletePrompt(ctx context.Context, promptID int64) (*primary.Prompt, error) {
	record, err := s.promptRepo.Delete(ctx, promptID)
	if err != nil {
		return nil, validation.Database("delete prompt", err)
	}
	if record == nil {
		return nil, validation.NotFound("prompt", promptID)
	}
	return recordToPrompt(record), nil
}

// AttachSkillToPrompt links a skill to the prompt at the next position.
func (s *PromptServiceImpl) AttachSkillToPrompt(ctx context.Context, promptID, skillID int64) (*primary.AttachedSkill, error) {
	if err := s.requirePrompt(ctx, promptID); err != nil {
		return nil, err
	}
	exists, err := s.promptRepo.SkillExists(ctx, skillID)
	if err != nil {
		return nil, validation.Database("check skill", err)
	}
	if !exists {
		return nil, validation.NotFound("skill", skillID)
	}

	record, err := s.promptRepo.AttachSkill(ctx, promptID, skillID)
	if err != nil {
		return nil, validation.Database("attach skill", err)
	}
	return &primary.AttachedSkill{SkillID: record.SkillID, Position: record.Position}, nil
}

// DetachSkillFromPrompt removes the prompt<->skill link.
func (s *PromptServiceImpl) DetachSkillFromPrompt(ctx context.Context, promptID, skillID int64) error {
	if err := s.requirePrompt(ctx, promptID); err != nil {
		return err
	}
	if err := s.promptRepo.DetachSkill(ctx, promptID, skillID); err != nil {
		if errors.Is(err, secondary.ErrRowNotFound) {
			return validation.NotFound("skill", skillID)
		}
		return validation.Database("detach skill", err)
	}
	return nil
}

// ListPromptSkills lists the prompt's skills in position order.
func (s *PromptServiceImpl) ListPromptSkills(ctx context.Context, promptID int64) ([]*primary.AttachedSkill, error) {
	if err := s.requirePrompt(ctx, promptID); err != nil {
		return nil, err
	}
	records, err := s.promptRepo.ListSkills(ctx, promptID)
	if err != nil {
		return nil, validation.Database("list prompt skills", err)
	}
	return attachedSkills(records), nil
}

// ReorderPromptSkills applies the skill id -> position mapping atomically.
func (s *PromptServiceImpl) ReorderPromptSkills(ctx context.Context, promptID int64, positions map[int64]int) error {
	if err := s.requirePrompt(ctx, promptID); err != nil {
		return err
	}
	if err := s.promptRepo.ReorderSkills(ctx, promptID, positions); err != nil {
		return validation.Database("reorder prompt skills", err)
	}
	return nil
}

// AddReference appends a reference from the prompt to another prompt or
// to a fragment, after validating the target exists.
func (s *PromptServiceImpl) AddReference(ctx context.Context, req primary.AddReferenceRequest) (*primary.Reference, error) {
	draft := prompt.ReferenceDraft{
		PromptID:       req.PromptID,
		ReferenceType:  req.ReferenceType,
		TargetPromptID: req.TargetPromptID,
		FragmentID:     req.FragmentID,
	}
	if err := prompt.ValidateReference(draft); err != nil {
		return nil, err
	}
	if err := s.requirePrompt(ctx, req.PromptID); err != nil {
		return nil, err
	}

	switch req.ReferenceType {
	case prompt.ReferencePrompt:
		target, err := s.promptRepo.GetByID(ctx, req.TargetPromptID)
		if err != nil {
			return nil, validation.Database("check target prompt", err)
		}
		if target == nil {
			return nil, validation.NotFound("prompt", req.TargetPromptID)
		}
	case prompt.ReferenceFragment:
		exists, err := s.promptRepo.FragmentExists(ctx, req.FragmentID)
		if err != nil {
			return nil, validation.Database("check fragment", err)
		}
		if !exists {
			return nil, validation.NotFound("fragment", req.FragmentID)
		}
	}

	record := &secondary.ReferenceRecord{
		PromptID:       req.PromptID,
		ReferenceType:  req.ReferenceType,
		TargetPromptID: req.TargetPromptID,
		FragmentID:     req.FragmentID,
	}
	if err := s.promptRepo.AddReference(ctx, record); err != nil {
		return nil, validation.Database("add reference", err)
	}
	return recordToReference(record), nil
}

// ListReferences lists the prompt's references in position order.
func (s *PromptServiceImpl) ListReferences(ctx context.Context, promptID int64) ([]*primary.Reference, error) {
	if err := s.requirePrompt(ctx, promptID); err != nil {
		return nil, err
	}
	records, err := s.promptRepo.ListReferences(ctx, promptID)
	if err != nil {
		return nil, validation.Database("list references", err)
	}
	refs := make([]*primary.Reference, 0, len(records))
	for _, record := range records {
		refs = append(refs, recordToReference(record))
	}
	return refs, nil
}

// RemoveReference deletes one reference.
func (s *PromptServiceImpl) RemoveReference(ctx context.Context, referenceID int64) error {
	if err := s.promptRepo.RemoveReference(ctx, referenceID); err != nil {
		if errors.Is(err, secondary.ErrRowNotFound) {
			return validation.NotFound("reference", referenceID)
		}
		return validation.Database("remove reference", err)
	}
	return nil
}

func (s *PromptServiceImpl) requirePrompt(ctx context.Context, promptID int64) error {
	record, err := s.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return validation.Database("get prompt", err)
	}
	if record == nil {
		return validation.NotFound("prompt", promptID)
	}
	return nil
}

func recordToPrompt(record *secondary.PromptRecord) *primary.Prompt {
	return &primary.Prompt{
		ID:          record.ID,
		FilePath:    record.FilePath,
		FileHash:    record.FileHash,
		Category:    record.Category,
		Name:        record.Name,
		Title:       record.Title,
		Description: record.Description,
		Content:     record.Content,
		SizeBytes:   record.SizeBytes,
		TokenCount:  record.TokenCount,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func recordToReference(record *secondary.ReferenceRecord) *primary.Reference {
	return &primary.Reference{
		ID:             record.ID,
		PromptID:       record.PromptID,
		ReferenceType:  record.ReferenceType,
		TargetPromptID: record.TargetPromptID,
		FragmentID:     record.FragmentID,
		Position:       record.Position,
	}
}

func attachedSkills(records []*secondary.PromptSkillRecord) []*primary.AttachedSkill {
	out := make([]*primary.AttachedSkill, 0, len(records))
	for _, record := range records {
		attached := &primary.AttachedSkill{SkillID: record.SkillID, Position: record.Position}
		if record.Skill != nil {
			attached.Skill = recordToSkill(record.Skill)
		}
		out = append(out, attached)
	}
	return out
}
