package app

import (
	"context"

	"github.com/example/planvault/internal/core/skill"
	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// TokenCounter counts tokens in content. Filled in from the tokens
// package in production wiring.
type TokenCounter interface {
	Count(text string) (int64, error)
}

// SkillServiceImpl implements the SkillService interface.
type SkillServiceImpl struct {
	skillRepo secondary.SkillRepository
	counter   TokenCounter
}

// NewSkillService creates a new SkillService with injected dependencies.
// counter is optional; without it, zero token counts stay zero.
func NewSkillService(skillRepo secondary.SkillRepository, counter TokenCounter) *SkillServiceImpl {
	return &SkillServiceImpl{skillRepo: skillRepo, counter: counter}
}

// CreateSkill validates and creates a skill. A zero TokenCount is filled
// in by counting the content; a zero SizeBytes by measuring it.
func (s *SkillServiceImpl) CreateSkill(ctx context.Context, req primary.CreateSkillRequest) (*primary.Skill, error) {
	if err := skill.ValidateDraft(skill.Draft{FilePath: req.FilePath, Name: req.Name, Category: req.Category}); err != nil {
		return nil, err
	}

	existing, err := s.skillRepo.GetByPath(ctx, req.FilePath)
	if err != nil {
		return nil, validation.Database("check skill path", err)
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

	record := &secondary.SkillRecord{
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
	if err := s.skillRepo.Create(ctx, record); err != nil {
		return nil, validation.Database("create skill", err)
	}
	return recordToSkill(record), nil
}

// GetSkill retrieves a skill by ID.
func (s *SkillServiceImpl) GetSkill(ctx context.Context, skillID int64) (*primary.Skill, error) {
	record, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, validation.Database("get skill", err)
	}
	if record == nil {
		return nil, validation.NotFound("skill", skillID)
	}
	return recordToSkill(record), nil
}

// GetSkillByPath retrieves a skill by its file path.
func (s *SkillServiceImpl) GetSkillByPath(ctx context.Context, filePath string) (*primary.Skill, error) {
	record, err := s.skillRepo.GetByPath(ctx, filePath)
	if err != nil {
		return nil, validation.Database("get skill", err)
	}
	if record == nil {
		return nil, validation.NotFoundName("skill", filePath)
	}
	return recordToSkill(record), nil
}

// ListSkills lists skills with optional filters, ordered by file path.
func (s *SkillServiceImpl) ListSkills(ctx context.Context, filters primary.SkillFilters) ([]*primary.Skill, error) {
	records, err := s.skillRepo.List(ctx, secondary.SkillFilters{
		Category: filters.Category,
		Limit:    filters.Limit,
		Offset:   filters.Offset,
	})
	if err != nil {
		return nil, validation.Database("list skills", err)
	}
	skills := make([]*primary.Skill, 0, len(records))
	for _, record := range records {
		skills = append(skills, recordToSkill(record))
	}
	return skills, nil
}

// UpdateSkill applies the set fields. When content changes without an
// explicit token count, the count is refreshed from the new content.
func (s *SkillServiceImpl) UpdateSkill(ctx context.Context, skillID int64, req primary.UpdateSkillRequest) (*primary.Skill, error) {
	update := secondary.SkillUpdate{
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
	change := skill.Change{
		FilePath: req.FilePath,
		Name:     req.Name,
		Category: req.Category,
		Empty:    update.IsEmpty(),
	}
	if err := skill.ValidateChange(change); err != nil {
		return nil, err
	}

	existing, err := s.skillRepo.GetByID(ctx, skillID)
	if err != nil {
		return nil, validation.Database("get skill", err)
	}
	if existing == nil {
		return nil, validation.NotFound("skill", skillID)
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

	if err := s.skillRepo.Update(ctx, skillID, update); err != nil {
		return nil, validation.Database("update skill", err)
	}
	return s.GetSkill(ctx, skillID)
}

// DeleteSkill deletes the skill and returns its final state.
func (s *SkillServiceImpl) DeleteSkill(ctx context.Context, skillID int64) (*primary.Skill, error) {
	record, err := s.skillRepo.Delete(ctx, skillID)
	if err != nil {
		return nil, validation.Database("delete skill", err)
	}
	if record == nil {
		return nil, validation.NotFound("skill", skillID)
	}
	return recordToSkill(record), nil
}

func recordToSkill(record *secondary.SkillRecord) *primary.Skill {
	return &primary.Skill{
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
