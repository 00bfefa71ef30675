package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// Default snippet markers when the request leaves them empty.
const (
	defaultMarkerOpen  = ">>>"
	defaultMarkerClose = "<<<"
)

// SearchServiceImpl implements the SearchService interface.
type SearchServiceImpl struct {
	searchRepo secondary.SearchRepository
}

// NewSearchService creates a new SearchService with injected dependencies.
func NewSearchService(searchRepo secondary.SearchRepository) *SearchServiceImpl {
	return &SearchServiceImpl{searchRepo: searchRepo}
}

// SearchSkills runs a full-text query against the skill index.
func (s *SearchServiceImpl) SearchSkills(ctx context.Context, req primary.SearchRequest) ([]*primary.SkillResult, error) {
	limit, opts, err := normalizeSearch(&req)
	if err != nil {
		return nil, err
	}

	hits, err := s.searchRepo.SearchSkills(ctx, req.Query, limit, opts)
	if err != nil {
		return nil, validation.Database("search skills", err)
	}
	results := make([]*primary.SkillResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &primary.SkillResult{
			Skill:   recordToSkill(hit.Skill),
			Snippet: hit.Snippet,
			Rank:    hit.Rank,
		})
	}
	return results, nil
}

// SearchPrompts runs a full-text query against the prompt index.
func (s *SearchServiceImpl) SearchPrompts(ctx context.Context, req primary.SearchRequest) ([]*primary.PromptResult, error) {
	limit, opts, err := normalizeSearch(&req)
	if err != nil {
		return nil, err
	}

	hits, err := s.searchRepo.SearchPrompts(ctx, req.Query, limit, opts)
	if err != nil {
		return nil, validation.Database("search prompts", err)
	}
	results := make([]*primary.PromptResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &primary.PromptResult{
			Prompt:  recordToPrompt(hit.Prompt),
			Snippet: hit.Snippet,
			Rank:    hit.Rank,
		})
	}
	return results, nil
}

// SearchPlans runs a full-text query against the plan index.
func (s *SearchServiceImpl) SearchPlans(ctx context.Context, req primary.SearchRequest) ([]*primary.PlanResult, error) {
	limit, opts, err := normalizeSearch(&req)
	if err != nil {
		return nil, err
	}

	hits, err := s.searchRepo.SearchPlans(ctx, req.Query, limit, opts)
	if err != nil {
		return nil, validation.Database("search plans", err)
	}
	results := make([]*primary.PlanResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &primary.PlanResult{
			Plan:    recordToPlan(hit.Plan),
			Snippet: hit.Snippet,
			Rank:    hit.Rank,
		})
	}
	return results, nil
}

// normalizeSearch validates the query and limit and fills in defaults.
// Limit 0 means the default; anything outside 1..SearchLimitMax is
// rejected before the index is touched.
func normalizeSearch(req *primary.SearchRequest) (int, secondary.SnippetOptions, error) {
	var opts secondary.SnippetOptions

	verr := validation.NewError()
	if strings.TrimSpace(req.Query) == "" {
		verr.Add("query", "is required")
	}
	limit := req.Limit
	if limit == 0 {
		limit = primary.SearchLimitDefault
	}
	if limit < 1 || limit > primary.SearchLimitMax {
		verr.Add("limit", fmt.Sprintf("must be between 1 and %d", primary.SearchLimitMax))
	}
	if err := verr.ErrOrNil(); err != nil {
		return 0, opts, err
	}

	opts.MarkerOpen = req.MarkerOpen
	opts.MarkerClose = req.MarkerClose
	if opts.MarkerOpen == "" {
		opts.MarkerOpen = defaultMarkerOpen
	}
	if opts.MarkerClose == "" {
		opts.MarkerClose = defaultMarkerClose
	}
	return limit, opts, nil
}
