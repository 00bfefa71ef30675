package secondary

import "context"

// SnippetOptions controls how matched terms are highlighted in search
// snippets.
type SnippetOptions struct {
	MarkerOpen  string
	MarkerClose string
}

// SkillSearchHit is one ranked full-text match against the skills index.
// Rank is the bm25 score; lower means more relevant.
type SkillSearchHit struct {
	Skill   *SkillRecord
	Snippet string
	Rank    float64
}

// PromptSearchHit is one ranked full-text match against the prompts index.
type PromptSearchHit struct {
	Prompt  *PromptRecord
	Snippet string
	Rank    float64
}

// PlanSearchHit is one ranked full-text match against the plans index.
type PlanSearchHit struct {
	Plan    *PlanRecord
	Snippet string
	Rank    float64
}

// SearchRepository runs read-only queries against the FTS indexes. The
// query string is handed to FTS5 MATCH unparsed; malformed queries surface
// the engine's error.
type SearchRepository interface {
	SearchSkills(ctx context.Context, query string, limit int, opts SnippetOptions) ([]*SkillSearchHit, error)
	SearchPrompts(ctx context.Context, query string, limit int, opts SnippetOptions) ([]*PromptSearchHit, error)
	SearchPlans(ctx context.Context, query string, limit int, opts SnippetOptions) ([]*PlanSearchHit, error)
}
