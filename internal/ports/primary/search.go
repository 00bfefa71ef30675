package primary

import "context"

// Search result limits. Requests outside the range are rejected before
// touching the index.
const (
	SearchLimitDefault = 20
	SearchLimitMax     = 1000
)

// SearchService defines the primary port for full-text search across the
// indexed catalogs.
type SearchService interface {
	// SearchSkills runs a full-text query against the skill index.
	SearchSkills(ctx context.Context, req SearchRequest) ([]*SkillResult, error)

	// SearchPrompts runs a full-text query against the prompt index.
	SearchPrompts(ctx context.Context, req SearchRequest) ([]*PromptResult, error)

	// SearchPlans runs a full-text query against the plan index.
	SearchPlans(ctx context.Context, req SearchRequest) ([]*PlanResult, error)
}

// SearchRequest contains a full-text query. Limit 0 means the default;
// markers wrap matched terms in the snippet and default to ">>>"/"<<<".
type SearchRequest struct {
	Query       string
	Limit       int
	MarkerOpen  string
	MarkerClose string
}

// SkillResult is one ranked skill match. Rank is the bm25 score; lower is
// more relevant.
type SkillResult struct {
	Skill   *Skill
	Snippet string
	Rank    float64
}

// PromptResult is one ranked prompt match.
type PromptResult struct {
	Prompt  *Prompt
	Snippet string
	Rank    float64
}

// PlanResult is one ranked plan match.
type PlanResult struct {
	Plan    *Plan
	Snippet string
	Rank    float64
}
