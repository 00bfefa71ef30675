package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/planvault/internal/core/validation"
	"github.com/example/planvault/internal/ports/primary"
	"github.com/example/planvault/internal/ports/secondary"
)

// mockSearchRepository records the arguments of the last call.
type mockSearchRepository struct {
	lastQuery string
	lastLimit int
	lastOpts  secondary.SnippetOptions
	skillHits []*secondary.SkillSearchHit
	err       error
}

var _ secondary.SearchRepository = (*mockSearchRepository)(nil)

func (m *mockSearchRepository) SearchSkills(ctx context.Context, query string, limit int, opts secondary.SnippetOptions) ([]*secondary.SkillSearchHit, error) {
	m.lastQuery, m.lastLimit, m.lastOpts = query, limit, opts
	return m.skillHits, m.err
}

func (m *mockSearchRepository) SearchPrompts(ctx context.Context, query string, limit int, opts secondary.SnippetOptions) ([]*secondary.PromptSearchHit, error) {
	m.lastQuery, m.lastLimit, m.lastOpts = query, limit, opts
	return nil, m.err
}

func (m *mockSearchRepository) SearchPlans(ctx context.Context, query string, limit int, opts secondary.SnippetOptions) ([]*secondary.PlanSearchHit, error) {
	m.lastQuery, m.lastLimit, m.lastOpts = query, limit, opts
	return nil, m.err
}

func TestSearchService_DefaultsApplied(t *testing.T) {
	repo := &mockSearchRepository{}
	svc := NewSearchService(repo)

	_, err := svc.SearchSkills(context.Background(), primary.SearchRequest{Query: "channels"})
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if repo.lastLimit != primary.SearchLimitDefault {
		t.Errorf("limit = %d, want default %d", repo.lastLimit, primary.SearchLimitDefault)
	}
	if repo.lastOpts.MarkerOpen != ">>>" || repo.lastOpts.MarkerClose != "<<<" {
		t.Errorf("markers = %q/%q, want defaults", repo.lastOpts.MarkerOpen, repo.lastOpts.MarkerClose)
	}
}

func TestSearchService_CustomMarkers(t *testing.T) {
	repo := &mockSearchRepository{}
	svc := NewSearchService(repo)

	_, err := svc.SearchPrompts(context.Background(), primary.SearchRequest{
		Query:       "review",
		MarkerOpen:  "<b>",
		MarkerClose: "</b>",
	})
	if err != nil {
		t.Fatalf("SearchPrompts failed: %v", err)
	}
	if repo.lastOpts.MarkerOpen != "<b>" || repo.lastOpts.MarkerClose != "</b>" {
		t.Errorf("markers = %q/%q", repo.lastOpts.MarkerOpen, repo.lastOpts.MarkerClose)
	}
}

func TestSearchService_LimitBounds(t *testing.T) {
	repo := &mockSearchRepository{}
	svc := NewSearchService(repo)
	ctx := context.Background()

	tests := []struct {
		name    string
		limit   int
		wantErr bool
	}{
		{"zero means default", 0, false},
		{"minimum", 1, false},
		{"maximum", 1000, false},
		{"negative", -1, true},
		{"above maximum", 1001, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SearchSkills(ctx, primary.SearchRequest{Query: "q", Limit: tt.limit})
			if tt.wantErr {
				var verr *validation.Error
				if !errors.As(err, &verr) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if _, ok := verr.Fields["limit"]; !ok {
					t.Errorf("expected limit error, got %v", verr.Fields)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSearchService_EmptyQueryRejected(t *testing.T) {
	repo := &mockSearchRepository{}
	svc := NewSearchService(repo)

	_, err := svc.SearchPlans(context.Background(), primary.SearchRequest{Query: "   "})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["query"]; !ok {
		t.Errorf("expected query error, got %v", verr.Fields)
	}
}

func TestSearchService_ResultsMapped(t *testing.T) {
	repo := &mockSearchRepository{
		skillHits: []*secondary.SkillSearchHit{
			{
				Skill:   &secondary.SkillRecord{ID: 3, Name: "channels"},
				Snippet: "buffered >>>channels<<< decouple",
				Rank:    -1.5,
			},
		},
	}
	svc := NewSearchService(repo)

	results, err := svc.SearchSkills(context.Background(), primary.SearchRequest{Query: "channels"})
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if results[0].Skill.Name != "channels" || results[0].Rank != -1.5 {
		t.Errorf("result = %+v", results[0])
	}
}

func TestSearchService_EngineErrorWrapped(t *testing.T) {
	repo := &mockSearchRepository{err: errors.New("fts5: syntax error")}
	svc := NewSearchService(repo)

	_, err := svc.SearchSkills(context.Background(), primary.SearchRequest{Query: "AND AND"})
	var dberr *validation.DatabaseError
	if !errors.As(err, &dberr) {
		t.Fatalf("expected database error, got %v", err)
	}
}
