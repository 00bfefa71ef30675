package sqlite_test

import (
	"context"
	"strings"
	"testing"

	"github.com/example/planvault/internal/adapters/sqlite"
	"github.com/example/planvault/internal/ports/secondary"
)

var testMarkers = secondary.SnippetOptions{MarkerOpen: ">>>", MarkerClose: "<<<"}

func TestSearchRepository_SearchSkills(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSearchRepository(db)
	ctx := context.Background()

	seedSkill(t, db, "skills/go/channels.md", "channels", "Buffered channels decouple goroutines.")
	seedSkill(t, db, "skills/go/errors.md", "errors", "Wrap errors with fmt.Errorf and %w.")
	seedSkill(t, db, "skills/sql/joins.md", "joins", "Outer joins keep unmatched rows.")

	hits, err := repo.SearchSkills(ctx, "channels", 10, testMarkers)
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("len(hits) = %d, want 1", len(hits))
	}
	if hits[0].Skill.Name != "channels" {
		t.Errorf("hit = %q, want channels", hits[0].Skill.Name)
	}
	if !strings.Contains(hits[0].Snippet, ">>>") || !strings.Contains(hits[0].Snippet, "<<<") {
		t.Errorf("snippet %q missing markers", hits[0].Snippet)
	}
}

func TestSearchRepository_RankOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSearchRepository(db)
	ctx := context.Background()

	// The second skill mentions the term repeatedly so bm25 must rank it
	// ahead of the single mention.
	seedSkill(t, db, "skills/one.md", "one", "testing mentioned once here")
	seedSkill(t, db, "skills/two.md", "two",
		"testing testing testing, a skill all about testing and more testing")

	hits, err := repo.SearchSkills(ctx, "testing", 10, testMarkers)
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("len(hits) = %d, want 2", len(hits))
	}
	if hits[0].Skill.Name != "two" {
		t.Errorf("best hit = %q, want two", hits[0].Skill.Name)
	}
	if hits[0].Rank > hits[1].Rank {
		t.Errorf("ranks not ascending: %f then %f", hits[0].Rank, hits[1].Rank)
	}
}

func TestSearchRepository_LimitApplied(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSearchRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedSkill(t, db,
			"skills/skill-"+string(rune('a'+i))+".md",
			"skill-"+string(rune('a'+i)),
			"shared keyword everywhere")
	}

	hits, err := repo.SearchSkills(ctx, "keyword", 3, testMarkers)
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if len(hits) != 3 {
		t.Errorf("len(hits) = %d, want 3", len(hits))
	}
}

func TestSearchRepository_MalformedQuery(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSearchRepository(db)

	_, err := repo.SearchSkills(context.Background(), "AND AND", 10, testMarkers)
	if err == nil {
		t.Error("expected syntax error for malformed query")
	}
}

func TestSearchRepository_SearchPrompts(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSearchRepository(db)
	ctx := context.Background()

	seedPrompt(t, db, "prompts/review.md", "review", "Review the diff for regressions.")
	seedPrompt(t, db, "prompts/summarize.md", "summarize", "Summarize the document briefly.")

	hits, err := repo.SearchPrompts(ctx, "regressions", 10, testMarkers)
	if err != nil {
		t.Fatalf("SearchPrompts failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Prompt.Name != "review" {
		t.Errorf("hits = %+v, want review only", hits)
	}
}

func TestSearchRepository_SearchPlans(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSearchRepository(db)
	ctx := context.Background()

	if _, err := db.Exec(
		`INSERT INTO implementation_plans (name, title, summary, content)
		VALUES ('migration-plan', 'DB migration', 'Move to sharded storage', 'Detailed sharding steps')`,
	); err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	seedPlan(t, db, "unrelated-plan")

	hits, err := repo.SearchPlans(ctx, "sharded", 10, testMarkers)
	if err != nil {
		t.Fatalf("SearchPlans failed: %v", err)
	}
	if len(hits) != 1 || hits[0].Plan.Name != "migration-plan" {
		t.Errorf("hits = %+v, want migration-plan only", hits)
	}
}

func TestSearchRepository_UpdatedContentSearchable(t *testing.T) {
	db := setupTestDB(t)
	searchRepo := sqlite.NewSearchRepository(db)
	skillRepo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	skill := &secondary.SkillRecord{FilePath: "skills/live.md", Name: "live", Content: "before text"}
	if err := skillRepo.Create(ctx, skill); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	content := "after text"
	if err := skillRepo.Update(ctx, skill.ID, secondary.SkillUpdate{Content: &content}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	stale, err := searchRepo.SearchSkills(ctx, "before", 10, testMarkers)
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if len(stale) != 0 {
		t.Errorf("stale hits = %d, want 0", len(stale))
	}
	fresh, err := searchRepo.SearchSkills(ctx, "after", 10, testMarkers)
	if err != nil {
		t.Fatalf("SearchSkills failed: %v", err)
	}
	if len(fresh) != 1 {
		t.Errorf("fresh hits = %d, want 1", len(fresh))
	}
}
