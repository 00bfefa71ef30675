package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/planvault/internal/adapters/sqlite"
	"github.com/example/planvault/internal/ports/secondary"
)

func TestSkillRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	skill := &secondary.SkillRecord{
		FilePath:    "skills/go/errors.md",
		FileHash:    "abc123",
		Category:    "go",
		Name:        "errors",
		Title:       "Error handling",
		Description: "Wrapping and sentinel errors",
		Content:     "Use %w to wrap errors.",
		SizeBytes:   1024,
		TokenCount:  250,
	}
	if err := repo.Create(ctx, skill); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if skill.ID == 0 {
		t.Error("expected assigned ID")
	}

	got, err := repo.GetByID(ctx, skill.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.FilePath != "skills/go/errors.md" || got.TokenCount != 250 {
		t.Errorf("GetByID = %+v", got)
	}

	byPath, err := repo.GetByPath(ctx, "skills/go/errors.md")
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if byPath == nil || byPath.ID != skill.ID {
		t.Errorf("GetByPath = %+v, want skill %d", byPath, skill.ID)
	}
}

func TestSkillRepository_ListByCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	for _, s := range []struct{ path, name, category string }{
		{"skills/go/errors.md", "errors", "go"},
		{"skills/go/context.md", "context", "go"},
		{"skills/sql/joins.md", "joins", "sql"},
	} {
		err := repo.Create(ctx, &secondary.SkillRecord{FilePath: s.path, Name: s.name, Category: s.category})
		if err != nil {
			t.Fatalf("Create %s failed: %v", s.name, err)
		}
	}

	goSkills, err := repo.List(ctx, secondary.SkillFilters{Category: "go"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(goSkills) != 2 {
		t.Fatalf("len(goSkills) = %d, want 2", len(goSkills))
	}
	// Ordered by file path.
	if goSkills[0].Name != "context" || goSkills[1].Name != "errors" {
		t.Errorf("order = %q, %q, want context, errors", goSkills[0].Name, goSkills[1].Name)
	}
}

func TestSkillRepository_FTSRowCreatedByTrigger(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	skill := &secondary.SkillRecord{
		FilePath: "skills/go/channels.md",
		Name:     "channels",
		Content:  "Buffered channels decouple producers from consumers.",
	}
	if err := repo.Create(ctx, skill); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if n := countRows(t, db, "skills_fts", "skills_fts MATCH 'buffered'"); n != 1 {
		t.Errorf("FTS rows matching content = %d, want 1", n)
	}
}

func TestSkillRepository_FTSRowFollowsUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	skill := &secondary.SkillRecord{FilePath: "skills/x.md", Name: "x", Content: "original wording"}
	if err := repo.Create(ctx, skill); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	content := "replacement wording"
	if err := repo.Update(ctx, skill.ID, secondary.SkillUpdate{Content: &content}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if n := countRows(t, db, "skills_fts", "skills_fts MATCH 'original'"); n != 0 {
		t.Errorf("stale FTS rows = %d, want 0", n)
	}
	if n := countRows(t, db, "skills_fts", "skills_fts MATCH 'replacement'"); n != 1 {
		t.Errorf("fresh FTS rows = %d, want 1", n)
	}
	// Exactly one index row per skill, not an accumulated history.
	if n := countRows(t, db, "skills_fts", "rowid = ?", skill.ID); n != 1 {
		t.Errorf("FTS rows for skill = %d, want 1", n)
	}
}

func TestSkillRepository_FTSRowRemovedOnDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	skill := &secondary.SkillRecord{FilePath: "skills/y.md", Name: "y", Content: "ephemeral"}
	if err := repo.Create(ctx, skill); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := repo.Delete(ctx, skill.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted == nil {
		t.Fatal("expected deleted record")
	}
	if n := countRows(t, db, "skills_fts", "rowid = ?", skill.ID); n != 0 {
		t.Errorf("FTS rows after delete = %d, want 0", n)
	}
}

func TestSkillRepository_DeleteCascadesJunctions(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewSkillRepository(db)
	ctx := context.Background()

	skillID := seedSkill(t, db, "", "", "")
	promptID := seedPrompt(t, db, "", "", "")
	if _, err := db.Exec("INSERT INTO prompt_skills (prompt_id, skill_id) VALUES (?, ?)", promptID, skillID); err != nil {
		t.Fatalf("failed to seed junction: %v", err)
	}

	if _, err := repo.Delete(ctx, skillID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n := countRows(t, db, "prompt_skills", "skill_id = ?", skillID); n != 0 {
		t.Errorf("junction rows after delete = %d, want 0", n)
	}
	// The prompt itself survives.
	if n := countRows(t, db, "prompts", "id = ?", promptID); n != 1 {
		t.Errorf("prompt rows = %d, want 1", n)
	}
}
