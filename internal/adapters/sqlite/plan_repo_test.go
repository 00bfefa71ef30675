package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/planvault/internal/adapters/sqlite"
	"github.com/example/planvault/internal/ports/secondary"
)

func TestPlanRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	plan := &secondary.PlanRecord{
		Name:        "auth-redesign",
		Title:       "Auth redesign",
		Summary:     "Move to token auth",
		Description: "Replace session auth with tokens",
		Content:     "## Plan\n\n1. Step one\n2. Step two",
	}

	if err := repo.Create(ctx, plan); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if plan.ID == 0 {
		t.Error("expected assigned ID")
	}
	if plan.Status != "draft" {
		t.Errorf("Status = %q, want draft", plan.Status)
	}
	if plan.CreatedAt == "" || plan.UpdatedAt == "" {
		t.Error("expected timestamps to be stamped")
	}

	got, err := repo.GetByID(ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected plan, got nil")
	}
	if got.Name != "auth-redesign" || got.Title != "Auth redesign" {
		t.Errorf("got %q/%q, want auth-redesign/Auth redesign", got.Name, got.Title)
	}
	if got.Content != plan.Content {
		t.Errorf("Content = %q, want %q", got.Content, plan.Content)
	}
}

func TestPlanRepository_CreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, &secondary.PlanRecord{Name: "dup", Title: "One"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Create(ctx, &secondary.PlanRecord{Name: "dup", Title: "Two"}); err == nil {
		t.Error("expected unique constraint error for duplicate name")
	}
}

func TestPlanRepository_GetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)

	got, err := repo.GetByID(context.Background(), 999)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for missing plan, got %+v", got)
	}
}

func TestPlanRepository_GetByName(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	id := seedPlan(t, db, "named-plan")

	got, err := repo.GetByName(ctx, "named-plan")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if got == nil || got.ID != id {
		t.Fatalf("GetByName = %+v, want plan %d", got, id)
	}

	missing, err := repo.GetByName(ctx, "no-such-plan")
	if err != nil {
		t.Fatalf("GetByName failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing name, got %+v", missing)
	}
}

func TestPlanRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	mustCreate := func(name, status, assignee string) {
		t.Helper()
		err := repo.Create(ctx, &secondary.PlanRecord{
			Name: name, Title: "T", Status: status, AssignedTo: assignee,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	mustCreate("a", "draft", "dana")
	mustCreate("b", "in-progress", "dana")
	mustCreate("c", "in-progress", "lee")

	all, err := repo.List(ctx, secondary.PlanFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}

	inProgress, err := repo.List(ctx, secondary.PlanFilters{Status: "in-progress"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(inProgress) != 2 {
		t.Errorf("len(inProgress) = %d, want 2", len(inProgress))
	}

	danas, err := repo.List(ctx, secondary.PlanFilters{Status: "in-progress", AssignedTo: "dana"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(danas) != 1 || danas[0].Name != "b" {
		t.Errorf("filtered list = %+v, want plan b only", danas)
	}

	limited, err := repo.List(ctx, secondary.PlanFilters{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("len(limited) = %d, want 2", len(limited))
	}
}

func TestPlanRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	id := seedPlan(t, db, "update-me")

	title := "New Title"
	status := "in-progress"
	if err := repo.Update(ctx, id, secondary.PlanUpdate{Title: &title, Status: &status}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "New Title" || got.Status != "in-progress" {
		t.Errorf("after update: title=%q status=%q", got.Title, got.Status)
	}
	// Untouched fields keep their values.
	if got.Name != "update-me" {
		t.Errorf("Name = %q, want update-me", got.Name)
	}
}

func TestPlanRepository_UpdateNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)

	title := "x"
	err := repo.Update(context.Background(), 999, secondary.PlanUpdate{Title: &title})
	if err == nil {
		t.Error("expected error updating missing plan")
	}
}

func TestPlanRepository_DeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "doomed")
	listID := seedTaskList(t, db, planID, "Doomed List", 0)
	if _, err := db.Exec("INSERT INTO tasks (task_list_id, name) VALUES (?, 'doomed task')", listID); err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}

	deleted, err := repo.Delete(ctx, planID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted == nil || deleted.Name != "doomed" {
		t.Fatalf("Delete returned %+v, want doomed plan", deleted)
	}

	if n := countRows(t, db, "implementation_plans", "id = ?", planID); n != 0 {
		t.Errorf("plan still present after delete")
	}
	if n := countRows(t, db, "task_lists", "plan_id = ?", planID); n != 0 {
		t.Errorf("task lists not cascaded")
	}
	if n := countRows(t, db, "tasks", "task_list_id = ?", listID); n != 0 {
		t.Errorf("tasks not cascaded")
	}
}

func TestPlanRepository_DeleteNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)

	deleted, err := repo.Delete(context.Background(), 999)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted != nil {
		t.Errorf("expected nil for missing plan, got %+v", deleted)
	}
}

func TestPlanRepository_Complete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	id := seedPlan(t, db, "finish-me")

	if err := repo.Complete(ctx, id); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "completed" {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if got.CompletedAt == "" {
		t.Error("expected completed_at to be stamped")
	}
}

func TestPlanRepository_Archive(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewPlanRepository(db)
	ctx := context.Background()

	id := seedPlan(t, db, "shelve-me")

	if err := repo.Archive(ctx, id); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}
	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "archived" {
		t.Errorf("Status = %q, want archived", got.Status)
	}
	if got.CompletedAt != "" {
		t.Errorf("CompletedAt = %q, want empty", got.CompletedAt)
	}
}
