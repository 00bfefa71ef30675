package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/planvault/internal/adapters/sqlite"
	"github.com/example/planvault/internal/ports/secondary"
)

func TestTaskListRepository_CreateAssignsPositions(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")

	// Negative position means append.
	for i, name := range []string{"first", "second", "third"} {
		list := &secondary.TaskListRecord{PlanID: planID, Name: name, Position: -1}
		if err := repo.Create(ctx, list); err != nil {
			t.Fatalf("Create %s failed: %v", name, err)
		}
		if list.Position != i {
			t.Errorf("%s: Position = %d, want %d", name, list.Position, i)
		}
	}

	lists, err := repo.ListByPlan(ctx, planID, 0, 0)
	if err != nil {
		t.Fatalf("ListByPlan failed: %v", err)
	}
	if len(lists) != 3 {
		t.Fatalf("len(lists) = %d, want 3", len(lists))
	}
	for i, want := range []string{"first", "second", "third"} {
		if lists[i].Name != want {
			t.Errorf("lists[%d] = %q, want %q", i, lists[i].Name, want)
		}
	}
}

func TestTaskListRepository_CreateExplicitPosition(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")

	list := &secondary.TaskListRecord{PlanID: planID, Name: "pinned", Position: 5}
	if err := repo.Create(ctx, list); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if list.Position != 5 {
		t.Errorf("Position = %d, want 5", list.Position)
	}

	// Appending after an explicit position continues from the max.
	next := &secondary.TaskListRecord{PlanID: planID, Name: "after", Position: -1}
	if err := repo.Create(ctx, next); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if next.Position != 6 {
		t.Errorf("Position = %d, want 6", next.Position)
	}
}

func TestTaskListRepository_PositionsScopedPerPlan(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planA := seedPlan(t, db, "plan-a")
	planB := seedPlan(t, db, "plan-b")

	a := &secondary.TaskListRecord{PlanID: planA, Name: "a0", Position: -1}
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	b := &secondary.TaskListRecord{PlanID: planB, Name: "b0", Position: -1}
	if err := repo.Create(ctx, b); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if a.Position != 0 || b.Position != 0 {
		t.Errorf("positions = %d/%d, want 0/0 (independent scopes)", a.Position, b.Position)
	}
}

func TestTaskListRepository_Reorder(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	first := seedTaskList(t, db, planID, "first", 0)
	second := seedTaskList(t, db, planID, "second", 1)
	third := seedTaskList(t, db, planID, "third", 2)

	err := repo.Reorder(ctx, planID, map[int64]int{first: 2, second: 0, third: 1})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	lists, err := repo.ListByPlan(ctx, planID, 0, 0)
	if err != nil {
		t.Fatalf("ListByPlan failed: %v", err)
	}
	for i, want := range []string{"second", "third", "first"} {
		if lists[i].Name != want {
			t.Errorf("lists[%d] = %q, want %q", i, lists[i].Name, want)
		}
	}
}

func TestTaskListRepository_ReorderSharedPositions(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	first := seedTaskList(t, db, planID, "first", 0)
	second := seedTaskList(t, db, planID, "second", 1)

	// Positions need not be unique; reads break the tie by id.
	err := repo.Reorder(ctx, planID, map[int64]int{first: 0, second: 0})
	if err != nil {
		t.Fatalf("Reorder failed: %v", err)
	}

	lists, err := repo.ListByPlan(ctx, planID, 0, 0)
	if err != nil {
		t.Fatalf("ListByPlan failed: %v", err)
	}
	if len(lists) != 2 || lists[0].ID != first || lists[1].ID != second {
		t.Errorf("unexpected order: %+v", lists)
	}
	for _, l := range lists {
		if l.Position != 0 {
			t.Errorf("list %d position = %d, want 0", l.ID, l.Position)
		}
	}
}

func TestTaskListRepository_ReorderUnknownIDRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	first := seedTaskList(t, db, planID, "first", 0)

	err := repo.Reorder(ctx, planID, map[int64]int{first: 1, 999: 0})
	if err == nil {
		t.Fatal("expected error for unknown id")
	}

	// The partial update must not stick.
	got, err := repo.GetByID(ctx, first)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Position != 0 {
		t.Errorf("Position = %d, want 0 after rollback", got.Position)
	}
}

func TestTaskListRepository_PlanExists(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskListRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")

	ok, err := repo.PlanExists(ctx, planID)
	if err != nil || !ok {
		t.Errorf("PlanExists(%d) = %v, %v, want true, nil", planID, ok, err)
	}
	ok, err = repo.PlanExists(ctx, 999)
	if err != nil || ok {
		t.Errorf("PlanExists(999) = %v, %v, want false, nil", ok, err)
	}
}

func TestTaskRepository_CreateAndComplete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	listID := seedTaskList(t, db, planID, "", 0)

	task := &secondary.TaskRecord{TaskListID: listID, Name: "write tests", Position: -1, AssignedTo: "dana"}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID == 0 || task.Position != 0 || task.Completed {
		t.Errorf("unexpected created task: %+v", task)
	}

	if err := repo.Complete(ctx, task.ID); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	got, err := repo.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Completed {
		t.Error("expected task to be completed")
	}
	if got.CompletedAt == "" {
		t.Error("expected completed_at to be stamped")
	}
}

func TestTaskRepository_UpdateCompletedToggle(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	listID := seedTaskList(t, db, planID, "", 0)

	task := &secondary.TaskRecord{TaskListID: listID, Name: "toggle", Position: -1}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	done := true
	if err := repo.Update(ctx, task.ID, secondary.TaskUpdate{Completed: &done}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, task.ID)
	if !got.Completed || got.CompletedAt == "" {
		t.Errorf("after complete: completed=%v completed_at=%q", got.Completed, got.CompletedAt)
	}

	// Un-completing clears the stamp.
	undone := false
	if err := repo.Update(ctx, task.ID, secondary.TaskUpdate{Completed: &undone}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, task.ID)
	if got.Completed || got.CompletedAt != "" {
		t.Errorf("after uncomplete: completed=%v completed_at=%q", got.Completed, got.CompletedAt)
	}
}

func TestTaskRepository_DeleteReturnsRecord(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	listID := seedTaskList(t, db, planID, "", 0)

	task := &secondary.TaskRecord{TaskListID: listID, Name: "short-lived", Position: -1}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := repo.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted == nil || deleted.Name != "short-lived" {
		t.Fatalf("Delete returned %+v", deleted)
	}

	missing, err := repo.Delete(ctx, task.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if missing != nil {
		t.Errorf("second delete returned %+v, want nil", missing)
	}
}

func TestTaskRepository_NextPosition(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	planID := seedPlan(t, db, "")
	listID := seedTaskList(t, db, planID, "", 0)

	pos, err := repo.NextPosition(ctx, listID)
	if err != nil {
		t.Fatalf("NextPosition failed: %v", err)
	}
	if pos != 0 {
		t.Errorf("NextPosition on empty list = %d, want 0", pos)
	}

	task := &secondary.TaskRecord{TaskListID: listID, Name: "t", Position: 4}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	pos, err = repo.NextPosition(ctx, listID)
	if err != nil {
		t.Fatalf("NextPosition failed: %v", err)
	}
	if pos != 5 {
		t.Errorf("NextPosition = %d, want 5", pos)
	}
}
