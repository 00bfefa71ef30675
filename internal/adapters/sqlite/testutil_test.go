// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for
// tests. All test setup functions use db.GetSchemaSQL() so tests run
// against the authoritative schema, preventing drift between test and
// production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	"github.com/example/planvault/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// Foreign keys are enabled so cascade behavior matches production.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open(db.DriverName, ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPlan inserts a test plan and returns its ID.
func seedPlan(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()
	if name == "" {
		name = "test-plan"
	}
	res, err := db.Exec(
		"INSERT INTO implementation_plans (name, title, status) VALUES (?, ?, 'draft')",
		name, "Test Plan")
	if err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to seed plan: %v", err)
	}
	return id
}

// seedTaskList inserts a test task list under the plan and returns its ID.
func seedTaskList(t *testing.T, db *sql.DB, planID int64, name string, position int) int64 {
	t.Helper()
	if name == "" {
		name = "Test List"
	}
	res, err := db.Exec(
		"INSERT INTO task_lists (plan_id, name, position) VALUES (?, ?, ?)",
		planID, name, position)
	if err != nil {
		t.Fatalf("failed to seed task list: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to seed task list: %v", err)
	}
	return id
}

// seedSkill inserts a test skill and returns its ID. The FTS row is
// created by trigger.
func seedSkill(t *testing.T, db *sql.DB, filePath, name, content string) int64 {
	t.Helper()
	if filePath == "" {
		filePath = "skills/test.md"
	}
	if name == "" {
		name = "test-skill"
	}
	res, err := db.Exec(
		"INSERT INTO skills (file_path, name, content) VALUES (?, ?, ?)",
		filePath, name, content)
	if err != nil {
		t.Fatalf("failed to seed skill: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to seed skill: %v", err)
	}
	return id
}

// seedPrompt inserts a test prompt and returns its ID.
func seedPrompt(t *testing.T, db *sql.DB, filePath, name, content string) int64 {
	t.Helper()
	if filePath == "" {
		filePath = "prompts/test.md"
	}
	if name == "" {
		name = "test-prompt"
	}
	res, err := db.Exec(
		"INSERT INTO prompts (file_path, name, content) VALUES (?, ?, ?)",
		filePath, name, content)
	if err != nil {
		t.Fatalf("failed to seed prompt: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to seed prompt: %v", err)
	}
	return id
}

// seedFragment inserts a test fragment and returns its ID.
func seedFragment(t *testing.T, db *sql.DB, name, content string) int64 {
	t.Helper()
	if name == "" {
		name = "test-fragment"
	}
	res, err := db.Exec(
		"INSERT INTO prompt_fragments (name, content) VALUES (?, ?)",
		name, content)
	if err != nil {
		t.Fatalf("failed to seed fragment: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("failed to seed fragment: %v", err)
	}
	return id
}

// countRows returns the number of rows in the table matching the where
// clause.
func countRows(t *testing.T, db *sql.DB, table, where string, args ...any) int {
	t.Helper()
	var n int
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
