package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migration is one versioned schema change. Up statements are applied in
// order inside a single transaction together with the schema_version row;
// Down statements revert them and are written with IF EXISTS so a reset can
// run against a partially built schema.
type Migration struct {
	Version int
	Name    string
	Up      []string
	Down    []string
}

// migrations is the ordered list of all migration units. This list is the
// single source of schema truth; schema.go holds a derived snapshot for
// tests.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_plan_tables",
		Up: []string{
			`CREATE TABLE implementation_plans (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				title TEXT,
				summary TEXT,
				description TEXT,
				content TEXT,
				status TEXT NOT NULL CHECK(status IN ('draft', 'in-progress', 'completed', 'archived', 'cancelled')) DEFAULT 'draft',
				created_by TEXT,
				assigned_to TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				completed_at DATETIME
			)`,
			`CREATE TABLE task_lists (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				plan_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				description TEXT,
				position INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (plan_id) REFERENCES implementation_plans(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				task_list_id INTEGER NOT NULL,
				name TEXT NOT NULL,
				description TEXT,
				completed INTEGER NOT NULL DEFAULT 0,
				completed_at DATETIME,
				position INTEGER NOT NULL DEFAULT 0,
				assigned_to TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (task_list_id) REFERENCES task_lists(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX idx_plans_status ON implementation_plans(status)`,
			`CREATE INDEX idx_plans_name ON implementation_plans(name)`,
			`CREATE INDEX idx_task_lists_plan ON task_lists(plan_id, position)`,
			`CREATE INDEX idx_tasks_list ON tasks(task_list_id, position)`,
		},
		Down: []string{
			`DROP INDEX IF EXISTS idx_tasks_list`,
			`DROP INDEX IF EXISTS idx_task_lists_plan`,
			`DROP INDEX IF EXISTS idx_plans_name`,
			`DROP INDEX IF EXISTS idx_plans_status`,
			`DROP TABLE IF EXISTS tasks`,
			`DROP TABLE IF EXISTS task_lists`,
			`DROP TABLE IF EXISTS implementation_plans`,
		},
	},
	{
		Version: 2,
		Name:    "create_skills_with_fts",
		Up: []string{
			`CREATE TABLE skills (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				file_path TEXT NOT NULL UNIQUE,
				file_hash TEXT,
				category TEXT,
				name TEXT NOT NULL,
				title TEXT,
				description TEXT,
				content TEXT,
				size_bytes INTEGER NOT NULL DEFAULT 0,
				token_count INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX idx_skills_category ON skills(category)`,
			`CREATE INDEX idx_skills_name ON skills(name)`,
			`CREATE VIRTUAL TABLE skills_fts USING fts5(
				category, name, title, description, content
			)`,
			`CREATE TRIGGER skills_ai AFTER INSERT ON skills BEGIN
				INSERT INTO skills_fts(rowid, category, name, title, description, content)
				VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
			END`,
			`CREATE TRIGGER skills_au AFTER UPDATE ON skills BEGIN
				DELETE FROM skills_fts WHERE rowid = old.id;
				INSERT INTO skills_fts(rowid, category, name, title, description, content)
				VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
			END`,
			`CREATE TRIGGER skills_ad AFTER DELETE ON skills BEGIN
				DELETE FROM skills_fts WHERE rowid = old.id;
			END`,
		},
		Down: []string{
			`DROP TRIGGER IF EXISTS skills_ad`,
			`DROP TRIGGER IF EXISTS skills_au`,
			`DROP TRIGGER IF EXISTS skills_ai`,
			`DROP TABLE IF EXISTS skills_fts`,
			`DROP INDEX IF EXISTS idx_skills_name`,
			`DROP INDEX IF EXISTS idx_skills_category`,
			`DROP TABLE IF EXISTS skills`,
		},
	},
	{
		Version: 3,
		Name:    "create_prompt_tables_with_fts",
		Up: []string{
			`CREATE TABLE prompts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				file_path TEXT NOT NULL UNIQUE,
				file_hash TEXT,
				category TEXT,
				name TEXT NOT NULL,
				title TEXT,
				description TEXT,
				content TEXT,
				size_bytes INTEGER NOT NULL DEFAULT 0,
				token_count INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE INDEX idx_prompts_category ON prompts(category)`,
			`CREATE INDEX idx_prompts_name ON prompts(name)`,
			`CREATE TABLE prompt_fragments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE,
				description TEXT,
				content TEXT,
				token_count INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)`,
			`CREATE TABLE prompt_skills (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				prompt_id INTEGER NOT NULL,
				skill_id INTEGER NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (prompt_id) REFERENCES prompts(id) ON DELETE CASCADE,
				FOREIGN KEY (skill_id) REFERENCES skills(id) ON DELETE CASCADE,
				UNIQUE(prompt_id, skill_id)
			)`,
			`CREATE TABLE prompt_fragment_skills (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				fragment_id INTEGER NOT NULL,
				skill_id INTEGER NOT NULL,
				position INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (fragment_id) REFERENCES prompt_fragments(id) ON DELETE CASCADE,
				FOREIGN KEY (skill_id) REFERENCES skills(id) ON DELETE CASCADE,
				UNIQUE(fragment_id, skill_id)
			)`,
			`CREATE TABLE prompt_references (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				prompt_id INTEGER NOT NULL,
				reference_type TEXT NOT NULL CHECK(reference_type IN ('prompt', 'fragment')),
				target_prompt_id INTEGER,
				fragment_id INTEGER,
				position INTEGER NOT NULL DEFAULT 0,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (prompt_id) REFERENCES prompts(id) ON DELETE CASCADE,
				FOREIGN KEY (target_prompt_id) REFERENCES prompts(id) ON DELETE CASCADE,
				FOREIGN KEY (fragment_id) REFERENCES prompt_fragments(id) ON DELETE CASCADE,
				CHECK (
					(reference_type = 'prompt' AND target_prompt_id IS NOT NULL AND fragment_id IS NULL) OR
					(reference_type = 'fragment' AND fragment_id IS NOT NULL AND target_prompt_id IS NULL)
				)
			)`,
			`CREATE INDEX idx_prompt_skills_prompt ON prompt_skills(prompt_id, position)`,
			`CREATE INDEX idx_fragment_skills_fragment ON prompt_fragment_skills(fragment_id, position)`,
			`CREATE INDEX idx_prompt_references_prompt ON prompt_references(prompt_id, position)`,
			`CREATE VIRTUAL TABLE prompts_fts USING fts5(
				category, name, title, description, content
			)`,
			`CREATE TRIGGER prompts_ai AFTER INSERT ON prompts BEGIN
				INSERT INTO prompts_fts(rowid, category, name, title, description, content)
				VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
			END`,
			`CREATE TRIGGER prompts_au AFTER UPDATE ON prompts BEGIN
				DELETE FROM prompts_fts WHERE rowid = old.id;
				INSERT INTO prompts_fts(rowid, category, name, title, description, content)
				VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
			END`,
			`CREATE TRIGGER prompts_ad AFTER DELETE ON prompts BEGIN
				DELETE FROM prompts_fts WHERE rowid = old.id;
			END`,
		},
		Down: []string{
			`DROP TRIGGER IF EXISTS prompts_ad`,
			`DROP TRIGGER IF EXISTS prompts_au`,
			`DROP TRIGGER IF EXISTS prompts_ai`,
			`DROP TABLE IF EXISTS prompts_fts`,
			`DROP INDEX IF EXISTS idx_prompt_references_prompt`,
			`DROP INDEX IF EXISTS idx_fragment_skills_fragment`,
			`DROP INDEX IF EXISTS idx_prompt_skills_prompt`,
			`DROP TABLE IF EXISTS prompt_references`,
			`DROP TABLE IF EXISTS prompt_fragment_skills`,
			`DROP TABLE IF EXISTS prompt_skills`,
			`DROP TABLE IF EXISTS prompt_fragments`,
			`DROP INDEX IF EXISTS idx_prompts_name`,
			`DROP INDEX IF EXISTS idx_prompts_category`,
			`DROP TABLE IF EXISTS prompts`,
		},
	},
	{
		Version: 4,
		Name:    "add_plan_fts",
		Up: []string{
			`CREATE VIRTUAL TABLE implementation_plans_fts USING fts5(
				name, title, summary, description, content
			)`,
			`INSERT INTO implementation_plans_fts(rowid, name, title, summary, description, content)
				SELECT id, name, title, summary, description, content FROM implementation_plans`,
			`CREATE TRIGGER implementation_plans_ai AFTER INSERT ON implementation_plans BEGIN
				INSERT INTO implementation_plans_fts(rowid, name, title, summary, description, content)
				VALUES (new.id, new.name, new.title, new.summary, new.description, new.content);
			END`,
			`CREATE TRIGGER implementation_plans_au AFTER UPDATE ON implementation_plans BEGIN
				DELETE FROM implementation_plans_fts WHERE rowid = old.id;
				INSERT INTO implementation_plans_fts(rowid, name, title, summary, description, content)
				VALUES (new.id, new.name, new.title, new.summary, new.description, new.content);
			END`,
			`CREATE TRIGGER implementation_plans_ad AFTER DELETE ON implementation_plans BEGIN
				DELETE FROM implementation_plans_fts WHERE rowid = old.id;
			END`,
		},
		Down: []string{
			`DROP TRIGGER IF EXISTS implementation_plans_ad`,
			`DROP TRIGGER IF EXISTS implementation_plans_au`,
			`DROP TRIGGER IF EXISTS implementation_plans_ai`,
			`DROP TABLE IF EXISTS implementation_plans_fts`,
		},
	},
}

// LatestVersion returns the highest migration version known to this build.
func LatestVersion() int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied version, or 0 when the
// schema_version table does not exist yet.
func CurrentVersion(conn *sql.DB) (int, error) {
	var count int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to check schema_version table: %w", err)
	}
	if count == 0 {
		return 0, nil
	}

	var version int
	err = conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// Migrate applies every pending migration unit in ascending order, one
// transaction per unit, and returns how many units were applied. Zero means
// the schema was already up to date.
func Migrate(conn *sql.DB) (int, error) {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to create schema_version table: %w", err)
	}

	current, err := CurrentVersion(conn)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := conn.Begin()
		if err != nil {
			return applied, fmt.Errorf("failed to begin transaction for migration %d: %w", m.Version, err)
		}

		if err := execAll(tx, m.Up); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			tx.Rollback()
			return applied, fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return applied, fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
		applied++
	}

	return applied, nil
}

// RunMigrations brings the schema up to date, discarding the applied count.
func RunMigrations(conn *sql.DB) error {
	_, err := Migrate(conn)
	return err
}

// Rollback reverts exactly the most recently applied migration unit.
func Rollback(conn *sql.DB) error {
	current, err := CurrentVersion(conn)
	if err != nil {
		return err
	}
	if current == 0 {
		return fmt.Errorf("no migrations to roll back")
	}

	var target *Migration
	for i := range migrations {
		if migrations[i].Version == current {
			target = &migrations[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration %d not known to this build", current)
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin rollback transaction: %w", err)
	}

	if err := execAll(tx, target.Down); err != nil {
		tx.Rollback()
		return fmt.Errorf("rollback of migration %d (%s) failed: %w", target.Version, target.Name, err)
	}

	if _, err := tx.Exec("DELETE FROM schema_version WHERE version = ?", target.Version); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove migration record %d: %w", target.Version, err)
	}

	return tx.Commit()
}

// Reset runs every unit's Down statements in descending version order and
// then reapplies the full migration chain. Down statements that target
// objects which were never created are tolerated.
func Reset(conn *sql.DB) error {
	for i := len(migrations) - 1; i >= 0; i-- {
		for _, stmt := range migrations[i].Down {
			if _, err := conn.Exec(stmt); err != nil {
				if isMissingObjectErr(err) {
					continue
				}
				return fmt.Errorf("reset of migration %d (%s) failed: %w", migrations[i].Version, migrations[i].Name, err)
			}
		}
	}

	if _, err := conn.Exec("DROP TABLE IF EXISTS schema_version"); err != nil {
		return fmt.Errorf("failed to drop schema_version: %w", err)
	}

	return RunMigrations(conn)
}

// execAll runs each statement in order inside the given transaction.
func execAll(tx *sql.Tx, stmts []string) error {
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("%w\nstatement: %s", err, strings.TrimSpace(stmt))
		}
	}
	return nil
}

// isMissingObjectErr reports whether err is SQLite complaining about a
// dropped object that does not exist (table, index, trigger, or view).
func isMissingObjectErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such")
}
