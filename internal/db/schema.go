package db

// SchemaSQL is the complete schema for a fully migrated database.
//
// # Schema Drift Protection
//
// This is a derived snapshot of the state produced by running every unit in
// migrations.go. Tests create their databases from GetSchemaSQL() so that a
// repository referencing a column that does not exist fails immediately with
// "no such column", and TestSchemaMatchesMigrations asserts this snapshot
// and the migration chain agree on the set of tables and triggers.
//
// When adding a migration unit, update this constant in the same change.
const SchemaSQL = `
-- Implementation plans (top-level unit of work)
CREATE TABLE IF NOT EXISTS implementation_plans (
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
);

-- Task lists (ordered groups of tasks under one plan)
CREATE TABLE IF NOT EXISTS task_lists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	plan_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (plan_id) REFERENCES implementation_plans(id) ON DELETE CASCADE
);

-- Tasks (atomic units of work within a list)
CREATE TABLE IF NOT EXISTS tasks (
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
);

CREATE INDEX IF NOT EXISTS idx_plans_status ON implementation_plans(status);
CREATE INDEX IF NOT EXISTS idx_plans_name ON implementation_plans(name);
CREATE INDEX IF NOT EXISTS idx_task_lists_plan ON task_lists(plan_id, position);
CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks(task_list_id, position);

-- Skills (reusable, content-addressed documentation units)
CREATE TABLE IF NOT EXISTS skills (
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
);

CREATE INDEX IF NOT EXISTS idx_skills_category ON skills(category);
CREATE INDEX IF NOT EXISTS idx_skills_name ON skills(name);

CREATE VIRTUAL TABLE IF NOT EXISTS skills_fts USING fts5(
	category, name, title, description, content
);

CREATE TRIGGER IF NOT EXISTS skills_ai AFTER INSERT ON skills BEGIN
	INSERT INTO skills_fts(rowid, category, name, title, description, content)
	VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS skills_au AFTER UPDATE ON skills BEGIN
	DELETE FROM skills_fts WHERE rowid = old.id;
	INSERT INTO skills_fts(rowid, category, name, title, description, content)
	VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS skills_ad AFTER DELETE ON skills BEGIN
	DELETE FROM skills_fts WHERE rowid = old.id;
END;

-- Prompts (composed documents referencing skills and fragments)
CREATE TABLE IF NOT EXISTS prompts (
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
);

CREATE INDEX IF NOT EXISTS idx_prompts_category ON prompts(category);
CREATE INDEX IF NOT EXISTS idx_prompts_name ON prompts(name);

-- Prompt fragments (named, reusable prompt pieces)
CREATE TABLE IF NOT EXISTS prompt_fragments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	content TEXT,
	token_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Prompt <-> skill junction, ordered within the prompt
CREATE TABLE IF NOT EXISTS prompt_skills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	prompt_id INTEGER NOT NULL,
	skill_id INTEGER NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (prompt_id) REFERENCES prompts(id) ON DELETE CASCADE,
	FOREIGN KEY (skill_id) REFERENCES skills(id) ON DELETE CASCADE,
	UNIQUE(prompt_id, skill_id)
);

-- Fragment <-> skill junction, ordered within the fragment
CREATE TABLE IF NOT EXISTS prompt_fragment_skills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fragment_id INTEGER NOT NULL,
	skill_id INTEGER NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (fragment_id) REFERENCES prompt_fragments(id) ON DELETE CASCADE,
	FOREIGN KEY (skill_id) REFERENCES skills(id) ON DELETE CASCADE,
	UNIQUE(fragment_id, skill_id)
);

-- Prompt references (prompt -> prompt or prompt -> fragment, ordered)
CREATE TABLE IF NOT EXISTS prompt_references (
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
);

CREATE INDEX IF NOT EXISTS idx_prompt_skills_prompt ON prompt_skills(prompt_id, position);
CREATE INDEX IF NOT EXISTS idx_fragment_skills_fragment ON prompt_fragment_skills(fragment_id, position);
CREATE INDEX IF NOT EXISTS idx_prompt_references_prompt ON prompt_references(prompt_id, position);

CREATE VIRTUAL TABLE IF NOT EXISTS prompts_fts USING fts5(
	category, name, title, description, content
);

CREATE TRIGGER IF NOT EXISTS prompts_ai AFTER INSERT ON prompts BEGIN
	INSERT INTO prompts_fts(rowid, category, name, title, description, content)
	VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS prompts_au AFTER UPDATE ON prompts BEGIN
	DELETE FROM prompts_fts WHERE rowid = old.id;
	INSERT INTO prompts_fts(rowid, category, name, title, description, content)
	VALUES (new.id, new.category, new.name, new.title, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS prompts_ad AFTER DELETE ON prompts BEGIN
	DELETE FROM prompts_fts WHERE rowid = old.id;
END;

CREATE VIRTUAL TABLE IF NOT EXISTS implementation_plans_fts USING fts5(
	name, title, summary, description, content
);

CREATE TRIGGER IF NOT EXISTS implementation_plans_ai AFTER INSERT ON implementation_plans BEGIN
	INSERT INTO implementation_plans_fts(rowid, name, title, summary, description, content)
	VALUES (new.id, new.name, new.title, new.summary, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS implementation_plans_au AFTER UPDATE ON implementation_plans BEGIN
	DELETE FROM implementation_plans_fts WHERE rowid = old.id;
	INSERT INTO implementation_plans_fts(rowid, name, title, summary, description, content)
	VALUES (new.id, new.name, new.title, new.summary, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS implementation_plans_ad AFTER DELETE ON implementation_plans BEGIN
	DELETE FROM implementation_plans_fts WHERE rowid = old.id;
END;
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
