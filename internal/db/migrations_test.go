package db

import (
	"database/sql"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open(DriverName, ":memory:")
	require.NoError(t, err)
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrateFromScratch(t *testing.T) {
	conn := openMemoryDB(t)

	applied, err := Migrate(conn)
	require.NoError(t, err)
	assert.Equal(t, len(migrations), applied)

	version, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), version)

	// Core tables exist and accept rows.
	_, err = conn.Exec("INSERT INTO implementation_plans (name, title) VALUES ('p', 'P')")
	require.NoError(t, err)
	_, err = conn.Exec("INSERT INTO skills (file_path, name) VALUES ('s.md', 's')")
	require.NoError(t, err)
}

func TestMigrateIdempotent(t *testing.T) {
	conn := openMemoryDB(t)

	_, err := Migrate(conn)
	require.NoError(t, err)

	applied, err := Migrate(conn)
	require.NoError(t, err)
	assert.Zero(t, applied, "second run should apply nothing")
}

func TestCurrentVersionBeforeMigrations(t *testing.T) {
	conn := openMemoryDB(t)

	version, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Zero(t, version)
}

func TestRollbackLastUnit(t *testing.T) {
	conn := openMemoryDB(t)

	_, err := Migrate(conn)
	require.NoError(t, err)

	require.NoError(t, Rollback(conn))

	version, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion()-1, version)

	// The last unit's objects are gone, earlier ones survive.
	assert.False(t, objectExists(t, conn, "table", "implementation_plans_fts"))
	assert.True(t, objectExists(t, conn, "table", "implementation_plans"))
	assert.True(t, objectExists(t, conn, "table", "prompts_fts"))
}

func TestRollbackWithNothingApplied(t *testing.T) {
	conn := openMemoryDB(t)
	assert.Error(t, Rollback(conn))
}

func TestRollbackThenReapply(t *testing.T) {
	conn := openMemoryDB(t)

	_, err := Migrate(conn)
	require.NoError(t, err)
	require.NoError(t, Rollback(conn))

	applied, err := Migrate(conn)
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	version, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), version)
}

func TestResetDropsData(t *testing.T) {
	conn := openMemoryDB(t)

	_, err := Migrate(conn)
	require.NoError(t, err)
	_, err = conn.Exec("INSERT INTO implementation_plans (name, title) VALUES ('keep', 'Keep')")
	require.NoError(t, err)

	require.NoError(t, Reset(conn))

	version, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), version, "reset ends fully migrated")

	var n int
	require.NoError(t, conn.QueryRow("SELECT COUNT(*) FROM implementation_plans").Scan(&n))
	assert.Zero(t, n, "reset discards data")
}

func TestResetOnEmptyDatabase(t *testing.T) {
	conn := openMemoryDB(t)

	require.NoError(t, Reset(conn))

	version, err := CurrentVersion(conn)
	require.NoError(t, err)
	assert.Equal(t, LatestVersion(), version)
}

func TestMigrationVersionsStrictlyIncreasing(t *testing.T) {
	last := 0
	for _, m := range migrations {
		assert.Greater(t, m.Version, last, "migration %q out of order", m.Name)
		last = m.Version
	}
}

// TestSchemaMatchesMigrations guards against drift between the migration
// chain and the snapshot in schema.go: both must produce the same set of
// tables, indexes, and triggers.
func TestSchemaMatchesMigrations(t *testing.T) {
	migrated := openMemoryDB(t)
	_, err := Migrate(migrated)
	require.NoError(t, err)

	snapshot := openMemoryDB(t)
	_, err = snapshot.Exec(GetSchemaSQL())
	require.NoError(t, err)

	for _, kind := range []string{"table", "index", "trigger"} {
		fromMigrations := listObjects(t, migrated, kind)
		fromSnapshot := listObjects(t, snapshot, kind)
		if kind == "table" {
			// schema_version belongs to the migrator, not the snapshot.
			fromMigrations = remove(fromMigrations, "schema_version")
		}
		assert.Equal(t, fromMigrations, fromSnapshot, "%s set drifted", kind)
	}
}

func listObjects(t *testing.T, conn *sql.DB, kind string) []string {
	t.Helper()
	rows, err := conn.Query(
		"SELECT name FROM sqlite_master WHERE type = ? AND name NOT LIKE 'sqlite_%' AND name NOT LIKE '%_fts_%'",
		kind)
	require.NoError(t, err)
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	sort.Strings(names)
	return names
}

func objectExists(t *testing.T, conn *sql.DB, kind, name string) bool {
	t.Helper()
	var n int
	err := conn.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?", kind, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func remove(names []string, drop string) []string {
	out := names[:0]
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}
