package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDatabasePathEnvOverride(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/override.db")

	path, err := DatabasePath()
	if err != nil {
		t.Fatalf("DatabasePath failed: %v", err)
	}
	if path != "/tmp/override.db" {
		t.Errorf("path = %s, want /tmp/override.db", path)
	}
}

func TestDatabasePathDefault(t *testing.T) {
	home := t.TempDir()

	path, err := databasePathIn(home)
	if err != nil {
		t.Fatalf("databasePathIn failed: %v", err)
	}
	expected := filepath.Join(home, ".planvault", "planvault.db")
	if path != expected {
		t.Errorf("path = %s, want %s", path, expected)
	}
}

func TestDatabasePathFromConfigFile(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".planvault")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "database: /var/lib/planvault/main.db\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := databasePathIn(home)
	if err != nil {
		t.Fatalf("databasePathIn failed: %v", err)
	}
	if path != "/var/lib/planvault/main.db" {
		t.Errorf("path = %s, want /var/lib/planvault/main.db", path)
	}
}

func TestDatabasePathEmptyConfigFallsBack(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".planvault")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("# no database key\n"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := databasePathIn(home)
	if err != nil {
		t.Fatalf("databasePathIn failed: %v", err)
	}
	expected := filepath.Join(home, ".planvault", "planvault.db")
	if path != expected {
		t.Errorf("path = %s, want %s", path, expected)
	}
}

func TestDatabasePathMalformedConfig(t *testing.T) {
	home := t.TempDir()
	dir := filepath.Join(home, ".planvault")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database: [oops\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := databasePathIn(home)
	if err == nil {
		t.Fatal("expected parse error for malformed config")
	}
}
