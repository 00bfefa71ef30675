// Package config resolves where the vault database lives.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvDBPath overrides every other source when set.
const EnvDBPath = "PLANVAULT_DB"

const (
	configDirName  = ".planvault"
	configFileName = "config.yaml"
	dbFileName     = "planvault.db"
)

// fileConfig is the on-disk shape of ~/.planvault/config.yaml.
type fileConfig struct {
	Database string `yaml:"database"`
}

// DatabasePath returns the database file path.
// Resolution order: PLANVAULT_DB env var, then the database key in
// ~/.planvault/config.yaml, then ~/.planvault/planvault.db.
func DatabasePath() (string, error) {
	if env := os.Getenv(EnvDBPath); env != "" {
		return env, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return databasePathIn(home)
}

// databasePathIn resolves the config file and default relative to home.
func databasePathIn(home string) (string, error) {
	configPath := filepath.Join(home, configDirName, configFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return filepath.Join(home, configDirName, dbFileName), nil
		}
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", configPath, err)
	}
	if cfg.Database == "" {
		return filepath.Join(home, configDirName, dbFileName), nil
	}
	return cfg.Database, nil
}
