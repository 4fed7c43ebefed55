// Package config resolves the tool's settings. The memory directory comes
// from the RECALL_MEMORY_DIR environment variable, falling back to the
// config file at ~/.recall/config.toml, falling back to ./memory.
package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// EnvMemoryDir is the environment variable overriding the memory directory.
const EnvMemoryDir = "RECALL_MEMORY_DIR"

// DefaultMemoryDir is used when neither the environment variable nor the
// config file supplies a directory.
const DefaultMemoryDir = "memory"

// IndexFileName is the name of the search index database inside the
// memory directory.
const IndexFileName = "search_index.db"

// Config holds the tool's settings.
type Config struct {
	// MemoryDir is the directory of source memory files.
	MemoryDir string `toml:"memory_dir"`
}

// Load resolves configuration from the environment, the given config file
// path, and defaults, in that order of precedence. An empty configPath
// uses ~/.recall/config.toml. A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".recall", "config.toml")
		}
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, err
		}
	}

	if dir := os.Getenv(EnvMemoryDir); dir != "" {
		cfg.MemoryDir = dir
	}
	if cfg.MemoryDir == "" {
		cfg.MemoryDir = DefaultMemoryDir
	}

	abs, err := filepath.Abs(cfg.MemoryDir)
	if err == nil {
		cfg.MemoryDir = abs
	}

	return cfg, nil
}

// IndexPath returns the location of the search index database.
func (c *Config) IndexPath() string {
	return filepath.Join(c.MemoryDir, IndexFileName)
}

// Save writes the configuration to the given path with restricted
// permissions, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
