// Package config loads application configuration from a YAML file and
// LINGUA_* environment variables.
package config

import (
	"fmt"

	"github.com/abhisek/lingua/internal/content"
	"github.com/abhisek/lingua/internal/llm"
	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

// Config is the root configuration.
type Config struct {
	LLM     llm.Config     `yaml:"llm"`
	Content content.Config `yaml:"content"`
	Store   StoreConfig    `yaml:"store"`
	Log     logger.Config  `yaml:"log"`
}

// StoreConfig locates the event database.
type StoreConfig struct {
	// Path is the SQLite file. Empty uses the XDG data directory.
	Path string `yaml:"path" env:"LINGUA_DB"`
}

// DBPath resolves the database file, creating its directory.
func (s StoreConfig) DBPath() (string, error) {
	if s.Path == "" {
		return store.DefaultDBPath()
	}
	return s.Path, store.EnsureDir(s.Path)
}

// Validate checks everything a study session needs, including a provider
// API key.
func (c *Config) Validate() error {
	if err := c.validateSettings(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

// validateSettings checks the parts of the config that do not depend on
// credentials. Commands that only read the store need nothing more.
func (c *Config) validateSettings() error {
	if err := c.Content.Validate(); err != nil {
		return fmt.Errorf("content: %w", err)
	}
	if c.LLM.Retry.MaxAttempts < 1 {
		return fmt.Errorf("llm: retry max_attempts must be at least 1 (got %d)", c.LLM.Retry.MaxAttempts)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("llm: timeout must be > 0 (got %s)", c.LLM.Timeout)
	}
	return nil
}
