package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/abhisek/lingua/internal/llm"
)

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The file is path, else LINGUA_CONFIG, else the default config location.
// An explicitly named file must exist; a missing default file means
// configuration comes from ENV + defaults only.
//
// Load discovers vendor API keys but does not require one; call
// Config.Validate before starting a session.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("LINGUA_CONFIG")
	}
	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	cfg.LLM, _ = llm.Discover(cfg.LLM)

	if err := cfg.validateSettings(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/lingua/config.yaml, or a relative
// lingua.yaml when no config directory can be resolved.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "lingua.yaml"
	}
	return filepath.Join(dir, "lingua", "config.yaml")
}
