package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds provider selection and credentials. Struct tags are read by
// the config loader (YAML file, then LINGUA_* environment).
type Config struct {
	// Provider selects the backend: gemini, openai, anthropic, openrouter
	// or mock.
	Provider string `yaml:"provider" env:"LINGUA_LLM_PROVIDER" env-default:"gemini"`

	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single generation including transport retries.
	Timeout time.Duration `yaml:"timeout" env:"LINGUA_LLM_TIMEOUT" env-default:"90s"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"LINGUA_GEMINI_API_KEY"`
	Model  string `yaml:"model"   env:"LINGUA_GEMINI_MODEL" env-default:"gemini-flash"`

	// BaseURL points the client at a proxy or test server.
	BaseURL string `yaml:"base_url" env:"LINGUA_GEMINI_BASE_URL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"  env:"LINGUA_OPENAI_API_KEY"`
	Model   string `yaml:"model"    env:"LINGUA_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"LINGUA_OPENAI_BASE_URL"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"LINGUA_ANTHROPIC_API_KEY"`
	Model  string `yaml:"model"   env:"LINGUA_ANTHROPIC_MODEL" env-default:"claude-haiku"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key"  env:"LINGUA_OPENROUTER_API_KEY"`
	Model   string `yaml:"model"    env:"LINGUA_OPENROUTER_MODEL" env-default:"google/gemini-2.5-flash"`
	BaseURL string `yaml:"base_url" env:"LINGUA_OPENROUTER_BASE_URL"`
}

// RetryConfig configures transport retries (rate limits, outages).
// Invalid or empty payloads are never retried here.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"LINGUA_LLM_RETRY_ATTEMPTS" env-default:"3"`
	InitialWait time.Duration `yaml:"initial_wait" env:"LINGUA_LLM_RETRY_WAIT"     env-default:"1s"`
	MaxWait     time.Duration `yaml:"max_wait"     env:"LINGUA_LLM_RETRY_MAX_WAIT" env-default:"10s"`
	Multiplier  float64       `yaml:"multiplier"   env-default:"2"`
}

// DefaultConfig mirrors the env-default tags for callers that build a
// Config in code.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 90 * time.Second,
	}
}

// Discover fills in a missing API key from the vendors' standard
// environment variables. If the selected provider has no key, the first
// vendor key found (Gemini, OpenAI, Anthropic, OpenRouter) selects the
// provider. Returns false when no usable key exists.
func Discover(cfg Config) (Config, bool) {
	if cfg.Provider == ProviderMock || cfg.hasKey() {
		return cfg, true
	}

	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return cfg, false
}

func (c Config) hasKey() bool {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey != ""
	case ProviderOpenAI:
		return c.OpenAI.APIKey != ""
	case ProviderAnthropic:
		return c.Anthropic.APIKey != ""
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey != ""
	}
	return false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("LINGUA_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("LINGUA_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("LINGUA_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("LINGUA_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max_attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
