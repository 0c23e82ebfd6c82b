package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterModels maps friendly names to OpenRouter model slugs.
var openRouterModels = map[string]string{
	"gemini-flash": "google/gemini-2.5-flash",
	"gpt-4o-mini":  "openai/gpt-4o-mini",
	"claude-haiku": "anthropic/claude-haiku-4.5",
}

// OpenRouterProvider targets OpenRouter's OpenAI-compatible API.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider for the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner := newOpenAICompatible(cfg.APIKey, baseURL, cfg.Model, openRouterModels)
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
