package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/lingua/internal/logger"
	"github.com/abhisek/lingua/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with logging
// and transport retry. events and log may be nil.
func NewProvider(ctx context.Context, cfg Config, events store.LLMEventAppender, log *logger.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base, so every attempt is recorded.
	logged := WithLogging(base, cfg.Provider, events, log)
	return WithRetry(logged, cfg.Retry), nil
}
