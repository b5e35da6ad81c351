package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
func NewProvider(ctx context.Context, cfg Config, logger zerolog.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// NewEmbedder creates an Embedder from configuration.
// Returns (nil, nil) when no embedder is configured; callers treat a nil
// Embedder as "duplicate detection by exact text match only".
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Embedder {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		return NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedder: %q", cfg.Embedder)
	}
}

// NewProviderFromEnv builds a provider from KAYFABE_* env vars, falling back
// to probing the standard provider key variables.
func NewProviderFromEnv(ctx context.Context, logger zerolog.Logger) (Provider, Config, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, Config{}, err
		}
		cfg = discovered
	}

	p, err := NewProvider(ctx, cfg, logger)
	if err != nil {
		return nil, Config{}, err
	}
	return p, cfg, nil
}
