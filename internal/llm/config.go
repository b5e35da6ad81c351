package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "openai", "anthropic", "gemini", "mock"
	Provider string

	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Gemini    GeminiConfig
	Retry     RetryConfig

	// Embedder selects which provider computes embeddings for duplicate
	// detection. Values: "openai", "gemini", "". Empty disables embeddings;
	// the KAYFABE_EMBEDDER env var also accepts "none" for the same effect.
	Embedder string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey         string
	Model          string // Default: "gpt-4o-mini"
	EmbeddingModel string // Default: "text-embedding-3-small"
	BaseURL        string // Optional. Override for OpenRouter or compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey         string
	Model          string // Default: "gemini-flash"
	EmbeddingModel string // Default: "gemini-embedding-001"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// defaultEmbedderFor returns the embedder that ships with a provider's
// credentials. Anthropic has no embedding endpoint, so selecting it
// leaves embeddings off unless KAYFABE_EMBEDDER points elsewhere.
func defaultEmbedderFor(provider string) string {
	switch provider {
	case "openai":
		return "openai"
	case "gemini":
		return "gemini"
	default:
		return ""
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		Embedder: "openai",
		OpenAI: OpenAIConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model:          "gemini-flash",
			EmbeddingModel: "gemini-embedding-001",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("KAYFABE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	cfg.Embedder = defaultEmbedderFor(cfg.Provider)

	// LookupEnv so a set-but-empty value disables embeddings instead of
	// silently keeping the provider default.
	if e, ok := os.LookupEnv("KAYFABE_EMBEDDER"); ok {
		if e == "none" {
			e = ""
		}
		cfg.Embedder = e
	}

	if k := os.Getenv("KAYFABE_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("KAYFABE_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if m := os.Getenv("KAYFABE_OPENAI_EMBEDDING_MODEL"); m != "" {
		cfg.OpenAI.EmbeddingModel = m
	}
	if u := os.Getenv("KAYFABE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("KAYFABE_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("KAYFABE_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("KAYFABE_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("KAYFABE_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	return cfg
}

// DiscoverConfig probes standard API key env vars in priority order
// (OpenAI → Anthropic → Gemini) and returns a Config for the first
// provider whose key is found. Returns (Config{}, false) if none found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		cfg.Embedder = ""
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		cfg.Embedder = "gemini"
		return cfg, true
	}

	return Config{}, false
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("KAYFABE_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("KAYFABE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("KAYFABE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}

	switch c.Embedder {
	case "", "mock":
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("KAYFABE_OPENAI_API_KEY is required for the openai embedder")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("KAYFABE_GEMINI_API_KEY is required for the gemini embedder")
		}
	default:
		return fmt.Errorf("unknown embedder: %q", c.Embedder)
	}
	return nil
}
