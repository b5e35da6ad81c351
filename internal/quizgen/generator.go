package quizgen

import (
	"context"
	"fmt"
	"slices"

	"github.com/kvega/kayfabe/internal/llm"
)

// DuplicateFilter rejects semantically repeated questions and records
// accepted ones. Implementations live in internal/dedup.
type DuplicateFilter interface {
	// IsDuplicate reports whether text is semantically too close to a
	// previously recorded question. Implementations fail open: an
	// inability to check is reported as (false, nil).
	IsDuplicate(ctx context.Context, text string) (bool, error)

	// Record persists an accepted question for future duplicate checks.
	Record(ctx context.Context, q *Question) error
}

// Config holds generation tuning knobs.
type Config struct {
	// MaxTokens caps the completion length.
	MaxTokens int

	// Temperature for question generation. The original runs at 1.0 so
	// repeated calls produce varied questions.
	Temperature float64

	// MaxAttempts bounds the duplicate-rejection loop. A rejected
	// question triggers a fresh generation call, never recursion.
	MaxAttempts int
}

// DefaultConfig returns the standard generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 1.0,
		MaxAttempts: 5,
	}
}

// ErrAttemptsExhausted is returned when every generation attempt produced
// a duplicate question.
type ErrAttemptsExhausted struct {
	Attempts int
}

func (e *ErrAttemptsExhausted) Error() string {
	return fmt.Sprintf("no unique question after %d attempts", e.Attempts)
}

// Generator produces normalized quiz questions from an LLM provider,
// rejecting repeats of recently asked questions.
type Generator struct {
	provider llm.Provider
	filter   DuplicateFilter // optional; nil means exact-text checks only
	config   Config
}

// New creates a Generator. filter may be nil, in which case only the
// exact-text recent list suppresses repeats.
func New(provider llm.Provider, filter DuplicateFilter, cfg Config) *Generator {
	return &Generator{provider: provider, filter: filter, config: cfg}
}

// Generate produces one question at the given difficulty.
//
// Provider and parse failures surface immediately — callers display them
// and the attempt halts. Only duplicate rejection (exact match against
// recentTexts, or the semantic filter) re-triggers generation, and that
// loop is capped at MaxAttempts.
func (g *Generator) Generate(ctx context.Context, difficulty Difficulty, recentTexts []string) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: buildSystemPrompt(difficulty),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	for attempt := 0; attempt < g.config.MaxAttempts; attempt++ {
		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("LLM generation failed: %w", err)
		}

		q, err := Normalize(resp.Text, difficulty)
		if err != nil {
			return nil, err
		}

		if slices.Contains(recentTexts, q.Text) {
			continue
		}

		if g.filter != nil {
			dup, err := g.filter.IsDuplicate(ctx, q.Text)
			if err != nil {
				// Filters fail open by contract; a returned error is a
				// programming bug, not a reason to block the quiz.
				dup = false
			}
			if dup {
				continue
			}
			if err := g.filter.Record(ctx, q); err != nil {
				return nil, fmt.Errorf("record question: %w", err)
			}
		}

		return q, nil
	}

	return nil, &ErrAttemptsExhausted{Attempts: g.config.MaxAttempts}
}
