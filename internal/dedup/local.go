package dedup

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kvega/kayfabe/internal/llm"
	"github.com/kvega/kayfabe/internal/quizgen"
	"github.com/kvega/kayfabe/internal/store"
)

// LocalFilter detects semantic duplicates against a local SQLite table of
// question embeddings. It implements quizgen.DuplicateFilter.
//
// Embedding failures are fail-open: an unverifiable candidate is treated
// as unique so a flaky embedding provider never blocks the quiz.
type LocalFilter struct {
	embedder llm.Embedder
	repo     store.QuestionRepo
	logger   zerolog.Logger

	// Cache of the last embedded text so Record reuses the vector
	// computed by IsDuplicate for the same candidate.
	mu       sync.Mutex
	lastText string
	lastVec  []float32
}

var _ quizgen.DuplicateFilter = (*LocalFilter)(nil)

// NewLocalFilter creates a LocalFilter over the given embedder and repo.
func NewLocalFilter(embedder llm.Embedder, repo store.QuestionRepo, logger zerolog.Logger) *LocalFilter {
	return &LocalFilter{embedder: embedder, repo: repo, logger: logger}
}

// IsDuplicate embeds text and scans the newest-Window stored embeddings
// for a cosine similarity at or above Threshold. With no embedder
// configured, every candidate is unique; exact-text repeats are still
// caught upstream by the recent-texts window.
func (f *LocalFilter) IsDuplicate(ctx context.Context, text string) (bool, error) {
	if f.embedder == nil {
		return false, nil
	}

	vec, err := f.embed(ctx, text)
	if err != nil {
		f.logger.Warn().Err(err).Msg("embedding failed, treating question as unique")
		return false, nil
	}

	recent, err := f.repo.RecentEmbeddings(ctx, Window)
	if err != nil {
		f.logger.Warn().Err(err).Msg("embedding scan failed, treating question as unique")
		return false, nil
	}

	for _, other := range recent {
		if Cosine(vec, other) >= Threshold {
			return true, nil
		}
	}
	return false, nil
}

// Record persists the question-embedding pair. A uniqueness conflict on
// the question text is absorbed by the repo.
func (f *LocalFilter) Record(ctx context.Context, q *quizgen.Question) error {
	var vec []float32
	if f.embedder != nil {
		var err error
		vec, err = f.embed(ctx, q.Text)
		if err != nil {
			f.logger.Warn().Err(err).Msg("embedding failed, recording without vector")
			vec = nil
		}
	}

	return f.repo.Insert(ctx, store.StoredQuestion{
		Question:   q.Text,
		Options:    q.OptionStrings(),
		Answer:     q.Answer,
		Difficulty: string(q.Difficulty),
		Embedding:  vec,
	})
}

// embed computes the embedding for text, reusing the previous result when
// the same text was just checked.
func (f *LocalFilter) embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	if f.lastText == text && f.lastVec != nil {
		vec := f.lastVec
		f.mu.Unlock()
		return vec, nil
	}
	f.mu.Unlock()

	vec, err := f.embedder.Embed(llm.WithPurpose(ctx, "dedup-embed"), text)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.lastText = text
	f.lastVec = vec
	f.mu.Unlock()
	return vec, nil
}
