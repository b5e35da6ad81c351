package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kvega/kayfabe/internal/dedup"
	"github.com/kvega/kayfabe/internal/llm"
	"github.com/kvega/kayfabe/internal/quizgen"
	"github.com/kvega/kayfabe/internal/store"
)

// deps bundles everything a command needs to generate questions.
type deps struct {
	store     *store.Store
	generator *quizgen.Generator
	logger    zerolog.Logger
}

func (d *deps) Close() {
	if d.store != nil {
		_ = d.store.Close()
	}
}

// newLogger builds the CLI logger. TUI commands log to a file so log
// lines don't tear the alternate screen; everything else uses stderr.
func newLogger(toFile bool) zerolog.Logger {
	out := os.Stderr
	if toFile {
		f, err := os.OpenFile(logFilePath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = f
		}
	}
	w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	return zerolog.New(w).With().Timestamp().Logger()
}

func logFilePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		_ = os.MkdirAll(dir+"/kayfabe", 0o755)
		return dir + "/kayfabe/kayfabe.log"
	}
	return "kayfabe.log"
}

// buildDeps opens the store and wires provider, duplicate filter, and
// generator from the environment.
func buildDeps(cmd *cobra.Command, logger zerolog.Logger) (*deps, error) {
	ctx := cmd.Context()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, cfg, err := llm.NewProviderFromEnv(ctx, logger)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	embedder, err := llm.NewEmbedder(ctx, cfg)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("configure embedder: %w", err)
	}

	filter := buildFilter(embedder, st, logger)
	gen := quizgen.New(provider, filter, quizgen.DefaultConfig())

	return &deps{store: st, generator: gen, logger: logger}, nil
}

// buildFilter prefers a remote vector service when one is configured,
// otherwise checks duplicates against the local store.
func buildFilter(embedder llm.Embedder, st *store.Store, logger zerolog.Logger) quizgen.DuplicateFilter {
	if url := os.Getenv("KAYFABE_DEDUP_URL"); url != "" && embedder != nil {
		return dedup.NewRemoteFilter(embedder, url, os.Getenv("KAYFABE_DEDUP_API_KEY"), logger)
	}
	return dedup.NewLocalFilter(embedder, st.Questions(), logger)
}
