package llm

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// LoggingProvider is a decorator that records every LLM request as a
// structured log event.
type LoggingProvider struct {
	inner  Provider
	logger zerolog.Logger
}

// WithLogging wraps a Provider with structured request logging.
func WithLogging(p Provider, logger zerolog.Logger) Provider {
	return &LoggingProvider{inner: p, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	evt := l.logger.Info()
	if err != nil {
		evt = l.logger.Error().Err(err)
	}
	evt = evt.
		Str("model", l.inner.ModelID()).
		Str("purpose", PurposeFrom(ctx)).
		Dur("latency", time.Since(start))

	if resp != nil {
		evt = evt.
			Int("input_tokens", resp.Usage.InputTokens).
			Int("output_tokens", resp.Usage.OutputTokens).
			Str("stop_reason", resp.StopReason)
	}

	evt.Msg("llm request")

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
