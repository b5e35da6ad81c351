package dedup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kvega/kayfabe/internal/llm"
	"github.com/kvega/kayfabe/internal/quizgen"
)

// RemoteFilter detects semantic duplicates via a remote vector-index
// service. Same contract and threshold semantics as LocalFilter; only the
// backend differs.
//
// Any remote failure (transport error or non-success status) is fail-open:
// the candidate is treated as unique. Blocking question generation on an
// unreachable vector service would stall the quiz indefinitely.
type RemoteFilter struct {
	embedder llm.Embedder
	baseURL  string
	apiKey   string
	client   *http.Client
	logger   zerolog.Logger
}

var _ quizgen.DuplicateFilter = (*RemoteFilter)(nil)

// NewRemoteFilter creates a RemoteFilter talking to the service at baseURL.
func NewRemoteFilter(embedder llm.Embedder, baseURL, apiKey string, logger zerolog.Logger) *RemoteFilter {
	return &RemoteFilter{
		embedder: embedder,
		baseURL:  baseURL,
		apiKey:   apiKey,
		client:   http.DefaultClient,
		logger:   logger,
	}
}

type queryRequest struct {
	Vector []float32 `json:"vector"`
	TopK   int       `json:"top_k"`
}

type queryResponse struct {
	Results []struct {
		Similarity float64 `json:"similarity"`
	} `json:"results"`
}

type upsertRequest struct {
	Vector   []float32         `json:"vector"`
	Metadata map[string]string `json:"metadata"`
}

// IsDuplicate embeds text and queries the vector service for the nearest
// Window matches.
func (f *RemoteFilter) IsDuplicate(ctx context.Context, text string) (bool, error) {
	vec, err := f.embedder.Embed(llm.WithPurpose(ctx, "dedup-embed"), text)
	if err != nil {
		f.logger.Warn().Err(err).Msg("embedding failed, treating question as unique")
		return false, nil
	}

	var resp queryResponse
	err = f.post(ctx, "/query", queryRequest{Vector: vec, TopK: Window}, &resp)
	if err != nil {
		f.logger.Warn().Err(err).Msg("vector query failed, treating question as unique")
		return false, nil
	}

	for _, r := range resp.Results {
		if r.Similarity >= Threshold {
			return true, nil
		}
	}
	return false, nil
}

// Record stores the question's vector with its metadata. Remote failures
// are logged and swallowed; a missed record only weakens future checks.
func (f *RemoteFilter) Record(ctx context.Context, q *quizgen.Question) error {
	vec, err := f.embedder.Embed(llm.WithPurpose(ctx, "dedup-embed"), q.Text)
	if err != nil {
		f.logger.Warn().Err(err).Msg("embedding failed, skipping record")
		return nil
	}

	options, _ := json.Marshal(q.OptionStrings())
	req := upsertRequest{
		Vector: vec,
		Metadata: map[string]string{
			"question":   q.Text,
			"options":    string(options),
			"answer":     q.Answer,
			"difficulty": string(q.Difficulty),
		},
	}

	if err := f.post(ctx, "/vectors", req, nil); err != nil {
		f.logger.Warn().Err(err).Msg("vector store failed, skipping record")
	}
	return nil
}

// post sends a JSON body to the service and decodes the response into out
// when out is non-nil.
func (f *RemoteFilter) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return nil
}
