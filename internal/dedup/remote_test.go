package dedup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvega/kayfabe/internal/llm"
)

func newRemoteFixture(t *testing.T, handler http.HandlerFunc) (*RemoteFilter, *llm.MockEmbedder) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	embedder := llm.NewMockEmbedder()
	embedder.ZeroVector = []float32{0.5, 0.5}
	return NewRemoteFilter(embedder, server.URL, "test-key", zerolog.Nop()), embedder
}

func TestRemoteFilter_QueryAboveThreshold(t *testing.T) {
	f, _ := newRemoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req queryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, Window, req.TopK)

		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"similarity": 0.95},
				{"similarity": 0.42},
			},
		})
	})

	dup, err := f.IsDuplicate(context.Background(), "some question")
	require.NoError(t, err)
	assert.True(t, dup)
}

func TestRemoteFilter_QueryBelowThreshold(t *testing.T) {
	f, _ := newRemoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{{"similarity": 0.3}},
		})
	})

	dup, err := f.IsDuplicate(context.Background(), "some question")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestRemoteFilter_ServiceErrorFailsOpen(t *testing.T) {
	f, _ := newRemoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index rebuilding", http.StatusServiceUnavailable)
	})

	dup, err := f.IsDuplicate(context.Background(), "some question")
	require.NoError(t, err, "remote failure must not surface")
	assert.False(t, dup, "fail-open: unverifiable question is unique")
}

func TestRemoteFilter_UnreachableServiceFailsOpen(t *testing.T) {
	embedder := llm.NewMockEmbedder()
	embedder.ZeroVector = []float32{1, 0}
	f := NewRemoteFilter(embedder, "http://127.0.0.1:1", "", zerolog.Nop())

	dup, err := f.IsDuplicate(context.Background(), "some question")
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestRemoteFilter_RecordSendsMetadata(t *testing.T) {
	var got upsertRequest
	f, _ := newRemoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	})

	q := testQuestion("Who ended the streak?")
	require.NoError(t, f.Record(context.Background(), q))

	assert.Equal(t, "Who ended the streak?", got.Metadata["question"])
	assert.Equal(t, "A", got.Metadata["answer"])
	assert.Equal(t, "Medium", got.Metadata["difficulty"])
	assert.NotEmpty(t, got.Vector)
}

func TestRemoteFilter_RecordFailureSwallowed(t *testing.T) {
	f, _ := newRemoteFixture(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	err := f.Record(context.Background(), testQuestion("q"))
	assert.NoError(t, err, "a missed record only weakens future checks")
}
