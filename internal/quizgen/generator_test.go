package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/kvega/kayfabe/internal/llm"
)

func mcqJSON(question string) string {
	return fmt.Sprintf(
		`{"question":%q,"options":["A: one","B: two","C: three","D: four"],"answer":"A"}`,
		question,
	)
}

// fakeFilter is a scripted DuplicateFilter for generator tests.
type fakeFilter struct {
	duplicates map[string]bool
	recorded   []string
	recordErr  error
}

func (f *fakeFilter) IsDuplicate(_ context.Context, text string) (bool, error) {
	return f.duplicates[text], nil
}

func (f *fakeFilter) Record(_ context.Context, q *Question) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.recorded = append(f.recorded, q.Text)
	return nil
}

func TestGenerator_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: mcqJSON("Who formed the nWo?")})
	g := New(mock, nil, DefaultConfig())

	q, err := g.Generate(context.Background(), DifficultyHard, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Who formed the nWo?" {
		t.Fatalf("unexpected question: %q", q.Text)
	}
	if q.Difficulty != DifficultyHard {
		t.Fatalf("expected Hard difficulty, got %q", q.Difficulty)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 provider call, got %d", mock.CallCount())
	}

	// Difficulty must be interpolated into the system prompt.
	req := mock.Calls[0]
	if want := "Difficulty level: Hard."; !strings.Contains(req.System, want) {
		t.Fatalf("system prompt missing %q:\n%s", want, req.System)
	}
	if req.Temperature != 1.0 {
		t.Fatalf("expected temperature 1.0, got %v", req.Temperature)
	}
}

func TestGenerator_ProviderFailureSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{Err: errors.New("quota exceeded")},
	})
	g := New(mock, nil, DefaultConfig())

	_, err := g.Generate(context.Background(), DifficultyMedium, nil)
	var unavail *llm.ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("provider failures must not be retried here, got %d calls", mock.CallCount())
	}
}

func TestGenerator_ParseFailureSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: "no json here"},
		llm.MockResponse{Text: mcqJSON("never requested")},
	)
	g := New(mock, nil, DefaultConfig())

	_, err := g.Generate(context.Background(), DifficultyMedium, nil)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %T (%v)", err, err)
	}
	if pe.Raw != "no json here" {
		t.Fatalf("raw text not preserved: %q", pe.Raw)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("parse failures must not be retried, got %d calls", mock.CallCount())
	}
}

func TestGenerator_RejectsExactRecentText(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: mcqJSON("Who betrayed The Shield in 2014?")},
		llm.MockResponse{Text: mcqJSON("Who won at WrestleMania 30?")},
	)
	g := New(mock, nil, DefaultConfig())

	recent := []string{"Who betrayed The Shield in 2014?"}
	q, err := g.Generate(context.Background(), DifficultyMedium, recent)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Who won at WrestleMania 30?" {
		t.Fatalf("expected the second question, got %q", q.Text)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 provider calls, got %d", mock.CallCount())
	}
}

func TestGenerator_SemanticDuplicateRetriggers(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Text: mcqJSON("Who ended the streak?")},
		llm.MockResponse{Text: mcqJSON("Who cashed in at WrestleMania 31?")},
	)
	filter := &fakeFilter{duplicates: map[string]bool{"Who ended the streak?": true}}
	g := New(mock, filter, DefaultConfig())

	q, err := g.Generate(context.Background(), DifficultyMedium, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Who cashed in at WrestleMania 31?" {
		t.Fatalf("expected the second question, got %q", q.Text)
	}
	if len(filter.recorded) != 1 || filter.recorded[0] != q.Text {
		t.Fatalf("accepted question not recorded: %v", filter.recorded)
	}
}

func TestGenerator_AttemptsBounded(t *testing.T) {
	cfg := DefaultConfig()
	mock := llm.NewMockProvider()
	for range cfg.MaxAttempts + 2 {
		mock.AddResponse(llm.MockResponse{Text: mcqJSON("Same question every time")})
	}
	filter := &fakeFilter{duplicates: map[string]bool{"Same question every time": true}}
	g := New(mock, filter, cfg)

	_, err := g.Generate(context.Background(), DifficultyMedium, nil)
	var exhausted *ErrAttemptsExhausted
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected ErrAttemptsExhausted, got %T (%v)", err, err)
	}
	if mock.CallCount() != cfg.MaxAttempts {
		t.Fatalf("expected exactly %d calls, got %d", cfg.MaxAttempts, mock.CallCount())
	}
}
