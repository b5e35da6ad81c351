package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kvega/kayfabe/internal/llm"
	"github.com/kvega/kayfabe/internal/quizgen"
)

func testServer(generate func(ctx context.Context, d quizgen.Difficulty, recent []string) (*quizgen.Question, error)) *Server {
	cfg := &Config{
		Addr:            "127.0.0.1:0",
		SessionSecret:   "test-secret",
		ShutdownTimeout: time.Second,
	}
	return New(cfg, zerolog.Nop(), generate)
}

func fixedQuestion() *quizgen.Question {
	return &quizgen.Question{
		Text: "Who eliminated 11 entrants in the 2014 Royal Rumble?",
		Options: []quizgen.Option{
			{Letter: "A", Text: "Roman Reigns"},
			{Letter: "B", Text: "Batista"},
			{Letter: "C", Text: "CM Punk"},
			{Letter: "D", Text: "Seth Rollins"},
		},
		Answer:      "A",
		CorrectFull: "A: Roman Reigns",
		Difficulty:  quizgen.DifficultyHard,
	}
}

func TestQuestionEndpoint(t *testing.T) {
	var gotDifficulty quizgen.Difficulty
	srv := testServer(func(_ context.Context, d quizgen.Difficulty, _ []string) (*quizgen.Question, error) {
		gotDifficulty = d
		return fixedQuestion(), nil
	})

	req := httptest.NewRequest(http.MethodGet, "/question?difficulty=hard", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gotDifficulty != quizgen.DifficultyHard {
		t.Errorf("difficulty = %q, want Hard", gotDifficulty)
	}

	var resp questionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Question == "" || len(resp.Options) != 4 {
		t.Errorf("unexpected payload: %+v", resp)
	}
	if resp.Answer != "A" || resp.CorrectFull != "A: Roman Reigns" {
		t.Errorf("answer fields: %q / %q", resp.Answer, resp.CorrectFull)
	}
	if got := rec.Result().Cookies(); len(got) == 0 {
		t.Error("expected a session cookie on first contact")
	}
}

func TestQuestionEndpointBadDifficulty(t *testing.T) {
	srv := testServer(func(context.Context, quizgen.Difficulty, []string) (*quizgen.Question, error) {
		t.Fatal("generator should not be called")
		return nil, nil
	})

	req := httptest.NewRequest(http.MethodGet, "/question?difficulty=impossible", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestQuestionEndpointProviderFailure(t *testing.T) {
	srv := testServer(func(context.Context, quizgen.Difficulty, []string) (*quizgen.Question, error) {
		return nil, &llm.ErrProviderUnavailable{}
	})

	req := httptest.NewRequest(http.MethodGet, "/question", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestQuestionEndpointParseFailure(t *testing.T) {
	raw := "Sorry, I can't produce JSON today."
	srv := testServer(func(context.Context, quizgen.Difficulty, []string) (*quizgen.Question, error) {
		return nil, &quizgen.ParseError{Raw: raw, Err: context.Canceled}
	})

	req := httptest.NewRequest(http.MethodGet, "/question", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	// Parse failures keep a 200 so the client can render the raw output.
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.RawContent != raw {
		t.Errorf("raw_content = %q, want the model output", resp.RawContent)
	}
}

func TestSessionWindowAcrossRequests(t *testing.T) {
	var windows [][]string
	srv := testServer(func(_ context.Context, _ quizgen.Difficulty, recent []string) (*quizgen.Question, error) {
		cp := make([]string, len(recent))
		copy(cp, recent)
		windows = append(windows, cp)
		return fixedQuestion(), nil
	})
	handler := srv.Handler()

	first := httptest.NewRequest(http.MethodGet, "/question", nil)
	rec1 := httptest.NewRecorder()
	handler.ServeHTTP(rec1, first)

	second := httptest.NewRequest(http.MethodGet, "/question", nil)
	for _, c := range rec1.Result().Cookies() {
		second.AddCookie(c)
	}
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, second)

	if len(windows) != 2 {
		t.Fatalf("generator calls = %d, want 2", len(windows))
	}
	if len(windows[0]) != 0 {
		t.Errorf("first request should see an empty window, got %v", windows[0])
	}
	if len(windows[1]) != 1 || windows[1][0] != fixedQuestion().Text {
		t.Errorf("second request should see the first question, got %v", windows[1])
	}
}

func TestAnswerEndpoint(t *testing.T) {
	srv := testServer(nil)
	handler := srv.Handler()

	cases := []struct {
		name    string
		user    string
		correct string
		want    bool
	}{
		{"exact", "A", "A", true},
		{"case insensitive", "a", "A", true},
		{"whitespace", " b ", "B", true},
		{"wrong", "C", "A", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(answerRequest{
				Question:      "Who?",
				UserAnswer:    tc.user,
				CorrectAnswer: tc.correct,
			})
			req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader(string(body)))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var resp answerResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Correct != tc.want {
				t.Errorf("correct = %v, want %v", resp.Correct, tc.want)
			}
		})
	}
}

func TestAnswerEndpointBadBody(t *testing.T) {
	srv := testServer(nil)
	req := httptest.NewRequest(http.MethodPost, "/answer", strings.NewReader("not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv := testServer(nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %q", rec.Body.String())
	}
}
