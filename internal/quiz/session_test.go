package quiz

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/kvega/kayfabe/internal/quizgen"
)

func testQuestion(n int) *quizgen.Question {
	return &quizgen.Question{
		Text: fmt.Sprintf("Question %d?", n),
		Options: []quizgen.Option{
			{Letter: "A", Text: "Undertaker"},
			{Letter: "B", Text: "Kane"},
			{Letter: "C", Text: "Edge"},
			{Letter: "D", Text: "Rey Mysterio"},
		},
		Answer:      "C",
		CorrectFull: "C: Edge",
		Difficulty:  quizgen.DifficultyMedium,
	}
}

// countingGen returns numbered questions and records how many times and
// with what recent windows it was called.
type countingGen struct {
	calls  int
	recent [][]string
	err    error
}

func (g *countingGen) generate(_ context.Context, _ quizgen.Difficulty, recent []string) (*quizgen.Question, error) {
	g.calls++
	g.recent = append(g.recent, recent)
	if g.err != nil {
		return nil, g.err
	}
	return testQuestion(g.calls), nil
}

func startedSession(t *testing.T, gen *countingGen) *Session {
	t.Helper()
	s := NewSession()
	now := time.Date(2026, 4, 5, 20, 0, 0, 0, time.UTC)
	s.Now = func() time.Time { return now }
	if err := s.Start(context.Background(), quizgen.DifficultyMedium, gen.generate); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func TestSessionStart(t *testing.T) {
	gen := &countingGen{}
	s := startedSession(t, gen)

	if s.Phase != PhaseInProgress {
		t.Fatalf("Phase = %v, want InProgress", s.Phase)
	}
	if s.Index != 1 {
		t.Errorf("Index = %d, want 1", s.Index)
	}
	if s.Current == nil {
		t.Fatal("Current is nil")
	}
	if got := s.Deadline.Sub(s.Now()); got != AnswerTime {
		t.Errorf("countdown = %v, want %v", got, AnswerTime)
	}
	if err := s.Start(context.Background(), quizgen.DifficultyEasy, gen.generate); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second Start: %v, want ErrWrongPhase", err)
	}
}

func TestSessionStartGenerateFailure(t *testing.T) {
	gen := &countingGen{err: errors.New("provider down")}
	s := NewSession()
	err := s.Start(context.Background(), quizgen.DifficultyEasy, gen.generate)
	if err == nil {
		t.Fatal("expected error")
	}
	if s.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want NotStarted after failed start", s.Phase)
	}
}

func TestSubmitCorrect(t *testing.T) {
	s := startedSession(t, &countingGen{})

	correct, err := s.Submit("c")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !correct {
		t.Error("lowercase letter of the right option should score")
	}
	if s.Score != 1 {
		t.Errorf("Score = %d, want 1", s.Score)
	}
	if s.Phase != PhaseAnswered {
		t.Errorf("Phase = %v, want Answered", s.Phase)
	}
	if s.TimedOut {
		t.Error("TimedOut should be false on explicit submission")
	}
}

func TestSubmitWrong(t *testing.T) {
	s := startedSession(t, &countingGen{})

	correct, err := s.Submit("A")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if correct || s.Score != 0 {
		t.Errorf("wrong answer scored: correct=%v score=%d", correct, s.Score)
	}
	if s.Phase != PhaseAnswered {
		t.Errorf("Phase = %v, want Answered", s.Phase)
	}
}

func TestSubmitEmptySelection(t *testing.T) {
	s := startedSession(t, &countingGen{})

	if _, err := s.Submit("  "); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("Submit blank: %v, want ErrNoSelection", err)
	}
	if s.Phase != PhaseInProgress {
		t.Errorf("Phase = %v, rejection must not change state", s.Phase)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, want 0", s.Score)
	}
}

func TestSubmitAfterDeadline(t *testing.T) {
	s := startedSession(t, &countingGen{})
	deadline := s.Deadline
	s.Now = func() time.Time { return deadline }

	if _, err := s.Submit("C"); !errors.Is(err, ErrTimeExpired) {
		t.Fatalf("Submit at deadline: %v, want ErrTimeExpired", err)
	}
	if s.Phase != PhaseAnswered {
		t.Errorf("Phase = %v, want Answered", s.Phase)
	}
	if !s.TimedOut {
		t.Error("TimedOut should be set")
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, timeout must not score", s.Score)
	}
}

func TestExpire(t *testing.T) {
	s := startedSession(t, &countingGen{})

	// Before the deadline, Expire is a no-op.
	s.Expire()
	if s.Phase != PhaseInProgress {
		t.Fatalf("Phase = %v, premature expiry", s.Phase)
	}

	after := s.Deadline.Add(time.Second)
	s.Now = func() time.Time { return after }
	s.Expire()
	if s.Phase != PhaseAnswered || !s.TimedOut {
		t.Errorf("Phase = %v TimedOut = %v, want Answered/true", s.Phase, s.TimedOut)
	}
	if s.Score != 0 {
		t.Errorf("Score = %d, want 0", s.Score)
	}

	// Idempotent once resolved.
	s.Expire()
	if s.Phase != PhaseAnswered {
		t.Errorf("Phase = %v after double expire", s.Phase)
	}
}

func TestAdvanceGeneratesNext(t *testing.T) {
	gen := &countingGen{}
	s := startedSession(t, gen)

	first := s.Current.Text
	if _, err := s.Submit("C"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := s.Advance(context.Background(), gen.generate); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	if s.Index != 2 {
		t.Errorf("Index = %d, want 2", s.Index)
	}
	if s.Phase != PhaseInProgress {
		t.Errorf("Phase = %v, want InProgress", s.Phase)
	}
	if !s.Recent.Contains(first) {
		t.Error("answered question text missing from recent window")
	}
	// The second generation call must see the first question's text.
	last := gen.recent[len(gen.recent)-1]
	found := false
	for _, txt := range last {
		if txt == first {
			found = true
		}
	}
	if !found {
		t.Error("generator not given the recent window on advance")
	}
}

func TestFinalQuestionFinishesWithoutGeneration(t *testing.T) {
	gen := &countingGen{}
	s := startedSession(t, gen)

	for i := 1; i <= MaxQuestions; i++ {
		if _, err := s.Submit(s.Current.Answer); err != nil {
			t.Fatalf("Submit q%d: %v", i, err)
		}
		if err := s.Advance(context.Background(), gen.generate); err != nil {
			t.Fatalf("Advance q%d: %v", i, err)
		}
	}

	if s.Phase != PhaseFinished {
		t.Fatalf("Phase = %v, want Finished", s.Phase)
	}
	if s.Score != MaxQuestions {
		t.Errorf("Score = %d, want %d", s.Score, MaxQuestions)
	}
	// One call for Start plus one per advance except the last.
	if gen.calls != MaxQuestions {
		t.Errorf("generator calls = %d, want %d (none after the final answer)", gen.calls, MaxQuestions)
	}
	if s.Current != nil {
		t.Error("Current should be cleared on finish")
	}
}

func TestAdvanceWrongPhase(t *testing.T) {
	gen := &countingGen{}
	s := startedSession(t, gen)
	if err := s.Advance(context.Background(), gen.generate); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("Advance while InProgress: %v, want ErrWrongPhase", err)
	}
}

func TestReset(t *testing.T) {
	gen := &countingGen{}
	s := startedSession(t, gen)
	if _, err := s.Submit("C"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	s.Reset()
	if s.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want NotStarted", s.Phase)
	}
	if s.Score != 0 || s.Index != 0 || s.Current != nil {
		t.Errorf("state not cleared: score=%d index=%d", s.Score, s.Index)
	}
	if s.Recent.Len() != 0 {
		t.Error("recent window should be emptied")
	}
}

func TestRemaining(t *testing.T) {
	s := startedSession(t, &countingGen{})
	if got := s.Remaining(); got != AnswerTime {
		t.Errorf("Remaining = %v, want %v", got, AnswerTime)
	}
	after := s.Deadline.Add(time.Second)
	s.Now = func() time.Time { return after }
	if got := s.Remaining(); got != 0 {
		t.Errorf("Remaining past deadline = %v, want 0", got)
	}
}
