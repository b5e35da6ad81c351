package quiz

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kvega/kayfabe/internal/quizgen"
)

const (
	// MaxQuestions is the quiz length.
	MaxQuestions = 10

	// AnswerTime is the per-question countdown. This is an application
	// timer on the quiz itself, unrelated to network I/O timeouts.
	AnswerTime = 20 * time.Second
)

// Phase is the session's position in the quiz state machine.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseAnswered
	PhaseFinished
)

var (
	// ErrNoSelection rejects a submission with no option chosen; the
	// session state is unchanged.
	ErrNoSelection = errors.New("no option selected")

	// ErrTimeExpired reports a submission arriving after the countdown
	// reached zero; the question counts as unanswered.
	ErrTimeExpired = errors.New("time expired before submission")

	// ErrWrongPhase rejects an action invalid in the current phase.
	ErrWrongPhase = errors.New("action not valid in current phase")
)

// GenerateFunc requests a new question. Implemented by
// quizgen.Generator.Generate; injected so the state machine stays free of
// provider wiring.
type GenerateFunc func(ctx context.Context, difficulty quizgen.Difficulty, recentTexts []string) (*quizgen.Question, error)

// Session holds all per-session mutable quiz state. There are no ambient
// globals: a server deployment keys Sessions by ID, the TUI owns one.
type Session struct {
	ID         string
	Phase      Phase
	Difficulty quizgen.Difficulty

	Score   int               // correct explicit submissions so far
	Index   int               // 1-based number of the current question
	Current *quizgen.Question // nil outside InProgress/Answered

	LastCorrect bool // result of the last submission
	TimedOut    bool // true when the countdown revealed the answer

	Deadline time.Time
	Recent   *RecentWindow

	// Now is the clock; defaults to time.Now. Overridden in tests.
	Now func() time.Time
}

// NewSession creates a session in NotStarted.
func NewSession() *Session {
	return &Session{
		ID:     uuid.New().String(),
		Phase:  PhaseNotStarted,
		Recent: NewRecentWindow(),
		Now:    time.Now,
	}
}

// Start selects a difficulty, generates question 1, and begins the
// countdown. Valid only from NotStarted.
func (s *Session) Start(ctx context.Context, difficulty quizgen.Difficulty, generate GenerateFunc) error {
	if s.Phase != PhaseNotStarted {
		return ErrWrongPhase
	}

	q, err := generate(ctx, difficulty, s.Recent.Items())
	if err != nil {
		return err
	}

	s.Difficulty = difficulty
	s.Current = q
	s.Index = 1
	s.Score = 0
	s.Phase = PhaseInProgress
	s.beginCountdown()
	return nil
}

// Submit records the user's chosen letter. Only a correct explicit
// submission made before the deadline increments the score. An empty
// selection is rejected without a state change. A submission after the
// deadline resolves the question as timed out.
func (s *Session) Submit(letter string) (bool, error) {
	if s.Phase != PhaseInProgress {
		return false, ErrWrongPhase
	}
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		return false, ErrNoSelection
	}

	if !s.Now().Before(s.Deadline) {
		s.resolveTimeout()
		return false, ErrTimeExpired
	}

	s.Phase = PhaseAnswered
	s.TimedOut = false
	s.LastCorrect = letter == s.Current.Answer
	if s.LastCorrect {
		s.Score++
	}
	return s.LastCorrect, nil
}

// Expire resolves the countdown reaching zero: the question is revealed
// as unanswered and wrong. No effect unless InProgress with the deadline
// passed; expiry while already Answered is idempotent.
func (s *Session) Expire() {
	if s.Phase != PhaseInProgress {
		return
	}
	if s.Now().Before(s.Deadline) {
		return
	}
	s.resolveTimeout()
}

// Advance moves past an answered question: the text enters the recent
// window, and either the next question is generated with a fresh
// countdown, or — after question MaxQuestions — the session finishes with
// no further generation.
func (s *Session) Advance(ctx context.Context, generate GenerateFunc) error {
	if s.Phase != PhaseAnswered {
		return ErrWrongPhase
	}

	s.Recent.Add(s.Current.Text)

	if s.Index >= MaxQuestions {
		s.Phase = PhaseFinished
		s.Current = nil
		s.Deadline = time.Time{}
		return nil
	}

	q, err := generate(ctx, s.Difficulty, s.Recent.Items())
	if err != nil {
		return err
	}

	s.Current = q
	s.Index++
	s.Phase = PhaseInProgress
	s.beginCountdown()
	return nil
}

// Reset returns the session to NotStarted from any phase, clearing score,
// index, question, timer, and the recent window.
func (s *Session) Reset() {
	s.Phase = PhaseNotStarted
	s.Score = 0
	s.Index = 0
	s.Current = nil
	s.LastCorrect = false
	s.TimedOut = false
	s.Deadline = time.Time{}
	s.Recent = NewRecentWindow()
}

// Remaining returns the time left on the countdown, floored at zero.
func (s *Session) Remaining() time.Duration {
	if s.Phase != PhaseInProgress {
		return 0
	}
	r := s.Deadline.Sub(s.Now())
	if r < 0 {
		return 0
	}
	return r
}

func (s *Session) beginCountdown() {
	s.Deadline = s.Now().Add(AnswerTime)
}

func (s *Session) resolveTimeout() {
	s.Phase = PhaseAnswered
	s.TimedOut = true
	s.LastCorrect = false
}
