package quiz

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	quizfsm "github.com/kvega/kayfabe/internal/quiz"
	"github.com/kvega/kayfabe/internal/quizgen"
	"github.com/kvega/kayfabe/internal/router"
	"github.com/kvega/kayfabe/internal/screen"
	"github.com/kvega/kayfabe/internal/screens/summary"
	"github.com/kvega/kayfabe/internal/ui/components"
	"github.com/kvega/kayfabe/internal/ui/layout"
)

// QuizScreen runs one quiz session: question, countdown, feedback,
// repeat until ten questions are done.
type QuizScreen struct {
	sess       *quizfsm.Session
	generate   quizfsm.GenerateFunc
	difficulty quizgen.Difficulty

	mc      components.MultiChoice
	spin    components.Spinner
	loading bool

	errMsg   string
	parseRaw string // raw model output shown on parse failure
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates a quiz screen for the chosen difficulty.
func New(generate quizfsm.GenerateFunc, difficulty quizgen.Difficulty) *QuizScreen {
	return &QuizScreen{
		sess:       quizfsm.NewSession(),
		generate:   generate,
		difficulty: difficulty,
		spin:       components.NewSpinner("Cueing up the next question..."),
		loading:    true,
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return tea.Batch(q.startCmd(), q.spin.Init())
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

// Stats feeds the header's score and question counters.
func (q *QuizScreen) Stats() (int, int) {
	return q.sess.Score, q.sess.Index
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch {
	case q.errMsg != "" || q.parseRaw != "":
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	case q.loading:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Quit quiz"},
		}
	case q.sess.Phase == quizfsm.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next question"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Lock in"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	}
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return q.handleQuestionReady(msg)

	case quizDoneMsg:
		generate := q.generate
		difficulty := q.difficulty
		restart := func() tea.Cmd {
			return func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: New(generate, difficulty)}
			}
		}
		return q, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(q.sess.Score, quizfsm.MaxQuestions, restart),
			}
		}

	case timerTickMsg:
		return q.handleTimerTick()

	case tea.KeyMsg:
		return q.handleKey(msg)
	}

	if q.loading {
		var cmd tea.Cmd
		q.spin, cmd = q.spin.Update(msg)
		return q, cmd
	}

	return q, nil
}

func (q *QuizScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	q.loading = false

	if msg.Err != nil {
		var parseErr *quizgen.ParseError
		if errors.As(msg.Err, &parseErr) {
			q.parseRaw = parseErr.Raw
		}
		q.errMsg = msg.Err.Error()
		return q, nil
	}

	cur := q.sess.Current
	q.mc = components.NewMultiChoice(cur.Text, cur.OptionStrings(), letterIndex(cur.Answer))
	return q, tickCmd()
}

func (q *QuizScreen) handleTimerTick() (screen.Screen, tea.Cmd) {
	if q.loading || q.sess.Phase != quizfsm.PhaseInProgress {
		return q, nil
	}

	if q.sess.Remaining() <= 0 {
		q.sess.Expire()
		q.mc.RevealUnanswered()
		return q, nil
	}

	return q, tickCmd()
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key goes back home.
	if q.errMsg != "" {
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if q.loading {
		if key == "esc" {
			return q, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return q, nil
	}

	// Feedback shown: any key advances.
	if q.sess.Phase == quizfsm.PhaseAnswered {
		q.loading = true
		return q, tea.Batch(q.advanceCmd(), q.spin.Init())
	}

	if q.sess.Phase != quizfsm.PhaseInProgress {
		return q, nil
	}

	switch key {
	case "esc":
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return q.lockIn()
	case "a", "b", "c", "d":
		idx := letterIndex(key)
		if idx < len(q.sess.Current.Options) {
			q.mc.Selected = idx
			return q.lockIn()
		}
		return q, nil
	}

	var cmd tea.Cmd
	q.mc, cmd = q.mc.Update(msg)
	return q, cmd
}

// lockIn submits the highlighted option to the session.
func (q *QuizScreen) lockIn() (screen.Screen, tea.Cmd) {
	letter := q.sess.Current.Options[q.mc.Selected].Letter
	if _, err := q.sess.Submit(letter); err != nil {
		if errors.Is(err, quizfsm.ErrTimeExpired) {
			q.mc.RevealUnanswered()
		}
		return q, nil
	}
	q.mc.Choose()
	return q, nil
}

// startCmd generates question 1 off the Update loop.
func (q *QuizScreen) startCmd() tea.Cmd {
	sess := q.sess
	difficulty := q.difficulty
	generate := q.generate
	return func() tea.Msg {
		err := sess.Start(context.Background(), difficulty, generate)
		return questionReadyMsg{Err: err}
	}
}

// advanceCmd moves to the next question, or finishes after the last one.
func (q *QuizScreen) advanceCmd() tea.Cmd {
	sess := q.sess
	generate := q.generate
	return func() tea.Msg {
		if err := sess.Advance(context.Background(), generate); err != nil {
			return questionReadyMsg{Err: err}
		}
		if sess.Phase == quizfsm.PhaseFinished {
			return quizDoneMsg{}
		}
		return questionReadyMsg{}
	}
}

// letterIndex maps an option letter to its position.
func letterIndex(letter string) int {
	switch letter {
	case "A", "a":
		return 0
	case "B", "b":
		return 1
	case "C", "c":
		return 2
	default:
		return 3
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
