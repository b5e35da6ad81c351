package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	quizfsm "github.com/kvega/kayfabe/internal/quiz"
	"github.com/kvega/kayfabe/internal/ui/components"
	"github.com/kvega/kayfabe/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	if q.errMsg != "" {
		return q.renderError(width, height)
	}
	if q.loading {
		return lipgloss.NewStyle().
			Width(width).
			Height(height).
			Align(lipgloss.Center).
			AlignVertical(lipgloss.Center).
			Render(q.spin.View())
	}
	return q.renderQuestion(width, height)
}

func (q *QuizScreen) renderError(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Incorrect.Render("Couldn't get a question"))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(q.errMsg))

	if q.parseRaw != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("The model said:"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(min(width-12, 70)).
			Render(q.parseRaw))
	}

	card := theme.Card.Render(b.String())
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(card)
}

func (q *QuizScreen) renderQuestion(width, height int) string {
	sess := q.sess
	contentWidth := min(width-8, 76)

	var b strings.Builder

	// Countdown, only while the clock matters.
	if sess.Phase == quizfsm.PhaseInProgress {
		remaining := sess.Remaining()
		frac := float64(remaining) / float64(quizfsm.AnswerTime)
		bar := components.NewCountdownBar(frac, int(remaining.Seconds()), contentWidth)
		b.WriteString(bar.View())
		b.WriteString("\n\n")
	}

	b.WriteString(q.mc.View())

	// Feedback after the reveal.
	if sess.Phase == quizfsm.PhaseAnswered {
		b.WriteString("\n")
		switch {
		case sess.TimedOut:
			b.WriteString(theme.Incorrect.Render("Time's up!"))
		case sess.LastCorrect:
			b.WriteString(theme.Correct.Render("Correct!"))
		default:
			b.WriteString(theme.Incorrect.Render("Wrong!"))
		}
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(
			fmt.Sprintf("The answer was %s", sess.Current.CorrectFull)))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Score: %d", sess.Score)))

	card := theme.Card.Width(contentWidth).Render(b.String())
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center).
		Render(card)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
