package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kvega/kayfabe/internal/ui/theme"
)

// MultiChoice is a lettered multiple-choice selector. Options arrive
// already lettered ("A: Hulk Hogan"), so it renders them as-is.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Revealed     bool
	ChosenIndex  int // -1 when the question was revealed unanswered
}

// NewMultiChoice creates a selector for a question's options.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     0,
		ChosenIndex:  -1,
	}
}

// Update handles keyboard navigation. Selection locks once revealed.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	}

	return m, nil
}

// Choose locks in the current selection and reveals the answer.
func (m *MultiChoice) Choose() {
	m.Revealed = true
	m.ChosenIndex = m.Selected
}

// RevealUnanswered reveals the answer with no choice made, as when the
// countdown expires.
func (m *MultiChoice) RevealUnanswered() {
	m.Revealed = true
	m.ChosenIndex = -1
}

// IsCorrect reports whether the locked-in choice was the right one.
func (m MultiChoice) IsCorrect() bool {
	return m.Revealed && m.ChosenIndex == m.CorrectIndex
}

// View renders the question and its options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Revealed {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s", prefix, opt)

		switch {
		case m.Revealed && i == m.CorrectIndex:
			s += theme.Correct.Render(line) + "\n"
		case m.Revealed && i == m.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Revealed:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}
