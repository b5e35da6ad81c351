package components

import (
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kvega/kayfabe/internal/ui/theme"
)

// Spinner wraps bubbles/spinner for the question-loading wait.
type Spinner struct {
	model spinner.Model
	Label string
}

// NewSpinner creates a styled loading spinner.
func NewSpinner(label string) Spinner {
	m := spinner.New()
	m.Spinner = spinner.Dot
	m.Style = lipgloss.NewStyle().Foreground(theme.Secondary)
	return Spinner{model: m, Label: label}
}

// Init starts the spinner animation.
func (s Spinner) Init() tea.Cmd {
	return s.model.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.model, cmd = s.model.Update(msg)
	return s, cmd
}

// View renders the spinner with its label.
func (s Spinner) View() string {
	return s.model.View() + " " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.Label)
}
