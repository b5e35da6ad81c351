package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kvega/kayfabe/internal/router"
	"github.com/kvega/kayfabe/internal/screen"
	"github.com/kvega/kayfabe/internal/ui/components"
	"github.com/kvega/kayfabe/internal/ui/layout"
	"github.com/kvega/kayfabe/internal/ui/theme"
)

// SummaryScreen shows the final score and offers a rematch.
type SummaryScreen struct {
	score int
	total int
	menu  components.Menu
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary screen. restart rebuilds a fresh quiz at the
// same difficulty; it is a callback to keep this package free of a
// dependency on the quiz screen.
func New(score, total int, restart func() tea.Cmd) *SummaryScreen {
	items := []components.MenuItem{
		{Label: "RUN IT BACK", Action: restart},
		{Label: "HOME", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	}
	return &SummaryScreen{
		score: score,
		total: total,
		menu:  components.NewMenu(items),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("And the winner is..."))
	b.WriteString("\n\n")

	scoreLine := fmt.Sprintf("You scored %d out of %d", s.score, s.total)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Secondary).
		Bold(true).
		Render(scoreLine))
	b.WriteString("\n\n")

	b.WriteString(theme.Subtitle.Width(width).Render(s.verdict()))
	b.WriteString("\n\n")

	menu := theme.Card.Render(s.menu.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(b.String())
}

// verdict maps the score to a closing line.
func (s *SummaryScreen) verdict() string {
	switch {
	case s.score == s.total:
		return "A flawless victory. Championship material."
	case s.score >= s.total*7/10:
		return "Main-event caliber. Almost there."
	case s.score >= s.total/2:
		return "Solid mid-card showing."
	default:
		return "Back to developmental."
	}
}
