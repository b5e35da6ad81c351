package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kvega/kayfabe/internal/quiz"
	"github.com/kvega/kayfabe/internal/quizgen"
	"github.com/kvega/kayfabe/internal/router"
	"github.com/kvega/kayfabe/internal/screen"
	quizscreen "github.com/kvega/kayfabe/internal/screens/quiz"
	"github.com/kvega/kayfabe/internal/ui/components"
	"github.com/kvega/kayfabe/internal/ui/theme"
)

// HomeScreen lets the player pick a difficulty and start a quiz.
type HomeScreen struct {
	menu     components.Menu
	generate quiz.GenerateFunc
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. generate is handed to the quiz screen on
// start.
func New(generate quiz.GenerateFunc) *HomeScreen {
	items := make([]components.MenuItem, 0, len(quizgen.Difficulties)+1)
	for _, d := range quizgen.Difficulties {
		difficulty := d
		items = append(items, components.MenuItem{
			Label: strings.ToUpper(string(difficulty)),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{
						Screen: quizscreen.New(generate, difficulty),
					}
				}
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "EXIT",
		Action: func() tea.Cmd { return tea.Quit },
	})

	return &HomeScreen{
		menu:     components.NewMenu(items),
		generate: generate,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("KAYFABE"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("The WWE trivia gauntlet"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(
		fmt.Sprintf("%d questions, %d seconds each. Pick your poison.",
			quiz.MaxQuestions, int(quiz.AnswerTime.Seconds()))))
	b.WriteString("\n\n")

	menu := theme.Card.Render(h.menu.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		AlignVertical(lipgloss.Center).
		Render(b.String())
}

func (h *HomeScreen) Title() string {
	return "Home"
}
