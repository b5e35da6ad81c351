package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/kvega/kayfabe/internal/ui/layout"
)

// Screen is the interface all application screens implement.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatsProvider is an optional interface for screens that want the
// header to show the running score and question number.
type StatsProvider interface {
	Stats() (score, question int)
}
