package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kvega/kayfabe/internal/ui/theme"
)

// CountdownBar displays the remaining answer time as a draining bar.
type CountdownBar struct {
	Remaining float64 // fraction of time left, 0..1
	Seconds   int     // whole seconds left, shown after the bar
	Width     int
}

// NewCountdownBar creates a countdown bar.
func NewCountdownBar(remaining float64, seconds, width int) CountdownBar {
	return CountdownBar{
		Remaining: remaining,
		Seconds:   seconds,
		Width:     width,
	}
}

// View renders the bar. The fill switches to the error color in the
// final five seconds.
func (c CountdownBar) View() string {
	labelWidth := 5 // "  20s"

	barWidth := c.Width - labelWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * c.Remaining)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	fillColor := theme.Secondary
	if c.Seconds <= 5 {
		fillColor = theme.Error
	}

	bar := lipgloss.NewStyle().
		Background(fillColor).
		Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().
			Background(theme.Border).
			Render(strings.Repeat(" ", empty))

	label := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %2ds", c.Seconds))

	return bar + label
}
