package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func menuKey(r rune) tea.Msg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestNewMenuSkipsDisabledLead(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "Resume", Disabled: true},
		{Label: "New Quiz"},
		{Label: "Quit"},
	})
	if m.Selected != 1 {
		t.Fatalf("expected cursor on first enabled item (1), got %d", m.Selected)
	}
}

func TestMenuNavigationSkipsDisabled(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "New Quiz"},
		{Label: "Resume", Disabled: true},
		{Label: "Quit"},
	})

	m, _ = m.Update(menuKey('j'))
	if m.Selected != 2 {
		t.Fatalf("expected cursor to jump over disabled item to 2, got %d", m.Selected)
	}

	m, _ = m.Update(menuKey('k'))
	if m.Selected != 0 {
		t.Fatalf("expected cursor back at 0, got %d", m.Selected)
	}

	// Nothing enabled above the cursor; it stays put.
	m, _ = m.Update(menuKey('k'))
	if m.Selected != 0 {
		t.Fatalf("expected cursor to stay at 0, got %d", m.Selected)
	}
}

func TestMenuEnterFiresAction(t *testing.T) {
	fired := false
	m := NewMenu([]MenuItem{
		{Label: "New Quiz", Action: func() tea.Cmd {
			fired = true
			return nil
		}},
	})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !fired {
		t.Fatal("expected enter to fire the selected action")
	}
}

func TestMenuEnterIgnoresDisabled(t *testing.T) {
	fired := false
	m := Menu{
		Items: []MenuItem{
			{Label: "Resume", Disabled: true, Action: func() tea.Cmd {
				fired = true
				return nil
			}},
		},
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if fired {
		t.Fatal("disabled item must not fire its action")
	}
}

func TestMenuViewMarksSelection(t *testing.T) {
	m := NewMenu([]MenuItem{
		{Label: "New Quiz"},
		{Label: "Quit"},
	})

	view := m.View()
	if !strings.Contains(view, "▸ New Quiz") {
		t.Fatalf("expected cursor on New Quiz, got:\n%s", view)
	}
	if strings.Contains(view, "▸ Quit") {
		t.Fatalf("expected no cursor on Quit, got:\n%s", view)
	}
}
