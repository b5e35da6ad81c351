package summary

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kvega/kayfabe/internal/router"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestSummaryView(t *testing.T) {
	s := New(7, 10, func() tea.Cmd { return nil })
	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty summary view")
	}
}

func TestVerdictTiers(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{10, "A flawless victory. Championship material."},
		{7, "Main-event caliber. Almost there."},
		{5, "Solid mid-card showing."},
		{2, "Back to developmental."},
	}
	for _, tc := range cases {
		s := New(tc.score, 10, func() tea.Cmd { return nil })
		if got := s.verdict(); got != tc.want {
			t.Errorf("verdict(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestRestartSelected(t *testing.T) {
	restarted := false
	restart := func() tea.Cmd {
		restarted = true
		return nil
	}
	s := New(3, 10, restart)

	// First item is the rematch.
	if _, _ = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); !restarted {
		t.Error("expected restart callback to fire")
	}
}

func TestEscapeGoesHome(t *testing.T) {
	s := New(3, 10, func() tea.Cmd { return nil })

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on escape")
	}
}

func TestHomeSelected(t *testing.T) {
	s := New(3, 10, func() tea.Cmd { return nil })

	// Move down to HOME and select it.
	scr, _ := s.Update(keyPress('j'))
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg when HOME is chosen")
	}
}
