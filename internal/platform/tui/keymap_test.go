package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestSketchKeyMap(t *testing.T) {
	keys := DefaultSketchKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		restart bool
		back    bool
		quit    bool
	}{
		{"ctrl+r restarts", tea.KeyMsg{Type: tea.KeyCtrlR}, true, false, false},
		{"ctrl+b goes back", tea.KeyMsg{Type: tea.KeyCtrlB}, false, true, false},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, false, false, true},
		{"q reaches the sketch", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, false, false, false},
		{"r reaches the sketch", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}, false, false, false},
		{"esc reaches the sketch", tea.KeyMsg{Type: tea.KeyEsc}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := key.Matches(tt.msg, keys.Restart); got != tt.restart {
				t.Errorf("Restart match = %v, want %v", got, tt.restart)
			}
			if got := key.Matches(tt.msg, keys.Back); got != tt.back {
				t.Errorf("Back match = %v, want %v", got, tt.back)
			}
			if got := key.Matches(tt.msg, keys.Quit); got != tt.quit {
				t.Errorf("Quit match = %v, want %v", got, tt.quit)
			}
		})
	}
}

func TestMenuKeyMap(t *testing.T) {
	keys := DefaultMenuKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, keys.Up},
		{"vim up", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, keys.Up},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, keys.Down},
		{"vim down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, keys.Down},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, keys.Select},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, keys.Select},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, keys.History},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, keys.Back},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, keys.Quit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestHelpListsBindings(t *testing.T) {
	if got := len(DefaultSketchKeyMap().ShortHelp()); got != 3 {
		t.Errorf("sketch ShortHelp has %d bindings, want 3", got)
	}
	if got := len(DefaultMenuKeyMap().FullHelp()); got != 2 {
		t.Errorf("menu FullHelp has %d columns, want 2", got)
	}
	if got := len(DefaultHistoryKeyMap().ShortHelp()); got != 5 {
		t.Errorf("history ShortHelp has %d bindings, want 5", got)
	}
}
