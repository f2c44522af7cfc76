// Package tui provides the Bubble Tea integration for the sketch player.
// It drives a runner.Instance from the terminal's tick, key, mouse, and
// resize events and draws the canvas screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a sketch frame. Instance is the id of the
// runner the tick chain belongs to, so ticks left over from a previous
// sketch are dropped.
type TickMsg struct {
	Instance string
	Time     time.Time
}

// tickCmd returns a Bubble Tea command that sends a tick after one frame at
// the given rate.
func tickCmd(instance string, frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Instance: instance, Time: t}
	})
}
