// Package tui provides the Bubble Tea frontend for the snake puzzle.
// It handles the terminal UI loop, input mapping, level picking and the
// run history view, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-puzzle/internal/levels"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// LevelChangedMsg carries a level file change from the watcher.
type LevelChangedMsg levels.Change

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChange blocks on the watcher channel and delivers the next change.
// A closed or nil channel stops the subscription.
func waitForChange(ch <-chan levels.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return LevelChangedMsg(c)
	}
}
