// Package tui provides the Bubble Tea front end for the simulator.
// It handles the terminal UI loop, input mapping and the SSH server.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/bizsim/internal/game"
	"github.com/vovakirdan/bizsim/internal/session"
)

// advanceDoneMsg carries the result of a period simulated off the UI loop.
type advanceDoneMsg struct {
	outcome game.Outcome
	err     error
}

// advanceCmd runs one period in the background.
func advanceCmd(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		out, err := s.Advance()
		return advanceDoneMsg{outcome: out, err: err}
	}
}

// waitForEvent returns a command that waits for the next session event.
// It yields nil once the session is closed.
func waitForEvent(s *session.Session) tea.Cmd {
	return func() tea.Msg {
		if s == nil {
			return nil
		}
		select {
		case evt := <-s.Events():
			return evt
		case <-s.Done():
			return nil
		}
	}
}
