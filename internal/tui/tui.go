package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/relay"
	"stagetimer-cli/internal/timer"
)

// RunControl starts the operator-facing control surface. The controller is
// authoritative; onFrame is invoked once per rendered frame with the current
// snapshot so the caller can fan it out (websocket heartbeat, OSC feedback).
func RunControl(c *timer.Controller, fps int, onFrame func(model.TimerState)) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()
	m := newControlModel(c, fps, onFrame)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// RunOutput starts the audience-facing output surface backed by a replica
// that some other goroutine keeps fed (usually a relay.Client). onFirstFrame,
// when non-nil, is invoked once after the first frame has been rendered, so
// the caller can report the surface as ready.
func RunOutput(r *relay.Replica, fps int, onFirstFrame func()) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference()
	m := newOutputModel(r, fps, onFirstFrame)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 30
	}
	if fps > 120 {
		fps = 120
	}
	return time.Second / time.Duration(fps)
}
