package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stagetimer-cli/internal/display"
	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/relay"
)

// outputModel renders whatever its replica last accepted. It never mutates
// state; all authority stays with the control surface on the other end of
// the socket.
type outputModel struct {
	replica *relay.Replica
	fps     int

	width  int
	height int

	snap model.TimerState
	has  bool
	now  time.Time

	// Cleared after the first frame; signals the rendering loop is live.
	onFirstFrame func()
}

func newOutputModel(r *relay.Replica, fps int, onFirstFrame func()) outputModel {
	m := outputModel{replica: r, fps: fps, now: time.Now(), onFirstFrame: onFirstFrame}
	m.snap, m.has = r.Snapshot()
	return m
}

func (m outputModel) Init() tea.Cmd { return m.tickFrame() }

func (m outputModel) tickFrame() tea.Cmd {
	return tea.Tick(frameInterval(m.fps), func(t time.Time) tea.Msg { return frameMsg{at: t} })
}

func (m outputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		m.now = msg.at
		m.snap, m.has = m.replica.Snapshot()
		if m.onFirstFrame != nil {
			m.onFirstFrame()
			m.onFirstFrame = nil
		}
		return m, m.tickFrame()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m outputModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	if m.snap.Blackout {
		return strings.TrimRight(strings.Repeat(strings.Repeat(" ", w)+"\n", h), "\n")
	}
	if !m.has {
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
			styleMuted().Render("waiting for control surface"))
	}

	d := display.Compute(m.snap, m.now)
	var blocks []string

	if name := strings.TrimSpace(m.snap.TimerName); name != "" {
		blocks = append(blocks, styleMuted().Render(name))
	}

	if d.Visible {
		st := lipgloss.NewStyle()
		switch {
		case m.snap.Flash.Active && display.FlashOn(m.now.UnixMilli(), m.snap.Flash.StartedAt):
			st = st.Foreground(colorFlashFg).Background(colorFlashBg)
		case d.Overtime:
			st = st.Foreground(colorOvertime).Bold(true)
		default:
			switch display.Warn(m.snap, d.RemainingMs) {
			case display.WarnOrange:
				st = st.Foreground(colorWarnOrange)
			case display.WarnYellow:
				st = st.Foreground(colorWarnYellow)
			}
		}
		blocks = append(blocks, st.Render(renderBig(d.Text)))
		if d.ClockText != "" {
			blocks = append(blocks, styleMuted().Render(d.ClockText))
		}
	}

	if m.snap.Message.Visible {
		blocks = append(blocks, renderMessage(m.snap.Message.Text, messageWidth(w)))
	}

	body := strings.Join(blocks, "\n\n")
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, body)
}

func messageWidth(w int) int {
	mw := w - 8
	if mw < 20 {
		mw = 20
	}
	if mw > 72 {
		mw = 72
	}
	return mw
}
