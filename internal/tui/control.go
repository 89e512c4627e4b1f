package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stagetimer-cli/internal/display"
	"stagetimer-cli/internal/model"
	"stagetimer-cli/internal/timer"
)

type frameMsg struct{ at time.Time }

type controlModel struct {
	ctrl    *timer.Controller
	fps     int
	onFrame func(model.TimerState)

	width  int
	height int

	presets list.Model

	// Message entry is a one-line modal over the normal key handling.
	msgInput  textinput.Model
	enterText bool

	// Captured once per frame so View stays a pure function of the model.
	snap  model.TimerState
	now   time.Time
	inSet []model.Preset
}

func newControlModel(c *timer.Controller, fps int, onFrame func(model.TimerState)) controlModel {
	m := controlModel{
		ctrl:    c,
		fps:     fps,
		onFrame: onFrame,
		now:     time.Now(),
	}
	m.snap = c.Snapshot()

	m.presets = newPresetList()
	m.msgInput = textinput.New()
	m.msgInput.Placeholder = "message to output surfaces"
	m.msgInput.CharLimit = 200

	m.refreshPresets()
	return m
}

func newPresetList() list.Model {
	l := list.New([]list.Item{}, newPresetDelegate(), 0, 0)
	// We render our own chrome, so keep the list minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	up := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(up, "ctrl+p")...)
	down := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(down, "ctrl+n")...)
	return l
}

func (m controlModel) Init() tea.Cmd { return m.tickFrame() }

func (m controlModel) tickFrame() tea.Cmd {
	return tea.Tick(frameInterval(m.fps), func(t time.Time) tea.Msg { return frameMsg{at: t} })
}

func (m controlModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case frameMsg:
		// The frame drives everything: chain advance, flash expiry, and
		// the heartbeat rebroadcast that keeps replicas converged.
		m.ctrl.Advance(msg.at)
		m.now = msg.at
		m.snap = m.ctrl.Snapshot()
		m.refreshPresets()
		if m.onFrame != nil {
			m.onFrame(m.snap)
		}
		return m, m.tickFrame()

	case tea.KeyMsg:
		if m.enterText {
			return m.updateMessageEntry(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			m.ctrl.Toggle(time.Now())
		case "s":
			m.ctrl.Start(time.Now())
		case "p":
			m.ctrl.Pause(time.Now())
		case "r":
			m.ctrl.Reset()
		case "b":
			m.ctrl.ToggleBlackout()
		case "f":
			m.ctrl.TriggerFlash(time.Now())
		case "m":
			if m.ctrl.Snapshot().Message.Visible {
				m.ctrl.HideMessage()
			} else {
				m.enterText = true
				m.msgInput.Focus()
				return m, textinput.Blink
			}
		case "+", "=":
			m.ctrl.AdjustDuration(60)
		case "-":
			m.ctrl.AdjustDuration(-60)
		case "enter":
			if it, ok := m.presets.SelectedItem().(presetItem); ok {
				m.ctrl.Select(it.index)
			}
		default:
			var cmd tea.Cmd
			m.presets, cmd = m.presets.Update(msg)
			return m, cmd
		}
		m.snap = m.ctrl.Snapshot()
		m.refreshPresets()
		return m, nil
	}

	var cmd tea.Cmd
	m.presets, cmd = m.presets.Update(msg)
	return m, cmd
}

func (m controlModel) updateMessageEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.msgInput.Value())
		if text != "" {
			m.ctrl.ShowMessage(text)
		}
		m.enterText = false
		m.msgInput.SetValue("")
		m.msgInput.Blur()
		m.snap = m.ctrl.Snapshot()
		return m, nil
	case "esc", "ctrl+c":
		m.enterText = false
		m.msgInput.SetValue("")
		m.msgInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.msgInput, cmd = m.msgInput.Update(msg)
	return m, cmd
}

func (m *controlModel) resize() {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width / 2
	if w < 30 {
		w = 30
	}
	m.presets.SetSize(w, h)
}

func (m *controlModel) refreshPresets() {
	presets, active := m.ctrl.ActivePresets()
	m.inSet = presets
	items := make([]list.Item, len(presets))
	for i, p := range presets {
		items[i] = presetItem{preset: p, index: i, active: i == active}
	}
	m.presets.SetItems(items)
}

func (m controlModel) View() string {
	header := lipgloss.NewStyle().Bold(true).
		Render(fmt.Sprintf("stagetimer  Profile=%s  Timer=%s", dashIfEmpty(m.snap.ProfileName), dashIfEmpty(m.snap.TimerName)))

	left := m.presets.View()
	right := m.previewPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	footer := styleMuted().Render("space: toggle  s: start  p: pause  r: reset  b: blackout  f: flash  m: message  +/-: ±1min  enter: select  q: quit")
	if m.enterText {
		footer = "message: " + m.msgInput.View()
	}
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m controlModel) previewPane() string {
	d := display.Compute(m.snap, m.now)
	var lines []string

	clock := "--:--"
	if d.Visible {
		clock = d.Text
	}
	st := lipgloss.NewStyle().Bold(true)
	if d.Overtime {
		st = st.Foreground(colorOvertime)
	} else {
		switch display.Warn(m.snap, d.RemainingMs) {
		case display.WarnOrange:
			st = st.Foreground(colorWarnOrange)
		case display.WarnYellow:
			st = st.Foreground(colorWarnYellow)
		}
	}
	lines = append(lines, st.Render(clock))
	if d.ClockText != "" {
		lines = append(lines, styleMuted().Render(d.ClockText))
	}

	lines = append(lines, m.statusLine())
	if len(m.inSet) > 0 {
		_, active := m.ctrl.ActivePresets()
		prog := display.ChainProgress(m.inSet, active, m.snap, m.now.UnixMilli())
		lines = append(lines, progressBar(prog, 24))
	}
	if m.snap.Message.Visible {
		lines = append(lines, styleMuted().Render("msg: "+m.snap.Message.Text))
	}
	return strings.Join(lines, "\n")
}

func (m controlModel) statusLine() string {
	var parts []string
	switch {
	case m.snap.IsRunning:
		parts = append(parts, lipgloss.NewStyle().Foreground(colorRunning).Render("running"))
	case m.snap.PausedAccMs > 0:
		parts = append(parts, lipgloss.NewStyle().Foreground(colorPaused).Render("paused"))
	default:
		parts = append(parts, styleMuted().Render("stopped"))
	}
	if m.snap.Blackout {
		parts = append(parts, "blackout")
	}
	if m.snap.Flash.Active {
		parts = append(parts, "flash")
	}
	parts = append(parts, fmt.Sprintf("seq=%d", m.snap.Seq))
	return strings.Join(parts, "  ")
}

func progressBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	full := int(frac * float64(width))
	return strings.Repeat(glyphProgressFull(), full) + strings.Repeat(glyphProgressEmpty(), width-full)
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
