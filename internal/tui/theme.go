package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// Both surfaces must stay readable on light and dark terminal backgrounds,
// so colors are lipgloss.AdaptiveColor where possible. The output surface is
// usually fullscreen on a dark projector feed, but operators preview it in
// ordinary terminals too.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted    lipgloss.TerminalColor = ac("240", "243")
	colorAccent   lipgloss.TerminalColor = ac("27", "62") // blue
	colorSelected lipgloss.TerminalColor = ac("232", "255")

	// Countdown urgency tiers. Orange doubles as the overtime color.
	colorWarnYellow lipgloss.TerminalColor = ac("178", "220")
	colorWarnOrange lipgloss.TerminalColor = ac("166", "208")
	colorOvertime   lipgloss.TerminalColor = ac("160", "196")

	// A flash "on" phase renders the clock inverted for visibility.
	colorFlashFg lipgloss.TerminalColor = ac("255", "232")
	colorFlashBg lipgloss.TerminalColor = ac("232", "255")

	colorRunning lipgloss.TerminalColor = ac("28", "40") // green
	colorPaused  lipgloss.TerminalColor = ac("166", "214")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// termenv.EnvColorProfile honors CLICOLOR, which can accidentally strip a
// fullscreen surface of color. Honor NO_COLOR only, otherwise trust the
// terminal's capabilities (with an env nudge for under-reporting terminals).
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) STAGETIMER_TUI_THEME=light|dark|auto
// 2) STAGETIMER_TUI_DARKBG=true|false
// 3) COLORFGBG heuristic ("fg;bg", last segment is bg)
func applyThemePreference() {
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("STAGETIMER_TUI_THEME"))); v != "" {
		switch v {
		case "light":
			lipgloss.SetHasDarkBackground(false)
			return
		case "dark":
			lipgloss.SetHasDarkBackground(true)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("STAGETIMER_TUI_DARKBG")); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			lipgloss.SetHasDarkBackground(b)
			return
		}
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
