package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"stagetimer-cli/internal/model"
)

type presetItem struct {
	preset model.Preset
	index  int
	active bool
}

func (p presetItem) Title() string {
	name := p.preset.Name
	if name == "" {
		name = p.preset.ID
	}
	marker := "  "
	if p.active {
		marker = glyphBullet() + " "
	}
	line := fmt.Sprintf("%s%-20s %s", marker, name, presetDurationLabel(p.preset.Config))
	if p.preset.LinkedToNext {
		line += " " + glyphLink()
	}
	return line
}

func (p presetItem) FilterValue() string { return p.preset.Name }

func presetDurationLabel(c model.PresetConfig) string {
	if c.Mode == model.ModeClock || c.Mode == model.ModeHidden {
		return string(c.Mode)
	}
	sec := c.DurationMs / 1000
	return fmt.Sprintf("%d:%02d", sec/60, sec%60)
}

type presetDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	active   lipgloss.Style
}

func newPresetDelegate() presetDelegate {
	return presetDelegate{
		normal:   lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Foreground(colorSelected).Bold(true),
		active:   lipgloss.NewStyle().Foreground(colorAccent),
	}
}

func (d presetDelegate) Height() int                             { return 1 }
func (d presetDelegate) Spacing() int                            { return 0 }
func (d presetDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d presetDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	it, ok := item.(presetItem)
	if !ok {
		return
	}

	style := d.normal
	if it.active {
		style = d.active
	}
	if index == m.Index() {
		style = d.selected
	}

	line := it.Title()
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	fmt.Fprint(w, style.Render(line))
}
