package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	msgRendererMu sync.Mutex
	// Cache renderers by wrap width. Creating one with WithAutoStyle can
	// block on terminal capability queries, so a fixed style is used and
	// instances are reused across frames.
	msgRenderers = map[int]*glamour.TermRenderer{}
)

// renderMessage renders an operator message as markdown wrapped to width.
// On any renderer error the raw text is shown instead; a broken message is
// still better than a blank output surface.
func renderMessage(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	msgRendererMu.Lock()
	r := msgRenderers[width]
	msgRendererMu.Unlock()

	if r == nil {
		name := "light"
		if lipgloss.HasDarkBackground() {
			name = "dark"
		}
		rr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(name),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		msgRendererMu.Lock()
		if existing := msgRenderers[width]; existing != nil {
			r = existing
		} else {
			msgRenderers[width] = rr
			r = rr
		}
		msgRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
