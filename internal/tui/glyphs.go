package tui

import (
	"os"
	"strings"
	"sync"
)

// Glyph sets for UI affordances. Some terminal fonts render the Unicode
// blocks used by the big clock poorly, so an ASCII fallback is selectable.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func applyGlyphPreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("STAGETIMER_TUI_GLYPHS"))) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphBlock() string {
	if glyphs() == glyphSetASCII {
		return "#"
	}
	return "█"
}

func glyphLink() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "⇢"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphProgressFull() string {
	if glyphs() == glyphSetASCII {
		return "="
	}
	return "━"
}

func glyphProgressEmpty() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}
