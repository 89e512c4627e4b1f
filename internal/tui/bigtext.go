package tui

import "strings"

// Big-digit rendering for the output surface clock. Each character is a
// 3x5 cell bitmap scaled up to the chosen block glyph; a '#' in the mask
// becomes a filled cell, anything else a space.

const bigRows = 5

var bigMasks = map[rune][bigRows]string{
	'0': {"###", "# #", "# #", "# #", "###"},
	'1': {"  #", "  #", "  #", "  #", "  #"},
	'2': {"###", "  #", "###", "#  ", "###"},
	'3': {"###", "  #", "###", "  #", "###"},
	'4': {"# #", "# #", "###", "  #", "  #"},
	'5': {"###", "#  ", "###", "  #", "###"},
	'6': {"###", "#  ", "###", "# #", "###"},
	'7': {"###", "  #", "  #", "  #", "  #"},
	'8': {"###", "# #", "###", "# #", "###"},
	'9': {"###", "# #", "###", "  #", "###"},
	':': {"   ", " # ", "   ", " # ", "   "},
	'+': {"   ", " # ", "###", " # ", "   "},
	'.': {"   ", "   ", "   ", "   ", " # "},
	'-': {"   ", "   ", "###", "   ", "   "},
	' ': {"   ", "   ", "   ", "   ", "   "},
}

// renderBig draws s as big digits, one output line per bitmap row.
// Unknown runes render as blanks so a stray character cannot shift columns.
func renderBig(s string) string {
	block := glyphBlock()
	var rows [bigRows]strings.Builder
	for i, r := range s {
		mask, ok := bigMasks[r]
		if !ok {
			mask = bigMasks[' ']
		}
		for row := 0; row < bigRows; row++ {
			if i > 0 {
				rows[row].WriteString(" ")
			}
			for _, c := range mask[row] {
				if c == '#' {
					rows[row].WriteString(block)
				} else {
					rows[row].WriteString(" ")
				}
			}
		}
	}
	out := make([]string, bigRows)
	for i := range rows {
		out[i] = rows[i].String()
	}
	return strings.Join(out, "\n")
}

// bigWidth reports the rendered cell width of s without drawing it.
func bigWidth(s string) int {
	n := 0
	for range s {
		n++
	}
	if n == 0 {
		return 0
	}
	return n*3 + (n - 1)
}
