package tui

import "strings"

// Glyph sets for UI affordances. ASCII helps on fonts that render some symbols poorly.
type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

func parseGlyphSet(s string) glyphSet {
	if strings.EqualFold(strings.TrimSpace(s), "ascii") {
		return glyphSetASCII
	}
	return glyphSetUnicode
}

func (g glyphSet) cursor() string {
	if g == glyphSetASCII {
		return ">"
	}
	return "›"
}

func (g glyphSet) ellipsis() string {
	if g == glyphSetASCII {
		return "..."
	}
	return "…"
}

func (g glyphSet) owner() string {
	if g == glyphSetASCII {
		return "@"
	}
	return "◆"
}

func (g glyphSet) separator() string {
	if g == glyphSetASCII {
		return "|"
	}
	return "│"
}
