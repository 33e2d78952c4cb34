package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane clips or pads s to exactly width x height cells.
func normalizePane(s string, width, height int, tail string) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i, ln := range lines {
		if xansi.StringWidth(ln) > width {
			ln = xansi.Truncate(ln, width, tail)
		}
		if w := xansi.StringWidth(ln); w < width {
			ln += strings.Repeat(" ", width-w)
		}
		lines[i] = ln
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	s = strings.ReplaceAll(s, "\n", " ")
	if xansi.StringWidth(s) <= width {
		return s
	}
	return xansi.Truncate(s, width, tail)
}
