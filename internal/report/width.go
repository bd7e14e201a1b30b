package report

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Matches CSI sequences and OSC sequences terminated by BEL or ST.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-?]*[ -/]*[@-~]|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`)

func stripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return ansiPattern.ReplaceAllString(s, "")
}

// visibleWidth returns the terminal display width of s, ignoring ANSI
// escape sequences and counting grapheme clusters by their wcwidth.
func visibleWidth(s string) int {
	s = stripANSI(s)
	if s == "" {
		return 0
	}
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width += runewidth.StringWidth(g.Str())
	}
	return width
}

// padRight pads s with spaces so its visible width is at least w.
// Strings already wider than w are returned unchanged.
func padRight(s string, w int) string {
	gap := w - visibleWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
