package scan

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/albedo/internal/colour"
)

var (
	hexTokenRE = regexp.MustCompile(`#(?:[0-9a-fA-F]{3,4}){1,2}\b`)
	rgbFuncRE  = regexp.MustCompile(`rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[\d.]+\s*)?\)`)
	hslFuncRE  = regexp.MustCompile(`hsla?\(\s*([\d.]+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*[\d.]+\s*)?\)`)
)

// ColourToken extracts the first colour literal from a CSS-style value
// and returns it as normalized hex. Recognizes hsl()/hsla(),
// rgb()/rgba() (alpha ignored), hex literals and the supported colour
// names, including inside compound values like "1px solid red".
// Keywords that cannot resolve statically (transparent, inherit,
// currentColor, none) and unresolved var() references yield false.
func ColourToken(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}

	if m := hslFuncRE.FindStringSubmatch(value); m != nil {
		if hex, ok := hslLiteral(m[1], m[2], m[3]); ok {
			return hex, true
		}
	}
	if m := rgbFuncRE.FindStringSubmatch(value); m != nil {
		if hex, ok := rgbLiteral(m[1], m[2], m[3]); ok {
			return hex, true
		}
	}
	if tok := hexTokenRE.FindString(value); tok != "" {
		if hex, err := colour.Normalize(tok); err == nil {
			return hex, true
		}
	}
	for _, word := range strings.Fields(strings.ToLower(value)) {
		if c, ok := colour.Named(word); ok {
			return c.Hex(), true
		}
	}
	return "", false
}

func hslLiteral(hs, ss, ls string) (string, bool) {
	h, err1 := strconv.ParseFloat(hs, 64)
	s, err2 := strconv.ParseFloat(ss, 64)
	l, err3 := strconv.ParseFloat(ls, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if s > 100 || l > 100 {
		return "", false
	}
	return colour.FromHSL(h, s, l).Hex(), true
}

func rgbLiteral(rs, gs, bs string) (string, bool) {
	r, err1 := strconv.Atoi(rs)
	g, err2 := strconv.Atoi(gs)
	b, err3 := strconv.Atoi(bs)
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if r > 255 || g > 255 || b > 255 {
		return "", false
	}
	return colour.Colour{R: uint8(r), G: uint8(g), B: uint8(b)}.Hex(), true
}

// Rel returns path relative to root with forward slashes, or path
// unchanged when it cannot be made relative.
func Rel(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
