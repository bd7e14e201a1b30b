// Package script extracts colour constants from JavaScript and
// TypeScript sources. Keys are classified by name as text, background
// or border colours and paired within the object literal that declares
// them, so a theme module such as {dark: {text, background}} audits
// each variant against its own background. JSX files are handled by
// the tailwind and svg scanners instead.
package script

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/scan"
)

var (
	blockCommentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRE  = regexp.MustCompile("(?m)(?:^|[^:'\"`\\\\])//[^\n]*")

	// key: 'value' object properties, const/let/var assignments,
	// member assignments like el.style.color = '#hex', and quoted-key
	// config entries. Later patterns skip values an earlier pattern
	// already claimed.
	objPropRE    = regexp.MustCompile("(?m)(?:^|[{,;\\n])\\s*['\"]?([\\w.$-]+)['\"]?\\s*:\\s*['\"`]([^'\"`\\n]+)['\"`]")
	varAssignRE  = regexp.MustCompile("(?:const|let|var|export\\s+(?:const|let))\\s+([\\w$]+)\\s*(?::\\s*\\w+\\s*)?=\\s*['\"`]([^'\"`\\n]+)['\"`]")
	styleSetRE   = regexp.MustCompile("(?:color|background|bg|fill|stroke)\\s*[:=]\\s*[`'](#[0-9a-fA-F]{3,8})[`']")
	configPropRE = regexp.MustCompile("['\"]?([\\w-]+)['\"]?\\s*:\\s*['\"](#[0-9a-fA-F]{3,8})['\"]")

	hexValueRE = regexp.MustCompile(`(#(?:[0-9a-fA-F]{3,4}){1,2})(?:\s*[,;}\])\n]|$)`)
	rgbValueRE = regexp.MustCompile(`rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*(?:,\s*[\d.]+\s*)?\)`)
	hslValueRE = regexp.MustCompile(`hsla?\(\s*([\d.]+)\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*[\d.]+\s*)?\)`)

	contextKeyRE = regexp.MustCompile(`^['"]?([\w.$-]+)['"]?\s*[:={]`)
	onKeyRE      = regexp.MustCompile(`^on[_-]?(\w+)`)

	textKeyRE = regexp.MustCompile(`(?i)(?:^|[._-])(?:color|text|foreground|fg|font[_-]?color|text[_-]?color|label[_-]?color|title[_-]?color|heading[_-]?color|body[_-]?color|caption[_-]?color|subtitle[_-]?color|placeholder[_-]?color|hint[_-]?color|link[_-]?color|icon[_-]?color|on[_-]?(?:primary|secondary|surface|background|error|success|warning))(?:[._-]|$)`)

	bgKeyRE = regexp.MustCompile(`(?i)(?:^|[._-])(?:background|bg|surface|backdrop|fill|canvas|bg[_-]?color|background[_-]?color|card[_-]?(?:bg|background)|page[_-]?(?:bg|background)|container[_-]?(?:bg|background)|panel[_-]?(?:bg|background)|primary|secondary|accent|base)(?:[._-]|$)`)

	borderKeyRE = regexp.MustCompile(`(?i)(?:^|[._-])(?:border|outline|divider|separator|stroke|ring)(?:[._-]|$)`)
)

var supportedExt = map[string]bool{
	".js":  true,
	".ts":  true,
	".mjs": true,
	".cjs": true,
}

// Backgrounds assumed for groups that declare no background key of
// their own. Contexts named dark get the common dark page colour.
const (
	defaultBG     = "#ffffff"
	darkDefaultBG = "#1a1a2e"
)

const (
	roleText    = "text"
	roleBG      = "background"
	roleBorder  = "border"
	roleUnknown = "unknown"
)

type Scanner struct{}

func New() *Scanner { return &Scanner{} }

func (s *Scanner) Name() string { return "script" }

func (s *Scanner) Description() string {
	return "Colour constants in JavaScript and TypeScript theme modules"
}

func (s *Scanner) Scan(ctx context.Context, opts scan.Options) ([]scan.Pair, error) {
	log := opts.Log().Named("script")

	var pairs []scan.Pair
	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !supportedExt[strings.ToLower(filepath.Ext(path))] {
			continue
		}
		info, err := os.Stat(path)
		if err != nil {
			log.Debug("skipping unreadable file", "path", path, "error", err)
			continue
		}
		if info.Size() > opts.MaxBytes() {
			log.Debug("skipping oversized file", "path", path, "size", info.Size(), "max", opts.MaxBytes())
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			log.Debug("skipping unreadable file", "path", path, "error", err)
			continue
		}
		filePairs := scanSource(s.Name(), scan.Rel(opts.Root, path), string(data))
		pairs = append(pairs, scan.Dedupe(filePairs)...)
	}
	return pairs, nil
}

// entry is one extracted colour constant. fullPath prefixes the key
// with its enclosing object keys, e.g. "dark.text".
type entry struct {
	key      string
	fullPath string
	hex      string
	role     string
	line     int
}

func scanSource(scanner, file, src string) []scan.Pair {
	masked := maskComments(src)

	groups := make(map[string][]entry)
	var order []string
	for _, raw := range extractEntries(masked) {
		ctx := contextPath(masked, raw.pos)
		fullPath := raw.key
		if ctx != "" {
			fullPath = ctx + "." + raw.key
		}
		if _, ok := groups[ctx]; !ok {
			order = append(order, ctx)
		}
		groups[ctx] = append(groups[ctx], entry{
			key:      raw.key,
			fullPath: fullPath,
			hex:      raw.hex,
			role:     classifyKey(fullPath),
			line:     1 + strings.Count(masked[:raw.pos], "\n"),
		})
	}

	var pairs []scan.Pair
	for _, ctx := range order {
		group := groups[ctx]

		var texts, bgs, borders []entry
		for _, e := range group {
			switch e.role {
			case roleText:
				texts = append(texts, e)
			case roleBG:
				bgs = append(bgs, e)
			case roleBorder:
				borders = append(borders, e)
			}
		}

		fallback := defaultBG
		if strings.Contains(strings.ToLower(ctx), "dark") {
			fallback = darkDefaultBG
		}

		for _, te := range texts {
			if len(bgs) == 0 {
				pairs = append(pairs, scan.Pair{
					Scanner:    scanner,
					File:       file,
					Line:       te.line,
					Context:    te.fullPath,
					Role:       scan.RoleText,
					Foreground: te.hex,
					Background: fallback,
				})
				continue
			}
			for _, be := range bgs {
				pairs = append(pairs, scan.Pair{
					Scanner:    scanner,
					File:       file,
					Line:       te.line,
					Context:    te.fullPath,
					Role:       scan.RoleText,
					Foreground: te.hex,
					Background: be.hex,
				})
			}
		}

		// Borders check against the first declared background
		// (WCAG SC 1.4.11 non-text contrast).
		for _, be := range borders {
			bg := fallback
			if len(bgs) > 0 {
				bg = bgs[0].hex
			}
			pairs = append(pairs, scan.Pair{
				Scanner:    scanner,
				File:       file,
				Line:       be.line,
				Context:    be.fullPath,
				Role:       scan.RoleBorder,
				Foreground: be.hex,
				Background: bg,
			})
		}

		// Unclassified onX keys pair with the X they sit on, the
		// Material-style onPrimary/primary convention.
		for i, ue := range group {
			if ue.role != roleUnknown {
				continue
			}
			m := onKeyRE.FindStringSubmatch(strings.ToLower(ue.key))
			if m == nil {
				continue
			}
			for j, other := range group {
				if j == i {
					continue
				}
				lk := strings.ToLower(other.key)
				if strings.HasSuffix(lk, m[1]) {
					pairs = append(pairs, scan.Pair{
						Scanner:    scanner,
						File:       file,
						Line:       ue.line,
						Context:    ue.fullPath,
						Role:       scan.RoleText,
						Foreground: ue.hex,
						Background: other.hex,
					})
				}
			}
		}
	}
	return pairs
}

// rawEntry is a key/colour match before context resolution. pos is the
// byte offset of the key in the masked source.
type rawEntry struct {
	key string
	hex string
	pos int
}

func extractEntries(code string) []rawEntry {
	var entries []rawEntry
	claimed := make(map[int]bool)
	add := func(key string, keyPos, valPos int, value string) {
		if claimed[valPos] {
			return
		}
		hex, ok := extractValue(value)
		if !ok {
			return
		}
		claimed[valPos] = true
		entries = append(entries, rawEntry{key: key, hex: hex, pos: keyPos})
	}

	for _, loc := range objPropRE.FindAllStringSubmatchIndex(code, -1) {
		add(code[loc[2]:loc[3]], loc[2], loc[4], code[loc[4]:loc[5]])
	}
	for _, loc := range varAssignRE.FindAllStringSubmatchIndex(code, -1) {
		add(code[loc[2]:loc[3]], loc[2], loc[4], code[loc[4]:loc[5]])
	}
	for _, loc := range styleSetRE.FindAllStringSubmatchIndex(code, -1) {
		add("style_color", loc[0], loc[2], code[loc[2]:loc[3]])
	}
	for _, loc := range configPropRE.FindAllStringSubmatchIndex(code, -1) {
		add(code[loc[2]:loc[3]], loc[2], loc[4], code[loc[4]:loc[5]])
	}
	return entries
}

func extractValue(value string) (string, bool) {
	value = strings.Trim(strings.TrimSpace(value), "'\"`,;")

	if m := hslValueRE.FindStringSubmatch(value); m != nil {
		h, err1 := strconv.ParseFloat(m[1], 64)
		s, err2 := strconv.ParseFloat(m[2], 64)
		l, err3 := strconv.ParseFloat(m[3], 64)
		if err1 == nil && err2 == nil && err3 == nil && s <= 100 && l <= 100 {
			return colour.FromHSL(h, s, l).Hex(), true
		}
	}
	if m := rgbValueRE.FindStringSubmatch(value); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r <= 255 && g <= 255 && b <= 255 {
			return colour.Colour{R: uint8(r), G: uint8(g), B: uint8(b)}.Hex(), true
		}
	}
	if m := hexValueRE.FindStringSubmatch(value); m != nil {
		if hex, err := colour.Normalize(m[1]); err == nil {
			return hex, true
		}
	}
	if c, ok := colour.Named(strings.Trim(strings.ToLower(value), "'\"` ")); ok {
		return c.Hex(), true
	}
	return "", false
}

func classifyKey(key string) string {
	switch {
	case textKeyRE.MatchString(key):
		return roleText
	case bgKeyRE.MatchString(key):
		return roleBG
	case borderKeyRE.MatchString(key):
		return roleBorder
	}
	return roleUnknown
}

// contextPath walks back from pos collecting the keys of enclosing
// object literals by indentation, e.g. "theme.dark" for a value nested
// two levels deep. Top-level const/let/var names never match the key
// pattern, so module-scope assignments contribute no context.
func contextPath(code string, pos int) string {
	lines := strings.Split(code[:pos], "\n")
	last := lines[len(lines)-1]
	curIndent := len(last) - len(strings.TrimLeft(last, " \t"))

	var parts []string
	for i := len(lines) - 2; i >= 0; i-- {
		stripped := strings.TrimLeft(lines[i], " \t")
		indent := len(lines[i]) - len(stripped)
		if indent < curIndent {
			if m := contextKeyRE.FindStringSubmatch(stripped); m != nil {
				parts = append(parts, m[1])
				curIndent = indent
			}
		}
		if indent == 0 && len(parts) > 0 {
			break
		}
	}

	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return strings.Join(parts, ".")
}

// maskComments blanks comments in place so byte offsets, and the line
// numbers derived from them, still refer to the original source. The
// line-comment pattern keeps the character before // so protocol
// slashes in URLs survive.
func maskComments(src string) string {
	masked := blockCommentRE.ReplaceAllStringFunc(src, blankKeepNewlines)
	return lineCommentRE.ReplaceAllStringFunc(masked, func(m string) string {
		b := []byte(m)
		start := 0
		if b[0] != '/' {
			start = 1
		}
		for i := start; i < len(b); i++ {
			b[i] = ' '
		}
		return string(b)
	})
}

func blankKeepNewlines(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c != '\n' {
			b[i] = ' '
		}
	}
	return string(b)
}
