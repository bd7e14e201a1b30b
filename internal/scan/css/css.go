// Package css extracts foreground/background colour pairs from CSS
// stylesheets. It resolves custom properties, flattens conditional
// at-rules and applies a simple inheritance model so that rules which
// declare only a text colour are still paired against a plausible
// background.
package css

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jmylchreest/albedo/internal/scan"
)

var (
	commentRE = regexp.MustCompile(`(?s)/\*.*?\*/`)
	atRuleRE  = regexp.MustCompile(`@(?:media|layer|supports)[^{]*\{`)
	ruleRE    = regexp.MustCompile(`([^{}@]+?)\s*\{([^}]*)\}`)
	declRE    = regexp.MustCompile(`([\w-]+)\s*:\s*([^;]+);`)
	varDefRE  = regexp.MustCompile(`(--[\w-]+)\s*:\s*([^;]+);`)
	varRefRE  = regexp.MustCompile(`var\(\s*(--[\w-]+)\s*(?:,\s*([^)]+))?\)`)
	partSepRE = regexp.MustCompile(`[\s>+~]+`)
)

// borderProps map to non-text contrast checks (WCAG SC 1.4.11).
var borderProps = map[string]bool{
	"border":              true,
	"border-color":        true,
	"border-top-color":    true,
	"border-bottom-color": true,
	"border-left-color":   true,
	"border-right-color":  true,
	"outline-color":       true,
}

// maxVarDepth bounds var() resolution so cyclic definitions terminate.
const maxVarDepth = 8

type Scanner struct{}

func New() *Scanner { return &Scanner{} }

func (s *Scanner) Name() string { return "css" }

func (s *Scanner) Description() string {
	return "Colour, background and border declarations in CSS stylesheets"
}

func (s *Scanner) Scan(ctx context.Context, opts scan.Options) ([]scan.Pair, error) {
	log := opts.Log().Named("css")

	var pairs []scan.Pair
	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !strings.EqualFold(filepath.Ext(path), ".css") {
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
		filePairs := scanStylesheet(s.Name(), scan.Rel(opts.Root, path), string(data))
		pairs = append(pairs, scan.Dedupe(filePairs)...)
	}
	return pairs, nil
}

type decl struct {
	name  string
	value string
}

func scanStylesheet(scanner, file, src string) []scan.Pair {
	masked := maskAtRules(maskComments(src))

	// Custom properties are visible file-wide regardless of where they
	// are defined.
	vars := make(map[string]string)
	for _, m := range varDefRE.FindAllStringSubmatch(masked, -1) {
		vars[m[1]] = strings.TrimSpace(m[2])
	}

	var pairs []scan.Pair
	defaultBG := "#ffffff"
	knownBG := make(map[string]string)

	for _, loc := range ruleRE.FindAllStringSubmatchIndex(masked, -1) {
		selector, selStart := cleanSelector(masked, loc[2], loc[3])
		if selector == "" {
			continue
		}
		line := 1 + strings.Count(masked[:selStart], "\n")

		var textHex, bgHex string
		var borders []string
		for _, d := range parseDecls(masked[loc[4]:loc[5]]) {
			switch {
			case d.name == "color":
				textHex, _ = resolveValue(d.value, vars, 0)
			case d.name == "background-color" || d.name == "background":
				if hex, ok := resolveValue(d.value, vars, 0); ok {
					bgHex = hex
				}
			case borderProps[d.name]:
				if hex, ok := resolveValue(d.value, vars, 0); ok {
					borders = append(borders, hex)
				}
			}
		}

		if base := baseSelector(selector); base != "" && bgHex != "" {
			knownBG[base] = bgHex
		}
		if bgHex == "" && (textHex != "" || len(borders) > 0) {
			if bg := inheritedBackground(selector, knownBG); bg != "" {
				bgHex = bg
			} else {
				bgHex = defaultBG
			}
		}
		if bgHex != "" && isDocumentSelector(selector) {
			defaultBG = bgHex
		}

		if textHex != "" {
			pairs = append(pairs, scan.Pair{
				Scanner:    scanner,
				File:       file,
				Line:       line,
				Context:    selector,
				Role:       scan.RoleText,
				Foreground: textHex,
				Background: bgHex,
			})
		}
		for _, bc := range borders {
			pairs = append(pairs, scan.Pair{
				Scanner:    scanner,
				File:       file,
				Line:       line,
				Context:    selector,
				Role:       scan.RoleBorder,
				Foreground: bc,
				Background: bgHex,
			})
		}
	}
	return pairs
}

// maskComments blanks comments with spaces, keeping newlines so byte
// offsets still map to the original line numbers.
func maskComments(src string) string {
	return commentRE.ReplaceAllStringFunc(src, func(m string) string {
		b := []byte(m)
		blank(b, 0, len(b))
		return string(b)
	})
}

// maskAtRules blanks @media/@layer/@supports headers and their closing
// braces so the wrapped rules parse as top-level, again preserving
// offsets. Nested conditional blocks unwrap on later iterations.
func maskAtRules(src string) string {
	b := []byte(src)
	for {
		loc := atRuleRE.FindIndex(b)
		if loc == nil {
			return string(b)
		}
		if end := matchingBrace(b, loc[1]-1); end >= 0 {
			b[end] = ' '
		}
		blank(b, loc[0], loc[1])
	}
}

func matchingBrace(b []byte, open int) int {
	depth := 0
	for i := open; i < len(b); i++ {
		switch b[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func blank(b []byte, from, to int) {
	for i := from; i < to; i++ {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
}

// cleanSelector trims the raw selector capture and drops any stray
// statements (@charset, @import) that precede it. Internal whitespace
// collapses to single spaces. Returns the selector and the byte offset
// of its first character, for line numbering.
func cleanSelector(masked string, from, to int) (string, int) {
	raw := masked[from:to]
	if i := strings.LastIndexByte(raw, ';'); i >= 0 {
		from += i + 1
		raw = raw[i+1:]
	}
	trimmed := strings.TrimLeft(raw, " \t\r\n")
	from += len(raw) - len(trimmed)
	return strings.Join(strings.Fields(trimmed), " "), from
}

func parseDecls(body string) []decl {
	var decls []decl
	seen := make(map[string]int)
	for _, m := range declRE.FindAllStringSubmatch(body, -1) {
		name := strings.ToLower(strings.TrimSpace(m[1]))
		if strings.HasPrefix(name, "--") {
			continue
		}
		value := strings.TrimSpace(m[2])
		if i, ok := seen[name]; ok {
			decls[i].value = value
			continue
		}
		seen[name] = len(decls)
		decls = append(decls, decl{name: name, value: value})
	}
	return decls
}

// resolveValue resolves var() references before extracting a colour
// token. A var() that resolves to nothing yields no colour even when
// the surrounding value carries other tokens.
func resolveValue(value string, vars map[string]string, depth int) (string, bool) {
	if depth > maxVarDepth {
		return "", false
	}
	value = strings.TrimSpace(value)
	if m := varRefRE.FindStringSubmatch(value); m != nil {
		if def, ok := vars[m[1]]; ok {
			if hex, ok := resolveValue(def, vars, depth+1); ok {
				return hex, true
			}
		}
		if fb := strings.TrimSpace(m[2]); fb != "" {
			return resolveValue(fb, vars, depth+1)
		}
		return "", false
	}
	return scan.ColourToken(value)
}

// baseSelector reduces a selector list to its first selector with any
// pseudo suffix removed, the key used to record known backgrounds.
func baseSelector(selector string) string {
	base := strings.TrimSpace(firstSelector(selector))
	if i := strings.IndexByte(base, ':'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	return base
}

func firstSelector(selector string) string {
	if i := strings.IndexByte(selector, ','); i >= 0 {
		return selector[:i]
	}
	return selector
}

// inheritedBackground walks the selector's combinator parts from the
// innermost outward looking for an element whose background a previous
// rule declared.
func inheritedBackground(selector string, knownBG map[string]string) string {
	parts := partSepRE.Split(strings.TrimSpace(firstSelector(selector)), -1)
	for i := len(parts) - 1; i >= 0; i-- {
		el := elementOf(parts[i])
		if el == "" {
			continue
		}
		if bg, ok := knownBG[el]; ok {
			return bg
		}
	}
	return ""
}

// elementOf strips class, id and pseudo suffixes from a simple
// selector, leaving the bare element name or nothing.
func elementOf(part string) string {
	if i := strings.IndexAny(part, ":.#"); i >= 0 {
		part = part[:i]
	}
	return strings.TrimSpace(part)
}

// isDocumentSelector reports whether the rule styles the document
// itself, in which case its background becomes the file's default.
func isDocumentSelector(selector string) bool {
	base := strings.TrimSpace(firstSelector(selector))
	if strings.EqualFold(base, ":root") {
		return true
	}
	switch strings.ToLower(elementOf(base)) {
	case "html", "body":
		return true
	}
	return false
}
