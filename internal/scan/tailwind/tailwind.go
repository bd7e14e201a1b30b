// Package tailwind extracts Tailwind utility colour classes from
// JSX/TSX/JS/TS sources and pairs text, background and border classes
// that style the same element. Variant prefixes (dark:, hover:,
// focus:) group separately so a dark-mode pairing never mixes with the
// base one.
package tailwind

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jmylchreest/albedo/internal/scan"
)

var (
	attrRE       = regexp.MustCompile(`(?s)(?:className|class)\s*=\s*(?:\{[^}]*\}|"[^"]*"|'[^']*')`)
	utilityFnRE  = regexp.MustCompile(`(?s)(?:clsx|cn|twMerge|classNames|cva|tw)\s*\(([^)]{0,2000})\)`)
	twTemplateRE = regexp.MustCompile("(?s)tw\\s*`([^`]*)`")
	innerStrRE   = regexp.MustCompile("['\"`]([^'\"`]+)['\"`]")
	ternaryRE    = regexp.MustCompile("[?:]\\s*['\"`]([^'\"`]+)['\"`]")

	// Anchored against single class tokens; the extraction splits on
	// the whitespace and quote boundaries the token sits between.
	classTokenRE = regexp.MustCompile(`^((?:(?:dark|hover|focus|active|group-hover|disabled|placeholder|sm|md|lg|xl|2xl):)*)(text|bg|border)-([\w]+-\d+|white|black|inherit|transparent|current)$`)
)

var supportedExt = map[string]bool{
	".jsx": true,
	".tsx": true,
	".js":  true,
	".ts":  true,
}

// Backgrounds assumed when a variant group declares none of its own.
// The dark default is slate-900, the common dark-mode page colour.
const (
	defaultBG     = "#ffffff"
	darkDefaultBG = "#0f172a"
)

type Scanner struct{}

func New() *Scanner { return &Scanner{} }

func (s *Scanner) Name() string { return "tailwind" }

func (s *Scanner) Description() string {
	return "Tailwind utility classes (text-*, bg-*, border-*) in JSX/TSX/JS/TS sources"
}

func (s *Scanner) Scan(ctx context.Context, opts scan.Options) ([]scan.Pair, error) {
	log := opts.Log().Named("tailwind")

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

type classString struct {
	value string
	line  int
}

func scanSource(scanner, file, src string) []scan.Pair {
	var pairs []scan.Pair
	for _, cs := range extractClassStrings(src) {
		pairs = append(pairs, pairClasses(scanner, file, cs)...)
	}
	return pairs
}

// extractClassStrings pulls candidate class lists from className
// attributes, class-combining helper calls, tw tagged templates and
// ternary branches. Lines refer to the enclosing expression.
func extractClassStrings(src string) []classString {
	var out []classString
	add := func(start int, values ...string) {
		line := 1 + strings.Count(src[:start], "\n")
		for _, v := range values {
			if v != "" {
				out = append(out, classString{value: v, line: line})
			}
		}
	}

	for _, loc := range attrRE.FindAllStringIndex(src, -1) {
		add(loc[0], innerStrings(src[loc[0]:loc[1]])...)
	}
	for _, loc := range utilityFnRE.FindAllStringSubmatchIndex(src, -1) {
		add(loc[0], innerStrings(src[loc[2]:loc[3]])...)
	}
	for _, loc := range twTemplateRE.FindAllStringSubmatchIndex(src, -1) {
		add(loc[0], src[loc[2]:loc[3]])
	}
	for _, loc := range ternaryRE.FindAllStringSubmatchIndex(src, -1) {
		add(loc[0], src[loc[2]:loc[3]])
	}
	return out
}

func innerStrings(s string) []string {
	ms := innerStrRE.FindAllStringSubmatch(s, -1)
	vals := make([]string, 0, len(ms))
	for _, m := range ms {
		vals = append(vals, m[1])
	}
	return vals
}

type classRef struct {
	class string
	hex   string
}

type variantGroup struct {
	text, bg, border []classRef
}

// pairClasses groups one class string's colour utilities by variant
// and emits text-on-background and border-on-background pairs.
func pairClasses(scanner, file string, cs classString) []scan.Pair {
	groups := make(map[string]*variantGroup)
	var order []string

	for _, tok := range splitClasses(cs.value) {
		m := classTokenRE.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		hex, ok := Resolve(m[3])
		if !ok {
			continue
		}
		v := classVariant(tok)
		g := groups[v]
		if g == nil {
			g = &variantGroup{}
			groups[v] = g
			order = append(order, v)
		}
		ref := classRef{class: tok, hex: hex}
		switch m[2] {
		case "text":
			g.text = append(g.text, ref)
		case "bg":
			g.bg = append(g.bg, ref)
		case "border":
			g.border = append(g.border, ref)
		}
	}

	ctx := truncateContext(cs.value)
	var pairs []scan.Pair
	emit := func(role scan.Role, fg, bg string) {
		pairs = append(pairs, scan.Pair{
			Scanner:    scanner,
			File:       file,
			Line:       cs.line,
			Context:    ctx,
			Role:       role,
			Foreground: fg,
			Background: bg,
		})
	}

	for _, v := range order {
		g := groups[v]
		bgs := g.bg
		if len(bgs) == 0 && v != "base" {
			if base := groups["base"]; base != nil {
				bgs = base.bg
			}
		}
		fallback := defaultBG
		if v == "dark" {
			fallback = darkDefaultBG
		}

		for _, t := range g.text {
			if len(bgs) > 0 {
				for _, b := range bgs {
					emit(scan.RoleText, t.hex, b.hex)
				}
			} else {
				emit(scan.RoleText, t.hex, fallback)
			}
		}
		for _, b := range g.border {
			bg := fallback
			if len(bgs) > 0 {
				bg = bgs[0].hex
			}
			emit(scan.RoleBorder, b.hex, bg)
		}
	}
	return pairs
}

func splitClasses(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', '\r', '\'', '"', '`':
			return true
		}
		return false
	})
}

// classVariant buckets a class by its most significant variant prefix.
func classVariant(class string) string {
	switch {
	case strings.Contains(class, "dark:"):
		return "dark"
	case strings.Contains(class, "hover:"):
		return "hover"
	case strings.Contains(class, "focus:"):
		return "focus"
	default:
		return "base"
	}
}

func truncateContext(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 80 {
		return s[:80]
	}
	return s
}
