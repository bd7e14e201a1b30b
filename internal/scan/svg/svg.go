// Package svg extracts fill and stroke colour pairs from SVG
// documents, including inline SVG embedded in JSX/TSX components.
// Fill and stroke inherit through group nesting, and the first filled
// rect stands in for the canvas background.
package svg

import (
	"context"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/scan"
)

var textElements = map[string]bool{
	"text":     true,
	"tspan":    true,
	"textPath": true,
}

var graphicElements = map[string]bool{
	"rect":     true,
	"circle":   true,
	"ellipse":  true,
	"line":     true,
	"polyline": true,
	"polygon":  true,
	"path":     true,
}

var (
	anchoredHexRE = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}){1,2}$`)
	svgBlockRE    = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	jsxExprRE     = regexp.MustCompile(`=\{[^}]+\}`)
)

// jsxAttrs maps camelCase JSX attribute names to their SVG spellings
// so extracted inline blocks parse as XML.
var jsxAttrs = strings.NewReplacer(
	"className=", "class=",
	"strokeWidth=", "stroke-width=",
	"strokeLinecap=", "stroke-linecap=",
	"strokeLinejoin=", "stroke-linejoin=",
	"fillRule=", "fill-rule=",
	"clipRule=", "clip-rule=",
	"clipPath=", "clip-path=",
)

type Scanner struct{}

func New() *Scanner { return &Scanner{} }

func (s *Scanner) Name() string { return "svg" }

func (s *Scanner) Description() string {
	return "Fill and stroke colours in SVG files and inline JSX/TSX SVG"
}

func (s *Scanner) Scan(ctx context.Context, opts scan.Options) ([]scan.Pair, error) {
	log := opts.Log().Named("svg")

	var pairs []scan.Pair
	for _, path := range opts.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".svg" && ext != ".jsx" && ext != ".tsx" {
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

		src := string(data)
		rel := scan.Rel(opts.Root, path)
		var elems []element
		if ext == ".svg" {
			elems, err = walkDocument(src, 1)
			if err != nil {
				// Malformed XML; fall back to extracting embedded
				// <svg> blocks the way JSX sources are handled.
				log.Debug("document parse failed, extracting inline blocks", "path", path, "error", err)
				elems = walkInlineBlocks(src)
			}
		} else {
			elems = walkInlineBlocks(src)
		}

		filePairs := buildPairs(s.Name(), rel, elems, log)
		pairs = append(pairs, scan.Dedupe(filePairs)...)
	}
	return pairs, nil
}

type element struct {
	tag             string
	fillHex         string
	strokeHex       string
	isText          bool
	isGraphic       bool
	hasCurrentColor bool
	line            int
}

// walkDocument tokenizes one XML document, resolving fill and stroke
// with group inheritance. baseLine offsets line numbers for fragments
// embedded in a larger file.
func walkDocument(src string, baseLine int) ([]element, error) {
	dec := xml.NewDecoder(strings.NewReader(src))

	type frame struct {
		fill   string
		stroke string
	}
	stack := []frame{{}}
	var elems []element

	for {
		before := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			return elems, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			parent := stack[len(stack)-1]
			fill, stroke := elementColours(t)
			if fill == "" {
				fill = parent.fill
			}
			if stroke == "" {
				stroke = parent.stroke
			}

			tag := t.Name.Local
			e := element{
				tag:       tag,
				isText:    textElements[tag],
				isGraphic: graphicElements[tag],
				line:      baseLine + strings.Count(src[:before], "\n"),
			}
			lowered := strings.ToLower(fill + " " + stroke)
			e.hasCurrentColor = strings.Contains(lowered, "currentcolor")
			if hex, ok := parseColour(fill); ok {
				e.fillHex = hex
			}
			if hex, ok := parseColour(stroke); ok {
				e.strokeHex = hex
			}
			elems = append(elems, e)

			next := frame{fill: parent.fill, stroke: parent.stroke}
			if fill != "" && fill != "none" {
				next.fill = fill
			}
			if stroke != "" && stroke != "none" {
				next.stroke = stroke
			}
			stack = append(stack, next)

		case xml.EndElement:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

// walkInlineBlocks extracts <svg> blocks from JSX/TSX source, rewrites
// JSX attribute syntax to plain XML and walks whatever parses. Blocks
// that still fail to parse are skipped.
func walkInlineBlocks(src string) []element {
	var elems []element
	for _, loc := range svgBlockRE.FindAllStringIndex(src, -1) {
		block := jsxAttrs.Replace(src[loc[0]:loc[1]])
		block = jsxExprRE.ReplaceAllString(block, `="dynamic"`)

		blockLine := 1 + strings.Count(src[:loc[0]], "\n")
		blockElems, err := walkDocument(block, blockLine)
		if err != nil {
			continue
		}
		elems = append(elems, blockElems...)
	}
	return elems
}

func elementColours(t xml.StartElement) (fill, stroke string) {
	var style string
	for _, a := range t.Attr {
		switch a.Name.Local {
		case "fill":
			fill = a.Value
		case "stroke":
			stroke = a.Value
		case "style":
			style = a.Value
		}
	}
	for _, part := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "fill":
			fill = strings.TrimSpace(value)
		case "stroke":
			stroke = strings.TrimSpace(value)
		}
	}
	return fill, stroke
}

// parseColour resolves one SVG paint value to hex. Unlike free-text
// token extraction this anchors hex values, so gradient references
// like url(#dea) never read as colours.
func parseColour(value string) (string, bool) {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "", "none", "transparent", "inherit", "currentcolor":
		return "", false
	}
	if strings.HasPrefix(value, "url(") {
		return "", false
	}
	if strings.HasPrefix(value, "#") {
		if !anchoredHexRE.MatchString(value) {
			return "", false
		}
		hex, err := colour.Normalize(value)
		if err != nil {
			return "", false
		}
		return hex, true
	}
	return scan.ColourToken(value)
}

// buildPairs derives contrast pairs from the walked elements. The
// canvas background is the first filled rect, else white.
func buildPairs(scanner, file string, elems []element, log hclog.Logger) []scan.Pair {
	bg := "#ffffff"
	for _, e := range elems {
		if e.tag == "rect" && e.fillHex != "" {
			bg = e.fillHex
			break
		}
	}

	var pairs []scan.Pair
	emit := func(e element, src string, role scan.Role, fg, background string) {
		pairs = append(pairs, scan.Pair{
			Scanner:    scanner,
			File:       file,
			Line:       e.line,
			Context:    "<" + e.tag + "> " + src,
			Role:       role,
			Foreground: fg,
			Background: background,
		})
	}

	for _, e := range elems {
		if e.hasCurrentColor {
			log.Debug("skipping element, colour depends on runtime context", "file", file, "element", e.tag, "line", e.line)
			continue
		}
		if e.isText && e.fillHex != "" {
			emit(e, "fill", scan.RoleText, e.fillHex, bg)
		}
		if !e.isGraphic {
			continue
		}
		if e.fillHex != "" && e.fillHex != bg {
			emit(e, "fill", scan.RoleGraphic, e.fillHex, bg)
		}
		if e.strokeHex != "" && e.fillHex != "" && e.strokeHex != e.fillHex {
			emit(e, "stroke", scan.RoleStroke, e.strokeHex, e.fillHex)
		}
		if e.strokeHex != "" && e.strokeHex != bg {
			emit(e, "stroke", scan.RoleStroke, e.strokeHex, bg)
		}
	}
	return pairs
}
