// Package scan provides the interface and base types for colour pair scanners.
package scan

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// DefaultMaxFileBytes is the size cutoff above which scanners skip a
// file. Overridable via Options.MaxFileBytes.
const DefaultMaxFileBytes = 2 << 20

// Role describes what a scanned pair's foreground paints.
type Role string

const (
	// RoleText is rendered text; body-text thresholds apply.
	RoleText Role = "text"
	// RoleGraphic is a non-text element; the 3.0 minimum applies.
	RoleGraphic Role = "graphic"
	// RoleBorder is a border or outline against its surface.
	RoleBorder Role = "border"
	// RoleStroke is an SVG stroke against its sibling fill.
	RoleStroke Role = "stroke"
)

// Pair is one candidate foreground/background combination found in a
// source file. Foreground and Background are raw literals; validation
// happens during the audit so bad literals surface as per-pair records
// instead of aborting a scan.
type Pair struct {
	Scanner    string `json:"scanner"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	Context    string `json:"context,omitempty"`
	Role       Role   `json:"role"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// Options holds options passed to scanners during a scan.
type Options struct {
	// Root is the directory the walk started from; scanners report
	// file paths relative to it.
	Root string

	// Files is the walked file list. Each scanner picks the
	// extensions it understands and ignores the rest.
	Files []string

	// MaxFileBytes skips files larger than this many bytes.
	// Zero means DefaultMaxFileBytes.
	MaxFileBytes int64

	// Args are scanner-specific arguments, keyed by scanner name.
	Args map[string]any

	// Logger receives debug diagnostics. May be nil.
	Logger hclog.Logger
}

// MaxBytes returns the effective file size cutoff.
func (o Options) MaxBytes() int64 {
	if o.MaxFileBytes > 0 {
		return o.MaxFileBytes
	}
	return DefaultMaxFileBytes
}

// Log returns the configured logger, or a null logger when none is set.
func (o Options) Log() hclog.Logger {
	if o.Logger == nil {
		return hclog.NewNullLogger()
	}
	return o.Logger
}

// Scanner extracts candidate colour pairs from source files.
type Scanner interface {
	// Name returns the scanner's name (e.g., "css", "svg").
	Name() string

	// Description returns a human-readable description of the scanner.
	Description() string

	// Scan walks opts.Files and returns the pairs found. File-level
	// read errors are logged and skipped; a non-nil error means the
	// scanner could not run at all.
	Scan(ctx context.Context, opts Options) ([]Pair, error)
}

// Registry holds all registered scanners.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry creates a new scanner registry.
func NewRegistry() *Registry {
	return &Registry{
		scanners: make(map[string]Scanner),
	}
}

// Register adds a scanner to the registry.
func (r *Registry) Register(s Scanner) {
	r.scanners[s.Name()] = s
}

// Get retrieves a scanner by name.
func (r *Registry) Get(name string) (Scanner, bool) {
	s, ok := r.scanners[name]
	return s, ok
}

// List returns all registered scanner names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.scanners))
	for name := range r.scanners {
		names = append(names, name)
	}
	return names
}

// All returns all registered scanners.
func (r *Registry) All() map[string]Scanner {
	// Return a copy to prevent external modification
	scanners := make(map[string]Scanner, len(r.scanners))
	for name, s := range r.scanners {
		scanners[name] = s
	}
	return scanners
}

// Dedupe removes repeated pairs, keeping first occurrences in order.
// Two pairs are the same when file, role, context and both colours
// match; line numbers are ignored so a selector repeated across a
// file reports once.
func Dedupe(pairs []Pair) []Pair {
	type key struct {
		file, ctx, fg, bg string
		role              Role
	}
	seen := make(map[key]bool, len(pairs))
	out := pairs[:0]
	for _, p := range pairs {
		k := key{file: p.File, ctx: p.Context, fg: p.Foreground, bg: p.Background, role: p.Role}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}
