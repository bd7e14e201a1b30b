package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/albedo/internal/audit"
	"github.com/jmylchreest/albedo/internal/scan"
	"github.com/jmylchreest/albedo/internal/scan/css"
	"github.com/jmylchreest/albedo/internal/scan/imagescan"
	"github.com/jmylchreest/albedo/internal/scan/script"
	"github.com/jmylchreest/albedo/internal/scan/svg"
	"github.com/jmylchreest/albedo/internal/scan/tailwind"
	"github.com/spf13/cobra"
)

var (
	// Scan command flags
	scanJSON bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [PATH ...]",
	Short: "Scan a project tree for inaccessible colour combinations",
	Long: `Walk one or more paths (default the working directory), extract
foreground/background colour pairs from the sources found, and audit
every pair against the WCAG contrast thresholds.

Builtin scanners cover CSS and preprocessor files, Tailwind utility
classes in markup, SVG shapes and text, colour literals in scripts,
and dominant colour pairs in raster images. External scanner plugins
found in the plugin directory join automatically.

Examples:
  # Scan the current project
  albedo scan

  # Scan specific trees with CVD analysis, JSON for tooling
  albedo scan --cvd --json src/ public/

  # Only the css scanner, gate CI on AAA
  albedo scan --scanners css --fail-on aaa`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit JSON instead of the human report")
	scanCmd.Flags().Bool("cvd", false, "include colour vision deficiency analysis")
	scanCmd.Flags().Int("workers", 0, "analysis workers (0 = all CPUs)")
	scanCmd.Flags().String("fail-on", "aa", "exit 1 when a pair misses this level (aa, aaa, none)")
	scanCmd.Flags().StringSlice("scanners", nil, "scanners to run (default all)")
	scanCmd.Flags().Int64("max-file-size", 0, "skip files larger than this many bytes")
	scanCmd.Flags().StringSlice("exclude", nil, "glob patterns for paths to skip")
}

// defaultExcludedDirs are directory names never descended into.
var defaultExcludedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".next":        true,
	"dist":         true,
	"build":        true,
	"__pycache__":  true,
	".turbo":       true,
	".cache":       true,
	"coverage":     true,
}

// builtinScanners returns the builtin scanners in display order.
func builtinScanners() []scan.Scanner {
	return []scan.Scanner{
		css.New(),
		tailwind.New(),
		svg.New(),
		script.New(),
		imagescan.New(),
	}
}

// newRegistry registers the builtin scanners plus any external plugins
// found in dir, returning the registry and the display order. An
// external plugin whose name collides with a builtin is skipped.
func newRegistry(dir string, log hclog.Logger) (*scan.Registry, []string) {
	reg := scan.NewRegistry()
	order := make([]string, 0, 8)
	for _, s := range builtinScanners() {
		reg.Register(s)
		order = append(order, s.Name())
	}
	for _, ext := range scan.DiscoverExternal(dir, log) {
		if _, exists := reg.Get(ext.Name()); exists {
			log.Warn("external scanner shadows a builtin, skipping", "name", ext.Name(), "path", ext.Path())
			continue
		}
		reg.Register(ext)
		order = append(order, ext.Name())
	}
	return reg, order
}

// enabledScanners resolves the requested scanner names, or returns
// every registered scanner when none were requested.
func enabledScanners(reg *scan.Registry, order, requested []string) ([]scan.Scanner, error) {
	if len(requested) == 0 {
		requested = order
	}
	out := make([]scan.Scanner, 0, len(requested))
	for _, name := range requested {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		s, ok := reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown scanner %q (available: %s)", name, strings.Join(order, ", "))
		}
		out = append(out, s)
	}
	return out, nil
}

// walkFiles expands the given roots into the regular files below
// them. File arguments pass through as-is; directories are walked
// with the default directory exclusions and the configured glob
// excludes applied. Duplicates across overlapping roots collapse.
func walkFiles(roots, excludes []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if info.Mode().IsRegular() {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel := scan.Rel(root, p)
			if d.IsDir() {
				if p == root {
					return nil
				}
				if defaultExcludedDirs[d.Name()] || excludedPath(rel, excludes) {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if excludedPath(rel, excludes) {
				return nil
			}
			add(p)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// excludedPath reports whether the slash-relative path matches any of
// the exclude globs. Globs match the whole relative path or its base
// name; a trailing /** excludes the named subtree.
func excludedPath(rel string, globs []string) bool {
	rel = filepath.ToSlash(rel)
	for _, g := range globs {
		g = filepath.ToSlash(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(g, "/**"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
			continue
		}
		if ok, err := path.Match(g, rel); err == nil && ok {
			return true
		}
		if ok, err := path.Match(g, path.Base(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func runScan(cmd *cobra.Command, args []string) error {
	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	if killed, err := scan.KillOrphanPlugins(); err != nil {
		log.Debug("orphan plugin sweep failed", "error", err)
	} else if killed > 0 {
		log.Debug("killed orphaned scanner plugins", "count", killed)
	}

	dir, err := pluginDir(settings)
	if err != nil {
		return err
	}
	reg, order := newRegistry(dir, log)

	scanners, err := enabledScanners(reg, order, settings.Scanners)
	if err != nil {
		return err
	}

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	files, err := walkFiles(roots, settings.Exclude)
	if err != nil {
		return err
	}
	log.Debug("walk finished", "roots", len(roots), "files", len(files))

	// Reports are rooted only for a single directory argument; any
	// other shape keeps full paths so locations stay unambiguous.
	root := ""
	if len(roots) == 1 {
		if info, err := os.Stat(roots[0]); err == nil && info.IsDir() {
			root = roots[0]
		}
	}

	opts := scan.Options{
		Root:         root,
		Files:        files,
		MaxFileBytes: settings.MaxFileSize,
		Logger:       log,
	}

	ctx := cmd.Context()
	var pairs []scan.Pair
	for _, s := range scanners {
		found, err := s.Scan(ctx, opts)
		if err != nil {
			return fmt.Errorf("scanner %s failed: %w", s.Name(), err)
		}
		log.Debug("scanner finished", "scanner", s.Name(), "pairs", len(found))
		pairs = append(pairs, found...)
	}
	pairs = scan.Dedupe(pairs)

	res, err := audit.Run(ctx, pairs, audit.Options{
		Workers:    settings.Workers,
		IncludeCVD: settings.CVD,
	})
	if err != nil {
		return err
	}

	printer, err := newPrinter(settings)
	if err != nil {
		return err
	}
	if scanJSON {
		if err := printer.AuditJSON(res); err != nil {
			return err
		}
	} else {
		printer.Audit(res, root)
	}

	if level := failOnLevel(settings, "aa"); level != "none" && summaryMissesLevel(res.Summary, level) {
		os.Exit(1)
	}
	return nil
}
