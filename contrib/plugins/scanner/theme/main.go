// theme - VS Code Theme Scanner (Albedo Scanner Plugin Example)
//
// Scans VS Code style colour theme files (*-color-theme.json,
// *.theme.json, theme.json) and pairs every "<scope>.foreground"
// entry with its matching "<scope>.background" so the pairs can be
// audited for WCAG contrast.
//
// This is an example albedo scanner plugin written in Go. It demonstrates:
// - Plugin metadata via the --plugin-info flag
// - Serving a scanner over the go-plugin RPC protocol
// - Respecting the host's file list and size limit
// - Reporting file paths relative to the scan root
//
// Build:
//   go build -o albedo-scanner-theme
//
// Usage:
//   mkdir -p ~/.local/share/albedo/plugins
//   cp albedo-scanner-theme ~/.local/share/albedo/plugins/
//   albedo scanners
//   albedo scan --scanners theme ./themes
//
// Author: Albedo Contributors
// License: MIT

package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmylchreest/albedo/pkg/plugin"
)

// themeScanner implements the plugin.ScannerPlugin interface.
type themeScanner struct{}

func (s *themeScanner) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "theme",
		Type:            plugin.PluginTypeScanner,
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Foreground/background pairs from VS Code style theme JSON",
		PluginProtocol:  plugin.ProtocolGoPlugin,
	}
}

func (s *themeScanner) Scan(ctx context.Context, req plugin.ScanRequest) ([]plugin.PairRecord, error) {
	var pairs []plugin.PairRecord
	for _, path := range req.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !themeFile(path) {
			continue
		}
		if req.MaxFileBytes > 0 {
			info, err := os.Stat(path)
			if err != nil || info.Size() > req.MaxFileBytes {
				continue
			}
		}
		// Unreadable or malformed theme files are skipped; the host
		// treats a scanner error as fatal for the whole scan.
		found, err := scanTheme(path, rel(req.Root, path))
		if err != nil {
			continue
		}
		pairs = append(pairs, found...)
	}
	return pairs, nil
}

func themeFile(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	return name == "theme.json" ||
		strings.HasSuffix(name, "-color-theme.json") ||
		strings.HasSuffix(name, ".theme.json")
}

// scanTheme pairs <scope>.foreground with <scope>.background inside
// the theme's "colors" object. Scopes missing either half are skipped.
func scanTheme(path, relPath string) ([]plugin.PairRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var theme struct {
		Colors map[string]string `json:"colors"`
	}
	if err := json.Unmarshal(data, &theme); err != nil {
		return nil, err
	}

	scopes := make([]string, 0, len(theme.Colors))
	for key := range theme.Colors {
		if scope, ok := strings.CutSuffix(key, ".foreground"); ok {
			scopes = append(scopes, scope)
		}
	}
	sort.Strings(scopes)

	var pairs []plugin.PairRecord
	for _, scope := range scopes {
		fg := theme.Colors[scope+".foreground"]
		bg, ok := theme.Colors[scope+".background"]
		if !ok || fg == "" || bg == "" {
			continue
		}
		pairs = append(pairs, plugin.PairRecord{
			File:       relPath,
			Context:    scope,
			Role:       plugin.RoleText,
			Foreground: fg,
			Background: bg,
		})
	}
	return pairs, nil
}

func rel(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	r, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(r, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

func main() {
	plugin.Serve(&themeScanner{})
}
