package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	dotFilenames = []string{
		".albedo.yaml",
		".albedo.yml",
		".albedo.toml",
		".albedo.json",
	}
	xdgFilenames = []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}
)

// Find locates the configuration file and reports where it came from
// ("explicit", "cwd" or "xdg"). An explicit path must exist; the other
// sources are optional and an empty path means no file was found.
func Find(explicitPath, workDir, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		info, err := os.Stat(explicit)
		if err != nil {
			return "", "", err
		}
		if info.IsDir() {
			return "", "", fmt.Errorf("config path %q is a directory", explicit)
		}
		return explicit, "explicit", nil
	}

	dir := strings.TrimSpace(workDir)
	if dir == "" {
		dir = "."
	}
	for _, name := range dotFilenames {
		candidate := filepath.Join(dir, name)
		if fileExists(candidate) {
			return candidate, "cwd", nil
		}
	}

	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" {
		homeDir := strings.TrimSpace(home)
		if homeDir == "" {
			if h, err := os.UserHomeDir(); err == nil {
				homeDir = h
			}
		}
		if homeDir != "" {
			xdgRoot = filepath.Join(homeDir, ".config")
		}
	}
	if xdgRoot != "" {
		for _, name := range xdgFilenames {
			candidate := filepath.Join(xdgRoot, "albedo", name)
			if fileExists(candidate) {
				return candidate, "xdg", nil
			}
		}
	}

	return "", "", nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
