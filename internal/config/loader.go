package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads and parses the configuration file at path. The format is
// chosen by extension. Unknown keys are errors in every format so a
// typo cannot silently disable a setting. An empty path loads nothing.
func Load(path string) (Config, error) {
	var cfg Config
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config extension: %s", ext)
	}

	return cfg, nil
}

// Merge applies configuration layers over the base settings in order;
// later layers win. Explicitly empty lists clear earlier values.
func Merge(base Settings, layers ...Config) Settings {
	out := base
	for _, layer := range layers {
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Workers = ResolveInt(out.Workers, layer.Workers)
		out.FailOn = ResolveAndTrim(out.FailOn, layer.FailOn)
		out.CVD = ResolveBool(out.CVD, layer.CVD)
		out.PluginDir = ResolveAndTrim(out.PluginDir, layer.PluginDir)
		out.Scanners = ResolveStrings(out.Scanners, layer.Scan.Scanners)
		out.MaxFileSize = ResolveInt64(out.MaxFileSize, layer.Scan.MaxFileSize)
		out.Exclude = ResolveStrings(out.Exclude, layer.Scan.Exclude)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
