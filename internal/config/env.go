package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FromEnv builds a configuration layer from ALBEDO_* environment
// variables. Unset and blank variables contribute nothing; malformed
// values are collected into a single error.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setList := func(target **[]string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		var list []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		*target = &list
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := parseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("%s: expected a non-negative integer, got %q", key, raw))
			return
		}
		value := v
		*target = &value
	}
	setInt64 := func(target **int64, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			errs = append(errs, fmt.Errorf("%s: expected a non-negative integer, got %q", key, raw))
			return
		}
		value := v
		*target = &value
	}

	setString(&cfg.Color, "ALBEDO_COLOR")
	setInt(&cfg.Workers, "ALBEDO_WORKERS")
	setString(&cfg.FailOn, "ALBEDO_FAIL_ON")
	setBool(&cfg.CVD, "ALBEDO_CVD")
	setString(&cfg.PluginDir, "ALBEDO_PLUGIN_DIR")
	setList(&cfg.Scan.Scanners, "ALBEDO_SCANNERS")
	setInt64(&cfg.Scan.MaxFileSize, "ALBEDO_MAX_FILE_SIZE")
	setList(&cfg.Scan.Exclude, "ALBEDO_EXCLUDE")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}

func parseBool(raw, key string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s: expected a boolean, got %q", key, raw)
	}
}
