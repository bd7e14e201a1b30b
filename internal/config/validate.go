package config

import (
	"fmt"
	"strings"
)

// CanonicalizeFailOn validates a fail_on value. Empty stays empty so
// each command can apply its own default level.
func CanonicalizeFailOn(raw string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "", "none", "aa", "aaa":
		return level, nil
	default:
		return "", fmt.Errorf("invalid fail_on level: %s (expected aa, aaa or none)", raw)
	}
}

// ValidateWorkers rejects negative worker counts; zero means one
// worker per CPU.
func ValidateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("workers must be zero or positive, got %d", n)
	}
	return nil
}

// ValidateMaxFileSize rejects negative size limits; zero means the
// built-in default.
func ValidateMaxFileSize(n int64) error {
	if n < 0 {
		return fmt.Errorf("max file size must be zero or positive, got %d", n)
	}
	return nil
}

// Normalize canonicalizes and validates merged settings.
func Normalize(s Settings) (Settings, error) {
	var err error
	if s.FailOn, err = CanonicalizeFailOn(s.FailOn); err != nil {
		return s, err
	}
	if err := ValidateWorkers(s.Workers); err != nil {
		return s, err
	}
	if err := ValidateMaxFileSize(s.MaxFileSize); err != nil {
		return s, err
	}
	return s, nil
}
