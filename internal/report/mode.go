// Package report renders audit results for terminals and machine
// consumers.
package report

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Mode selects when colour output is emitted.
type Mode int

const (
	ModeAuto Mode = iota
	ModeAlways
	ModeNever
)

func (m Mode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseMode parses a --color flag value.
func ParseMode(v string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "auto":
		return ModeAuto, nil
	case "always":
		return ModeAlways, nil
	case "never":
		return ModeNever, nil
	default:
		return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
	}
}

// EnvMap converts os.Environ()-style KEY=VALUE entries into a map.
func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "="); idx >= 0 {
			env[entry[:idx]] = entry[idx+1:]
		} else {
			env[entry] = ""
		}
	}
	return env
}

// DetectMode determines the effective colour mode for auto-detection.
//
// Priority order (first match wins):
//  1. TERM=dumb suppresses colours entirely.
//  2. NO_COLOR disables colours.
//  3. CLICOLOR=0 disables colours.
//  4. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value force-enable colours.
//  5. Otherwise colours are emitted only when stdout is a TTY.
func DetectMode(stdout *os.File, env map[string]string) Mode {
	if stdout == nil {
		return ModeNever
	}
	if env != nil {
		if v := strings.ToLower(strings.TrimSpace(env["TERM"])); v == "dumb" {
			return ModeNever
		}
		if v := strings.TrimSpace(env["NO_COLOR"]); v != "" {
			return ModeNever
		}
		if v := strings.TrimSpace(env["CLICOLOR"]); v == "0" {
			return ModeNever
		}
		if forceColour(strings.TrimSpace(env["CLICOLOR_FORCE"])) {
			return ModeAlways
		}
		if forceColour(strings.TrimSpace(env["FORCE_COLOR"])) {
			return ModeAlways
		}
	}
	if isTerminal(stdout) {
		return ModeAlways
	}
	return ModeNever
}

// Enabled reports whether colour should be emitted for the mode.
// ModeAlways and ModeNever are constant; ModeAuto delegates to
// DetectMode on stdout.
func Enabled(mode Mode, stdout *os.File, env map[string]string) bool {
	switch mode {
	case ModeAlways:
		return true
	case ModeNever:
		return false
	default:
		return DetectMode(stdout, env) == ModeAlways
	}
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColour(v string) bool {
	if v == "" {
		return false
	}
	return v != "0"
}
