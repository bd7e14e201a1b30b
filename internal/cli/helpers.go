package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/albedo/internal/audit"
	"github.com/jmylchreest/albedo/internal/config"
	"github.com/jmylchreest/albedo/internal/report"
	"github.com/spf13/cobra"
)

// effectiveSettings resolves the configuration for a command run:
// defaults, then the config file, then ALBEDO_* environment
// variables, then any flags the user set.
func effectiveSettings(cmd *cobra.Command) (config.Settings, error) {
	explicit, _ := cmd.Flags().GetString("config")

	workDir, err := os.Getwd()
	if err != nil {
		workDir = "."
	}

	path, _, err := config.Find(explicit, workDir, os.Getenv("XDG_CONFIG_HOME"), "")
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to locate config: %w", err)
	}

	fileCfg, err := config.Load(path)
	if err != nil {
		return config.Settings{}, fmt.Errorf("failed to load config: %w", err)
	}

	envCfg, err := config.FromEnv(os.Getenv)
	if err != nil {
		return config.Settings{}, err
	}

	settings := config.Merge(config.Defaults(), fileCfg, envCfg)
	applyFlagOverrides(cmd, &settings)

	return config.Normalize(settings)
}

// applyFlagOverrides copies flags the user actually set over the
// merged settings. Changed reports false for flags the command does
// not define, so every command shares this one override pass.
func applyFlagOverrides(cmd *cobra.Command, s *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("color") {
		s.Color, _ = flags.GetString("color")
	}
	if flags.Changed("plugin-dir") {
		s.PluginDir, _ = flags.GetString("plugin-dir")
	}
	if flags.Changed("workers") {
		s.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("cvd") {
		s.CVD, _ = flags.GetBool("cvd")
	}
	if flags.Changed("fail-on") {
		s.FailOn, _ = flags.GetString("fail-on")
	}
	if flags.Changed("scanners") {
		s.Scanners, _ = flags.GetStringSlice("scanners")
	}
	if flags.Changed("max-file-size") {
		s.MaxFileSize, _ = flags.GetInt64("max-file-size")
	}
	if flags.Changed("exclude") {
		s.Exclude, _ = flags.GetStringSlice("exclude")
	}
}

// newPrinter builds a report printer honouring the resolved colour
// mode and the terminal environment.
func newPrinter(settings config.Settings) (*report.Printer, error) {
	mode, err := report.ParseMode(settings.Color)
	if err != nil {
		return nil, err
	}
	on := report.Enabled(mode, os.Stdout, report.EnvMap(os.Environ()))
	return report.NewPrinter(os.Stdout, on), nil
}

// newLogger builds the command logger. Verbose runs log at debug;
// everything else stays at warn so diagnostics do not pollute reports.
func newLogger(cmd *cobra.Command) hclog.Logger {
	level := hclog.Warn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "albedo",
		Output: os.Stderr,
		Level:  level,
	})
}

// pluginDir returns the external scanner directory, from configuration
// or the default under the user's data directory.
func pluginDir(settings config.Settings) (string, error) {
	if settings.PluginDir != "" {
		return settings.PluginDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "albedo", "plugins"), nil
}

// failOnLevel resolves the compliance threshold: the canonicalized
// settings value when one was configured, else the command default.
// "none" is an explicit choice and does not fall through.
func failOnLevel(settings config.Settings, def string) string {
	if settings.FailOn != "" {
		return settings.FailOn
	}
	return def
}

// recordsMissLevel reports whether any check record fails the level.
// Error records always count as misses.
func recordsMissLevel(records []report.Record, level string) bool {
	for _, rec := range records {
		switch {
		case rec.Err != nil:
			return true
		case level == "aa" && !rec.Result.AABody:
			return true
		case level == "aaa" && !rec.Result.AAABody:
			return true
		}
	}
	return false
}

// summaryMissesLevel reports whether an audit summary fails the level.
func summaryMissesLevel(sum audit.Summary, level string) bool {
	switch level {
	case "aa":
		return sum.FailAA+sum.Errors > 0
	case "aaa":
		return sum.FailAA+sum.AAOnly+sum.Errors > 0
	}
	return false
}
