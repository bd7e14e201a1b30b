// Package config loads optional file and environment configuration
// and merges it beneath command-line flags.
package config

// Config mirrors the configuration file. Every field is a pointer so
// an absent key stays distinguishable from a zero value when layers
// are merged.
type Config struct {
	Color     *string    `yaml:"color" toml:"color" json:"color,omitempty"`
	Workers   *int       `yaml:"workers" toml:"workers" json:"workers,omitempty"`
	FailOn    *string    `yaml:"fail_on" toml:"fail_on" json:"fail_on,omitempty"`
	CVD       *bool      `yaml:"cvd" toml:"cvd" json:"cvd,omitempty"`
	PluginDir *string    `yaml:"plugin_dir" toml:"plugin_dir" json:"plugin_dir,omitempty"`
	Scan      ScanConfig `yaml:"scan" toml:"scan" json:"scan,omitempty"`
}

// ScanConfig is the scan-specific block.
type ScanConfig struct {
	Scanners    *[]string `yaml:"scanners" toml:"scanners" json:"scanners,omitempty"`
	MaxFileSize *int64    `yaml:"max_file_size" toml:"max_file_size" json:"max_file_size,omitempty"`
	Exclude     *[]string `yaml:"exclude" toml:"exclude" json:"exclude,omitempty"`
}

// Settings are the effective values after the defaults and every
// configuration layer have been applied.
type Settings struct {
	Color       string
	Workers     int
	FailOn      string
	CVD         bool
	PluginDir   string
	Scanners    []string
	MaxFileSize int64
	Exclude     []string
}

// Defaults returns the base settings layer. FailOn stays empty here;
// each command applies its own default level.
func Defaults() Settings {
	return Settings{
		Color: "auto",
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
