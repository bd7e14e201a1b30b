package cli

import (
	"testing"

	"github.com/jmylchreest/albedo/internal/audit"
	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/config"
	"github.com/jmylchreest/albedo/internal/report"
	"github.com/spf13/cobra"
)

func TestFailOnLevel(t *testing.T) {
	tests := []struct {
		configured string
		def        string
		want       string
	}{
		{"", "none", "none"},
		{"", "aa", "aa"},
		{"aa", "none", "aa"},
		{"aaa", "aa", "aaa"},
		{"none", "aa", "none"},
	}

	for _, tt := range tests {
		settings := config.Settings{FailOn: tt.configured}
		if got := failOnLevel(settings, tt.def); got != tt.want {
			t.Errorf("failOnLevel(%q, %q) = %q, want %q", tt.configured, tt.def, got, tt.want)
		}
	}
}

func TestRecordsMissLevel(t *testing.T) {
	record := func(fg, bg string) report.Record {
		res, err := colour.AnalyzePair(fg, bg, colour.Options{})
		return report.Record{Result: res, Err: err, TextInput: fg, BgInput: bg}
	}

	passAAA := record("#000000", "#ffffff") // 21:1
	aaOnly := record("#6b7280", "#ffffff")  // ~4.83:1
	failAA := record("#777777", "#ffffff")  // ~4.48:1
	errored := record("oops", "#ffffff")

	tests := []struct {
		name    string
		records []report.Record
		level   string
		want    bool
	}{
		{"all pass aa", []report.Record{passAAA, aaOnly}, "aa", false},
		{"fail aa", []report.Record{passAAA, failAA}, "aa", true},
		{"aa only misses aaa", []report.Record{aaOnly}, "aaa", true},
		{"aaa passes aaa", []report.Record{passAAA}, "aaa", false},
		{"error counts", []report.Record{errored}, "aa", true},
		{"error counts at aaa", []report.Record{errored}, "aaa", true},
	}

	for _, tt := range tests {
		if got := recordsMissLevel(tt.records, tt.level); got != tt.want {
			t.Errorf("%s: recordsMissLevel(level=%q) = %v, want %v", tt.name, tt.level, got, tt.want)
		}
	}
}

func TestSummaryMissesLevel(t *testing.T) {
	tests := []struct {
		name  string
		sum   audit.Summary
		level string
		want  bool
	}{
		{"clean at aa", audit.Summary{Total: 3, PassAAA: 2, AAOnly: 1}, "aa", false},
		{"failures at aa", audit.Summary{Total: 3, FailAA: 1, PassAAA: 2}, "aa", true},
		{"errors at aa", audit.Summary{Total: 2, Errors: 1, PassAAA: 1}, "aa", true},
		{"aa only at aaa", audit.Summary{Total: 2, AAOnly: 1, PassAAA: 1}, "aaa", true},
		{"clean at aaa", audit.Summary{Total: 1, PassAAA: 1}, "aaa", false},
		{"none never misses", audit.Summary{Total: 2, FailAA: 2}, "none", false},
	}

	for _, tt := range tests {
		if got := summaryMissesLevel(tt.sum, tt.level); got != tt.want {
			t.Errorf("%s: summaryMissesLevel(level=%q) = %v, want %v", tt.name, tt.level, got, tt.want)
		}
	}
}

func TestApplyFlagOverrides(t *testing.T) {
	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
		cmd.Flags().String("color", "", "")
		cmd.Flags().Bool("cvd", false, "")
		cmd.Flags().Int("workers", 0, "")
		cmd.Flags().String("fail-on", "aa", "")
		cmd.Flags().StringSlice("scanners", nil, "")
		return cmd
	}

	t.Run("unset flags keep settings", func(t *testing.T) {
		cmd := newCmd()
		if err := cmd.Flags().Parse(nil); err != nil {
			t.Fatal(err)
		}
		s := config.Settings{Color: "never", CVD: true, Workers: 4, FailOn: "aaa"}
		applyFlagOverrides(cmd, &s)
		if s.Color != "never" || !s.CVD || s.Workers != 4 || s.FailOn != "aaa" {
			t.Errorf("unset flags changed settings: %+v", s)
		}
	})

	t.Run("set flags win", func(t *testing.T) {
		cmd := newCmd()
		err := cmd.Flags().Parse([]string{"--color", "always", "--cvd=false", "--workers", "2", "--scanners", "css,svg"})
		if err != nil {
			t.Fatal(err)
		}
		s := config.Settings{Color: "never", CVD: true, Workers: 8, Scanners: []string{"tailwind"}}
		applyFlagOverrides(cmd, &s)
		if s.Color != "always" {
			t.Errorf("Color = %q, want always", s.Color)
		}
		if s.CVD {
			t.Error("CVD should be overridden to false")
		}
		if s.Workers != 2 {
			t.Errorf("Workers = %d, want 2", s.Workers)
		}
		if len(s.Scanners) != 2 || s.Scanners[0] != "css" || s.Scanners[1] != "svg" {
			t.Errorf("Scanners = %v, want [css svg]", s.Scanners)
		}
	})

	t.Run("undefined flags are ignored", func(t *testing.T) {
		cmd := &cobra.Command{Use: "bare", Run: func(*cobra.Command, []string) {}}
		if err := cmd.Flags().Parse(nil); err != nil {
			t.Fatal(err)
		}
		s := config.Settings{Color: "auto", Workers: 3}
		applyFlagOverrides(cmd, &s)
		if s.Color != "auto" || s.Workers != 3 {
			t.Errorf("settings changed without flags: %+v", s)
		}
	})
}
