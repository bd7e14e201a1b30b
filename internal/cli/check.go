package cli

import (
	"fmt"
	"os"

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/report"
	"github.com/spf13/cobra"
)

var (
	// Check command flags
	checkJSON     bool
	checkMinRatio float64
)

var checkCmd = &cobra.Command{
	Use:   "check FOREGROUND BACKGROUND [FOREGROUND BACKGROUND ...]",
	Short: "Check colour pairs against WCAG contrast thresholds",
	Long: `Check one or more foreground/background colour pairs against the WCAG 2.x
contrast thresholds.

Colours may be hex (3, 4, 6 or 8 digits, the # is optional, alpha is
ignored) or one of the supported CSS colour names. Failing pairs
include suggested replacements that keep the original hue. Invalid
colours become error records beside the successful results.

Examples:
  # Check a single pair
  albedo check "#777777" "#ffffff"

  # Check several pairs with colour vision analysis
  albedo check --cvd "#ff0000" "#00ff00" "#0000ff" "#000000"

  # Machine-readable output for CI, failing the build below AA
  albedo check --json --fail-on aa "#6b7280" "#ffffff"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit JSON instead of the human report")
	checkCmd.Flags().Float64Var(&checkMinRatio, "min-ratio", 0, "additional required ratio to judge each pair against")
	checkCmd.Flags().Bool("cvd", false, "include colour vision deficiency analysis")
	checkCmd.Flags().String("fail-on", "none", "exit 1 when a pair misses this level (aa, aaa, none)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args)%2 != 0 {
		return fmt.Errorf("colours must come in foreground/background pairs: %q has no background", args[len(args)-1])
	}
	if checkMinRatio < 0 {
		return fmt.Errorf("min-ratio must not be negative, got %g", checkMinRatio)
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}

	opts := colour.Options{
		IncludeCVD: settings.CVD,
		MinRatio:   checkMinRatio,
	}

	records := make([]report.Record, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		res, err := colour.AnalyzePair(args[i], args[i+1], opts)
		records = append(records, report.Record{
			Result:    res,
			Err:       err,
			TextInput: args[i],
			BgInput:   args[i+1],
		})
	}

	printer, err := newPrinter(settings)
	if err != nil {
		return err
	}
	if checkJSON {
		if err := printer.CheckJSON(records); err != nil {
			return err
		}
	} else {
		printer.Check(records)
	}

	if level := failOnLevel(settings, "none"); level != "none" && recordsMissLevel(records, level) {
		os.Exit(1)
	}
	return nil
}
