package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/spf13/cobra"
)

var (
	// Simulate command flags
	simulateType string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate COLOUR [COLOUR ...]",
	Short: "Show colours as seen with colour vision deficiencies",
	Long: `Simulate how colours appear to viewers with common colour vision
deficiencies.

Five types are supported: protanopia, deuteranopia and tritanopia (one
cone class absent) plus the milder anomalous forms protanomaly and
deuteranomaly.

Examples:
  # All five deficiency types
  albedo simulate "#ff0000"

  # A single type for several colours
  albedo simulate --type deuteranopia "#ff0000" "#00ff00"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateType, "type", "t", "all", "deficiency type to simulate, or all")
}

// parseDeficiencies resolves the --type value to a deficiency list.
func parseDeficiencies(v string) ([]colour.Deficiency, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" || v == "all" {
		return colour.Deficiencies, nil
	}
	d := colour.Deficiency(v)
	if !d.Valid() {
		names := make([]string, len(colour.Deficiencies))
		for i, known := range colour.Deficiencies {
			names[i] = string(known)
		}
		return nil, fmt.Errorf("unknown deficiency type %q (valid: %s or all)", v, strings.Join(names, ", "))
	}
	return []colour.Deficiency{d}, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	types, err := parseDeficiencies(simulateType)
	if err != nil {
		return err
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	printer, err := newPrinter(settings)
	if err != nil {
		return err
	}

	for i, arg := range args {
		c, err := colour.Parse(arg)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("  %s\n", printer.Swatch(c.Hex()))
		for _, d := range types {
			sim := colour.Simulate(c, d)
			fmt.Printf("    %-14s %s\n", string(d), printer.Swatch(sim.Hex()))
		}
	}
	return nil
}
