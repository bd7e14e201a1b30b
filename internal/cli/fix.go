package cli

import (
	"fmt"

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/spf13/cobra"
)

var (
	// Fix command flags
	fixTarget float64
)

var fixCmd = &cobra.Command{
	Use:   "fix FOREGROUND BACKGROUND",
	Short: "Suggest an accessible replacement for a foreground colour",
	Long: `Suggest a replacement foreground colour that reaches the target contrast
ratio against the background while keeping the original hue.

Only lightness is adjusted. The search prefers the candidate closest
to the original colour; when no lightness on the hue reaches the
target, the suggestion falls back to black or white.

Examples:
  # Reach WCAG AA body text (4.5:1)
  albedo fix "#999999" "#ffffff"

  # Reach AAA instead
  albedo fix --target 7 "#999999" "#ffffff"`,
	Args: cobra.ExactArgs(2),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Float64VarP(&fixTarget, "target", "t", colour.AABodyRatio, "contrast ratio to reach")
}

func runFix(cmd *cobra.Command, args []string) error {
	if fixTarget < 1 || fixTarget > 21 {
		return fmt.Errorf("target ratio must be between 1 and 21, got %g", fixTarget)
	}

	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}

	fg, err := colour.Parse(args[0])
	if err != nil {
		return err
	}
	bg, err := colour.Parse(args[1])
	if err != nil {
		return err
	}

	printer, err := newPrinter(settings)
	if err != nil {
		return err
	}

	original := colour.ContrastRatio(fg, bg)
	fixed := colour.FindFixedColour(fg, bg, fixTarget)
	achieved := colour.ContrastRatio(fixed, bg)

	fmt.Printf("  Background:  %s\n", printer.Swatch(bg.Hex()))
	fmt.Printf("  Original:    %s  %.2f:1\n", printer.Swatch(fg.Hex()), original)
	fmt.Printf("  Suggestion:  %s  %.2f:1\n", printer.Swatch(fixed.Hex()), achieved)
	if sample := printer.Sample(fixed.Hex(), bg.Hex()); sample != "" {
		fmt.Printf("  Preview:     %s\n", sample)
	}

	// The lightness search accepts candidates within 0.05 of the
	// target, so only a clear shortfall means the target is out of
	// reach on this background.
	if achieved < fixTarget-0.05 {
		fmt.Printf("  No colour reaches %.2g:1 against this background; closest shown.\n", fixTarget)
	}
	return nil
}
