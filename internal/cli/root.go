// Package cli provides the command-line interface for Albedo.
package cli

import (
	"fmt"
	"os"

	"github.com/jmylchreest/albedo/internal/version"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "albedo",
	Short: "A WCAG colour contrast and colour vision audit tool",
	Long: `Albedo checks colour pairs against the WCAG 2.x contrast thresholds and
simulates how they appear under common colour vision deficiencies.

Check individual foreground/background pairs, ask for an accessible
replacement that keeps the original hue, or scan a whole project tree for
hardcoded colour combinations in CSS, Tailwind classes, SVG and scripts.`,
	Version:      version.Short(),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
// Exit code 2 marks usage and infrastructure errors; failed audits exit
// with 1 from the commands themselves.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("color", "", "colour output mode (auto, always, never)")
	rootCmd.PersistentFlags().String("config", "", "path to a configuration file")
	rootCmd.PersistentFlags().String("plugin-dir", "", "directory holding external scanner plugins")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(scannersCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
