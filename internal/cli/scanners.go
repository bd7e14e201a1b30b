package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jmylchreest/albedo/internal/report"
	"github.com/jmylchreest/albedo/internal/scan"
	"github.com/spf13/cobra"
)

var (
	// Scanners command flags
	scannersJSON bool
)

var scannersCmd = &cobra.Command{
	Use:   "scanners",
	Short: "List available scanners",
	Long: `List the builtin scanners and any external scanner plugins found in
the plugin directory.

External plugins are executables named albedo-scanner-* in the plugin
directory (default ~/.local/share/albedo/plugins, override with
--plugin-dir or the plugin_dir config key).`,
	Args: cobra.NoArgs,
	RunE: runScanners,
}

func init() {
	scannersCmd.Flags().BoolVar(&scannersJSON, "json", false, "emit JSON instead of a table")
}

type scannerInfo struct {
	Name        string `json:"name"`
	Source      string `json:"source"`
	Description string `json:"description"`
}

func scannerInfos(reg *scan.Registry, order []string) []scannerInfo {
	infos := make([]scannerInfo, 0, len(order))
	for _, name := range order {
		s, ok := reg.Get(name)
		if !ok {
			continue
		}
		source := "builtin"
		if _, external := s.(*scan.ExternalScanner); external {
			source = "external"
		}
		infos = append(infos, scannerInfo{
			Name:        name,
			Source:      source,
			Description: s.Description(),
		})
	}
	return infos
}

func runScanners(cmd *cobra.Command, args []string) error {
	settings, err := effectiveSettings(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cmd)

	dir, err := pluginDir(settings)
	if err != nil {
		return err
	}
	reg, order := newRegistry(dir, log)
	infos := scannerInfos(reg, order)

	if scannersJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	table := report.NewTable("NAME", "SOURCE", "DESCRIPTION")
	for _, info := range infos {
		table.AddRow(info.Name, info.Source, info.Description)
	}
	fmt.Print(table.Render())
	return nil
}
