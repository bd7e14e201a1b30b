// Package plugin provides the public API for albedo scanner plugins.
package plugin

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-plugin"
)

// Serve runs a scanner plugin. It answers the --plugin-info flag that
// albedo uses during discovery, then hands the process over to
// go-plugin. A scanner executable's main() is a single call:
//
//	func main() {
//		plugin.Serve(&myScanner{})
//	}
func Serve(impl ScannerPlugin) {
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(impl.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			ScannerPluginName: &ScannerPluginRPC{Impl: impl},
		},
	})
}
