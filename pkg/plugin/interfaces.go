// Package plugin provides the public API for albedo scanner plugins.
package plugin

import (
	"context"
)

// ScannerPlugin is the interface that scanner plugins must implement for go-plugin RPC.
// A plugin receives the walked file list and returns the colour pairs it
// found; albedo audits them alongside the built-in scanners' output.
type ScannerPlugin interface {
	// Scan inspects the files named in the request and returns the
	// candidate pairs found.
	Scan(ctx context.Context, req ScanRequest) ([]PairRecord, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
