// Package plugin provides the public API for albedo scanner plugins.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current scanner plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes (incompatible API changes).
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible bug fixes.
	ProtocolVersion = "0.0.1"

	// MinCompatibleVersion is the oldest protocol version this albedo version can work with.
	MinCompatibleVersion = "0.0.1"
)

// Handshake is the handshake configuration for the go-plugin protocol.
// This ensures that scanner executables can only connect to compatible hosts.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match
// exactly; it carries the major version of ProtocolVersion. The full
// semantic version check (including MinCompatibleVersion) happens
// separately via the --plugin-info query and IsCompatible().
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  uint(GetCurrentVersion().Major),
	MagicCookieKey:   "ALBEDO_PLUGIN",
	MagicCookieValue: "albedo_contrast_audit",
}

const (
	// ScannerPluginName is the map key scanner plugins are served and
	// dispensed under.
	ScannerPluginName = "scanner"

	// PluginTypeScanner is the plugin type scanner plugins report in
	// their metadata.
	PluginTypeScanner = "scanner"

	// ProtocolGoPlugin identifies the HashiCorp go-plugin RPC protocol
	// in plugin metadata.
	ProtocolGoPlugin = "go-plugin"
)
