// Package plugin provides the public API for albedo scanner plugins.
package plugin

// ScanRequest carries scan parameters from albedo to a scanner plugin.
type ScanRequest struct {
	// Root is the directory the walk started from. Reported file
	// paths should be relative to it.
	Root string `json:"root"`

	// Files is the walked file list. The plugin picks the files it
	// understands and ignores the rest.
	Files []string `json:"files,omitempty"`

	// MaxFileBytes asks the plugin to skip files larger than this
	// many bytes.
	MaxFileBytes int64 `json:"max_file_bytes,omitempty"`

	// Args are plugin-specific arguments. Values cross the wire as
	// strings.
	Args map[string]string `json:"args,omitempty"`
}

// Role values a PairRecord may carry. Unknown roles are audited with
// text thresholds.
const (
	RoleText    = "text"
	RoleGraphic = "graphic"
	RoleBorder  = "border"
	RoleStroke  = "stroke"
)

// PairRecord is one foreground/background pair reported by a plugin.
// Colours are raw literals; albedo validates them during the audit, so
// a bad literal surfaces as a per-pair failure instead of aborting the
// scan.
type PairRecord struct {
	File       string `json:"file"`
	Line       int    `json:"line,omitempty"`
	Context    string `json:"context,omitempty"`
	Role       string `json:"role"`
	Foreground string `json:"foreground"`
	Background string `json:"background"`
}

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // "scanner"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "go-plugin"
}
