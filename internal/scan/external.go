package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/albedo/pkg/plugin"
)

// ExternalPluginPrefix is the file name prefix scanner plugin
// executables must carry to be discovered.
const ExternalPluginPrefix = "albedo-scanner-"

// pluginQueryTimeout bounds the --plugin-info metadata query.
const pluginQueryTimeout = 5 * time.Second

// DiscoverExternal finds scanner plugin executables in dir, queries
// each for metadata, and wraps the compatible ones as Scanners.
// Unresponsive or incompatible executables are logged and skipped; a
// missing directory yields no scanners.
func DiscoverExternal(dir string, logger hclog.Logger) []*ExternalScanner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	log := logger.Named("plugin")

	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("cannot read plugin directory", "dir", dir, "error", err)
		}
		return nil
	}

	var found []*ExternalScanner
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), ExternalPluginPrefix) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		info, err := queryPluginInfo(path)
		if err != nil {
			log.Debug("skipping plugin", "path", path, "error", err)
			continue
		}

		if info.Type != "" && info.Type != plugin.PluginTypeScanner {
			log.Debug("skipping non-scanner plugin", "path", path, "type", info.Type)
			continue
		}

		if ok, err := plugin.IsCompatible(info.ProtocolVersion); !ok {
			log.Warn("skipping incompatible plugin", "path", path, "error", err)
			continue
		}

		name := info.Name
		if name == "" {
			name = strings.TrimPrefix(entry.Name(), ExternalPluginPrefix)
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}

		found = append(found, NewExternalScanner(name, info.Description, path))
		log.Debug("discovered scanner plugin", "name", name, "path", path, "version", info.Version)
	}

	return found
}

// queryPluginInfo runs a plugin executable with --plugin-info and
// decodes the metadata it prints.
func queryPluginInfo(path string) (plugin.PluginInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), pluginQueryTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, "--plugin-info")
	output, err := cmd.Output()
	if err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info plugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return plugin.PluginInfo{}, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	if info.PluginProtocol != "" && info.PluginProtocol != plugin.ProtocolGoPlugin {
		return plugin.PluginInfo{}, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return info, nil
}

// ExternalScanner adapts a discovered plugin executable to the Scanner
// interface. Each Scan launches the executable, proxies the request
// over go-plugin RPC, and kills the subprocess when the call returns.
type ExternalScanner struct {
	name        string
	description string
	path        string
}

// NewExternalScanner creates a scanner backed by the executable at path.
func NewExternalScanner(name, description, path string) *ExternalScanner {
	return &ExternalScanner{
		name:        name,
		description: description,
		path:        path,
	}
}

// Name returns the scanner's name.
func (e *ExternalScanner) Name() string {
	return e.name
}

// Description returns the scanner's description.
func (e *ExternalScanner) Description() string {
	if e.description == "" {
		return fmt.Sprintf("External scanner plugin (%s)", filepath.Base(e.path))
	}
	return e.description
}

// Path returns the plugin executable path.
func (e *ExternalScanner) Path() string {
	return e.path
}

// Scan implements Scanner by proxying the request to the plugin process.
func (e *ExternalScanner) Scan(ctx context.Context, opts Options) ([]Pair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: plugin.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.ScannerPluginName: &plugin.ScannerPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           opts.Log().Named("plugin").With("name", e.name),
	})
	defer client.Kill()

	rpcClient, err := client.Client()
	if err != nil {
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.ScannerPluginName)
	if err != nil {
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	scanner, ok := raw.(*plugin.ScannerPluginRPCClient)
	if !ok {
		return nil, fmt.Errorf("plugin %s has unexpected client type %T", e.name, raw)
	}

	records, err := scanner.Scan(ctx, plugin.ScanRequest{
		Root:         opts.Root,
		Files:        opts.Files,
		MaxFileBytes: opts.MaxBytes(),
		Args:         stringArgs(opts.Args[e.name]),
	})
	if err != nil {
		return nil, fmt.Errorf("plugin scan failed: %w", err)
	}

	pairs := make([]Pair, 0, len(records))
	for _, rec := range records {
		pairs = append(pairs, Pair{
			Scanner:    e.name,
			File:       rec.File,
			Line:       rec.Line,
			Context:    rec.Context,
			Role:       Role(rec.Role),
			Foreground: rec.Foreground,
			Background: rec.Background,
		})
	}

	return Dedupe(pairs), nil
}

// stringArgs converts a scanner's arg blob into the string-valued map
// the wire format carries.
func stringArgs(raw any) map[string]string {
	switch m := raw.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = fmt.Sprint(v)
		}
		return out
	default:
		return nil
	}
}
