// Package plugin provides the public API for albedo scanner plugins.
package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// ScannerPluginRPC implements the go-plugin Plugin interface for scanner plugins.
type ScannerPluginRPC struct {
	plugin.Plugin
	Impl ScannerPlugin
}

// Server returns an RPC server for this plugin.
func (p *ScannerPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &ScannerPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *ScannerPluginRPC) Client(b *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &ScannerPluginRPCClient{client: c}, nil
}

// ScannerPluginRPCServer is the RPC server implementation for scanner plugins.
// It runs inside the plugin process.
type ScannerPluginRPCServer struct {
	Impl ScannerPlugin
}

// Scan implements the RPC method for scanning. The pair list crosses
// the wire as JSON so the payload stays gob-free.
func (s *ScannerPluginRPCServer) Scan(req ScanRequest, resp *[]byte) error {
	pairs, err := s.Impl.Scan(context.Background(), req)
	if err != nil {
		return err
	}

	data, err := json.Marshal(pairs)
	if err != nil {
		return err
	}

	*resp = data
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *ScannerPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// ScannerPluginRPCClient is the RPC client implementation for scanner plugins.
// It runs inside the albedo host process.
type ScannerPluginRPCClient struct {
	client *rpc.Client
}

// Scan calls the remote Scan method and decodes the returned pairs.
func (c *ScannerPluginRPCClient) Scan(_ context.Context, req ScanRequest) ([]PairRecord, error) {
	var respBytes []byte
	if err := c.client.Call("Plugin.Scan", req, &respBytes); err != nil {
		return nil, err
	}

	var pairs []PairRecord
	if err := json.Unmarshal(respBytes, &pairs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pairs: %w", err)
	}

	return pairs, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *ScannerPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
