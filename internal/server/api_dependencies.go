package server

import (
	"fmt"
	"net"
	"reflect"
	"strconv"

	"github.com/hashicorp/go-hclog"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mozilla-ai/dixa-mcp/internal/contracts"
)

// APIDependencies contains the required external dependencies for the HTTP server.
// NewAPIDependencies should be used to create instances of APIDependencies.
type APIDependencies struct {
	// Addr specifies the network address to bind (e.g., "0.0.0.0:8090").
	Addr string

	// Catalogue lists and calls the enabled tools for the REST API.
	Catalogue contracts.ToolCatalogue

	// MCPServer is served over streamable HTTP at /mcp.
	MCPServer *mcpserver.MCPServer

	// Logger for HTTP server operations.
	Logger hclog.Logger
}

// NewAPIDependencies creates and validates APIDependencies.
func NewAPIDependencies(
	logger hclog.Logger,
	catalogue contracts.ToolCatalogue,
	mcpServer *mcpserver.MCPServer,
	addr string,
) (APIDependencies, error) {
	deps := APIDependencies{
		Addr:      addr,
		Catalogue: catalogue,
		MCPServer: mcpServer,
		Logger:    logger,
	}

	if err := deps.Validate(); err != nil {
		return APIDependencies{}, err
	}

	return deps, nil
}

// Validate ensures all required dependencies are provided and valid.
func (d APIDependencies) Validate() error {
	if err := validateAddr(d.Addr); err != nil {
		return fmt.Errorf("invalid API address '%s': %w", d.Addr, err)
	}
	if d.Catalogue == nil || reflect.ValueOf(d.Catalogue).IsNil() {
		return fmt.Errorf("tool catalogue cannot be nil")
	}
	if d.MCPServer == nil {
		return fmt.Errorf("MCP server cannot be nil")
	}
	if d.Logger == nil || reflect.ValueOf(d.Logger).IsNil() {
		return fmt.Errorf("logger cannot be nil")
	}
	return nil
}

// validateAddr checks if the address is a valid "host:port" string.
func validateAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}

	if port == "" {
		return fmt.Errorf("address missing port")
	}

	if _, err := strconv.Atoi(port); err != nil {
		if _, err := net.LookupPort("tcp", port); err != nil {
			return fmt.Errorf("invalid address port: %s", port)
		}
	}

	return nil
}
