package server

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerName is the name the MCP server reports to clients during initialization.
const ServerName = "dixa-mcp"

// ToolRegistrar adds tools to an MCP server.
type ToolRegistrar interface {
	Register(s *mcpserver.MCPServer)
}

// NewMCPServer creates an MCP server exposing every tool of the registrar.
// Panics inside tool handlers are recovered and reported to the client as errors.
func NewMCPServer(registrar ToolRegistrar, version string, logger hclog.Logger) *mcpserver.MCPServer {
	logger = logger.Named("mcp")

	hooks := &mcpserver.Hooks{}
	hooks.AddAfterInitialize(func(_ context.Context, _ any, req *mcp.InitializeRequest, _ *mcp.InitializeResult) {
		logger.Info(
			"Client initialized",
			"client", req.Params.ClientInfo.Name,
			"client_version", req.Params.ClientInfo.Version,
			"protocol", req.Params.ProtocolVersion,
		)
	})
	hooks.AddOnError(func(_ context.Context, _ any, method mcp.MCPMethod, _ any, err error) {
		logger.Warn("MCP request failed", "method", method, "error", err)
	})

	s := mcpserver.NewMCPServer(
		ServerName,
		version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithRecovery(),
		mcpserver.WithHooks(hooks),
	)
	registrar.Register(s)

	return s
}

// ServeStdio serves the MCP server over the given reader and writer until ctx is canceled or in is closed.
// Nothing else may write to out while serving.
func ServeStdio(ctx context.Context, s *mcpserver.MCPServer, in io.Reader, out io.Writer, logger hclog.Logger) error {
	logger = logger.Named("stdio")

	stdio := mcpserver.NewStdioServer(s)
	stdio.SetErrorLogger(logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}))

	logger.Info("Serving MCP over stdio")
	err := stdio.Listen(ctx, in, out)
	switch {
	case err == nil, stdErrors.Is(err, context.Canceled), stdErrors.Is(err, io.EOF):
		logger.Info("Stdio transport closed")
		return nil
	default:
		return fmt.Errorf("stdio transport failed: %w", err)
	}
}
