package server

import (
	"context"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/credentials"
)

// fakeCatalogue answers every call with a fixed result or error.
type fakeCatalogue struct {
	tools  []mcp.Tool
	result any
	err    error

	// Set by Call.
	apiKey string
	ctxKey string
}

func (f *fakeCatalogue) Tools() []mcp.Tool {
	return f.tools
}

func (f *fakeCatalogue) Call(ctx context.Context, _ string, _ map[string]any, apiKey string) (any, error) {
	f.apiKey = apiKey
	f.ctxKey, _ = credentials.APIKeyFromContext(ctx)
	return f.result, f.err
}

func testMCPServer() *mcpserver.MCPServer {
	return mcpserver.NewMCPServer("test", "0.0.0")
}

func TestNewAPIDependencies(t *testing.T) {
	t.Parallel()

	var nilCatalogue *fakeCatalogue
	var nilLogger hclog.Logger

	tests := []struct {
		name      string
		logger    hclog.Logger
		catalogue *fakeCatalogue
		mcp       *mcpserver.MCPServer
		addr      string
		err       string
	}{
		{
			name:      "valid",
			logger:    hclog.NewNullLogger(),
			catalogue: &fakeCatalogue{},
			mcp:       testMCPServer(),
			addr:      "localhost:8090",
		},
		{
			name:      "bind all interfaces",
			logger:    hclog.NewNullLogger(),
			catalogue: &fakeCatalogue{},
			mcp:       testMCPServer(),
			addr:      "0.0.0.0:8090",
		},
		{
			name:      "missing port",
			logger:    hclog.NewNullLogger(),
			catalogue: &fakeCatalogue{},
			mcp:       testMCPServer(),
			addr:      "localhost",
			err:       "invalid API address 'localhost'",
		},
		{
			name:      "empty port",
			logger:    hclog.NewNullLogger(),
			catalogue: &fakeCatalogue{},
			mcp:       testMCPServer(),
			addr:      "localhost:",
			err:       "address missing port",
		},
		{
			name:      "nil catalogue",
			logger:    hclog.NewNullLogger(),
			catalogue: nilCatalogue,
			mcp:       testMCPServer(),
			addr:      "localhost:8090",
			err:       "tool catalogue cannot be nil",
		},
		{
			name:      "nil MCP server",
			logger:    hclog.NewNullLogger(),
			catalogue: &fakeCatalogue{},
			addr:      "localhost:8090",
			err:       "MCP server cannot be nil",
		},
		{
			name:      "nil logger",
			logger:    nilLogger,
			catalogue: &fakeCatalogue{},
			mcp:       testMCPServer(),
			addr:      "localhost:8090",
			err:       "logger cannot be nil",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			deps, err := NewAPIDependencies(tc.logger, tc.catalogue, tc.mcp, tc.addr)
			if tc.err != "" {
				require.ErrorContains(t, err, tc.err)
				require.Equal(t, APIDependencies{}, deps)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.addr, deps.Addr)
		})
	}
}
