package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".dixa-mcp.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultLoader_InitThenLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".dixa-mcp.toml")
	loader := &DefaultLoader{}

	require.NoError(t, loader.Init(path))

	err := loader.Init(path)
	require.EqualError(t, err, path+" already exists")

	cfg, err := loader.Load(path)
	require.NoError(t, err)
	require.Equal(t, path, cfg.Path())
	require.NotNil(t, cfg.Server)
	require.Equal(t, TransportStdio, *cfg.Server.Transport)
	require.False(t, cfg.Tools.ReadOnlyOrDefault(true))
	require.Nil(t, cfg.API.BaseURL)
}

func TestDefaultLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[api]
base_url = "http://localhost:9000/v1"

[server]
transport = "http"
addr = "localhost:8090"
shutdown_timeout = "10s"

[server.cors]
enable = true
allow_origins = ["http://localhost:3000"]
allow_methods = ["GET", "POST"]

[tools]
allow = ["list_agents"]
deny = ["anonymize_end_user"]
read_only = true
`)

		cfg, err := (&DefaultLoader{}).Load(path)
		require.NoError(t, err)
		require.Equal(t, "http://localhost:9000/v1", *cfg.API.BaseURL)
		require.Equal(t, TransportHTTP, *cfg.Server.Transport)
		require.Equal(t, "localhost:8090", *cfg.Server.Addr)
		require.Equal(t, Duration(10*time.Second), *cfg.Server.ShutdownTimeout)
		require.True(t, cfg.Server.CORS.EnableOrDefault(false))
		require.Equal(t, []string{"list_agents"}, cfg.Tools.Allow)
		require.True(t, cfg.Tools.ReadOnlyOrDefault(false))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := (&DefaultLoader{}).Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.ErrorIs(t, err, ErrConfigLoadFailed)
		require.ErrorIs(t, err, os.ErrNotExist)
		require.Contains(t, err.Error(), "dixa-mcp init")
	})

	t.Run("empty path", func(t *testing.T) {
		t.Parallel()

		_, err := (&DefaultLoader{}).Load("  ")
		require.ErrorIs(t, err, ErrConfigLoadFailed)
	})

	t.Run("malformed toml", func(t *testing.T) {
		t.Parallel()

		_, err := (&DefaultLoader{}).Load(writeConfig(t, `[server`))
		require.ErrorIs(t, err, ErrConfigLoadFailed)
		require.Contains(t, err.Error(), "failed to decode")
	})

	t.Run("every invalid value is reported", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
[api]
base_url = "dev.dixa.io"

[server]
transport = "sse"
addr = "localhost"

[tools]
allow = ["list_agents"]
deny = ["list_agents"]
`)

		_, err := (&DefaultLoader{}).Load(path)
		require.ErrorIs(t, err, ErrConfigLoadFailed)
		require.ErrorIs(t, err, ErrInvalidValue)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		require.Len(t, merr.Errors, 3)
		require.Contains(t, err.Error(), "'transport' (value: 'sse')")
		require.Contains(t, err.Error(), "'addr' (value: 'localhost')")
		require.Contains(t, err.Error(), "tool 'list_agents' is both allowed and denied")
	})
}

func TestCORSConfigSection_Validate(t *testing.T) {
	t.Parallel()

	maxAge := Duration(0)
	c := &CORSConfigSection{
		Origins: []string{"*", "", "localhost:3000", "https://example.com"},
		Methods: []string{"GET", "FETCH", ""},
		MaxAge:  &maxAge,
	}

	err := c.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 5)
}

func TestIsValidAddr(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"localhost:8090": true,
		"0.0.0.0:8090":   true,
		":8090":          true,
		":":              true,
		"[::1]:8090":     true,
		"localhost":      false,
		"localhost:":     false,
		"bad host:80":    false,
		"localhost:nope": false,
	}

	for addr, want := range tests {
		require.Equal(t, want, IsValidAddr(addr), "addr %q", addr)
	}
}
