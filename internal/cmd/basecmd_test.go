package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/errors"
	"github.com/mozilla-ai/dixa-mcp/internal/flags"
)

func TestBaseCmd_Logger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "dixa-mcp.log")
	t.Setenv(flags.EnvVarLogPath, logPath)
	t.Setenv(flags.EnvVarLogLevel, "DEBUG")
	flags.LogPath = ""
	flags.LogLevel = ""

	c := NewBaseCmd(nil)
	logger := c.Logger()
	require.Same(t, logger, c.Logger())
	require.True(t, logger.IsDebug())

	logger.Debug("hello")
	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(b), "hello")

	other := hclog.NewNullLogger()
	c.SetLogger(other)
	require.Same(t, other, c.Logger())
}

func TestBaseCmd_CreateRegistry(t *testing.T) {
	t.Parallel()

	readOnly := true

	tests := []struct {
		name     string
		settings RegistrySettings
		check    func(t *testing.T, names []string)
		err      string
	}{
		{
			name:     "nil config exposes every tool",
			settings: RegistrySettings{},
			check: func(t *testing.T, names []string) {
				require.Contains(t, names, "list_tags")
				require.Contains(t, names, "remove_tag")
			},
		},
		{
			name: "allow and deny from config",
			settings: RegistrySettings{Config: &config.Config{Tools: &config.ToolsConfigSection{
				Allow: []string{"list_tags", "remove_tag", "fetch_tag_by_id"},
				Deny:  []string{"fetch_tag_by_id"},
			}}},
			check: func(t *testing.T, names []string) {
				require.Equal(t, []string{"list_tags", "remove_tag"}, names)
			},
		},
		{
			name: "read only from config",
			settings: RegistrySettings{Config: &config.Config{Tools: &config.ToolsConfigSection{
				Allow:    []string{"list_tags", "remove_tag"},
				ReadOnly: &readOnly,
			}}},
			check: func(t *testing.T, names []string) {
				require.Equal(t, []string{"list_tags"}, names)
			},
		},
		{
			name: "read only flag wins over config",
			settings: RegistrySettings{
				Config:   &config.Config{Tools: &config.ToolsConfigSection{Allow: []string{"list_tags", "remove_tag"}}},
				ReadOnly: true,
			},
			check: func(t *testing.T, names []string) {
				require.Equal(t, []string{"list_tags"}, names)
			},
		},
		{
			name: "unknown tool in config",
			settings: RegistrySettings{Config: &config.Config{Tools: &config.ToolsConfigSection{
				Deny: []string{"remove_everything"},
			}}},
			err: "unknown tool 'remove_everything'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			registry, err := NewBaseCmd(hclog.NewNullLogger()).CreateRegistry(tc.settings)
			if tc.err != "" {
				require.ErrorIs(t, err, errors.ErrConfiguration)
				require.ErrorContains(t, err, tc.err)
				return
			}
			require.NoError(t, err)

			var names []string
			for _, tool := range registry.Tools() {
				names = append(names, tool.Name)
			}
			tc.check(t, names)
		})
	}
}

func TestBaseCmd_CreateRegistry_BaseURLAndKey(t *testing.T) {
	t.Parallel()

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": []}`))
	}))
	t.Cleanup(ts.Close)

	unreachable := "http://127.0.0.1:1"

	tests := []struct {
		name     string
		settings RegistrySettings
	}{
		{
			name: "config base URL",
			settings: RegistrySettings{
				Config: &config.Config{API: &config.APIConfigSection{BaseURL: &ts.URL}},
				APIKey: "process-key",
			},
		},
		{
			name: "flag base URL overrides config",
			settings: RegistrySettings{
				Config:  &config.Config{API: &config.APIConfigSection{BaseURL: &unreachable}},
				BaseURL: ts.URL,
				APIKey:  "process-key",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			registry, err := NewBaseCmd(hclog.NewNullLogger()).CreateRegistry(tc.settings)
			require.NoError(t, err)

			_, err = registry.Call(context.Background(), "list_tags", nil, "")
			require.NoError(t, err)
			require.Equal(t, "process-key", gotAuth)
		})
	}
}
