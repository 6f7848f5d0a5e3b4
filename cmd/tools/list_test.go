package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	internalcmd "github.com/mozilla-ai/dixa-mcp/internal/cmd"
	"github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/config"
)

type mockConfigLoader struct {
	cfg *config.Config
	err error
}

func (m *mockConfigLoader) Load(_ string) (*config.Config, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cfg, nil
}

func tagsOnly() *config.Config {
	return &config.Config{Tools: &config.ToolsConfigSection{
		Allow: []string{"list_tags", "remove_tag"},
	}}
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		loader         *mockConfigLoader
		expectedOutput string
		expectedError  string
	}{
		{
			name:           "text format",
			loader:         &mockConfigLoader{cfg: tagsOnly()},
			expectedOutput: "Tools (2 total):\n  list_tags [read-only] - List tags\n  remove_tag [destructive] - Remove tag\n",
		},
		{
			name:           "read only",
			args:           []string{"--read-only"},
			loader:         &mockConfigLoader{cfg: tagsOnly()},
			expectedOutput: "Tools (1 total):\n  list_tags [read-only] - List tags\n",
		},
		{
			name: "nothing enabled",
			args: []string{"--read-only"},
			loader: &mockConfigLoader{cfg: &config.Config{Tools: &config.ToolsConfigSection{
				Allow: []string{"remove_tag"},
			}}},
			expectedOutput: "No items found\n",
		},
		{
			name:          "config error",
			loader:        &mockConfigLoader{err: errors.New("boom")},
			expectedError: "boom",
		},
		{
			name: "unknown tool in config",
			loader: &mockConfigLoader{cfg: &config.Config{Tools: &config.ToolsConfigSection{
				Deny: []string{"drop_database"},
			}}},
			expectedError: "unknown tool 'drop_database'",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			base := internalcmd.NewBaseCmd(hclog.NewNullLogger())
			cmdObj, err := NewListCmd(base, options.WithConfigLoader(tc.loader))
			require.NoError(t, err)

			var out bytes.Buffer
			cmdObj.SetOut(&out)
			cmdObj.SetErr(&bytes.Buffer{})
			cmdObj.SetArgs(tc.args)

			err = cmdObj.Execute()
			if tc.expectedError != "" {
				require.ErrorContains(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.expectedOutput, out.String())
		})
	}
}

func TestListCmd_JSON(t *testing.T) {
	t.Parallel()

	base := internalcmd.NewBaseCmd(hclog.NewNullLogger())
	cmdObj, err := NewListCmd(base, options.WithConfigLoader(&mockConfigLoader{cfg: tagsOnly()}))
	require.NoError(t, err)

	var out bytes.Buffer
	cmdObj.SetOut(&out)
	cmdObj.SetArgs([]string{"--format", "json", "--detail"})
	require.NoError(t, cmdObj.Execute())

	var payload struct {
		Results []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
			ReadOnly    bool   `json:"readOnly"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	require.Len(t, payload.Results, 2)
	require.Equal(t, "list_tags", payload.Results[0].Name)
	require.True(t, payload.Results[0].ReadOnly)
	require.NotEmpty(t, payload.Results[0].Description)
	require.Contains(t, payload.Results[1].Description, "WARNING")
}

func TestListCmd_InvalidFormat(t *testing.T) {
	t.Parallel()

	base := internalcmd.NewBaseCmd(hclog.NewNullLogger())
	cmdObj, err := NewListCmd(base, options.WithConfigLoader(&mockConfigLoader{cfg: tagsOnly()}))
	require.NoError(t, err)

	cmdObj.SetOut(&bytes.Buffer{})
	cmdObj.SetErr(&bytes.Buffer{})
	cmdObj.SetArgs([]string{"--format", "xml"})
	require.ErrorContains(t, cmdObj.Execute(), "invalid format 'xml'")
}
