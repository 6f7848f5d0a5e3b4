package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/flags"
)

type mockInitializer struct {
	path string
	err  error
}

func (m *mockInitializer) Init(path string) error {
	m.path = path
	return m.err
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	base := cmd.NewBaseCmd(hclog.NewNullLogger())
	rootCmd, err := NewRootCmd(base)
	require.NoError(t, err)

	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	require.Subset(t, names, []string{"init", "serve", "tools", "version"})

	for _, name := range []string{flags.FlagNameConfigFile, flags.FlagNameLogPath, flags.FlagNameLogLevel} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestNewRootCmd_InvalidOption(t *testing.T) {
	_, err := NewRootCmd(cmd.NewBaseCmd(hclog.NewNullLogger()), cmdopts.WithConfigLoader(nil))
	require.ErrorContains(t, err, "config loader cannot be nil")
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	c, err := NewVersionCmd(cmd.NewBaseCmd(hclog.NewNullLogger()))
	require.NoError(t, err)

	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{})
	require.NoError(t, c.Execute())
	require.Equal(t, "dixa-mcp "+cmd.Version()+"\n", out.String())
}

func TestInitCmd(t *testing.T) {
	customPath := filepath.Join(t.TempDir(), "custom.toml")
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name          string
		configFile    string
		initErr       error
		expectedPath  string
		expectedError string
	}{
		{
			name:         "default file in working directory",
			configFile:   flags.DefaultConfigFile,
			expectedPath: filepath.Join(cwd, flags.DefaultConfigFile),
		},
		{
			name:         "custom path",
			configFile:   customPath,
			expectedPath: customPath,
		},
		{
			name:          "initializer failure",
			configFile:    customPath,
			initErr:       errors.New("already exists"),
			expectedPath:  customPath,
			expectedError: "error initializing config: already exists",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flags.ConfigFile = tc.configFile
			t.Cleanup(func() { flags.ConfigFile = "" })

			initializer := &mockInitializer{err: tc.initErr}
			c, err := NewInitCmd(cmd.NewBaseCmd(hclog.NewNullLogger()), cmdopts.WithConfigInitializer(initializer))
			require.NoError(t, err)

			var out bytes.Buffer
			c.SetOut(&out)
			c.SetErr(&bytes.Buffer{})
			c.SetArgs([]string{})

			err = c.Execute()
			require.Equal(t, tc.expectedPath, initializer.path)
			if tc.expectedError != "" {
				require.ErrorContains(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Config file created: "+tc.expectedPath+"\n", out.String())
		})
	}
}
