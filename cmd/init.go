package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/flags"
)

type InitCmd struct {
	*cmd.BaseCmd
	cfgInitializer config.Initializer
}

func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		cfgInitializer: opts.ConfigInitializer,
	}

	cobraCommand := &cobra.Command{
		Use:   "init",
		Short: "Creates a dixa-mcp configuration file",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	return cobraCommand, nil
}

func (c *InitCmd) longDescription() string {
	return fmt.Sprintf(
		"Creates a %s configuration file in the current directory, with every setting at its default.\n\n"+
			"The configuration file path can be overridden using the `--%s` flag or the `%s` environment variable.\n"+
			"The Dixa API key is never stored in the file, use `--api-key` or `DIXA_API_KEY` instead.",
		flags.DefaultConfigFile,
		flags.FlagNameConfigFile,
		flags.EnvVarConfigFile,
	)
}

func (c *InitCmd) run(cmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	initFilePath := flags.ConfigFile
	// The default value means the file goes in the current working directory.
	if initFilePath == "" || initFilePath == flags.DefaultConfigFile {
		cwd, err := os.Getwd()
		if err != nil {
			logger.Error("Failed to get working directory", "error", err)
			return fmt.Errorf("error getting current directory: %w", err)
		}
		initFilePath = filepath.Join(cwd, flags.DefaultConfigFile)
	}

	if err := c.cfgInitializer.Init(initFilePath); err != nil {
		logger.Error("Config initialization failed", "error", err)
		return fmt.Errorf("error initializing config: %w", err)
	}

	logger.Info("Config file created", "path", initFilePath)
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Config file created: %s\n", initFilePath); err != nil {
		return err
	}

	return nil
}
