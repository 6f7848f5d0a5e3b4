package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/dixa-mcp/cmd/tools"
	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/flags"
)

type RootCmd struct {
	*cmd.BaseCmd
}

// Execute runs the dixa-mcp CLI.
// The logger is built lazily by the commands, after the global flags are parsed.
func Execute() error {
	rootCmd, err := NewRootCmd(cmd.NewBaseCmd(nil))
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

func NewRootCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	c := &RootCmd{BaseCmd: baseCmd}

	rootCmd := &cobra.Command{
		Use:           "dixa-mcp <command> [args]",
		Short:         "MCP server exposing the Dixa API as tools",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       cmd.Version(),
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewServeCmd,
		NewVersionCmd,
		tools.NewCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `'dixa-mcp' exposes the Dixa customer service REST API as Model Context Protocol tools.

Serve the tools to an MCP client over stdio or streamable HTTP with 'serve',
or inspect and call them directly with 'tools list' and 'tools call'.`
}
