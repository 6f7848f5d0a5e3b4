package tools

import (
	"github.com/spf13/cobra"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	"github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
)

func NewCmd(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error) {
	cobraCmd := &cobra.Command{
		Use:   "tools",
		Short: "Lists and calls the Dixa tools without an MCP client",
		Long: "Lists and calls the Dixa tools without an MCP client, " +
			"applying the same configuration file and credentials as 'serve'",
	}

	// Sub-commands for: dixa-mcp tools
	fns := []func(baseCmd *cmd.BaseCmd, opt ...options.CmdOption) (*cobra.Command, error){
		NewListCmd, // list
		NewCallCmd, // call
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		cobraCmd.AddCommand(tempCmd)
	}

	return cobraCmd, nil
}

// registryBuilder returns the builder from the options, or the base command itself.
func registryBuilder(baseCmd *cmd.BaseCmd, opts options.CmdOptions) cmd.RegistryBuilder {
	if opts.RegistryBuilder != nil {
		return opts.RegistryBuilder
	}
	return baseCmd
}
