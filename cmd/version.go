package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
)

func NewVersionCmd(_ *cmd.BaseCmd, _ ...cmdopts.CmdOption) (*cobra.Command, error) {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of dixa-mcp",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(c.OutOrStdout(), "dixa-mcp %s\n", cmd.Version())
			return err
		},
	}, nil
}
