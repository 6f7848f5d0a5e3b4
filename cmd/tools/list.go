package tools

import (
	"fmt"

	"github.com/spf13/cobra"

	internalcmd "github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/cmd/output"
	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/printer"
)

type ListCmd struct {
	*internalcmd.BaseCmd
	Format          internalcmd.OutputFormat
	Detail          bool
	ReadOnly        bool
	cfgLoader       config.Loader
	registryBuilder internalcmd.RegistryBuilder
	toolsPrinter    output.Printer[printer.ToolEntry]
}

func NewListCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ListCmd{
		BaseCmd:         baseCmd,
		Format:          internalcmd.FormatText, // Default to plain text
		cfgLoader:       opts.ConfigLoader,
		registryBuilder: registryBuilder(baseCmd, opts),
		toolsPrinter:    printer.NewToolsListPrinter(),
	}

	cobraCmd := &cobra.Command{
		Use:   "list",
		Short: "Lists the tools that would be served",
		Long:  "Lists the tools that would be served, after the allow, deny and read-only settings are applied",
		RunE:  c.run,
		Args:  cobra.NoArgs,
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	cobraCmd.Flags().BoolVar(
		&c.Detail,
		"detail",
		false,
		"Include the description of each tool",
	)

	cobraCmd.Flags().BoolVar(
		&c.ReadOnly,
		"read-only",
		false,
		"Only list tools that do not modify data",
	)

	return cobraCmd, nil
}

func (c *ListCmd) run(cmd *cobra.Command, _ []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.toolsPrinter)
	if err != nil {
		return err
	}

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return handler.HandleError(err)
	}

	registry, err := c.registryBuilder.CreateRegistry(internalcmd.RegistrySettings{
		Config:   cfg,
		ReadOnly: c.ReadOnly,
	})
	if err != nil {
		return handler.HandleError(err)
	}

	available := registry.Tools()
	entries := make([]printer.ToolEntry, 0, len(available))
	for _, tool := range available {
		entries = append(entries, printer.NewToolEntry(tool, c.Detail))
	}

	return handler.HandleResults(entries...)
}
