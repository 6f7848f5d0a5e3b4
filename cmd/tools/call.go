package tools

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	internalcmd "github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/cmd/output"
	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/printer"
)

const (
	flagArgs     = "args"
	flagArgsFile = "args-file"
)

type CallCmd struct {
	*internalcmd.BaseCmd
	Format          internalcmd.OutputFormat
	Args            string
	ArgsFile        string
	APIKey          string
	BaseURL         string
	cfgLoader       config.Loader
	registryBuilder internalcmd.RegistryBuilder
	resultPrinter   output.Printer[printer.CallResult]
}

func NewCallCmd(baseCmd *internalcmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &CallCmd{
		BaseCmd:         baseCmd,
		Format:          internalcmd.FormatText,
		cfgLoader:       opts.ConfigLoader,
		registryBuilder: registryBuilder(baseCmd, opts),
		resultPrinter:   &printer.CallResultPrinter{},
	}

	cobraCmd := &cobra.Command{
		Use:   "call <tool-name> [--args '{...}' | --args-file <path>]",
		Short: "Calls a tool once and prints the result",
		Long: "Calls a tool once and prints the result.\n\n" +
			"Arguments are given as a JSON object, either inline with --args or from a file with --args-file.\n" +
			"The Dixa API key is taken from --api-key, then the DIXA_API_KEY environment variable.",
		RunE: c.run,
		Args: cobra.ExactArgs(1),
	}

	allowed := internalcmd.AllowedOutputFormats()
	cobraCmd.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	cobraCmd.Flags().StringVar(
		&c.Args,
		flagArgs,
		"",
		"Tool arguments as a JSON object",
	)

	cobraCmd.Flags().StringVar(
		&c.ArgsFile,
		flagArgsFile,
		"",
		"Path to a file containing the tool arguments as a JSON object",
	)

	cobraCmd.Flags().StringVar(
		&c.APIKey,
		"api-key",
		"",
		"Dixa API key (defaults to DIXA_API_KEY)",
	)

	cobraCmd.Flags().StringVar(
		&c.BaseURL,
		"base-url",
		"",
		"Base URL of the Dixa API (defaults to https://dev.dixa.io/v1)",
	)

	cobraCmd.MarkFlagsMutuallyExclusive(flagArgs, flagArgsFile)

	return cobraCmd, nil
}

func (c *CallCmd) run(cmd *cobra.Command, args []string) error {
	handler, err := internalcmd.FormatHandler(cmd.OutOrStdout(), c.Format, c.resultPrinter)
	if err != nil {
		return err
	}

	name := strings.TrimSpace(args[0])
	if name == "" {
		return handler.HandleError(fmt.Errorf("tool-name is required"))
	}

	toolArgs, err := c.arguments()
	if err != nil {
		return handler.HandleError(err)
	}

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return handler.HandleError(err)
	}

	registry, err := c.registryBuilder.CreateRegistry(internalcmd.RegistrySettings{
		Config:  cfg,
		APIKey:  c.APIKey,
		BaseURL: c.BaseURL,
	})
	if err != nil {
		return handler.HandleError(err)
	}

	res, err := registry.Call(cmd.Context(), name, toolArgs, "")
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(printer.CallResult{Tool: name, Data: res})
}

// arguments decodes the tool arguments from --args or --args-file.
func (c *CallCmd) arguments() (map[string]any, error) {
	raw := []byte(strings.TrimSpace(c.Args))

	if c.ArgsFile != "" {
		b, err := os.ReadFile(c.ArgsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read arguments file (%s): %w", c.ArgsFile, err)
		}
		raw = b
	}

	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, nil
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("arguments must be a JSON object: %w", err)
	}

	return out, nil
}
