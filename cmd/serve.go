package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	cmdopts "github.com/mozilla-ai/dixa-mcp/internal/cmd/options"
	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/server"
)

const (
	flagTransport       = "transport"
	flagAddr            = "addr"
	flagAPIKey          = "api-key"
	flagBaseURL         = "base-url"
	flagReadOnly        = "read-only"
	flagShutdownTimeout = "shutdown-timeout"

	defaultAddr = "localhost:8090"
)

// ServeCmd should be used to represent the 'serve' command.
type ServeCmd struct {
	*cmd.BaseCmd
	Transport       string
	Addr            string
	APIKey          string
	BaseURL         string
	ReadOnly        bool
	ShutdownTimeout time.Duration
	cfgLoader       config.Loader
	registryBuilder cmd.RegistryBuilder
}

// serveSettings are the flag values merged over the configuration file.
type serveSettings struct {
	transport  string
	addr       string
	apiOptions []server.APIOption
}

// NewServeCmd creates a newly configured (Cobra) command.
func NewServeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ServeCmd{
		BaseCmd:         baseCmd,
		cfgLoader:       opts.ConfigLoader,
		registryBuilder: opts.RegistryBuilder,
	}
	if c.registryBuilder == nil {
		c.registryBuilder = baseCmd
	}

	cobraCommand := &cobra.Command{
		Use:   "serve [--transport stdio|http] [--addr]",
		Short: "Serves the Dixa tools to MCP clients",
		Long: "Serves the Dixa tools to MCP clients.\n\n" +
			"With the stdio transport (the default) MCP messages are exchanged over stdin and stdout.\n" +
			"With the http transport a single listener serves streamable HTTP MCP on " + server.MCPEndpointPath +
			" and a REST API for the same tools under /api/v1.\n\n" +
			"The Dixa API key is resolved per call: the Authorization header of an HTTP request, " +
			"then --api-key, then the DIXA_API_KEY environment variable.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	cobraCommand.Flags().StringVar(
		&c.Transport,
		flagTransport,
		config.TransportStdio,
		fmt.Sprintf("MCP transport, one of: %s, %s", config.TransportStdio, config.TransportHTTP),
	)

	cobraCommand.Flags().StringVar(
		&c.Addr,
		flagAddr,
		defaultAddr,
		"Address for the HTTP listener to bind (http transport only)",
	)

	cobraCommand.Flags().StringVar(
		&c.APIKey,
		flagAPIKey,
		"",
		"Dixa API key used when a request carries none (defaults to DIXA_API_KEY)",
	)

	cobraCommand.Flags().StringVar(
		&c.BaseURL,
		flagBaseURL,
		"",
		"Base URL of the Dixa API (defaults to https://dev.dixa.io/v1)",
	)

	cobraCommand.Flags().BoolVar(
		&c.ReadOnly,
		flagReadOnly,
		false,
		"Only expose tools that do not modify data",
	)

	cobraCommand.Flags().DurationVar(
		&c.ShutdownTimeout,
		flagShutdownTimeout,
		server.DefaultAPIShutdownTimeout(),
		"Graceful shutdown timeout for the HTTP listener",
	)

	return cobraCommand, nil
}

// run is configured (via NewServeCmd) to be called by the Cobra framework when the command is executed.
func (c *ServeCmd) run(cobraCmd *cobra.Command, _ []string) error {
	logger := c.Logger()

	cfg, err := c.LoadConfig(c.cfgLoader)
	if err != nil {
		return err
	}

	settings, err := c.settings(cobraCmd, cfg)
	if err != nil {
		return err
	}

	registry, err := c.registryBuilder.CreateRegistry(cmd.RegistrySettings{
		Config:   cfg,
		APIKey:   c.APIKey,
		BaseURL:  c.BaseURL,
		ReadOnly: c.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("error creating tool registry: %w", err)
	}

	mcpServer := server.NewMCPServer(registry, cmd.Version(), logger)

	parent := cobraCmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("Serving tools", "transport", settings.transport, "tools", len(registry.Tools()))

	if settings.transport == config.TransportStdio {
		return server.ServeStdio(ctx, mcpServer, cobraCmd.InOrStdin(), cobraCmd.OutOrStdout(), logger)
	}

	deps, err := server.NewAPIDependencies(logger, registry, mcpServer, settings.addr)
	if err != nil {
		return err
	}

	apiServer, err := server.NewAPIServer(deps, settings.apiOptions...)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(
		cobraCmd.ErrOrStderr(),
		"dixa-mcp listening on %s\n\n  MCP endpoint:\thttp://%s%s\n  REST API:\thttp://%s/api/v1\n  OpenAPI UI:\thttp://%s/docs\n\n",
		settings.addr, settings.addr, server.MCPEndpointPath, settings.addr, settings.addr,
	)

	if err := apiServer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("HTTP server exited with error", "error", err)
		return err
	}

	logger.Info("Server stopped")
	return nil
}

// settings merges the flags over the [server] section of the configuration file.
// A flag given on the command line always wins.
func (c *ServeCmd) settings(cobraCmd *cobra.Command, cfg *config.Config) (serveSettings, error) {
	var section config.ServerConfigSection
	if cfg != nil && cfg.Server != nil {
		section = *cfg.Server
	}

	changed := cobraCmd.Flags().Changed

	s := serveSettings{transport: config.TransportStdio, addr: defaultAddr}
	if section.Transport != nil {
		s.transport = *section.Transport
	}
	if changed(flagTransport) {
		s.transport = strings.ToLower(strings.TrimSpace(c.Transport))
	}
	if s.transport != config.TransportStdio && s.transport != config.TransportHTTP {
		return serveSettings{}, fmt.Errorf(
			"invalid transport '%s', must be one of: %s, %s", s.transport, config.TransportStdio, config.TransportHTTP,
		)
	}

	if section.Addr != nil {
		s.addr = *section.Addr
	}
	if changed(flagAddr) {
		s.addr = strings.TrimSpace(c.Addr)
	}

	timeout := server.DefaultAPIShutdownTimeout()
	if section.ShutdownTimeout != nil {
		timeout = time.Duration(*section.ShutdownTimeout)
	}
	if changed(flagShutdownTimeout) {
		timeout = c.ShutdownTimeout
	}
	s.apiOptions = append(s.apiOptions, server.WithShutdownTimeout(timeout))

	if cors := section.CORS; cors != nil {
		s.apiOptions = append(s.apiOptions,
			server.WithCORSEnabled(cors.EnableOrDefault(false)),
			server.WithCORSAllowOrigins(cors.Origins),
			server.WithCORSAllowMethods(cors.Methods),
			server.WithCORSAllowHeaders(cors.Headers),
			server.WithCORSExposeHeaders(cors.ExposeHeaders),
		)
		if cors.Credentials != nil {
			s.apiOptions = append(s.apiOptions, server.WithCORSAllowCredentials(*cors.Credentials))
		}
		if cors.MaxAge != nil {
			s.apiOptions = append(s.apiOptions, server.WithCORSMaxAge(time.Duration(*cors.MaxAge)))
		}
	}

	return s, nil
}
