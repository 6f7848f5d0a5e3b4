package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/credentials"
	"github.com/mozilla-ai/dixa-mcp/internal/dixa"
	"github.com/mozilla-ai/dixa-mcp/internal/flags"
	"github.com/mozilla-ai/dixa-mcp/internal/perms"
	"github.com/mozilla-ai/dixa-mcp/internal/tools"
)

var _ RegistryBuilder = (*BaseCmd)(nil)

// RegistryBuilder creates the tool registry a command serves or calls.
type RegistryBuilder interface {
	CreateRegistry(settings RegistrySettings) (*tools.Registry, error)
}

// RegistrySettings combines the loaded configuration with the command line overrides.
type RegistrySettings struct {
	// Config is the loaded configuration file, possibly empty.
	Config *config.Config

	// APIKey is the process-wide key given with --api-key.
	APIKey string

	// BaseURL overrides [api] base_url when set.
	BaseURL string

	// ReadOnly given on the command line cannot be undone by the configuration file.
	ReadOnly bool
}

type BaseCmd struct {
	logger hclog.Logger
}

// NewBaseCmd returns a BaseCmd using logger, or a logger built from the flags when nil.
func NewBaseCmd(logger hclog.Logger) *BaseCmd {
	return &BaseCmd{logger: logger}
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(strings.TrimSpace(os.Getenv(flags.EnvVarLogLevel)))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	// Stdout belongs to the MCP stdio transport, so logs go to a file or nowhere.
	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, perms.LogFile)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, logging disabled\n", logPath, err)
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "dixa-mcp",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// CreateRegistry builds the tool registry: credentials resolution, Dixa client settings and tool filtering.
func (c *BaseCmd) CreateRegistry(settings RegistrySettings) (*tools.Registry, error) {
	logger := c.Logger()

	cfg := settings.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	resolver, err := credentials.NewResolver(settings.APIKey, credentials.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(settings.BaseURL)
	if baseURL == "" && cfg.API != nil && cfg.API.BaseURL != nil {
		baseURL = *cfg.API.BaseURL
	}

	var clientOpts []dixa.ClientOption
	if baseURL != "" {
		clientOpts = append(clientOpts, dixa.WithBaseURL(baseURL))
	}

	var allow, deny []string
	if cfg.Tools != nil {
		allow = cfg.Tools.Allow
		deny = cfg.Tools.Deny
	}

	return tools.NewRegistry(
		resolver,
		tools.WithLogger(logger),
		tools.WithClientOptions(clientOpts...),
		tools.WithAllowed(allow...),
		tools.WithDenied(deny...),
		tools.WithReadOnly(settings.ReadOnly || cfg.Tools.ReadOnlyOrDefault(false)),
	)
}
