package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"

	"github.com/mozilla-ai/dixa-mcp/internal/perms"
)

const skeleton = `# dixa-mcp configuration.

[api]
# base_url = "https://dev.dixa.io/v1"

[server]
transport = "stdio"
# addr = "localhost:8090"
# shutdown_timeout = "5s"

# [server.cors]
# enable = true
# allow_origins = ["http://localhost:3000"]

[tools]
# allow = ["list_agents", "fetch_agent_by_id"]
# deny = ["anonymize_end_user"]
read_only = false
`

// Init creates the base skeleton configuration file.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(skeleton), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Load reads and validates the configuration file at path.
// A missing file is reported with an error that wraps os.ErrNotExist.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: config file cannot be found, run: 'dixa-mcp init': %w", ErrConfigLoadFailed, err)
		}
		return nil, fmt.Errorf("%w: failed to stat config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	cfg.configFilePath = path

	return &cfg, nil
}

// validate checks every section and reports all failures together.
func (c *Config) validate() error {
	var result *multierror.Error

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("api: %w", err))
		}
	}
	if c.Server != nil {
		if err := c.Server.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("server: %w", err))
		}
	}
	if c.Tools != nil {
		if err := c.Tools.Validate(); err != nil {
			result = multierror.Append(result, fmt.Errorf("tools: %w", err))
		}
	}

	return result.ErrorOrNil()
}
