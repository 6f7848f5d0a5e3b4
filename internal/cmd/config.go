package cmd

import (
	"errors"
	"os"

	"github.com/mozilla-ai/dixa-mcp/internal/config"
	"github.com/mozilla-ai/dixa-mcp/internal/flags"
)

// LoadConfig loads the configuration file selected by --config-file.
// A missing file at the default location yields an empty configuration, so the server runs without 'init'.
func (c *BaseCmd) LoadConfig(loader config.Loader) (*config.Config, error) {
	path := flags.ConfigFile
	if path == "" {
		path = flags.DefaultConfigFile
	}

	cfg, err := loader.Load(path)
	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, os.ErrNotExist) && path == flags.DefaultConfigFile {
		c.Logger().Debug("No config file found, using defaults", "path", path)
		return &config.Config{}, nil
	}

	return nil, err
}
