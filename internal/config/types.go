package config

var _ Provider = (*DefaultLoader)(nil)

type Loader interface {
	Load(path string) (*Config, error)
}

type Initializer interface {
	Init(path string) error
}

type Provider interface {
	Initializer
	Loader
}

type DefaultLoader struct{}

// Config represents the .dixa-mcp.toml file structure.
//
// NOTE: if you add/remove sections you must review Config.validate and the skeleton written by Init.
type Config struct {
	// API configures the outbound Dixa API client.
	API *APIConfigSection `json:"api,omitempty" toml:"api,omitempty" yaml:"api,omitempty"`

	// Server configures the MCP transport and the HTTP listener.
	Server *ServerConfigSection `json:"server,omitempty" toml:"server,omitempty" yaml:"server,omitempty"`

	// Tools restricts which tools are exposed.
	Tools *ToolsConfigSection `json:"tools,omitempty" toml:"tools,omitempty" yaml:"tools,omitempty"`

	configFilePath string `toml:"-"`
}

// Path returns the file this configuration was loaded from, empty for a default configuration.
func (c *Config) Path() string {
	return c.configFilePath
}
