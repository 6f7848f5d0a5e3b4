package cmd

// version is set at build time using -ldflags "-X github.com/mozilla-ai/dixa-mcp/internal/cmd.version=...".
var version = "dev"

// Version returns the build version of dixa-mcp.
func Version() string {
	return version
}
