package config

import (
	"fmt"
	"net/url"
)

// APIConfigSection contains settings for the outbound Dixa API client.
type APIConfigSection struct {
	// Base URL of the Dixa API, defaults to https://dev.dixa.io/v1
	// Maps to CLI flag --base-url
	BaseURL *string `json:"baseUrl,omitempty" toml:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// Validate implements Validator for APIConfigSection.
func (a *APIConfigSection) Validate() error {
	if a.BaseURL == nil {
		return nil
	}

	u, err := url.Parse(*a.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: must be an absolute http or https URL", NewErrInvalidValue("base_url", *a.BaseURL))
	}

	return nil
}
