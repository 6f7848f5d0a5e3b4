package options

import (
	"fmt"
	"reflect"

	"github.com/mozilla-ai/dixa-mcp/internal/cmd"
	"github.com/mozilla-ai/dixa-mcp/internal/config"
)

type CmdOption func(*CmdOptions) error

type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer

	// RegistryBuilder is nil unless overridden; commands then use their own BaseCmd.
	RegistryBuilder cmd.RegistryBuilder
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		if isNil(l) {
			return fmt.Errorf("config loader cannot be nil")
		}
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		if isNil(i) {
			return fmt.Errorf("config initializer cannot be nil")
		}
		o.ConfigInitializer = i
		return nil
	}
}

func WithRegistryBuilder(b cmd.RegistryBuilder) CmdOption {
	return func(o *CmdOptions) error {
		if isNil(b) {
			return fmt.Errorf("registry builder cannot be nil")
		}
		o.RegistryBuilder = b
		return nil
	}
}

func isNil(v any) bool {
	return v == nil || (reflect.ValueOf(v).Kind() == reflect.Ptr && reflect.ValueOf(v).IsNil())
}
