package commands

import (
	"github.com/mosaicnetworks/echo/src/config"
)

//CLIConfig contains configuration for the Run command
type CLIConfig struct {
	Echo config.Config `mapstructure:",squash"`

	// Wait keeps the HTTP service up after the wave, until interrupted.
	Wait bool `mapstructure:"wait"`
}

//NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Echo: *config.NewDefaultConfig(),
		Wait: false,
	}
}
