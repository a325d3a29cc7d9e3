package main

import (
	"fmt"

	"github.com/kbukum/localai-stt/config"
	"github.com/kbukum/localai-stt/observability"
	"github.com/kbukum/localai-stt/transcription/localai"
)

const serviceName = "localai-stt"

// envPrefix scopes environment overrides, e.g. STT_LOCALAI_SERVER_URL.
const envPrefix = "STT"

// Config is the CLI configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	LocalAI       localai.Config       `yaml:"localai" mapstructure:"localai"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ApplyDefaults fills zero values in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.LocalAI.ApplyDefaults()
	if c.LocalAI.ServiceName == localai.DefaultServiceName {
		c.LocalAI.ServiceName = c.Name
	}
	c.Observability.ApplyDefaults()
}

// Validate checks the sections that can be checked without the network.
// Credentials are validated by the provider on construction.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if c.LocalAI.ServerURL == "" {
		return fmt.Errorf("config.localai.server_url is required")
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}
