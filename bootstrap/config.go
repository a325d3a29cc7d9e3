package bootstrap

import (
	"github.com/kbukum/localai-stt/config"
)

// Config is the constraint for application configuration types. Any
// struct embedding config.ServiceConfig gets GetServiceConfig by promotion
// and supplies its own ApplyDefaults and Validate.
//
//	type CLIConfig struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    LocalAI localai.Config `yaml:"localai" mapstructure:"localai"`
//	}
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
