// Package config loads service configuration from YAML files, .env files
// and environment variables using Viper.
//
// # Usage
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    LocalAI localai.Config `yaml:"localai" mapstructure:"localai"`
//	}
//
//	var cfg Config
//	err := config.LoadConfig("localai-stt", &cfg, config.WithEnvPrefix("STT"))
//
// Environment variables override file values. With the prefix above,
// STT_LOCALAI_SERVER_URL sets localai.server_url.
package config
