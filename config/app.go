package config

import (
	"fmt"

	"github.com/kbukum/servicekit/logger"
	"github.com/kbukum/servicekit/validation"
)

// AppConfig contains the essential configuration every container-backed
// application needs. Projects extend it by embedding:
//
//	type MyConfig struct {
//	    config.AppConfig `yaml:",inline" mapstructure:",squash"`
//	    Mail mail.Config  `yaml:"mail" mapstructure:"mail"`
//	}
type AppConfig struct {
	Name        string         `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string         `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string         `yaml:"version" mapstructure:"version"`
	Debug       bool           `yaml:"debug" mapstructure:"debug"`
	Logging     logger.Config  `yaml:"logging" mapstructure:"logging"`
	Resolver    ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
}

// GetAppConfig returns the base AppConfig. When embedded in a larger
// config struct the method is promoted, so the embedding struct
// automatically satisfies the bootstrap Config interface.
func (c *AppConfig) GetAppConfig() *AppConfig {
	return c
}

// ApplyDefaults fills unset fields. Embedding structs override this and
// call c.AppConfig.ApplyDefaults() first.
func (c *AppConfig) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	c.Logging.ApplyDefaults()
}

// Validate checks the base configuration fields. Embedding structs
// override this and call c.AppConfig.Validate() first.
func (c *AppConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	return c.Resolver.Validate()
}
