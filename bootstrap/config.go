package bootstrap

import (
	"github.com/kbukum/servicekit/config"
)

// Config is the interface constraint for application configuration
// types. Any struct that embeds config.AppConfig automatically satisfies
// it via promoted methods.
//
//	type MyConfig struct {
//	    config.AppConfig `yaml:",inline" mapstructure:",squash"`
//	    Mail mail.Config  `yaml:"mail" mapstructure:"mail"`
//	}
type Config interface {
	GetAppConfig() *config.AppConfig
	ApplyDefaults()
	Validate() error
}
