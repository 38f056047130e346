// Package config loads application configuration and the declarative
// resolution policy.
//
// Viper merges a config.yml base layer with environment variables and an
// optional .env overlay, then unmarshals into an AppConfig (or a struct
// embedding one). The resolver section of the file names preferred and
// required service bindings by their derived kebab-case names; Apply
// translates those names into container policy through the registry's
// name table.
package config
