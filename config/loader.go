package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/servicekit/errors"
	"github.com/kbukum/servicekit/logger"
)

// FileSystem abstracts file probing for the loader (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem against the actual filesystem.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds loader dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// Load populates cfg for the named application. It searches for
// config.yml and .env files in the standard locations (or uses the
// explicit paths from options), binds environment variables over the
// file values, and unmarshals the merged result into cfg.
func Load(appName string, cfg interface{}, opts ...LoaderOption) error {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}
	if lc.ConfigFile == "" {
		lc.ConfigFile = findFirst(lc.FileSystem, configSearchPaths(appName))
	}
	if lc.EnvFile == "" {
		lc.EnvFile = findFirst(lc.FileSystem, envSearchPaths(appName))
	}

	log := logger.Get("config")
	v := viper.New()

	// YAML file is the base layer.
	if lc.ConfigFile != "" && lc.FileSystem.Exists(lc.ConfigFile) {
		v.SetConfigFile(lc.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.InvalidConfig("failed to read " + lc.ConfigFile).WithCause(err)
		}
	}

	// Environment wins over the file; .env wins over inherited env.
	v.AutomaticEnv()
	bindEnvVars(v)
	if lc.EnvFile != "" && lc.FileSystem.Exists(lc.EnvFile) {
		if err := lc.FileSystem.LoadEnv(lc.EnvFile); err != nil {
			log.Warn("failed to load .env file", logger.Fields("path", lc.EnvFile, "error", err.Error()))
		} else {
			bindEnvVars(v)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return errors.InvalidConfig("failed to unmarshal config for " + appName).WithCause(err)
	}
	return nil
}

// configSearchPaths lists the standard config.yml locations, nearest
// first.
func configSearchPaths(appName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", appName),
		fmt.Sprintf("../cmd/%s/config.yml", appName),
		"./config/config.yml",
		"../config/config.yml",
		"./config.yml",
	}
}

// envSearchPaths lists the standard .env locations, app-scoped files
// before shared ones.
func envSearchPaths(appName string) []string {
	scoped := ".env." + appName
	return []string{
		fmt.Sprintf("./cmd/%s/%s", appName, scoped),
		fmt.Sprintf("./cmd/%s/.env", appName),
		"./" + scoped,
		"./.env",
		"../" + scoped,
		"../.env",
	}
}

func findFirst(fs FileSystem, paths []string) string {
	for _, path := range paths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars maps UPPER_SNAKE environment variables onto viper's nested
// keys so RESOLVER_SINGLETONS reaches resolver.singletons without
// explicit BindEnv calls per field.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, variant := range envKeyVariants(pair[0]) {
			v.Set(variant, pair[1])
		}
	}
}

// envKeyVariants generates the nested key spellings an env var may bind
// to. LOGGING_NO_COLOR yields logging_no_color, logging.no.color and the
// progressive splits logging.no_color and logging.no.color in between,
// since the loader cannot know where the struct nesting boundary falls.
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	variants := []string{lower, strings.ReplaceAll(lower, "_", ".")}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}

	seen := make(map[string]bool, len(variants))
	out := variants[:0]
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
