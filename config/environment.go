package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment layers a .env file over the process environment. File
// values win so local development overrides stay in one place. The zero
// value reads straight from the process environment.
type Environment struct {
	overlay map[string]string
}

// NewEnvironment builds an Environment, loading each given .env file in
// order. Missing files are skipped; a malformed file is an error.
func NewEnvironment(envFiles ...string) (*Environment, error) {
	e := &Environment{overlay: map[string]string{}}
	for _, path := range envFiles {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		values, err := godotenv.Read(path)
		if err != nil {
			return nil, err
		}
		for k, v := range values {
			e.overlay[k] = v
		}
	}
	return e, nil
}

// Get returns the value for key, preferring the .env overlay.
func (e *Environment) Get(key string) (string, bool) {
	if v, ok := e.overlay[key]; ok {
		return v, true
	}
	return os.LookupEnv(key)
}

// Bool reads key as a boolean, returning def when unset or unparseable.
func (e *Environment) Bool(key string, def bool) bool {
	raw, ok := e.Get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return b
}

// Mode returns the deployment environment name, defaulting to
// "development" when APP_ENV is unset.
func (e *Environment) Mode() string {
	if mode, ok := e.Get("APP_ENV"); ok && mode != "" {
		return mode
	}
	return "development"
}

// IsRelease reports whether the process runs in a release mode, where
// services default to singleton lifetime.
func (e *Environment) IsRelease() bool {
	switch e.Mode() {
	case "production", "staging":
		return true
	}
	return false
}
