package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvSpeed     = "DOXSIM_SPEED"
	EnvOffline   = "DOXSIM_OFFLINE"
	EnvEndpoint  = "DOXSIM_ENDPOINT"
	EnvTimeoutMs = "DOXSIM_TIMEOUT_MS"
	EnvUserAgent = "DOXSIM_USER_AGENT"
)

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

type envOverrides struct {
	Speed     *float64 `env:"DOXSIM_SPEED"`
	Offline   *bool    `env:"DOXSIM_OFFLINE"`
	Endpoint  *string  `env:"DOXSIM_ENDPOINT"`
	TimeoutMs *int     `env:"DOXSIM_TIMEOUT_MS"`
	UserAgent *string  `env:"DOXSIM_USER_AGENT"`
}

// ApplyEnv overrides simulation settings from DOXSIM_* variables. A nil
// environ reads the process environment.
func ApplyEnv(cfg *SimulationConfig, environ map[string]string) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Speed != nil {
		cfg.Speed = o.Speed
	}
	if o.Offline != nil {
		cfg.Offline = o.Offline
	}
	if o.Endpoint != nil && *o.Endpoint != "" {
		cfg.Endpoint = o.Endpoint
	}
	if o.TimeoutMs != nil {
		cfg.TimeoutMs = o.TimeoutMs
	}
	if o.UserAgent != nil && *o.UserAgent != "" {
		cfg.UserAgent = o.UserAgent
	}
	return nil
}
