package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvConfig lists the environment variables understood by the CLI.
type EnvConfig struct {
	APIURL         string        `env:"MICROLEARN_API_URL" env-description:"backend base URL"`
	DatabasePath   string        `env:"MICROLEARN_DB" env-description:"local sqlite database path"`
	LogLevel       string        `env:"MICROLEARN_LOG_LEVEL" env-description:"log level"`
	RequestTimeout time.Duration `env:"MICROLEARN_REQUEST_TIMEOUT" env-description:"per-request timeout, e.g. 30s"`
}

// parseEnv overlays Config with the variables that are set. Panics when a
// variable cannot be parsed.
func parseEnv(cfg *Config) {
	var ec EnvConfig
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	if ec.APIURL != "" {
		cfg.APIURL = ec.APIURL
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.RequestTimeout > 0 {
		cfg.RequestTimeout = ec.RequestTimeout
	}
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	var ec EnvConfig
	desc, err := cleanenv.GetDescription(&ec, nil)
	if err != nil {
		return ""
	}
	return desc
}
