// Package config loads runtime configuration for the MicroLearn CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables (see parseEnv), read with cleanenv.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-d string   local sqlite database path
//	-l string   log level
//	-t int      request timeout (seconds)
//	-e          ephemeral session
//
// Environment
//
//	MICROLEARN_API_URL, MICROLEARN_DB, MICROLEARN_LOG_LEVEL,
//	MICROLEARN_REQUEST_TIMEOUT
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "api_url": "http://localhost:5005",
//	  "database_path": "microlearn.db",
//	  "log_level": "info",
//	  "request_timeout": "30s",
//	  "ephemeral": false
//	}
package config
