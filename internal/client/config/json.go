package config

import (
	"encoding/json"
	"os"

	"github.com/Clairebear8888/Microlearning/internal/flagx"
	"github.com/Clairebear8888/Microlearning/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The timeout
// may be written as "30s" or as integer nanoseconds.
type JsonConfig struct {
	APIURL         string          `json:"api_url"`
	DatabasePath   string          `json:"database_path"`
	LogLevel       string          `json:"log_level"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	Ephemeral      *bool           `json:"ephemeral"`
}

// parseJson overlays Config with the values present in the JSON file named
// by -c or -config. Keys missing from the file keep their current value.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
}
