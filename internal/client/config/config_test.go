package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5005", c.APIURL)
	assert.Equal(t, "microlearn.db", c.DatabasePath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Zero(t, c.RequestTimeout)
	assert.False(t, c.Ephemeral)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	withArgs(t)

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:5005", cfg.APIURL)
	assert.Zero(t, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"api_url":         "http://json:1",
		"database_path":   "json.db",
		"log_level":       "debug",
		"request_timeout": "5s",
	})
	t.Setenv("MICROLEARN_API_URL", "http://env:2")
	t.Setenv("MICROLEARN_DB", "env.db")
	withArgs(t, "-c", path, "-a", "http://flag:3")

	cfg := LoadConfig()

	assert.Equal(t, "http://flag:3", cfg.APIURL, "flags beat env")
	assert.Equal(t, "env.db", cfg.DatabasePath, "env beats json")
	assert.Equal(t, "debug", cfg.LogLevel, "json beats defaults")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Ephemeral(t *testing.T) {
	withArgs(t, "-e", "-d", filepath.Join(t.TempDir(), "x.db"))

	cfg := LoadConfig()
	assert.True(t, cfg.Ephemeral)
	assert.Equal(t, "x.db", filepath.Base(cfg.DatabasePath))
}

func TestLoadConfig_SubSecondTimeout(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		json     string
		expected time.Duration
	}{
		{name: "env 1500ms", env: "1500ms", expected: 1500 * time.Millisecond},
		{name: "env 500ms", env: "500ms", expected: 500 * time.Millisecond},
		{name: "json 250ms", json: "250ms", expected: 250 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var args []string
			if tt.json != "" {
				path := writeTempJSON(t, "", "", map[string]any{"request_timeout": tt.json})
				args = append(args, "-c", path)
			}
			if tt.env != "" {
				t.Setenv("MICROLEARN_REQUEST_TIMEOUT", tt.env)
			}
			withArgs(t, args...)

			cfg := LoadConfig()
			assert.Equal(t, tt.expected, cfg.RequestTimeout)
		})
	}
}

func TestLoadConfig_TimeoutFlagBeatsEnv(t *testing.T) {
	t.Setenv("MICROLEARN_REQUEST_TIMEOUT", "500ms")
	withArgs(t, "-t", "3")

	cfg := LoadConfig()
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}
