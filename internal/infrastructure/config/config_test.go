package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Server config
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	// Desktop config
	assert.Equal(t, 1024.0, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 768.0, cfg.Desktop.ViewportHeight)
	assert.Equal(t, 36.0, cfg.Desktop.TaskbarHeight)
	assert.Equal(t, int64(50), cfg.Desktop.ZBase)
	assert.Equal(t, "about", cfg.Desktop.AutoOpen)
	assert.Equal(t, 400*time.Millisecond, cfg.Desktop.AutoOpenDelay)
	assert.Equal(t, time.Second, cfg.Desktop.ClockInterval)
	assert.Empty(t, cfg.Desktop.CatalogPath)

	// Session config
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 1000, cfg.Session.MaxSessions)

	// Logging config
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)

	// Rate limit config
	assert.Equal(t, 100, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 200, cfg.RateLimit.Burst)
	assert.Equal(t, 5, cfg.RateLimit.CreatePerSecond)
	assert.Equal(t, 20, cfg.RateLimit.CreateBurst)
	assert.True(t, cfg.RateLimit.Enabled)

	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadMatchesDefault(t *testing.T) {
	// Should return default when no env vars set
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"PORT":                 "9000",
		"HOST":                 "127.0.0.1",
		"CORS_ORIGINS":         "https://a.example,https://b.example",
		"VIEWPORT_WIDTH":       "1920",
		"VIEWPORT_HEIGHT":      "1080",
		"TASKBAR_HEIGHT":       "48",
		"CATALOG_PATH":         "/etc/pelkos/windows.yaml",
		"BOOT_AUTO_OPEN":       "terminal",
		"BOOT_AUTO_OPEN_DELAY": "1s",
		"SESSION_TTL":          "5m",
		"LOG_LEVEL":            "debug",
		"LOG_DEV":              "true",
		"LOG_FILE":             "/var/log/pelkos.log",
		"RATE_LIMIT_RPS":       "500",
		"RATE_LIMIT_BURST":     "1000",
		"RATE_LIMIT_ENABLED":   "false",
		"METRICS_ENABLED":      "false",
	}

	for key, value := range envVars {
		err := os.Setenv(key, value)
		require.NoError(t, err)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)

	assert.Equal(t, 1920.0, cfg.Desktop.ViewportWidth)
	assert.Equal(t, 1080.0, cfg.Desktop.ViewportHeight)
	assert.Equal(t, 48.0, cfg.Desktop.TaskbarHeight)
	assert.Equal(t, "/etc/pelkos/windows.yaml", cfg.Desktop.CatalogPath)
	assert.Equal(t, "terminal", cfg.Desktop.AutoOpen)
	assert.Equal(t, time.Second, cfg.Desktop.AutoOpenDelay)

	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, "/var/log/pelkos.log", cfg.Logging.File)

	assert.Equal(t, 500, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 1000, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)

	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	err := os.Setenv("PORT", "3000")
	require.NoError(t, err)
	defer os.Unsetenv("PORT")

	err = os.Setenv("TASKBAR_HEIGHT", "40")
	require.NoError(t, err)
	defer os.Unsetenv("TASKBAR_HEIGHT")

	cfg, err := Load()
	require.NoError(t, err)

	// Verify overridden values
	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, 40.0, cfg.Desktop.TaskbarHeight)

	// Verify default values still apply
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 1024.0, cfg.Desktop.ViewportWidth)
	assert.Equal(t, "about", cfg.Desktop.AutoOpen)
}

func TestLoadInvalidValue(t *testing.T) {
	err := os.Setenv("VIEWPORT_WIDTH", "wide")
	require.NoError(t, err)
	defer os.Unsetenv("VIEWPORT_WIDTH")

	_, err = Load()
	assert.Error(t, err)

	// LoadOrDefault falls back instead of failing
	cfg := LoadOrDefault()
	assert.Equal(t, 1024.0, cfg.Desktop.ViewportWidth)
}

func TestLoggingConfig(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		dev       string
		wantLevel string
		wantDev   bool
	}{
		{
			name:      "default values",
			wantLevel: "info",
			wantDev:   false,
		},
		{
			name:      "debug level",
			level:     "debug",
			wantLevel: "debug",
			wantDev:   false,
		},
		{
			name:      "development mode",
			dev:       "true",
			wantLevel: "info",
			wantDev:   true,
		},
		{
			name:      "error level production",
			level:     "error",
			dev:       "false",
			wantLevel: "error",
			wantDev:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean environment
			os.Unsetenv("LOG_LEVEL")
			os.Unsetenv("LOG_DEV")

			if tt.level != "" {
				err := os.Setenv("LOG_LEVEL", tt.level)
				require.NoError(t, err)
				defer os.Unsetenv("LOG_LEVEL")
			}
			if tt.dev != "" {
				err := os.Setenv("LOG_DEV", tt.dev)
				require.NoError(t, err)
				defer os.Unsetenv("LOG_DEV")
			}

			cfg := LoadOrDefault()

			assert.Equal(t, tt.wantLevel, cfg.Logging.Level)
			assert.Equal(t, tt.wantDev, cfg.Logging.Development)
		})
	}
}
