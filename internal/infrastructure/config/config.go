package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Desktop   DesktopConfig
	Session   SessionConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8000"`
	Host            string        `envconfig:"HOST" default:"0.0.0.0"`
	CORSOrigins     []string      `envconfig:"CORS_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DesktopConfig holds window-management defaults for new desktops.
type DesktopConfig struct {
	ViewportWidth  float64       `envconfig:"VIEWPORT_WIDTH" default:"1024"`
	ViewportHeight float64       `envconfig:"VIEWPORT_HEIGHT" default:"768"`
	TaskbarHeight  float64       `envconfig:"TASKBAR_HEIGHT" default:"36"`
	ZBase          int64         `envconfig:"Z_BASE" default:"50"`
	CatalogPath    string        `envconfig:"CATALOG_PATH"`
	AutoOpen       string        `envconfig:"BOOT_AUTO_OPEN" default:"about"`
	AutoOpenDelay  time.Duration `envconfig:"BOOT_AUTO_OPEN_DELAY" default:"400ms"`
	ClockInterval  time.Duration `envconfig:"CLOCK_INTERVAL" default:"1s"`
}

// SessionConfig holds desktop session limits.
type SessionConfig struct {
	TTL           time.Duration `envconfig:"SESSION_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"SESSION_SWEEP_INTERVAL" default:"1m"`
	MaxSessions   int           `envconfig:"MAX_SESSIONS" default:"1000"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
	File        string `envconfig:"LOG_FILE"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int           `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int           `envconfig:"RATE_LIMIT_BURST" default:"200"`
	IdleTTL           time.Duration `envconfig:"RATE_LIMIT_IDLE_TTL" default:"10m"`
	CreatePerSecond   int           `envconfig:"RATE_LIMIT_CREATE_RPS" default:"5"`
	CreateBurst       int           `envconfig:"RATE_LIMIT_CREATE_BURST" default:"20"`
	Enabled           bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// MetricsConfig holds metrics exposition configuration.
type MetricsConfig struct {
	Enabled bool `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Host:            "0.0.0.0",
			CORSOrigins:     []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Desktop: DesktopConfig{
			ViewportWidth:  1024,
			ViewportHeight: 768,
			TaskbarHeight:  36,
			ZBase:          50,
			AutoOpen:       "about",
			AutoOpenDelay:  400 * time.Millisecond,
			ClockInterval:  time.Second,
		},
		Session: SessionConfig{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
			MaxSessions:   1000,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			IdleTTL:           10 * time.Minute,
			CreatePerSecond:   5,
			CreateBurst:       20,
			Enabled:           true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}
