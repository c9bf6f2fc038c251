// Package config provides 12-factor configuration management for the desktop backend.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Desktop: viewport, taskbar height, window catalog, boot auto-open
//   - Session: idle TTL and sweep interval for desktop sessions
//   - Logging: Log level, output format and optional rotated log file
//   - RateLimit: Per-IP rate limiting configuration
//   - Metrics: Prometheus exposition toggle
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - VIEWPORT_WIDTH, VIEWPORT_HEIGHT, TASKBAR_HEIGHT, Z_BASE, CATALOG_PATH
//   - BOOT_AUTO_OPEN, BOOT_AUTO_OPEN_DELAY, CLOCK_INTERVAL
//   - SESSION_TTL, SESSION_SWEEP_INTERVAL, MAX_SESSIONS
//   - LOG_LEVEL, LOG_DEV, LOG_FILE
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - METRICS_ENABLED
package config
