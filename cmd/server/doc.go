// Package main is the entry point for the PelkOS desktop backend.
//
// The server owns window-management state for browser-hosted desktops. The
// browser renders windows, the taskbar and the terminal; every pointer and
// button action is sent here over REST or WebSocket and the resulting state
// is streamed back.
//
// Architecture:
//
//	Browser (boot screen, windows, taskbar) → Go Backend (sessions, desktop core)
//
// The server provides:
//   - REST API for desktop sessions and window operations
//   - WebSocket stream for drag gestures and state events
//   - Prometheus metrics and request tracing
//   - Rate limiting and CORS
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -catalog windows.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev -log-level debug
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
