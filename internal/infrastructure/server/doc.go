// Package server wires the desktop backend together.
//
// This package orchestrates all components:
//   - Logging (zap, optional rotated file) and Prometheus metrics
//   - Request tracing
//   - The window catalog and session manager
//   - HTTP routing with Gin and the middleware stack (recovery, tracing,
//     metrics, CORS, rate limiting)
//   - The WebSocket stream
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger, metrics and tracer
//  3. Load the window catalog (builtin when CATALOG_PATH is empty)
//  4. Create the session manager
//  5. Setup HTTP routes and middleware
//  6. Serve HTTP and sweep idle sessions
//  7. Graceful shutdown when the context ends
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
