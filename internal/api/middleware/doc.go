// Package middleware provides the HTTP middleware of the desktop API.
//
// Middleware:
//   - CORS: gin-contrib/cors with the trace headers exposed to the browser
//   - RateLimit: per-IP token bucket (golang.org/x/time/rate) with idle
//     client eviction
//   - GlobalRateLimit: one token bucket shared by every client
//
// Example Usage:
//
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
