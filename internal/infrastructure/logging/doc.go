// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Setting Config.File tees JSON records into a size-rotated file
// (lumberjack), independent of the console mode.
//
// Example Usage:
//
//	logger, err := logging.New(logging.ServerConfig("info", false, "/var/log/pelkos.log"))
//	logger.Info("Server starting", zap.String("port", "8000"))
//	logger.Error("Failed to create desktop", zap.Error(err))
package logging
