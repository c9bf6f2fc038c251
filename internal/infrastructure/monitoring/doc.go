/*
Package monitoring provides metrics collection for the desktop backend.

# Overview

This package implements Prometheus-based metrics collection, tracking HTTP
requests, window operations, drag gestures, desktop sessions, terminal
commands and WebSocket traffic. Each Metrics value owns its registry, so
several instances can coexist in one process.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Record custom metrics
	metrics.RecordWindowOp("open")
	metrics.SetSessionsActive(3)

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
*/
package monitoring
