/*
Package tracing follows browser actions through the desktop backend.

Each HTTP request and each WebSocket message gets a span tagged with its
desktop id. Trace and span ids are ULIDs with the req_ prefix. A browser that
sends X-Trace-ID / X-Span-ID continues its own trace, and both ids are echoed
on every response.

Finished spans go through a buffered channel to a collector that logs them at
debug level and keeps the last DefaultRecent of them for /debug/traces.

# Usage

	tracer := tracing.New("desktop", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.Start(ctx, tracing.KindWS, "drag_start", desktopID)
	tracer.End(span, 0, err)
*/
package tracing
