package tracing

import (
	"github.com/gin-gonic/gin"
)

// HTTPMiddleware opens a span per request, keyed by route, and echoes the
// trace headers so the browser can correlate its own logs.
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := FromHeaders(c.Request.Context(), c.Request.Header)

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.Start(ctx, KindHTTP, c.Request.Method+" "+name, c.Param("id"))
		if win := c.Param("win"); win != "" {
			span.SetAttr("window.id", win)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(HeaderTraceID, string(span.TraceID))
		c.Header(HeaderSpanID, string(span.SpanID))

		c.Next()

		var err error
		if last := c.Errors.Last(); last != nil {
			err = last
		}
		tracer.End(span, c.Writer.Status(), err)
	}
}
