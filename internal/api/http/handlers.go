package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PelkOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/PelkOS/backend/internal/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Handlers contains all HTTP handlers
type Handlers struct {
	sessions *session.Manager
	metrics  *monitoring.Metrics
	tracer   *tracing.Tracer
	logger   *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(sessions *session.Manager, metrics *monitoring.Metrics, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

// WithTracer enables the recent spans endpoint
func (h *Handlers) WithTracer(tracer *tracing.Tracer) *Handlers {
	h.tracer = tracer
	return h
}

// Root handles service info
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "PelkOS Desktop Service (Go)",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Stats(),
		"catalog":  gin.H{"windows": h.sessions.Catalog().Len()},
	})
}

// MetricsJSON returns a JSON summary of the Prometheus metrics
func (h *Handlers) MetricsJSON(c *gin.Context) {
	if h.metrics == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.metrics.Snapshot())
}

// Traces returns the most recent finished spans. ?limit=N caps the count.
func (h *Handlers) Traces(c *gin.Context) {
	if h.tracer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tracing disabled"})
		return
	}

	limit := tracing.DefaultRecent
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	spans := h.tracer.Recent(limit)
	c.JSON(http.StatusOK, gin.H{"spans": spans, "count": len(spans)})
}

// Catalog returns the window catalog. ?format=yaml|toml|json returns the
// catalog file itself.
func (h *Handlers) Catalog(c *gin.Context) {
	cat := h.sessions.Catalog()

	format := strings.ToLower(c.Query("format"))
	if format == "" {
		c.JSON(http.StatusOK, gin.H{"windows": cat.Windows()})
		return
	}

	data, err := cat.Encode(format)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, contentTypes[format], data)
}

var contentTypes = map[string]string{
	catalog.FormatYAML: "application/yaml",
	catalog.FormatTOML: "application/toml",
	catalog.FormatJSON: "application/json",
}

// session resolves the :id param to a live session, writing the error
// response when it cannot
func (h *Handlers) session(c *gin.Context) (*session.Session, bool) {
	desktopID, err := id.ParseDesktopID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid desktop id"})
		return nil, false
	}

	s, err := h.sessions.Get(desktopID)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return s, true
}

// window validates the :win param against the session's catalog
func (h *Handlers) window(c *gin.Context, s *session.Session) (string, bool) {
	win := c.Param("win")
	if err := utils.ValidateWindowID(win); err != nil {
		respondError(c, err)
		return "", false
	}
	if _, err := s.Catalog().Lookup(win); err != nil {
		respondError(c, err)
		return "", false
	}
	return win, true
}

// respondError maps domain errors to HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, catalog.ErrUnknownWindow):
		status = http.StatusNotFound
	case errors.Is(err, session.ErrTooManySessions):
		status = http.StatusTooManyRequests
	case errors.Is(err, session.ErrManagerClosed):
		status = http.StatusServiceUnavailable
	case errors.Is(err, session.ErrTerminalHidden):
		status = http.StatusConflict
	case errors.Is(err, utils.ErrInvalid), errors.Is(err, catalog.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
