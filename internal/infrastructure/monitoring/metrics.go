package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Desktop metrics
	WindowOps    *prometheus.CounterVec
	WindowsOpen  prometheus.Gauge
	DragGestures prometheus.Counter

	// Session metrics
	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsExpired prometheus.Counter

	// Terminal metrics
	TerminalCommands *prometheus.CounterVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.GaugeFunc
	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	ActiveSessions    int64   `json:"active_sessions"`
	OpenWindows       int64   `json:"open_windows"`
	WindowOperations  int64   `json:"window_operations"`
	DragGestures      int64   `json:"drag_gestures"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"total_duration_seconds"` // sum of all request durations
	RequestCount      int64   `json:"request_count"`          // count for averaging
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector on its own registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "desktop_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Desktop metrics
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_window_operations_total",
				Help: "Total number of window operations that changed state",
			},
			[]string{"op"},
		),
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_windows_open",
				Help: "Number of windows with a taskbar entry across all desktops",
			},
		),
		DragGestures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_drag_gestures_total",
				Help: "Total number of drag gestures started",
			},
		),

		// Session metrics
		SessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_sessions_active",
				Help: "Number of live desktop sessions",
			},
		),
		SessionsCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_sessions_created_total",
				Help: "Total number of desktop sessions created",
			},
		),
		SessionsExpired: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "desktop_sessions_expired_total",
				Help: "Total number of idle desktop sessions reaped",
			},
		),

		// Terminal metrics
		TerminalCommands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_terminal_commands_total",
				Help: "Total number of terminal commands executed",
			},
			[]string{"command"},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "desktop_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "desktop_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	m.Uptime = factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "desktop_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler returns the Prometheus exposition handler for this registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying Prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	// Update snapshot
	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	m.snapshot.RequestCount++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp records a window operation that changed desktop state
func (m *Metrics) RecordWindowOp(op string) {
	m.WindowOps.WithLabelValues(op).Inc()
	m.mu.Lock()
	m.snapshot.WindowOperations++
	m.mu.Unlock()
}

// AddWindowsOpen adjusts the open window gauge by delta
func (m *Metrics) AddWindowsOpen(delta int) {
	m.WindowsOpen.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.OpenWindows += int64(delta)
	m.mu.Unlock()
}

// IncDragGestures increments the drag gesture counter
func (m *Metrics) IncDragGestures() {
	m.DragGestures.Inc()
	m.mu.Lock()
	m.snapshot.DragGestures++
	m.mu.Unlock()
}

// SetSessionsActive sets the number of live sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveSessions = int64(count)
	m.mu.Unlock()
}

// IncSessionsCreated increments the sessions created counter
func (m *Metrics) IncSessionsCreated() {
	m.SessionsCreated.Inc()
}

// IncSessionsExpired increments the sessions expired counter
func (m *Metrics) IncSessionsExpired() {
	m.SessionsExpired.Inc()
}

// RecordTerminalCommand records an executed terminal command
func (m *Metrics) RecordTerminalCommand(command string) {
	m.TerminalCommands.WithLabelValues(command).Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns the current values for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
