package server

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/PelkOS/backend/internal/api/http"
	"github.com/GriffinCanCode/PelkOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/PelkOS/backend/internal/api/ws"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/catalog"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/PelkOS/backend/internal/domain/session"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PelkOS/backend/internal/infrastructure/tracing"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	sessions *session.Manager
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.ServerConfig(
		cfg.Logging.Level,
		cfg.Logging.Development,
		cfg.Logging.File,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return New(cfg, logger)
}

// New creates a server using an existing logger
func New(cfg *config.Config, logger *logging.Logger) (*Server, error) {
	logger.Info("Initializing PelkOS Server",
		zap.String("port", cfg.Server.Port),
		zap.Float64("viewport_width", cfg.Desktop.ViewportWidth),
		zap.Float64("viewport_height", cfg.Desktop.ViewportHeight),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	tracer := tracing.New("desktop", logger.Named("tracing").Logger)

	cat, err := catalog.LoadOrBuiltin(cfg.Desktop.CatalogPath)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to load window catalog: %w", err)
	}
	logger.Info("Window catalog loaded",
		zap.String("path", cfg.Desktop.CatalogPath),
		zap.Int("windows", cat.Len()),
	)

	sessions := session.NewManager(session.Options{
		Catalog: cat,
		Viewport: desktop.Viewport{
			Width:         cfg.Desktop.ViewportWidth,
			Height:        cfg.Desktop.ViewportHeight,
			TaskbarHeight: cfg.Desktop.TaskbarHeight,
		},
		ZBase:         cfg.Desktop.ZBase,
		AutoOpen:      cfg.Desktop.AutoOpen,
		AutoOpenDelay: cfg.Desktop.AutoOpenDelay,
		ClockInterval: cfg.Desktop.ClockInterval,
		TTL:           cfg.Session.TTL,
		MaxSessions:   cfg.Session.MaxSessions,
		Logger:        logger.Named("session").Logger,
	}).WithMetrics(metrics)

	s := &Server{
		sessions: sessions,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}
	s.router = s.newRouter()

	logger.Info("Server initialized successfully")
	return s, nil
}

func (s *Server) newRouter() *gin.Engine {
	cfg := s.config

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(s.tracer))
	router.Use(monitoring.Middleware(s.metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig().WithOrigins(cfg.Server.CORSOrigins)))
	if cfg.RateLimit.Enabled {
		s.logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
			IdleTTL:           cfg.RateLimit.IdleTTL,
		}))
	}

	handlers := http.NewHandlers(s.sessions, s.metrics, s.logger.Named("http").Logger).
		WithTracer(s.tracer)
	wsHandler := ws.NewHandler(s.sessions, s.metrics, s.logger.Named("ws").Logger).
		WithTracer(s.tracer)

	// Register routes
	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/catalog", handlers.Catalog)
	router.GET("/debug/traces", handlers.Traces)

	// Metrics endpoints
	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
		router.GET("/metrics/json", handlers.MetricsJSON)
	}

	// Desktop sessions
	desktops := router.Group("/desktops")
	create := []gin.HandlerFunc{handlers.CreateDesktop}
	if cfg.RateLimit.Enabled && cfg.RateLimit.CreatePerSecond > 0 {
		// Creation is capped across all clients
		create = append([]gin.HandlerFunc{middleware.GlobalRateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.CreatePerSecond,
			Burst:             cfg.RateLimit.CreateBurst,
		})}, create...)
	}
	desktops.POST("", create...)
	desktops.GET("", handlers.ListDesktops)
	desktops.GET("/:id", handlers.GetDesktop)
	desktops.DELETE("/:id", handlers.CloseDesktop)
	desktops.POST("/:id/boot", handlers.Boot)
	desktops.PUT("/:id/viewport", handlers.SetViewport)
	desktops.POST("/:id/terminal", handlers.Terminal)

	// Window lifecycle
	for _, action := range []string{
		desktop.OpOpen,
		desktop.OpClose,
		desktop.OpMinimize,
		desktop.OpMaximize,
		desktop.OpToggle,
		desktop.OpFocus,
	} {
		desktops.POST("/:id/windows/:win/"+action, handlers.WindowAction(action))
	}
	desktops.POST("/:id/taskbar/:win/click", handlers.TaskbarClick)

	// Dragging
	desktops.POST("/:id/windows/:win/drag/start", handlers.DragStart)
	desktops.POST("/:id/drag/move", handlers.DragMove)
	desktops.POST("/:id/drag/end", handlers.DragEnd)

	// WebSocket
	desktops.GET("/:id/stream", wsHandler.HandleConnection)

	return router
}

// Router returns the HTTP handler
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Sessions returns the session manager
func (s *Server) Sessions() *session.Manager {
	return s.sessions
}

// Run serves HTTP and sweeps idle sessions until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.Run(sweepCtx, s.config.Session.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting HTTP server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, nethttp.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("Stopping HTTP server", zap.Duration("timeout", timeout))
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	return nil
}

// Close releases sessions and background workers
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	s.sessions.Shutdown()
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return nil
}
