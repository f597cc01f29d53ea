package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/quforge/quarith/internal/arith"
	"github.com/quforge/quarith/internal/config"
	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/logging"
	"github.com/quforge/quarith/internal/service"
)

// Server represents the HTTP server for the circuit builder API.
// It wraps the standard http.Server and adds application-specific
// configuration and graceful shutdown capabilities.
type Server struct {
	registry       *arith.Registry
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	version        string
}

// NewServer creates a new Server instance with the given operator registry
// and configuration. It initializes the HTTP server with timeouts and a
// request multiplexer.
//
// Parameters:
//   - registry: The operator registry to build circuits from.
//   - cfg: The application configuration (port, widths, etc.).
//   - opts: Optional functional options for customizing the server
//     (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(registry *arith.Registry, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		registry:       registry,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"), // Default unified logger
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		version:        "dev",
	}

	// Apply any provided options
	for _, opt := range opts {
		opt(s)
	}

	// Initialize service if not provided
	if s.service == nil {
		s.service = service.NewBuildService(s.registry)
	}

	// Create default rate limiter if not provided
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()

	// Apply middleware chain: Security -> RateLimit -> Logging -> Metrics -> Handler
	mux.HandleFunc("/build", s.wrapWithMiddleware(s.handleBuild))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/operators", s.wrapWithMiddleware(s.handleOperators))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	// Apply in reverse order: Security -> RateLimit -> Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	// Setup signal handling for graceful shutdown
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	// Channel for server startup errors
	errCh := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		s.logger.Printf("Starting server on %s\n", s.httpServer.Addr)
		s.logger.Printf("Available operators: %v\n", s.service.Operators())
		s.logger.Printf("Available endpoints:\n")
		s.logger.Printf("  GET /build?op=<operator>&width=<qubits>\n")
		s.logger.Printf("  GET /health\n")
		s.logger.Printf("  GET /operators\n")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-s.shutdownSignal:
		s.logger.Printf("Shutdown signal received, initiating graceful shutdown...\n")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Printf("Server stopped gracefully\n")
	return nil
}
