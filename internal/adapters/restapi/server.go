package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"transfer_tracker/internal/config"
	"transfer_tracker/internal/logger"
	"transfer_tracker/pkg/transferparser"
)

const requestTimeout = 30 * time.Second

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logger.AppLogger
}

// NewServer creates a new instance of the REST API server.
func NewServer(service transferparser.Parser, appLogger logger.AppLogger, cfg *config.ServerConfig) (*Server, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil for Server")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for Server")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil for Server")
	}

	h, err := NewHTTPHandler(service, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           NewRouter(h),
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		ErrorLog:          appLogger.Component("HTTPServer").StdLogger(),
	}

	return &Server{
		httpServer: server,
		logger:     appLogger,
	}, nil
}

// Start runs the HTTP server. It returns nil once the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("HTTP server ListenAndServe error", "error", err)
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	s.logger.Info("HTTP server stopped gracefully")
	return nil
}

// NewRouter registers all API routes and middleware on a chi router.
func NewRouter(h *HTTPHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logRequests(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", h.HandleHealth)
	r.Get("/current_block", h.HandleGetCurrentBlock)
	r.Post("/subscribe", h.HandleSubscribe)
	r.Get("/transfers/{address}", h.HandleGetTransfers)
	r.Get("/confirmations/{hash}", h.HandleGetConfirmation)

	return r
}

// logRequests logs one line per request through the application logger.
func logRequests(l logger.AppLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			l.Debug("HTTP request",
				"requestId", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}
