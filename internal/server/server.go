// Package server wires handlers, middleware, and routes into an HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/config"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/evaluate"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/executor/local"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/handler"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/middleware"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/runtime"
)

// Server holds the router and everything it depends on. All wiring
// happens in New so main stays minimal.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes assembles the dependency chain: resolver into engine,
// engine into handler, handler onto routes. Middleware order matters:
// RealIP must run before the rate limiter so per-client buckets key on
// the true client address.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	resolver := runtime.NewResolver(
		runtime.WithProbeTimeout(time.Duration(s.config.Executor.ProbeTimeoutMs) * time.Millisecond),
	)

	workspaceRoot := s.config.Executor.WorkspaceRoot
	if workspaceRoot == "" {
		workspaceRoot = os.TempDir()
	}
	engineCfg := local.Config{
		WorkspaceRoot:  workspaceRoot,
		CompileTimeout: time.Duration(s.config.Executor.CompileTimeout) * time.Second,
		RunTimeout:     time.Duration(s.config.Executor.RunTimeout) * time.Second,
		CaseTimeout:    time.Duration(s.config.Executor.CaseTimeout) * time.Second,
	}
	engine := local.New(engineCfg, resolver, s.logger)

	// NewHTTPGateway returns nil when no evaluator URL is configured;
	// assigning the nil pointer to the interface directly would make
	// the handler's nil check pass while calls still panic.
	var gateway evaluate.Gateway
	if g := evaluate.NewHTTPGateway(s.config.Evaluator.URL, time.Duration(s.config.Evaluator.TimeoutSec)*time.Second); g != nil {
		gateway = g
	}

	executeHandler := handler.NewExecuteHandler(engine, gateway, s.logger)
	languagesHandler := handler.NewLanguagesHandler(resolver, s.logger)

	limiter := middleware.NewRateLimiter(
		s.config.RateLimit.RequestsPerSecond,
		s.config.RateLimit.Burst,
		s.config.RateLimit.MaxConcurrent,
	)

	s.router.Route("/api", func(r chi.Router) {
		r.With(limiter.Middleware).Post("/execute", executeHandler.HandleExecute)
		r.Get("/languages", languagesHandler.HandleList)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	s.router.Handle("/metrics", promhttp.Handler())

	return nil
}

// Start runs the server until SIGINT or SIGTERM, then drains in-flight
// requests before returning.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.config.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
