// Package server exposes the layout pipeline over HTTP.
//
// The API is read-heavy and layout responses are pure functions of content
// and viewport width, so every endpoint routes through the same cached
// pipeline Runner the CLI uses.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jverhoef/cardrail/pkg/config"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/pipeline"
)

// Server serves the cardrail HTTP API.
type Server struct {
	runner *pipeline.Runner
	source content.Source
	cfg    config.Config
	logger *log.Logger
	http   *http.Server
}

// New builds a server around a pipeline runner and the content source all
// GET endpoints read from; handlers only vary viewport and progress.
func New(runner *pipeline.Runner, source content.Source, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		source: source,
		cfg:    cfg,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Routes builds the chi router. Exposed for tests.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayoutPost)
		r.Get("/layout/{viewportWidth}", s.handleLayoutGet)
		r.Get("/state", s.handleState)
		r.Get("/jump/{category}", s.handleJump)
	})
	return r
}

// Start serves until the context is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("http server shutting down")
	return s.http.Shutdown(shutdownCtx)
}
