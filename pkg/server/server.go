// Package server exposes the crossflow pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                liveness probe
//	POST /api/option             counts document -> chart option JSON
//	POST /api/summary            counts document -> per-approach totals
//	POST /api/layouts            build and store an option, returns its id
//	GET  /api/layouts/{id}       stored option JSON
//	GET  /api/layouts/{id}/dot   stored option as Graphviz DOT
//
// Request bodies use the counts document format of pkg/io in its JSON form.
// Stored layouts live in the runner's cache, so they expire with the layout
// TTL and are unavailable when caching is disabled.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/crossflow/pkg/buildinfo"
	"github.com/matzehuels/crossflow/pkg/cache"
	"github.com/matzehuels/crossflow/pkg/crossflow"
	"github.com/matzehuels/crossflow/pkg/pipeline"
)

// Config holds server configuration.
type Config struct {
	Addr           string
	AllowAll       bool          // allow all CORS origins
	RequestTimeout time.Duration // per-request deadline, 0 for the default
	LayoutTTL      time.Duration // lifetime of stored layouts, 0 for cache.TTLLayout

	// Style is the base diagram config; a request's config table overrides it.
	Style crossflow.Config
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the crossflow HTTP API.
type Server struct {
	cfg        Config
	runner     *pipeline.Runner
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server backed by runner. A nil logger uses the runner's.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.LayoutTTL <= 0 {
		cfg.LayoutTTL = cache.TTLLayout
	}
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{headerCache, "Location"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/option", s.handleOption)
		r.Post("/summary", s.handleSummary)
		r.Post("/layouts", s.handleCreateLayout)
		r.Get("/layouts/{id}", s.handleGetLayout)
		r.Get("/layouts/{id}/dot", s.handleGetLayoutDOT)
	})

	return r
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// Router returns the chi router, e.g. for tests or additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start listens on the configured address until Shutdown is called.
func (s *Server) Start() error {
	s.httpServer = s.newHTTPServer()
	return s.serve()
}

func (s *Server) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      s.cfg.RequestTimeout + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

func (s *Server) serve() error {
	s.logger.Info("crossflow server listening", "addr", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is canceled, then shuts down gracefully, giving
// in-flight requests up to grace to finish.
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	s.httpServer = s.newHTTPServer()
	errc := make(chan error, 1)
	go func() { errc <- s.serve() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "grace", grace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errc
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
