// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server is the HTTP delivery layer: the form page, the generate
// and download endpoints, and the progress WebSocket.
package server

import (
	"context"
	"embed"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pdiddy/bibgen/internal/bibliography"
	"github.com/pdiddy/bibgen/internal/notify"
	"github.com/pdiddy/bibgen/internal/search"
	"github.com/pdiddy/bibgen/pkg/types"
)

//go:embed static
var staticFS embed.FS

// Generator runs one generate job. *bibliography.Generator implements it;
// tests substitute fakes.
type Generator interface {
	Generate(ctx context.Context, req bibliography.Request) (bibliography.Result, error)
}

// DocumentSource serves previously generated documents by filename.
type DocumentSource interface {
	Get(filename string) (string, error)
}

// Config wires the server's collaborators.
type Config struct {
	Server    types.ServerConfig
	Generator Generator
	Registry  *notify.Registry
	Documents DocumentSource
	Presets   []search.Preset
}

// Server is the stateless HTTP surface.
type Server struct {
	Router    *chi.Mux
	cfg       types.ServerConfig
	generator Generator
	registry  *notify.Registry
	documents DocumentSource
	presets   []search.Preset
}

// New builds the router and handlers.
func New(cfg Config) *Server {
	s := &Server{
		Router:    chi.NewRouter(),
		cfg:       cfg.Server,
		generator: cfg.Generator,
		registry:  cfg.Registry,
		documents: cfg.Documents,
		presets:   cfg.Presets,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.Router.Use(chiMiddleware.RequestID)
	s.Router.Use(chiMiddleware.RealIP)
	s.Router.Use(chiMiddleware.Logger)
	s.Router.Use(chiMiddleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.Router.Get("/", s.handleIndex)
	s.Router.Get("/ws", s.registry.HandleWS)
	s.Router.Post("/generate_json", s.handleGenerate)
	s.Router.Get("/download_json", s.handleDownload)
	s.Router.Get("/api/presets", s.handlePresets)
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully. Running
// jobs are not cancelled; the shutdown grace period lets in-flight
// responses finish.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.BindAddress, s.cfg.Port)
	srv := &http.Server{Addr: addr, Handler: s.Router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "bibgen listening on http://%s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
