// Package server exposes an optimization engine over HTTP.
//
// Routes:
//
//	POST   /v1/optimize        run a pass over the posted graph and viewport
//	POST   /v1/viewport        re-run the last graph for a new viewport
//	POST   /v1/queue/process   drain the icon load queue
//	GET    /v1/stats           engine statistics
//	DELETE /v1/cache           clear the icon cache
//	GET    /v1/events          websocket stream of loaded icons
//	GET    /icons/*            icon files from the configured directory
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/archlens/pkg/graph"
	"github.com/matzehuels/archlens/pkg/icons"
	"github.com/matzehuels/archlens/pkg/optimize"
)

const (
	maxBodyBytes    = 32 << 20
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// IconsDir, when set, is served under /icons/.
	IconsDir string
}

// Server serves one engine. All clients share its cache, visibility set
// and load queue.
type Server struct {
	engine *optimize.Engine
	opts   Options
	logger *log.Logger
	hub    *hub
	icons  *icons.DirFetcher

	mu   sync.RWMutex
	last *graph.Graph
}

// New creates a server for engine and registers the icon-loaded callback
// that feeds /v1/events. A nil logger uses log.Default().
func New(engine *optimize.Engine, opts Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		engine: engine,
		opts:   opts,
		logger: logger,
		hub:    newHub(logger),
	}
	if opts.IconsDir != "" {
		s.icons = icons.NewDirFetcher(opts.IconsDir)
	}
	engine.SetIconLoadedCallback(s.hub.iconLoaded)
	return s
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/optimize", s.handleOptimize)
		r.Post("/viewport", s.handleViewport)
		r.Post("/queue/process", s.handleProcessQueue)
		r.Get("/stats", s.handleStats)
		r.Delete("/cache", s.handleClearCache)
		r.Get("/events", s.handleEvents)
	})
	r.Get("/icons/*", s.handleIcon)
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	s.hub.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) setLast(g graph.Graph) {
	s.mu.Lock()
	s.last = &g
	s.mu.Unlock()
}

func (s *Server) lastGraph() (graph.Graph, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return graph.Graph{}, false
	}
	return *s.last, true
}
