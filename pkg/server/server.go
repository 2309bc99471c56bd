package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/cargo/internal/config"
	"github.com/vango-dev/cargo/pkg/islands"
	"github.com/vango-dev/cargo/pkg/middleware"
	"github.com/vango-dev/cargo/pkg/router"
)

// HealthPath is the liveness endpoint.
const HealthPath = "/healthz"

// Server serves the pages of a router.Registry as server-rendered HTML.
type Server struct {
	config   *config.Config
	pages    *router.Registry
	islands  *islands.Registry
	logger   *slog.Logger
	registry *prometheus.Registry
	newID    func() string

	mux        *chi.Mux
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIslands sets the island registry used to find islands in pages.
func WithIslands(reg *islands.Registry) Option {
	return func(s *Server) {
		s.islands = reg
	}
}

// WithPrometheusRegistry sets the registry request metrics are recorded in
// and /metrics is served from.
func WithPrometheusRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithIDGenerator replaces the random island id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Server) {
		s.newID = gen
	}
}

// New creates a Server for pages. A nil cfg uses defaults.
func New(cfg *config.Config, pages *router.Registry, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	if pages == nil {
		pages = router.NewRegistry()
	}
	s := &Server{
		config:  cfg,
		pages:   pages,
		islands: islands.NewRegistry(),
		logger:  slog.Default().With("component", "server"),
		newID:   islands.RandomID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	s.mux = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != HealthPath && r.URL.Path != s.config.Metrics.Path
		}),
	))
	if s.config.Metrics.Enabled {
		r.Use(middleware.Prometheus(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(s.config.Metrics.Namespace),
		))
		r.Method(http.MethodGet, s.config.Metrics.Path, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Get(HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	s.mountAssets(r)

	for _, route := range s.pages.Routes() {
		r.Method(http.MethodGet, route.Path, s.pageHandler(route))
	}
	r.NotFound(s.notFound)
	return r
}

// mountAssets serves the client runtime and island modules from the
// islands directory.
func (s *Server) mountAssets(r chi.Router) {
	dir := s.config.Islands.Dir
	if dir == "" {
		return
	}
	serve := func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, filepath.Join(dir, path.Base(req.URL.Path)))
	}
	if script := s.config.Render.ClientScript; script != "" {
		r.Get(script, serve)
	}
	if prefix := s.config.Islands.ScriptPrefix; prefix != "" {
		r.Get(prefix+"{module}", serve)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	http.Error(w, errNotFound(r.URL.Path).Error(), http.StatusNotFound)
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Run listens on the configured address and serves until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like Run with a caller-supplied listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.mux,
		ReadTimeout:       s.config.ReadTimeout(),
		ReadHeaderTimeout: s.config.ReadTimeout(),
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String(), "pages", len(s.pages.Routes()))
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout())
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}
