// Package server exposes the preview pipeline over HTTP.
//
// # Routes
//
//	POST /v1/preview?format=svg|png|json|pdf|dxf   render a state payload
//	POST /v1/preview/legacy                        always 200, error document on bad input
//	GET  /healthz                                  liveness
//	GET  /version                                  build information
//
// The preview route also accepts legacy_clamp, strict and scale query
// parameters, which override the server defaults for one request.
//
// Responses carry an ETag (SHA-256 of the artifact) and honor
// If-None-Match. Every response carries an X-Request-ID; a valid UUID sent
// by the client is reused. Errors are JSON:
//
//	{"error": {"code": "INVALID_PAYLOAD", "message": "..."}, "request_id": "..."}
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/panelview/pkg/pipeline"
)

// Defaults for Options fields left zero.
const (
	DefaultMaxBodyBytes = 1 << 20
	DefaultTimeout      = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// Options configures a Server.
type Options struct {
	// Defaults apply to every request before query parameters override them.
	Defaults pipeline.Options

	MaxBodyBytes int64
	Timeout      time.Duration // per-request render budget

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server routes preview requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server. The runner is shared by all requests.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger, opts: opts}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(s.recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1/preview", func(r chi.Router) {
		r.Use(middleware.Timeout(s.opts.Timeout))
		r.Use(middleware.RequestSize(s.opts.MaxBodyBytes))
		r.Post("/", s.handlePreview)
		r.Post("/legacy", s.handleLegacy)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe listens on addr and serves until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.opts.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
