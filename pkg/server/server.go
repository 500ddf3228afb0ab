// Package server exposes the render pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /api/v1/render                        run the pipeline (?async=true returns 202)
//	GET  /api/v1/jobs                          recent jobs, newest first (?limit=n)
//	GET  /api/v1/jobs/{id}                     one job
//	GET  /api/v1/jobs/{id}/artifacts/{format}  raw artifact bytes
//
// Request bodies are JSON-encoded [pipeline.Options]. Errors are reported as
// {"code": ..., "error": ...} with the status derived from the error code.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/qchip/pkg/observability"
	"github.com/matzehuels/qchip/pkg/pipeline"
	"github.com/matzehuels/qchip/pkg/store"
)

const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
	DefaultJobTimeout   = 2 * time.Minute
	shutdownTimeout     = 15 * time.Second
)

// Server serves the API. It is safe for concurrent use.
type Server struct {
	runner *pipeline.Runner
	jobs   store.Store
	logger *log.Logger

	jobTTL       time.Duration
	jobTimeout   time.Duration
	maxBodyBytes int64

	// async jobs outlive their request; they run on baseCtx and are
	// tracked so Shutdown can wait for them.
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures a Server.
type Option func(*Server)

// WithJobTTL sets how long finished jobs are kept.
func WithJobTTL(d time.Duration) Option { return func(s *Server) { s.jobTTL = d } }

// WithJobTimeout bounds a single pipeline run.
func WithJobTimeout(d time.Duration) Option { return func(s *Server) { s.jobTimeout = d } }

// WithMaxBodyBytes limits request bodies.
func WithMaxBodyBytes(n int64) Option { return func(s *Server) { s.maxBodyBytes = n } }

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, jobs store.Store, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		runner:       runner,
		jobs:         jobs,
		logger:       logger.WithPrefix("server"),
		jobTTL:       store.DefaultTTL,
		jobTimeout:   DefaultJobTimeout,
		maxBodyBytes: DefaultMaxBodyBytes,
		baseCtx:      ctx,
		cancel:       cancel,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Get("/jobs", s.handleListJobs)
		r.Get("/jobs/{id}", s.handleGetJob)
		r.Get("/jobs/{id}/artifacts/{format}", s.handleArtifact)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully and waits for in-flight async jobs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.cancel()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.Shutdown(shutdownCtx)
	if stderrors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown cancels running async jobs and waits for them to record their
// outcome, or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) {
	s.cancel()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("async jobs still running at shutdown")
	}
}

// Wait blocks until all async jobs have finished.
func (s *Server) Wait() { s.wg.Wait() }

// observe reports requests to the HTTP hooks using the matched route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		// the pattern is only known once chi has routed the request
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
	})
}

func observabilityError(r *http.Request, route string, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, route, err)
}
