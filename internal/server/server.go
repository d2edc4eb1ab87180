// Package server implements the cistercian HTTP API.
//
// Routes:
//
//	GET  /healthz                 liveness and build version
//	GET  /v1/strokes?expr=        stroke list as JSON
//	GET  /v1/render.{format}      one rendered file (svg, png, gif, pdf, json)
//	GET  /v1/tree?expr=           shape tree as Graphviz DOT, or SVG with format=svg
//	POST /v1/renders              render and store under a new id
//	GET  /v1/renders/{id}         fetch a stored render
//
// The expression and rendering parameters are read from the query string:
// expr, layout, resolution, scale, margin, line_width, animate, speed, fps
// and refresh. Client errors are answered with status 400 and a JSON body
// carrying the error code.
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/algexeno/cistercian/pkg/cache"
	"github.com/algexeno/cistercian/pkg/observability"
	"github.com/algexeno/cistercian/pkg/pipeline"
)

// Server serves the HTTP API on top of a pipeline runner.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. The runner's logger is used otherwise.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithDefaults sets the options used for parameters a request leaves out,
// typically taken from the configuration file.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// New creates a server. Stored renders go to the runner's cache.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{runner: runner, logger: runner.Logger}
	for _, opt := range opts {
		opt(s)
	}
	s.defaults.Expression = ""
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/strokes", s.handleStrokes)
		r.Get("/render.{format}", s.handleRender)
		r.Get("/tree", s.handleTree)
		r.Post("/renders", s.handleStore)
		r.Get("/renders/{id}", s.handleFetch)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// observe reports requests to the HTTP hooks and the logger.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.HTTP()

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		hooks.OnRequest(r.Context(), r.Method, route)
		hooks.OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// cacheOf returns the cache backing stored renders.
func (s *Server) cacheOf() (cache.Cache, cache.Keyer) {
	return s.runner.Cache, s.runner.Keyer
}
