package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rpgo/returns-calculator/internal/calculation"
	"github.com/rpgo/returns-calculator/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	Configuration *domain.Configuration
	Engine        *calculation.Engine
	Tracer        trace.Tracer
	Logger        calculation.Logger

	// NoLimits skips input range validation; the core still rejects
	// invalid and unrepresentable inputs.
	NoLimits bool

	// RateLimit is the number of API requests a client may make per
	// RateWindow. Zero disables rate limiting.
	RateLimit  int
	RateWindow time.Duration
}

// Server exposes the calculator over HTTP.
type Server struct {
	config   *domain.Configuration
	engine   *calculation.Engine
	tracer   trace.Tracer
	logger   calculation.Logger
	noLimits bool
	limiter  *RateLimiter
}

// New creates a server from opts.
func New(opts Options) *Server {
	s := &Server{
		config:   opts.Configuration,
		engine:   opts.Engine,
		tracer:   opts.Tracer,
		logger:   opts.Logger,
		noLimits: opts.NoLimits,
	}
	if s.config == nil {
		s.config = domain.DefaultConfiguration()
	}
	if s.engine == nil {
		s.engine = calculation.NewEngineWithLimits(s.config.Limits)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("returns-calculator")
	}
	if s.logger == nil {
		s.logger = calculation.NopLogger{}
	}
	if opts.RateLimit > 0 {
		window := opts.RateWindow
		if window <= 0 {
			window = time.Minute
		}
		s.limiter = NewRateLimiter(opts.RateLimit, window)
	}
	return s
}

// Handler returns the routed handler with request IDs, metrics and
// rate limiting applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.route(mux, "/api/projection", s.api(http.HandlerFunc(s.handleProjection)))
	s.route(mux, "/api/projection.csv", s.api(http.HandlerFunc(s.handleProjectionCSV)))
	s.route(mux, "/healthz", http.HandlerFunc(s.handleHealth))
	s.route(mux, "/metrics", promhttp.Handler())
	s.route(mux, "/", http.HandlerFunc(s.handleReport))
	return RequestIDMiddleware(mux)
}

func (s *Server) route(mux *http.ServeMux, path string, h http.Handler) {
	mux.Handle(path, InstrumentMiddleware(path, s.logger, h))
}

func (s *Server) api(h http.Handler) http.Handler {
	if s.limiter == nil {
		return h
	}
	return RateLimitMiddleware(s.limiter, h)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if s.limiter != nil {
		defer s.limiter.Stop()
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Infof("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Infof("server exited")
	return nil
}
