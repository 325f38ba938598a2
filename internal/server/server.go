// Package server exposes the layout engine, the KDT export and order
// submission over HTTP with gin.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/piwi3910/BoardCut/internal/engine"
	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/orders"
)

// Server wires HTTP routes to the engine and the order service.
type Server struct {
	settings   model.LayoutSettings
	orders     *orders.Service
	gate       *Gate
	logger     *slog.Logger
	tracer     trace.Tracer
	engineOpts []engine.Option
	proxies    []string
	router     *gin.Engine
}

// Option configures a Server.
type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// WithGate protects /api with a shared password gate.
func WithGate(g *Gate) Option {
	return func(s *Server) { s.gate = g }
}

// WithSettings sets the layout defaults used when a request names no policy.
func WithSettings(settings model.LayoutSettings) Option {
	return func(s *Server) { s.settings = settings }
}

// WithTrustedProxies lists the proxy addresses or CIDRs whose
// X-Forwarded-For header is honored. By default no proxy is trusted and the
// gate sees the peer address.
func WithTrustedProxies(proxies ...string) Option {
	return func(s *Server) { s.proxies = append(s.proxies, proxies...) }
}

// WithEngineOptions passes options to every engine the server creates.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(s *Server) { s.engineOpts = append(s.engineOpts, opts...) }
}

func New(svc *orders.Service, opts ...Option) *Server {
	s := &Server{
		settings: model.DefaultSettings(),
		orders:   svc,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:   otel.Tracer("boardcut/server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.UseRawPath = true
	r.UnescapePathValues = true
	if err := r.SetTrustedProxies(s.proxies); err != nil {
		s.logger.Warn("ignoring trusted proxies", "proxies", s.proxies, "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), requestLogger(s.logger), allowCORS())

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api", s.gate.Middleware())
	api.POST("/layout", s.handleLayout)
	api.POST("/estimate", s.handleEstimate)
	api.POST("/kdt", s.handleKDT)
	api.POST("/chart", s.handleChart)
	api.POST("/orders", s.handleSubmitOrder)
	api.GET("/orders", s.handleListOrders)
	api.GET("/files/:filename", s.handleFile)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) newEngine(policy string) (*engine.Engine, error) {
	settings := s.settings
	if policy != "" {
		p, err := model.ParseRotationPolicy(policy)
		if err != nil {
			return nil, err
		}
		settings.RotationPolicy = p
	}
	opts := append([]engine.Option{engine.WithLogger(s.logger)}, s.engineOpts...)
	return engine.New(settings, opts...), nil
}
