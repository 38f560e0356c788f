// Package adminhttp serves the operator endpoints: health and metrics.
package adminhttp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/louisbranch/oripheon/internal/platform/timeouts"
)

// HealthFunc reports whether the process can serve traffic.
type HealthFunc func(ctx context.Context) error

// NewRouter builds the admin router. A nil gatherer serves the default
// Prometheus registry.
func NewRouter(gatherer prometheus.Gatherer, health HealthFunc) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if health != nil {
			if err := health(req.Context()); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// Server runs the admin router on its own listener.
type Server struct {
	listener net.Listener
	http     *http.Server
	logger   *zap.Logger
}

// Listen binds addr for the admin router.
func Listen(addr string, handler http.Handler, logger *zap.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		listener: listener,
		http:     &http.Server{Handler: handler, ReadHeaderTimeout: timeouts.ReadHeader},
		logger:   logger,
	}, nil
}

// Addr returns the bound address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve blocks until ctx ends, then shuts the server down.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("admin server listening", zap.String("addr", s.Addr()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.http.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown admin server: %w", err)
		}
		<-serveErr
		return nil
	case err := <-serveErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve admin: %w", err)
	}
}

// Close releases the listener of a server that never served.
func (s *Server) Close() error {
	if s == nil || s.listener == nil {
		return nil
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
