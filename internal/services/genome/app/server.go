// Package server wires the genome runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/oripheon/internal/platform/adminhttp"
	"github.com/louisbranch/oripheon/internal/platform/config"
	"github.com/louisbranch/oripheon/internal/platform/metrics"
	genomeservice "github.com/louisbranch/oripheon/internal/services/genome/api/grpc/genome"
	"github.com/louisbranch/oripheon/internal/services/genome/events"
	"github.com/louisbranch/oripheon/internal/services/genome/storage"
	"github.com/louisbranch/oripheon/internal/services/genome/storage/memory"
	genomeredis "github.com/louisbranch/oripheon/internal/services/genome/storage/redis"
	genomesqlite "github.com/louisbranch/oripheon/internal/services/genome/storage/sqlite"
)

// Store providers.
const (
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config selects the genome server's providers.
type Config struct {
	Store     string `env:"GENOME_STORE" envDefault:"sqlite"`
	DBPath    string `env:"GENOME_DB_PATH"`
	RedisURL  string `env:"GENOME_REDIS_URL"`
	AdminAddr string `env:"GENOME_ADMIN_ADDR" envDefault:"localhost:8096"`
	Events    events.Config
}

// LoadConfig reads server settings from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "genome.db")
	}
	return cfg, nil
}

// Server hosts the genome gRPC API, its admin router and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	admin      *adminhttp.Server
	store      storage.GenomeStore
	publisher  events.Publisher
	logger     *zap.Logger
}

// NewWithAddr creates a configured genome server for the provided address.
func NewWithAddr(ctx context.Context, addr string, cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := OpenStore(ctx, cfg)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	publisher, err := events.New(cfg.Events, logger)
	if err != nil {
		_ = listener.Close()
		_ = store.Close()
		return nil, err
	}

	m := metrics.New()
	healthServer := health.NewServer()
	var admin *adminhttp.Server
	if strings.TrimSpace(cfg.AdminAddr) != "" {
		router := adminhttp.NewRouter(m.Registry, storeHealth(store))
		admin, err = adminhttp.Listen(cfg.AdminAddr, router, logger)
		if err != nil {
			_ = listener.Close()
			_ = store.Close()
			_ = publisher.Close()
			return nil, err
		}
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	apiService := genomeservice.NewService(genomeservice.Deps{
		Store:     store,
		Publisher: publisher,
		Metrics:   m,
		Logger:    logger,
	})
	genomeservice.RegisterGenomeServiceServer(grpcServer, apiService)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(genomeservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		admin:      admin,
		store:      store,
		publisher:  publisher,
		logger:     logger,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// AdminAddr returns the admin router address, or "" when disabled.
func (s *Server) AdminAddr() string {
	if s == nil {
		return ""
	}
	return s.admin.Addr()
}

// Run creates and serves a genome server until context cancellation.
func Run(ctx context.Context, port int, logger *zap.Logger) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	server, err := NewWithAddr(ctx, fmt.Sprintf(":%d", port), cfg, logger)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC and admin servers until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	adminCtx, stopAdmin := context.WithCancel(ctx)
	defer stopAdmin()
	adminErr := make(chan error, 1)
	if s.admin != nil {
		go func() {
			adminErr <- s.admin.Serve(adminCtx)
		}()
	} else {
		adminErr <- nil
	}

	s.logger.Info("genome server listening", zap.String("addr", s.Addr()))
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		err = <-serveErr
	case err = <-serveErr:
	}
	stopAdmin()
	if adminErrValue := <-adminErr; adminErrValue != nil {
		s.logger.Warn("admin server stopped", zap.Error(adminErrValue))
	}
	if err == nil || errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC: %w", err)
}

// Close releases genome server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.admin != nil {
		if err := s.admin.Close(); err != nil {
			s.logger.Warn("close admin listener", zap.Error(err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			s.logger.Warn("close event publisher", zap.Error(err))
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("close genome store", zap.Error(err))
		}
	}
}

// OpenStore opens the provider named by cfg.Store.
func OpenStore(ctx context.Context, cfg Config) (storage.GenomeStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Store)) {
	case "", StoreSQLite:
		path := cfg.DBPath
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create storage dir: %w", err)
			}
		}
		store, err := genomesqlite.Open(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open genome sqlite store: %w", err)
		}
		return store, nil
	case StoreRedis:
		store, err := genomeredis.Open(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("open genome redis store: %w", err)
		}
		return store, nil
	case StoreMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown genome store %q", cfg.Store)
	}
}

func storeHealth(store storage.GenomeStore) adminhttp.HealthFunc {
	return func(ctx context.Context) error {
		if pinger, ok := store.(interface{ Ping(context.Context) error }); ok {
			return pinger.Ping(ctx)
		}
		return nil
	}
}
