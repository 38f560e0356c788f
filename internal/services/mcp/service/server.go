package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/louisbranch/oripheon/internal/platform/branding"
	platformgrpc "github.com/louisbranch/oripheon/internal/platform/grpc"
	"github.com/louisbranch/oripheon/internal/platform/logging"
	"github.com/louisbranch/oripheon/internal/platform/timeouts"
	genomeservice "github.com/louisbranch/oripheon/internal/services/genome/api/grpc/genome"
	"github.com/louisbranch/oripheon/internal/services/mcp/domain"
)

const (
	serverVersion   = "0.1.0"
	defaultHTTPAddr = "localhost:8097"
	healthInterval  = 30 * time.Second
)

// TransportKind names how MCP messages reach the server.
type TransportKind string

const (
	TransportStdio TransportKind = "stdio"
	TransportHTTP  TransportKind = "http"
)

// Config configures Run.
type Config struct {
	GenomeAddr string
	Transport  TransportKind // stdio when empty
	HTTPAddr   string        // http transport only
	Logger     *zap.Logger
}

// Server exposes the genome tools and resources to MCP clients.
type Server struct {
	mcpServer *mcp.Server
	conn      *grpc.ClientConn
	logger    *zap.Logger
}

// newServer registers the tools and resources against client. conn is the
// connection the server closes on exit and may be nil.
func newServer(client genomeservice.GenomeServiceClient, conn *grpc.ClientConn, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	impl := &mcp.Implementation{Name: branding.AppName + " MCP", Version: serverVersion}
	srv := mcp.NewServer(impl, nil)

	mcp.AddTool(srv, domain.GenomeGenerateTool(), domain.GenomeGenerateHandler(client))
	mcp.AddTool(srv, domain.GenomeRerollTool(), domain.GenomeRerollHandler(client))
	mcp.AddTool(srv, domain.GenomeCompareTool(), domain.GenomeCompareHandler(client))
	mcp.AddTool(srv, domain.GenomeExportTool(), domain.GenomeExportHandler(client))
	mcp.AddTool(srv, domain.GenomeDiscloseTool(), domain.GenomeDiscloseHandler(client))
	mcp.AddTool(srv, domain.GenomeListTool(), domain.GenomeListHandler(client))
	srv.AddResourceTemplate(domain.GenomeResourceTemplate(), domain.GenomeResourceHandler(client))

	return &Server{mcpServer: srv, conn: conn, logger: logger}
}

// Run connects to the genome service and serves MCP until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	switch cfg.Transport {
	case "", TransportStdio:
		return runWithTransport(ctx, cfg, &mcp.StdioTransport{})
	case TransportHTTP:
		return runWithHTTPTransport(ctx, cfg)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

func runWithTransport(ctx context.Context, cfg Config, transport mcp.Transport) error {
	conn, err := dialGenomeGRPC(ctx, cfg.GenomeAddr, cfg.Logger)
	if err != nil {
		return err
	}
	return newServer(genomeservice.NewClient(conn), conn, cfg.Logger).serveWithTransport(ctx, transport)
}

// runWithHTTPTransport binds the listener before dialing so a taken port
// fails fast.
func runWithHTTPTransport(ctx context.Context, cfg Config) error {
	addr := strings.TrimSpace(cfg.HTTPAddr)
	if addr == "" {
		addr = defaultHTTPAddr
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	conn, err := dialGenomeGRPC(ctx, cfg.GenomeAddr, cfg.Logger)
	if err != nil {
		_ = listener.Close()
		return err
	}
	server := newServer(genomeservice.NewClient(conn), conn, cfg.Logger)
	defer server.Close()
	return server.serveHTTP(ctx, listener)
}

// serveHTTP runs the streamable HTTP handler on listener. Streams still open
// after the shutdown grace period are closed.
func (s *Server) serveHTTP(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return s.mcpServer }, nil),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	go s.monitorHealth(monitorCtx, healthInterval)

	done := make(chan error, 1)
	go func() {
		s.logger.Info("mcp http listening", zap.String("addr", listener.Addr().String()))
		done <- httpServer.Serve(listener)
	}()

	select {
	case err := <-done:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve MCP http: %w", err)
	case <-ctx.Done():
	}

	graceCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
	defer cancel()
	if err := httpServer.Shutdown(graceCtx); err != nil {
		s.logger.Warn("mcp http shutdown timed out, closing", zap.Error(err))
		if err := httpServer.Close(); err != nil {
			return fmt.Errorf("close MCP http: %w", err)
		}
	}
	return nil
}

// monitorHealth logs genome service status changes. Tool calls report their
// own failures, so an unhealthy backend does not stop the listener.
func (s *Server) monitorHealth(ctx context.Context, interval time.Duration) {
	platformgrpc.MonitorHealth(ctx, s.conn, genomeservice.ServiceName, interval,
		func(status grpc_health_v1.HealthCheckResponse_ServingStatus, err error) {
			switch {
			case err != nil:
				s.logger.Warn("genome health check failed", zap.Error(err))
			case status != grpc_health_v1.HealthCheckResponse_SERVING:
				s.logger.Warn("genome service not serving", zap.Stringer("status", status))
			default:
				s.logger.Info("genome service is serving")
			}
		})
}

// Close releases the genome connection. Repeated calls are no-ops.
func (s *Server) Close() error {
	if s == nil || s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	return conn.Close()
}

// serveWithTransport blocks until the session or ctx ends, then closes the
// genome connection. Cancellation is a clean exit.
func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	runErr := s.mcpServer.Run(ctx, transport)
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		runErr = nil
	}
	if runErr != nil {
		runErr = fmt.Errorf("serve MCP: %w", runErr)
	}
	if err := s.Close(); err != nil {
		return errors.Join(runErr, fmt.Errorf("close gRPC connection: %w", err))
	}
	return runErr
}

// dialGenomeGRPC connects to the genome service and waits for it to report
// SERVING.
func dialGenomeGRPC(ctx context.Context, addr string, logger *zap.Logger) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("genome address is required")
	}
	logf := logging.Printf(logger)
	if logf == nil {
		logf = func(string, ...any) {}
	}
	conn, err := platformgrpc.DialWithHealth(ctx, nil, addr, genomeservice.ServiceName,
		timeouts.GRPCDial, logf, platformgrpc.DefaultClientDialOptions()...)

	var dialErr *platformgrpc.DialError
	switch {
	case err == nil:
		return conn, nil
	case !errors.As(err, &dialErr):
		return nil, err
	case dialErr.Stage == platformgrpc.DialStageConnect:
		return nil, fmt.Errorf("connect to genome server at %s: %w", addr, dialErr.Err)
	default:
		return nil, fmt.Errorf("genome server at %s is not healthy: %w", addr, dialErr.Err)
	}
}
