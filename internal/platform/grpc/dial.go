package grpc

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// DialerFunc opens a client connection. gogrpc.DialContext is used when nil.
type DialerFunc func(ctx context.Context, addr string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error)

// DialStage is the step of DialWithHealth that failed.
type DialStage string

const (
	DialStageConnect DialStage = "connect"
	DialStageHealth  DialStage = "health"
)

// DialError reports which step of DialWithHealth failed for Addr.
type DialError struct {
	Stage DialStage
	Addr  string
	Err   error
}

func (e *DialError) Error() string {
	switch {
	case e == nil:
		return "gRPC dial error"
	case e.Addr == "":
		return fmt.Sprintf("gRPC %s error: %v", e.Stage, e.Err)
	default:
		return fmt.Sprintf("gRPC %s error (%s): %v", e.Stage, e.Addr, e.Err)
	}
}

func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DefaultClientDialOptions are the options every genome client dials with:
// plaintext, blocking, and traced through otelgrpc.
func DefaultClientDialOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithBlock(),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// DialWithHealth connects to addr and then waits for service to report
// SERVING. timeout covers both steps; zero means ctx alone bounds them. The
// connection is closed when the health step fails.
func DialWithHealth(ctx context.Context, dial DialerFunc, addr, service string, timeout time.Duration, logf func(string, ...any), opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if dial == nil {
		dial = gogrpc.DialContext
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	conn, err := dial(ctx, addr, opts...)
	if err != nil {
		return nil, &DialError{Stage: DialStageConnect, Addr: addr, Err: err}
	}
	if err := WaitForHealth(ctx, conn, service, logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: DialStageHealth, Addr: addr, Err: err}
	}
	return conn, nil
}
