package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthBackoff paces repeated health probes.
type HealthBackoff struct {
	Initial time.Duration
	Max     time.Duration
	// Probe bounds a single Check call.
	Probe time.Duration
}

// DefaultHealthBackoff is used by WaitForHealth.
var DefaultHealthBackoff = HealthBackoff{
	Initial: 200 * time.Millisecond,
	Max:     time.Second,
	Probe:   time.Second,
}

func (b HealthBackoff) next(d time.Duration) time.Duration {
	d *= 2
	if b.Max > 0 && d > b.Max {
		d = b.Max
	}
	return d
}

// CheckHealth probes service once. An empty service checks the whole server.
func CheckHealth(ctx context.Context, conn *gogrpc.ClientConn, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	if conn == nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, fmt.Errorf("gRPC connection is not configured")
	}
	resp, err := grpc_health_v1.NewHealthClient(conn).Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// WaitForHealth blocks until service reports SERVING or ctx ends.
func WaitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, logf func(string, ...any)) error {
	return waitForHealth(ctx, conn, service, DefaultHealthBackoff, logf)
}

func waitForHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, backoff HealthBackoff, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if backoff.Initial <= 0 || backoff.Probe <= 0 {
		backoff = DefaultHealthBackoff
	}
	delay := backoff.Initial
	for {
		probeCtx, cancel := context.WithTimeout(ctx, backoff.Probe)
		status, err := CheckHealth(probeCtx, conn, service)
		cancel()
		switch {
		case err != nil:
			logf("waiting for %s health: %v", serviceLabel(service), err)
		case status == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("%s is SERVING", serviceLabel(service))
			return nil
		default:
			logf("waiting for %s health: status %s", serviceLabel(service), status)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("wait for %s health: %w", serviceLabel(service), ctx.Err())
		case <-timer.C:
		}
		delay = backoff.next(delay)
	}
}

// MonitorHealth probes service every interval until ctx ends and calls report
// whenever the observed status changes. The first probe always reports. A
// failed probe reports UNKNOWN with its error.
func MonitorHealth(ctx context.Context, conn *gogrpc.ClientConn, service string, interval time.Duration, report func(grpc_health_v1.HealthCheckResponse_ServingStatus, error)) {
	if conn == nil || report == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		last    grpc_health_v1.HealthCheckResponse_ServingStatus
		lastErr string
		seen    bool
	)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		probeCtx, cancel := context.WithTimeout(ctx, interval)
		status, err := CheckHealth(probeCtx, conn, service)
		cancel()
		if ctx.Err() != nil {
			return
		}
		errText := ""
		if err != nil {
			errText = err.Error()
		}
		if seen && status == last && errText == lastErr {
			continue
		}
		seen, last, lastErr = true, status, errText
		report(status, err)
	}
}

func serviceLabel(service string) string {
	if service == "" {
		return "gRPC server"
	}
	return service
}
