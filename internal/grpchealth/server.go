// Package grpchealth serves the standard grpc.health.v1.Health service so orchestrators
// can probe the process with grpc_health_probe or native gRPC checks.
package grpchealth

import (
	"context"
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthgrpc "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	applog "github.com/janisto/hello-docker/internal/platform/logging"
)

// Server wraps a gRPC server exposing only the health service.
type Server struct {
	grpc    *grpc.Server
	health  *health.Server
	service string
}

// New builds a health server reporting SERVING for the overall status ("") and for service.
func New(service string, opts ...grpc.ServerOption) *Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logUnary))
	gs := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthgrpc.RegisterHealthServer(gs, hs)

	hs.SetServingStatus("", healthgrpc.HealthCheckResponse_SERVING)
	hs.SetServingStatus(service, healthgrpc.HealthCheckResponse_SERVING)

	return &Server{grpc: gs, health: hs, service: service}
}

// Serve accepts connections on lis until Shutdown is called. Calling Shutdown before
// Serve is not an error.
func (s *Server) Serve(lis net.Listener) error {
	applog.LogInfo(context.Background(), "grpc health listening",
		zap.String("addr", lis.Addr().String()), zap.String("service", s.service))
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Shutdown flips every status to NOT_SERVING and drains in-flight RPCs. If ctx expires
// first the server is stopped hard and ctx.Err() is returned.
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		return ctx.Err()
	}
}

func logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	applog.LoggerFromContext(ctx).Debug("grpc request completed",
		zap.String("method", info.FullMethod),
		zap.String("code", status.Code(err).String()),
		zap.Duration("duration", time.Since(start)),
	)
	return resp, err
}
