package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	sdkgrpc "github.com/mama165/sdk-go/grpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer answers grpc.health.v1.Health for the whole process.
type HealthServer struct {
	log        *slog.Logger
	listener   net.Listener
	grpcServer *gogrpc.Server
	health     *health.Server
}

func NewHealthServer(log *slog.Logger, listener net.Listener) *HealthServer {
	grpcServer := gogrpc.NewServer(gogrpc.ChainUnaryInterceptor(sdkgrpc.UnaryLoggingInterceptor(log)))
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	return &HealthServer{
		log:        log,
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
	}
}

// Shutdown flips every status to NOT_SERVING while connections stay open.
func (s *HealthServer) Shutdown() {
	s.health.Shutdown()
}

// Serve blocks until ctx is done, then reports NOT_SERVING and stops.
func (s *HealthServer) Serve(ctx context.Context) error {
	s.log.Info("gRPC health listening", "address", s.listener.Addr().String())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		return stopped(<-serveErr)
	case err := <-serveErr:
		return stopped(err)
	}
}

func stopped(err error) error {
	if err == nil || errors.Is(err, gogrpc.ErrServerStopped) {
		return nil
	}
	return fmt.Errorf("serve gRPC health: %w", err)
}
