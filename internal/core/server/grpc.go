// Package server provides gRPC server lifecycle management.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/solatis/paramkeeper/internal/core/api"
	"github.com/solatis/paramkeeper/internal/core/config"
	"github.com/solatis/paramkeeper/internal/wire"
)

// GRPCServer manages gRPC server lifecycle.
type GRPCServer struct {
	server   *grpc.Server
	listener net.Listener
	config   *config.ServiceConfig
}

// NewGRPCServer creates the gRPC server with the wire codec forced and
// the ParamStore service registered.
func NewGRPCServer(cfg *config.ServiceConfig, service *api.ParamStoreService) (*GRPCServer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("cfg cannot be nil")
	}
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	opts := []grpc.ServerOption{
		grpc.ForceServerCodec(wire.Codec{}),
		grpc.ChainUnaryInterceptor(
			loggingInterceptor(),
		),
	}

	server := grpc.NewServer(opts...)
	wire.RegisterParamStoreServer(server, service)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(server, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	return &GRPCServer{
		server: server,
		config: cfg,
	}, nil
}

// loggingInterceptor logs each unary call with its duration and
// outcome.
func loggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		if err != nil {
			log.Printf("grpc %s failed in %v: %v", info.FullMethod, time.Since(start), err)
		} else {
			log.Printf("grpc %s ok in %v", info.FullMethod, time.Since(start))
		}
		return resp, err
	}
}

// Start binds listener and serves gRPC requests.
// Context is provided for API consistency but Serve blocks until Shutdown is called.
func (s *GRPCServer) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", addr, err)
	}

	s.listener = listener
	return s.server.Serve(listener)
}

// Addr returns the bound listener address, or nil before Start.
func (s *GRPCServer) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown gracefully stops server with 30-second timeout.
func (s *GRPCServer) Shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		s.server.Stop()
		return fmt.Errorf("shutdown cancelled by context: %w", ctx.Err())
	case <-time.After(30 * time.Second):
		s.server.Stop()
		return fmt.Errorf("graceful shutdown timeout, forced stop")
	}
}
