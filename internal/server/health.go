package server

import (
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// HealthServer exposes the standard gRPC health service so orchestrators
// can probe the process without touching the HTTP API.
type HealthServer struct {
	grpcServer *grpc.Server
	health     *health.Server
	lis        net.Listener
	logger     *slog.Logger
}

// NewHealthServer listens on addr. The service starts NOT_SERVING.
func NewHealthServer(addr string, logger *slog.Logger) (*HealthServer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		return nil, err
	}
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, hs)
	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &HealthServer{grpcServer: grpcServer, health: hs, lis: lis, logger: logger}, nil
}

// Addr returns the bound listener address.
func (h *HealthServer) Addr() net.Addr {
	return h.lis.Addr()
}

// SetServing flips the overall ("") service status.
func (h *HealthServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
}

// Serve blocks until Stop is called.
func (h *HealthServer) Serve() error {
	h.logger.Info("grpc health listening", "addr", h.lis.Addr().String())
	return h.grpcServer.Serve(h.lis)
}

// Stop marks the service NOT_SERVING and drains in-flight probes.
func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.grpcServer.GracefulStop()
}
