// Package grpc содержит gRPC сервер проверки здоровья сервиса.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"tgminiapp/internal/miniapp/config"
	"tgminiapp/pkg/logger"
)

// ServiceName - имя сервиса в протоколе grpc.health.v1.
const ServiceName = "miniapp"

// Константы для сообщений logger.
const (
	LogServerStarted  = "gRPC health server started"
	LogServerStopping = "stopping gRPC health server"
	LogStatusChanged  = "health status changed"
	LogReadinessProbe = "readiness probe failed"

	ErrListen        = "failed to listen"
	ErrServe         = "failed to serve gRPC"
	ErrCloseListener = "failed to close listener"
)

// DefaultReadinessInterval используется, если период проверки не задан.
const DefaultReadinessInterval = 15 * time.Second

// Probe проверяет зависимость, без которой сервис не может обслуживать запросы.
type Probe func(ctx context.Context) error

// Server представляет gRPC сервер со службой health.
type Server struct {
	server   *grpc.Server
	health   *health.Server
	address  string
	listener net.Listener

	mu       sync.Mutex
	serving  bool
	draining bool
}

// New создает сервер; до Start сервис считается NOT_SERVING.
func New(cfg *config.GRPCConfig) *Server {
	srv := grpc.NewServer()
	healthServer := health.NewServer()

	healthpb.RegisterHealthServer(srv, healthServer)
	reflection.Register(srv)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Server{
		server:  srv,
		health:  healthServer,
		address: cfg.GetAddress(),
	}
}

// Start запускает gRPC сервер и переводит сервис в SERVING.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)

	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrListen, err)
	}
	s.listener = listener

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServe, zap.Error(err))
		}
	}()

	s.SetServing(ctx, true)
	return nil
}

// Addr возвращает фактический адрес после Start.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// SetServing меняет статус сервиса. После Drain статус остается NOT_SERVING.
func (s *Server) SetServing(ctx context.Context, serving bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draining {
		return
	}
	s.setStatusLocked(ctx, serving)
}

// Drain окончательно переводит сервис в NOT_SERVING перед остановкой.
func (s *Server) Drain(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draining = true
	s.setStatusLocked(ctx, false)
}

// WatchReadiness раз в interval вызывает probe и отражает результат в статусе
// сервиса, пока ctx не отменен.
func (s *Server) WatchReadiness(ctx context.Context, interval time.Duration, probe Probe) {
	if interval <= 0 {
		interval = DefaultReadinessInterval
	}
	log := logger.Log(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			probeCtx, cancel := context.WithTimeout(ctx, interval)
			err := probe(probeCtx)
			cancel()

			if err != nil {
				log.Warn(ctx, LogReadinessProbe, zap.Error(err))
			}
			s.SetServing(ctx, err == nil)
		}
	}()
}

func (s *Server) setStatusLocked(ctx context.Context, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)

	if s.serving != serving {
		s.serving = serving
		logger.Log(ctx).Info(ctx, LogStatusChanged, zap.String("status", status.String()))
	}
}

// Stop переводит сервис в NOT_SERVING и останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	log := logger.Log(ctx)
	log.Info(ctx, LogServerStopping)

	s.Drain(ctx)
	s.health.Shutdown()

	stopped := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-ctx.Done():
		s.server.Stop()
	}

	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			log.Error(ctx, ErrCloseListener, zap.Error(err))
		}
	}
	return nil
}
