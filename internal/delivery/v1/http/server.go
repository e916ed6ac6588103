package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
)

// Server — HTTP-сервер инструментов агента.
type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func NewServer(handler http.Handler, cfg *cfg.HTTPConfig, logger logger.Logger) *Server {
	const readHeaderTimeout = 2 * time.Second

	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("", cfg.Port),
			Handler:           handler,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      cfg.WriteTimeout,
			IdleTimeout:       cfg.IdleTimeout,
		},
		logger: logger,
	}
}

// Run слушает порт из конфигурации и блокируется до остановки сервера.
func (s *Server) Run() error {
	lis, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve обслуживает уже открытый listener. Штатная остановка ошибкой не считается.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.Infof("HTTP server listening on %s", lis.Addr())

	if err := s.httpServer.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop дожидается завершения активных запросов или отмены ctx.
func (s *Server) Stop(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Warnf("HTTP server forced to stop: %v", err)
		return s.httpServer.Close()
	}

	s.logger.Infof("HTTP server stopped gracefully")
	return nil
}
