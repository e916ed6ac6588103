package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/grocery-merchant/internal/cfg"
	v1Grpc "github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/http"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg      *config.Config
	logger   logger.Logger
	services *Services
	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	services, err := NewServices(context.Background(), cfg, logger)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	grpcSrv := v1Grpc.NewGRPCServer(cfg.Grpc, logger)
	grpcSrv.RegisterServices(services.Catalog, services.Preference, services.Order)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, logger)
	router.Init(services.Catalog, services.Preference, services.Order)

	return &App{
		cfg:      cfg,
		logger:   logger,
		services: services,
		httpSrv:  v1Http.NewServer(router.Handler(), cfg.Http, logger),
		grpcSrv:  grpcSrv,
	}, nil
}

// Run запускает HTTP и gRPC серверы и блокируется до сигнала остановки или ошибки сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.services.Ready(ctx); err != nil {
		a.logger.Errorf(err, "order store is not readable")
	} else {
		a.grpcSrv.SetServing(true)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil {
			a.logger.Errorf(err, "HTTP server failed")
			return err
		}
		return nil
	})

	g.Go(func() error {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			return err
		}
		return nil
	})

	// === Graceful shutdown ===
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Infof("Stopping gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.httpSrv.Stop(shutdownCtx); err != nil {
			a.logger.Errorf(err, "HTTP server shutdown error")
		} else {
			a.logger.Infof("HTTP server stopped")
		}

		if err := a.grpcSrv.Stop(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			a.logger.Errorf(err, "gRPC server shutdown error")
		}

		return nil
	})

	appErr := g.Wait()

	closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.services.Close(closeCtx); err != nil {
		a.logger.Warnf("Resource cleanup error: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}
