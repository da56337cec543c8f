package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/piresc/gpstracker/internal/pkg/health"
	"github.com/piresc/gpstracker/internal/pkg/logger"
	"github.com/piresc/gpstracker/internal/pkg/middleware"
	"github.com/piresc/gpstracker/internal/pkg/models"
	"github.com/piresc/gpstracker/internal/pkg/server"
	"github.com/piresc/gpstracker/services/location"
	"github.com/piresc/gpstracker/services/location/handler"
	"github.com/piresc/gpstracker/services/location/repository"
	"github.com/piresc/gpstracker/services/location/usecase"
)

func runServe(configs *models.Config) error {
	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", configs.App.Name),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("store", configs.Store.Driver),
	)

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(context.Context) error {
		return zapLogger.Close()
	})

	locationRepo, err := repository.NewLocationRepository(context.Background(), configs)
	if err != nil {
		zapLogger.Error("Failed to open location store", logger.Err(err))
		shutdown.Shutdown(context.Background())
		return err
	}
	shutdown.Register(func(context.Context) error {
		return locationRepo.Close()
	})

	retrier := usecase.NewStorageRetrier(zapLogger)
	ingestUC := usecase.NewIngestUC(locationRepo, configs.Validation, zapLogger)
	queryUC := usecase.NewQueryUC(locationRepo, retrier)
	retentionUC := usecase.NewRetentionUC(locationRepo, configs.Retention.Cap, retrier, zapLogger)

	jobCtx, stopJob := context.WithCancel(context.Background())
	go retentionUC.Run(jobCtx, configs.Retention.Interval)
	shutdown.Register(func(context.Context) error {
		stopJob()
		return nil
	})

	e := newEcho(configs, zapLogger, locationRepo, handler.NewHTTPHandler(ingestUC, queryUC, retentionUC))

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	serveErr := srv.Start()

	if err := shutdown.Shutdown(context.Background()); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}

// newEcho builds the router with middleware, health endpoints and location routes
func newEcho(configs *models.Config, zapLogger *logger.ZapLogger, repo location.LocationRepo, h *handler.HTTPHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	e.Use(middleware.RequestContextMiddleware(configs.App.Name))
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{configs.Server.AllowedOrigin},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType},
	}))

	health.RegisterHealthEndpoints(e, configs.App.Name, map[string]health.HealthChecker{
		"store": health.CheckerFunc(func(ctx context.Context) error {
			_, err := repo.Count(ctx)
			return err
		}),
	})

	h.RegisterRoutes(e)
	return e
}
