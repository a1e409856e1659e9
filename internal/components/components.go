package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"cropsight/internal/api"
	"cropsight/internal/config"
	"cropsight/internal/earthengine"
	"cropsight/internal/service"
	"cropsight/pkg/logger"
)

type Components struct {
	logger      *slog.Logger
	HttpServer  *api.Server
	EarthEngine *earthengine.Client
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	var (
		engine   *earthengine.Client
		provider service.ImageryProvider
	)

	if cfg.EarthEngine.CredentialsFile == "" {
		logger.Warn("Earth Engine credentials not configured, analysis endpoints will report uninitialized")
	} else {
		logger.Info("Initializing Earth Engine session")
		client, err := earthengine.NewClient(ctx, cfg.EarthEngine, logger)
		if err != nil {
			logger.Error("Failed to init Earth Engine client",
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("failed to init earth engine client: %w", err)
		}
		engine = client
		provider = client
	}

	analysisSvc := service.NewAnalysisService(provider, logger)
	srv := service.NewService(analysisSvc)

	httpServer := api.NewServer(cfg, logger, srv, engine != nil)
	logger.Info("Initialized server")

	return &Components{
		logger:      logger,
		HttpServer:  httpServer,
		EarthEngine: engine,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	// The Earth Engine client holds no connections beyond the HTTP transport;
	// nothing to close explicitly.

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
