package service

import (
	"context"
	"encoding/base64"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"cropsight/internal/domain"
	"cropsight/pkg/e"
)

const (
	statusSuccess  = "success"
	successMessage = "NDVI analysis completed successfully"
)

type analysisService struct {
	provider ImageryProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewAnalysisService wires the orchestrator to an imagery provider handle.
// A nil provider is tolerated: every analysis then fails with
// e.ErrProviderUninitialized, and /health reports the engine uninitialized.
func NewAnalysisService(provider ImageryProvider, logger *slog.Logger) AnalysisService {
	return &analysisService{
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *analysisService) AnalyzeNDVI(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	a, stats, img, err := s.analyze(ctx, req, true)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	result := s.assemble(a, stats)
	result.NdviImageBase64 = base64.StdEncoding.EncodeToString(img)
	return result, nil
}

func (s *analysisService) NDVIStats(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	a, stats, _, err := s.analyze(ctx, req, false)
	if err != nil {
		return domain.AnalysisResult{}, err
	}
	return s.assemble(a, stats), nil
}

func (s *analysisService) NDVIImage(ctx context.Context, req domain.AnalysisRequest) (domain.RenderedAnalysis, error) {
	a, stats, img, err := s.analyze(ctx, req, true)
	if err != nil {
		return domain.RenderedAnalysis{}, err
	}
	return domain.RenderedAnalysis{
		Latitude:  a.Latitude,
		Longitude: a.Longitude,
		Stats:     stats,
		JPEG:      img,
	}, nil
}

// analyze runs the shared pipeline: validate, default, build the provider
// query, fetch statistics (and optionally the rendered heatmap, in parallel
// since the two calls are independent), classify.
func (s *analysisService) analyze(ctx context.Context, req domain.AnalysisRequest, withImage bool) (domain.Analysis, domain.NdviStats, []byte, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("analysis request rejected", slog.Any("error", err))
		return domain.Analysis{}, domain.NdviStats{}, nil, err
	}

	a := req.Normalize()

	if s.provider == nil {
		return domain.Analysis{}, domain.NdviStats{}, nil, e.ErrProviderUninitialized
	}

	l := s.logger.With(slog.String("analysis_id", uuid.NewString()))
	l.Info("ndvi analysis START",
		slog.Float64("lat", a.Latitude),
		slog.Float64("lng", a.Longitude),
		slog.Int("buffer_m", a.BufferDistance),
		slog.Int("days_back", a.DaysBack),
		slog.Int("cloud_threshold", a.CloudThreshold),
	)

	q := domain.NewCompositeQuery(a, s.now().UTC())

	var (
		raw domain.Statistics
		img []byte
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.provider.FetchStatistics(gctx, q)
		return err
	})
	if withImage {
		g.Go(func() error {
			var err error
			img, err = s.provider.FetchVisualization(gctx, q, a.ImageWidth, a.ImageHeight)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		l.Error("provider call failed", slog.Any("error", err))
		return domain.Analysis{}, domain.NdviStats{}, nil, err
	}

	stats := domain.NdviStats{
		MeanNDVI:           raw.Mean,
		MinNDVI:            raw.Min,
		MaxNDVI:            raw.Max,
		StdNDVI:            raw.Std,
		HealthStatus:       domain.ClassifyHealth(raw.Mean),
		AnalysisPeriodDays: a.DaysBack,
	}

	l.Info("ndvi analysis END",
		slog.Float64("mean_ndvi", stats.MeanNDVI),
		slog.String("health_status", stats.HealthStatus),
	)

	return a, stats, img, nil
}

func (s *analysisService) assemble(a domain.Analysis, stats domain.NdviStats) domain.AnalysisResult {
	return domain.AnalysisResult{
		Status:  statusSuccess,
		Message: successMessage,
		Location: domain.Location{
			Latitude:        a.Latitude,
			Longitude:       a.Longitude,
			BufferDistanceM: a.BufferDistance,
		},
		NdviStats: stats,
	}
}
