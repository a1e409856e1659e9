package service

import (
	"context"

	"cropsight/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// AnalysisService is the orchestration surface exposed to the HTTP layer.
type AnalysisService interface {
	AnalyzeNDVI(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
	NDVIStats(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
	NDVIImage(ctx context.Context, req domain.AnalysisRequest) (domain.RenderedAnalysis, error)
}

// ImageryProvider is the capability contract of the external imagery
// platform; tests substitute a stub satisfying the same two calls.
type ImageryProvider interface {
	FetchStatistics(ctx context.Context, q domain.CompositeQuery) (domain.Statistics, error)
	FetchVisualization(ctx context.Context, q domain.CompositeQuery, width, height int) ([]byte, error)
}

type Service struct {
	AnalysisService AnalysisService
}

func NewService(analysisService AnalysisService) *Service {
	return &Service{
		AnalysisService: analysisService,
	}
}

func (s *Service) AnalyzeNDVI(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	return s.AnalysisService.AnalyzeNDVI(ctx, req)
}

func (s *Service) NDVIStats(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error) {
	return s.AnalysisService.NDVIStats(ctx, req)
}

func (s *Service) NDVIImage(ctx context.Context, req domain.AnalysisRequest) (domain.RenderedAnalysis, error) {
	return s.AnalysisService.NDVIImage(ctx, req)
}
