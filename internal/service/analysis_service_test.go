package service_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"reflect"
	"strings"
	"testing"

	"log/slog"

	"github.com/golang/mock/gomock"

	"cropsight/internal/domain"
	"cropsight/internal/service"
	mock_service "cropsight/internal/service/mocks"
	"cropsight/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func intPtr(v int) *int { return &v }

var validReq = domain.AnalysisRequest{
	Latitude:       37.7749,
	Longitude:      -122.4194,
	BufferDistance: intPtr(50),
	DaysBack:       intPtr(90),
	CloudThreshold: intPtr(20),
}

func TestAnalyzeNDVI_OK_Healthy(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	jpg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}

	provider.EXPECT().
		FetchStatistics(gomock.Any(), gomock.Any()).
		Return(domain.Statistics{Mean: 0.65, Min: 0.2, Max: 0.9, Std: 0.1}, nil).
		Times(1)
	provider.EXPECT().
		FetchVisualization(gomock.Any(), gomock.Any(), 800, 600).
		Return(jpg, nil).
		Times(1)

	svc := service.NewAnalysisService(provider, newTestLogger())

	got, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if got.Status != "success" {
		t.Fatalf("status = %q, want success", got.Status)
	}
	if got.NdviStats.HealthStatus != "Healthy" {
		t.Fatalf("health_status = %q, want Healthy", got.NdviStats.HealthStatus)
	}
	if got.NdviStats.MeanNDVI != 0.65 {
		t.Fatalf("mean_ndvi = %v, want 0.65", got.NdviStats.MeanNDVI)
	}
	if got.NdviStats.AnalysisPeriodDays != 90 {
		t.Fatalf("analysis_period_days = %d, want 90", got.NdviStats.AnalysisPeriodDays)
	}
	if got.Location.Latitude != 37.7749 || got.Location.Longitude != -122.4194 || got.Location.BufferDistanceM != 50 {
		t.Fatalf("unexpected location echo: %+v", got.Location)
	}
	if got.NdviImageBase64 != base64.StdEncoding.EncodeToString(jpg) {
		t.Fatalf("image payload mismatch")
	}
}

func TestAnalyzeNDVI_InvalidLatitude_NoProviderCall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No EXPECT registered: any provider call fails the test.
	provider := mock_service.NewMockImageryProvider(ctrl)
	svc := service.NewAnalysisService(provider, newTestLogger())

	req := domain.AnalysisRequest{Latitude: 95, Longitude: 0}

	_, err := svc.AnalyzeNDVI(context.Background(), req)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "latitude") {
		t.Fatalf("error %q does not mention latitude", err.Error())
	}
}

func TestAnalyzeNDVI_InvalidCloudThreshold_NoProviderCall(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	svc := service.NewAnalysisService(provider, newTestLogger())

	req := domain.AnalysisRequest{Latitude: 0, Longitude: 0, CloudThreshold: intPtr(150)}

	_, err := svc.AnalyzeNDVI(context.Background(), req)
	if !errors.Is(err, e.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAnalyzeNDVI_NoImagery_Propagated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	provider.EXPECT().
		FetchStatistics(gomock.Any(), gomock.Any()).
		Return(domain.Statistics{}, e.Wrap("no suitable Sentinel-2 images found", e.ErrNoImagery)).
		Times(1)
	// The sibling render call may or may not start before cancellation.
	provider.EXPECT().
		FetchVisualization(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte{0x01}, nil).
		AnyTimes()

	svc := service.NewAnalysisService(provider, newTestLogger())

	_, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if !errors.Is(err, e.ErrNoImagery) {
		t.Fatalf("expected ErrNoImagery, got %v", err)
	}
}

func TestAnalyzeNDVI_ProviderError_Propagated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	provider.EXPECT().
		FetchStatistics(gomock.Any(), gomock.Any()).
		Return(domain.Statistics{Mean: 0.5}, nil).
		AnyTimes()
	provider.EXPECT().
		FetchVisualization(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, e.Wrap("earth engine returned status 502", e.ErrProvider)).
		Times(1)

	svc := service.NewAnalysisService(provider, newTestLogger())

	_, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if !errors.Is(err, e.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestAnalyzeNDVI_UninitializedProvider(t *testing.T) {
	t.Parallel()

	svc := service.NewAnalysisService(nil, newTestLogger())

	_, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if !errors.Is(err, e.ErrProviderUninitialized) {
		t.Fatalf("expected ErrProviderUninitialized, got %v", err)
	}
}

func TestAnalyzeNDVI_Deterministic(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	jpg := []byte{0xAA, 0xBB}

	provider.EXPECT().
		FetchStatistics(gomock.Any(), gomock.Any()).
		Return(domain.Statistics{Mean: 0.42, Min: 0.1, Max: 0.8, Std: 0.05}, nil).
		Times(2)
	provider.EXPECT().
		FetchVisualization(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(jpg, nil).
		Times(2)

	svc := service.NewAnalysisService(provider, newTestLogger())

	first, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ across identical calls:\nfirst=%+v\nsecond=%+v", first, second)
	}
}

func TestNDVIStats_OmitsImage(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	provider.EXPECT().
		FetchStatistics(gomock.Any(), gomock.Any()).
		Return(domain.Statistics{Mean: 0.35}, nil).
		Times(1)
	// Visualization must not run for the stats-only path.

	svc := service.NewAnalysisService(provider, newTestLogger())

	got, err := svc.NDVIStats(context.Background(), validReq)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.NdviImageBase64 != "" {
		t.Fatalf("stats-only result carries an image")
	}
	if got.NdviStats.HealthStatus != "Stressed Vegetation" {
		t.Fatalf("health_status = %q, want Stressed Vegetation", got.NdviStats.HealthStatus)
	}
}

func TestNDVIImage_ReturnsRawJPEGAndStats(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := mock_service.NewMockImageryProvider(ctrl)
	jpg := []byte{0xFF, 0xD8, 0x10}

	provider.EXPECT().
		FetchStatistics(gomock.Any(), gomock.Any()).
		Return(domain.Statistics{Mean: 0.85, Min: 0.7, Max: 0.95, Std: 0.02}, nil).
		Times(1)
	provider.EXPECT().
		FetchVisualization(gomock.Any(), gomock.Any(), 800, 600).
		Return(jpg, nil).
		Times(1)

	svc := service.NewAnalysisService(provider, newTestLogger())

	got, err := svc.NDVIImage(context.Background(), validReq)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !bytes.Equal(got.JPEG, jpg) {
		t.Fatalf("jpeg payload mismatch")
	}
	if got.Stats.HealthStatus != "Very Healthy" {
		t.Fatalf("health_status = %q, want Very Healthy", got.Stats.HealthStatus)
	}
	if got.Latitude != 37.7749 || got.Longitude != -122.4194 {
		t.Fatalf("coordinates not echoed: %+v", got)
	}
}

func TestService_Delegates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	analysisSvc := mock_service.NewMockAnalysisService(ctrl)

	want := domain.AnalysisResult{Status: "success", Message: "NDVI analysis completed successfully"}
	analysisSvc.EXPECT().
		AnalyzeNDVI(gomock.Any(), validReq).
		Return(want, nil).
		Times(1)

	svc := service.NewService(analysisSvc)

	got, err := svc.AnalyzeNDVI(context.Background(), validReq)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected response: got=%+v want=%+v", got, want)
	}
}
