package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"log/slog"

	"cropsight/internal/domain"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AnalysisService interface {
	AnalyzeNDVI(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
	NDVIStats(ctx context.Context, req domain.AnalysisRequest) (domain.AnalysisResult, error)
	NDVIImage(ctx context.Context, req domain.AnalysisRequest) (domain.RenderedAnalysis, error)
}

type Handler struct {
	logger   *slog.Logger
	Analysis AnalysisService
}

func NewHandler(logger *slog.Logger, analysis AnalysisService) *Handler {
	return &Handler{
		logger:   logger,
		Analysis: analysis,
	}
}

// AnalyzeNDVI handles POST /analyze-ndvi: full envelope with the base64 JPEG.
func (h *Handler) AnalyzeNDVI(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	req, ok := h.bind(w, r)
	if !ok {
		return
	}

	l.Info("analyze ndvi",
		slog.Float64("lat", req.Latitude),
		slog.Float64("lng", req.Longitude),
	)

	result, err := h.Analysis.AnalyzeNDVI(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// NDVIStats handles POST /get-ndvi-stats: the envelope without the image.
func (h *Handler) NDVIStats(w http.ResponseWriter, r *http.Request) {
	req, ok := h.bind(w, r)
	if !ok {
		return
	}

	result, err := h.Analysis.NDVIStats(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// GenerateNDVIImage handles POST /generate-ndvi-image: streams the rendered
// heatmap as JPEG with the stats in the X-NDVI-Stats header.
func (h *Handler) GenerateNDVIImage(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	req, ok := h.bind(w, r)
	if !ok {
		return
	}

	rendered, err := h.Analysis.NDVIImage(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	statsHeader, err := json.Marshal(rendered.Stats)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=ndvi_%g_%g.jpg", rendered.Latitude, rendered.Longitude))
	w.Header().Set("X-NDVI-Stats", string(statsHeader))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(rendered.JPEG); err != nil {
		l.Error("write jpeg response failed", slog.Any("error", err))
	}
}
