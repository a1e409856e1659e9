package domain

import (
	"errors"

	"cropsight/pkg/e"
	val "cropsight/pkg/validator"

	"github.com/go-playground/validator/v10"
)

const (
	DefaultBufferDistance = 50 // meters
	DefaultDaysBack       = 90
	DefaultCloudThreshold = 20 // CLOUDY_PIXEL_PERCENTAGE upper bound
	DefaultImageWidth     = 800
	DefaultImageHeight    = 600
)

type AnalysisRequest struct {
	Latitude       float64 `json:"latitude" validate:"lat"`  // -90..90
	Longitude      float64 `json:"longitude" validate:"lng"` // -180..180
	BufferDistance *int    `json:"buffer_distance,omitempty" validate:"omitempty,gt=0"`
	DaysBack       *int    `json:"days_back,omitempty" validate:"omitempty,gt=0"`
	CloudThreshold *int    `json:"cloud_threshold,omitempty" validate:"omitempty,min=0,max=100"`
	ImageWidth     *int    `json:"image_width,omitempty" validate:"omitempty,gt=0"`
	ImageHeight    *int    `json:"image_height,omitempty" validate:"omitempty,gt=0"`
}

// Analysis is the fully-defaulted, validated form of AnalysisRequest.
type Analysis struct {
	Latitude       float64
	Longitude      float64
	BufferDistance int
	DaysBack       int
	CloudThreshold int
	ImageWidth     int
	ImageHeight    int
}

func (r AnalysisRequest) Validate() error {
	if err := val.ValidateStruct(r); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return e.Wrap(fieldMessage(verrs[0]), e.ErrInvalidInput)
		}
		return e.Wrap(err.Error(), e.ErrInvalidInput)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Latitude":
		return "invalid latitude, must be between -90 and 90"
	case "Longitude":
		return "invalid longitude, must be between -180 and 180"
	case "CloudThreshold":
		return "invalid cloud_threshold, must be between 0 and 100"
	case "BufferDistance":
		return "invalid buffer_distance, must be positive"
	case "DaysBack":
		return "invalid days_back, must be positive"
	case "ImageWidth":
		return "invalid image_width, must be positive"
	case "ImageHeight":
		return "invalid image_height, must be positive"
	default:
		return "invalid " + fe.Field()
	}
}

func (r AnalysisRequest) Normalize() Analysis {
	return Analysis{
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		BufferDistance: intOr(r.BufferDistance, DefaultBufferDistance),
		DaysBack:       intOr(r.DaysBack, DefaultDaysBack),
		CloudThreshold: intOr(r.CloudThreshold, DefaultCloudThreshold),
		ImageWidth:     intOr(r.ImageWidth, DefaultImageWidth),
		ImageHeight:    intOr(r.ImageHeight, DefaultImageHeight),
	}
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Statistics holds the raw NDVI reducer outputs from the imagery provider.
type Statistics struct {
	Mean float64
	Min  float64
	Max  float64
	Std  float64
}

type NdviStats struct {
	MeanNDVI           float64 `json:"mean_ndvi"`
	MinNDVI            float64 `json:"min_ndvi"`
	MaxNDVI            float64 `json:"max_ndvi"`
	StdNDVI            float64 `json:"std_ndvi"`
	HealthStatus       string  `json:"health_status"`
	AnalysisPeriodDays int     `json:"analysis_period_days"`
}

type Location struct {
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	BufferDistanceM int     `json:"buffer_distance_m"`
}

type AnalysisResult struct {
	Status          string    `json:"status"`
	Message         string    `json:"message"`
	Location        Location  `json:"location"`
	NdviStats       NdviStats `json:"ndvi_stats"`
	NdviImageBase64 string    `json:"ndvi_image_base64,omitempty"`
}

// RenderedAnalysis backs the raw-JPEG endpoint: the encoded heatmap plus the
// stats that travel in the X-NDVI-Stats header.
type RenderedAnalysis struct {
	Latitude  float64
	Longitude float64
	Stats     NdviStats
	JPEG      []byte
}
