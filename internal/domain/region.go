package domain

import (
	"math"
	"time"
)

// Region is a lat/lng bounding box, the bounds of a buffered point.
type Region struct {
	MinLat float64
	MinLng float64
	MaxLat float64
	MaxLng float64
}

// CompositeQuery describes one provider-side composite: where, when and how
// cloudy the source scenes may be.
type CompositeQuery struct {
	Region         Region
	Start          time.Time
	End            time.Time
	CloudThreshold int
}

// NewCompositeQuery builds the region and date-range descriptors for an
// analysis. Pure; today is passed in so the date math stays testable.
func NewCompositeQuery(a Analysis, today time.Time) CompositeQuery {
	return CompositeQuery{
		Region:         BufferPoint(a.Latitude, a.Longitude, float64(a.BufferDistance)),
		Start:          today.AddDate(0, 0, -a.DaysBack),
		End:            today,
		CloudThreshold: a.CloudThreshold,
	}
}

// BufferPoint returns the bounding box of a point buffered by the given
// radius in meters.
func BufferPoint(lat, lng, meters float64) Region {
	const metersPerDegree = 111320.0

	dLat := meters / metersPerDegree

	cosLat := math.Cos(lat * math.Pi / 180.0)
	var dLng float64
	if cosLat < 1e-6 {
		// At the poles a meridian buffer covers all longitudes.
		dLng = 180.0
	} else {
		dLng = meters / (metersPerDegree * cosLat)
	}

	return Region{
		MinLat: math.Max(lat-dLat, -90),
		MinLng: math.Max(lng-dLng, -180),
		MaxLat: math.Min(lat+dLat, 90),
		MaxLng: math.Min(lng+dLng, 180),
	}
}
