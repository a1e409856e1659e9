package earthengine

import (
	"cropsight/internal/domain"
)

const (
	sentinelCollection = "COPERNICUS/S2_HARMONIZED"
	cloudProperty      = "CLOUDY_PIXEL_PERCENTAGE"
	nirBand            = "B8"
	redBand            = "B4"
	ndviBand           = "NDVI"
	maxPixels          = 1e9
)

// Five-stop ramp over the NDVI display range [0, 1].
var ndviPalette = []string{"red", "orange", "yellow", "green", "darkgreen"}

const (
	ndviVisMin = 0.0
	ndviVisMax = 1.0
)

// Expression builders. All pure; they serialize a CompositeQuery into the
// provider's band-algebra documents.

func collectionExpression(q domain.CompositeQuery) map[string]any {
	return map[string]any{
		"id":           sentinelCollection,
		"filterBounds": regionGeoJSON(q.Region),
		"filterDate": map[string]string{
			"start": q.Start.Format("2006-01-02"),
			"end":   q.End.Format("2006-01-02"),
		},
		"filter": map[string]any{
			"property": cloudProperty,
			"lessThan": q.CloudThreshold,
		},
	}
}

func compositeExpression(q domain.CompositeQuery) map[string]any {
	return map[string]any{
		"operation":  "median",
		"collection": collectionExpression(q),
		"clip":       regionGeoJSON(q.Region),
	}
}

func ndviExpression(q domain.CompositeQuery) map[string]any {
	return map[string]any{
		"operation": "normalizedDifference",
		"bands":     []string{nirBand, redBand},
		"rename":    ndviBand,
		"image":     compositeExpression(q),
	}
}

func sizeExpression(q domain.CompositeQuery) map[string]any {
	return map[string]any{
		"operation":  "size",
		"collection": collectionExpression(q),
	}
}

func bandNamesExpression(q domain.CompositeQuery) map[string]any {
	return map[string]any{
		"operation": "bandNames",
		"image":     compositeExpression(q),
	}
}

func statsExpression(q domain.CompositeQuery, scale int) map[string]any {
	return map[string]any{
		"operation": "reduceRegion",
		"image":     ndviExpression(q),
		"reducers":  []string{"mean", "minMax", "stdDev"},
		"geometry":  regionGeoJSON(q.Region),
		"scale":     scale,
		"maxPixels": maxPixels,
	}
}

func visualizeExpression(q domain.CompositeQuery) map[string]any {
	return map[string]any{
		"operation": "visualize",
		"image":     ndviExpression(q),
		"visParams": map[string]any{
			"min":     ndviVisMin,
			"max":     ndviVisMax,
			"palette": ndviPalette,
		},
	}
}

func regionGeoJSON(r domain.Region) map[string]any {
	return map[string]any{
		"type": "Polygon",
		"coordinates": [][][2]float64{{
			{r.MinLng, r.MinLat},
			{r.MaxLng, r.MinLat},
			{r.MaxLng, r.MaxLat},
			{r.MinLng, r.MaxLat},
			{r.MinLng, r.MinLat},
		}},
	}
}
