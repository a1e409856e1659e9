package domain

type healthBand struct {
	upper float64 // exclusive
	label string
}

// Ordered scale; a mean below upper falls into that band, boundary values
// promote to the next band.
var healthScale = []healthBand{
	{0.2, "Severe Stress / Bare Soil"},
	{0.4, "Stressed Vegetation"},
	{0.6, "Moderate Health"},
	{0.8, "Healthy"},
}

const healthTopLabel = "Very Healthy"

// ClassifyHealth maps a mean NDVI value to a vegetation health label.
// Total over the real line.
func ClassifyHealth(mean float64) string {
	for _, band := range healthScale {
		if mean < band.upper {
			return band.label
		}
	}
	return healthTopLabel
}
