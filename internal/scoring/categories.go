package scoring

import (
	"strings"

	"github.com/mixgrade/mixgrade/internal/metrics"
)

// Category names a sub-score group.
type Category string

const (
	CategoryLoudness  Category = "loudness"
	CategoryDynamics  Category = "dynamics"
	CategoryFrequency Category = "frequency"
	CategoryTechnical Category = "technical"
	CategoryStereo    Category = "stereo"
)

// CategoryOrder is the fixed presentation order of categories.
var CategoryOrder = []Category{
	CategoryLoudness,
	CategoryDynamics,
	CategoryFrequency,
	CategoryTechnical,
	CategoryStereo,
}

// categoryTable is the static metric-to-category assignment. Every scored
// metric belongs to exactly one category.
//
// spectralCentroid is deliberately absent: a single near-target centroid used
// to mask several failing spectral bands when it sat in the frequency
// average, so the centroid is normalized and reported but never aggregated.
var categoryTable = map[string]Category{
	metrics.KeyLUFSIntegrated:    CategoryLoudness,
	metrics.KeyDR:                CategoryDynamics,
	metrics.KeyLRA:               CategoryDynamics,
	metrics.KeyCrestFactor:       CategoryDynamics,
	metrics.KeyTruePeak:          CategoryTechnical,
	metrics.KeyDCOffset:          CategoryTechnical,
	metrics.KeyClippingPct:       CategoryTechnical,
	metrics.KeyStereoCorrelation: CategoryStereo,
	metrics.KeyStereoWidth:       CategoryStereo,
	metrics.KeyBalanceLR:         CategoryStereo,
}

// CategoryFor returns the category a canonical metric key is aggregated
// under, or false for keys that are reported but not aggregated
// (spectralCentroid, clippingSamples).
func CategoryFor(key string) (Category, bool) {
	if strings.HasPrefix(key, metrics.BandPrefix) {
		return CategoryFrequency, true
	}
	category, ok := categoryTable[key]
	return category, ok
}

// CategoryScore is a named sub-score. Score keeps full precision; rounding
// happens at presentation time only.
type CategoryScore struct {
	Name    Category `json:"name"`
	Score   float64  `json:"score"`
	Metrics []string `json:"metrics"`
}
