package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStrategy(t *testing.T) Strategy {
	t.Helper()
	strategy, err := NewStrategy(MethodEqualWeightV4, nil, nil)
	require.NoError(t, err)
	return strategy
}

func metricScore(key string, score float64) MetricScore {
	return MetricScore{Key: key, Score: score, Severity: SeverityIdeal}
}

func TestNewStrategyUnknownMethod(t *testing.T) {
	// Alternate algorithms must be selected explicitly; an unknown name is
	// an error, never a fallback to another implementation.
	_, err := NewStrategy("legacy_centroid", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "legacy_centroid")
}

func TestNewStrategyRejectsBadWeights(t *testing.T) {
	_, err := NewStrategy(MethodEqualWeightV4, Weights{CategoryLoudness: -5}, nil)
	require.Error(t, err)

	_, err = NewStrategy(MethodEqualWeightV4, Weights{CategoryLoudness: 0}, nil)
	require.Error(t, err)
}

func TestAggregateEqualWeightWithinCategory(t *testing.T) {
	strategy := mustStrategy(t)

	agg := strategy.Aggregate([]MetricScore{
		metricScore("dr", 100),
		metricScore("lra", 40),
		metricScore("crestFactor", 70),
	})

	require.Len(t, agg.Categories, 1)
	assert.Equal(t, CategoryDynamics, agg.Categories[0].Name)
	assert.InDelta(t, 70.0, agg.Categories[0].Score, 1e-9)
	assert.ElementsMatch(t, []string{"dr", "lra", "crestFactor"}, agg.Categories[0].Metrics)
}

func TestAggregateWeightedOverall(t *testing.T) {
	strategy := mustStrategy(t)

	agg := strategy.Aggregate([]MetricScore{
		metricScore("lufsIntegrated", 100),
		metricScore("dr", 100),
		metricScore("band_mid", 100),
		metricScore("truePeakDbtp", 100),
		metricScore("stereoCorrelation", 100),
	})

	require.Len(t, agg.Categories, 5)
	assert.InDelta(t, 100.0, agg.Overall, 1e-9)
}

func TestAggregateStereoWeightRedistribution(t *testing.T) {
	strategy := mustStrategy(t)

	// No stereo metrics at all: its weight redistributes proportionally and
	// a uniformly-scored track keeps its score.
	agg := strategy.Aggregate([]MetricScore{
		metricScore("lufsIntegrated", 80),
		metricScore("dr", 80),
		metricScore("band_mid", 80),
		metricScore("truePeakDbtp", 80),
	})

	require.Len(t, agg.Categories, 4)
	for _, category := range agg.Categories {
		assert.NotEqual(t, CategoryStereo, category.Name)
	}
	assert.InDelta(t, 80.0, agg.Overall, 1e-9)
}

func TestAggregatePenaltyCap(t *testing.T) {
	strategy := mustStrategy(t)

	// Stereo at the score floor, everything else perfect. With the default
	// 20-point cap the stereo contribution is floored at 80:
	// (25+25+20+15)*100 + 15*80 = 9700 -> 97.
	agg := strategy.Aggregate([]MetricScore{
		metricScore("lufsIntegrated", 100),
		metricScore("dr", 100),
		metricScore("band_mid", 100),
		metricScore("truePeakDbtp", 100),
		metricScore("stereoCorrelation", 30),
	})

	assert.InDelta(t, 97.0, agg.Overall, 1e-9)
	assert.GreaterOrEqual(t, agg.Overall, 80.0)

	// The displayed sub-score stays accurate; only the contribution is capped.
	for _, category := range agg.Categories {
		if category.Name == CategoryStereo {
			assert.InDelta(t, 30.0, category.Score, 1e-9)
		}
	}
}

func TestAggregateCapConfigurablePerCategory(t *testing.T) {
	strategy, err := NewStrategy(MethodEqualWeightV4, nil, Caps{CategoryDynamics: 10})
	require.NoError(t, err)

	agg := strategy.Aggregate([]MetricScore{
		metricScore("lufsIntegrated", 100),
		metricScore("dr", 30),
		metricScore("band_mid", 100),
		metricScore("truePeakDbtp", 100),
		metricScore("stereoCorrelation", 100),
	})

	// Dynamics contribution floored at 90: (25+25+15+15)*100 + 20*90 = 9800.
	assert.InDelta(t, 98.0, agg.Overall, 1e-9)
}

func TestAggregateAbsentMetricNeutrality(t *testing.T) {
	strategy := mustStrategy(t)

	full := strategy.Aggregate([]MetricScore{
		metricScore("lufsIntegrated", 90),
		metricScore("dr", 60),
		metricScore("lra", 80),
		metricScore("band_mid", 75),
	})
	reduced := strategy.Aggregate([]MetricScore{
		metricScore("lufsIntegrated", 90),
		metricScore("dr", 60),
		metricScore("band_mid", 75),
	})

	// Removing lra changes only the dynamics average; the other categories
	// are untouched.
	for _, category := range reduced.Categories {
		switch category.Name {
		case CategoryDynamics:
			assert.InDelta(t, 60.0, category.Score, 1e-9)
		case CategoryLoudness:
			assert.InDelta(t, 90.0, category.Score, 1e-9)
		case CategoryFrequency:
			assert.InDelta(t, 75.0, category.Score, 1e-9)
		}
	}
	for _, category := range full.Categories {
		if category.Name == CategoryDynamics {
			assert.InDelta(t, 70.0, category.Score, 1e-9)
		}
	}
}

func TestAggregateNoScorableMetrics(t *testing.T) {
	strategy := mustStrategy(t)

	agg := strategy.Aggregate([]MetricScore{
		metricScore("spectralCentroid", 100),
		metricScore("clippingSamples", 100),
	})
	assert.Empty(t, agg.Categories)
}

func TestCategoryForCentroidExcluded(t *testing.T) {
	// The centroid is reported but never aggregated, so it cannot mask
	// failing spectral bands.
	_, ok := CategoryFor("spectralCentroid")
	assert.False(t, ok)

	category, ok := CategoryFor("band_sub")
	assert.True(t, ok)
	assert.Equal(t, CategoryFrequency, category)
}

func TestCentroidCannotMaskBandFailures(t *testing.T) {
	strategy := mustStrategy(t)

	scores := []MetricScore{
		metricScore("spectralCentroid", 100),
		metricScore("band_sub", 30),
		metricScore("band_bass", 30),
		metricScore("band_low_mid", 30),
		metricScore("band_mid", 30),
		metricScore("band_high_mid", 30),
		metricScore("band_presence", 100),
		metricScore("band_air", 100),
	}

	agg := strategy.Aggregate(scores)
	require.Len(t, agg.Categories, 1)
	assert.Equal(t, CategoryFrequency, agg.Categories[0].Name)
	assert.Less(t, agg.Categories[0].Score, 60.0)
}
