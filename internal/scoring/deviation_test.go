package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDeviationBoundaries(t *testing.T) {
	type test struct {
		name          string
		measured      float64
		target        float64
		tolerance     float64
		expectedScore float64
		expectedTier  Severity
	}

	tests := []test{
		{"exact match", -14, -14, 3, 100, SeverityIdeal},
		{"one tolerance", -17, -14, 3, 90, SeverityIdeal},
		{"two tolerances", -20, -14, 3, 70, SeverityWatch},
		{"three tolerances", -23, -14, 3, 50, SeverityWarn},
		{"four tolerances", -26, -14, 3, 40, SeverityCritical},
		{"floor", -74, -14, 3, 30, SeverityCritical},
		{"positive deviation", -8, -14, 3, 70, SeverityWatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ms := ScoreDeviation("lufsIntegrated", tc.measured, tc.target, tc.tolerance)
			assert.InDelta(t, tc.expectedScore, ms.Score, 1e-9)
			assert.Equal(t, tc.expectedTier, ms.Severity)
		})
	}
}

func TestScoreDeviationMonotonic(t *testing.T) {
	previous := 101.0
	for deviation := 0.0; deviation <= 30; deviation += 0.25 {
		ms := ScoreDeviation("dr", 10+deviation, 10, 2.5)
		if ms.Score > previous {
			t.Fatalf("score increased from %.3f to %.3f at deviation %.2f",
				previous, ms.Score, deviation)
		}
		previous = ms.Score
	}
}

func TestScoreDeviationSymmetric(t *testing.T) {
	above := ScoreDeviation("dr", 14, 10, 2)
	below := ScoreDeviation("dr", 6, 10, 2)
	assert.Equal(t, above.Score, below.Score)
	assert.Equal(t, above.Severity, below.Severity)
	assert.Equal(t, above.DeviationRatio, below.DeviationRatio)
}

func TestScoreDeviationFields(t *testing.T) {
	ms := ScoreDeviation("lufsIntegrated", -17, -14, 1.5)
	assert.Equal(t, "lufsIntegrated", ms.Key)
	assert.Equal(t, -17.0, ms.Measured)
	assert.Equal(t, -14.0, ms.Target)
	assert.Equal(t, -3.0, ms.Deviation)
	assert.InDelta(t, 2.0, ms.DeviationRatio, 1e-9)
}

func TestScoreDeviationClampsTolerance(t *testing.T) {
	// A non-positive tolerance is rejected upstream by the resolver; the
	// scorer still must never divide by zero.
	ms := ScoreDeviation("dr", 10, 10, 0)
	assert.False(t, math.IsNaN(ms.Score))
	assert.False(t, math.IsNaN(ms.DeviationRatio))
	assert.Equal(t, 100.0, ms.Score)

	ms = ScoreDeviation("dr", 11, 10, -1)
	assert.False(t, math.IsNaN(ms.Score))
	assert.GreaterOrEqual(t, ms.Score, 30.0)
}

func TestScoreNeverBelowFloor(t *testing.T) {
	ms := ScoreDeviation("band_sub", 500, -14, 0.001)
	assert.Equal(t, 30.0, ms.Score)
	assert.Equal(t, SeverityCritical, ms.Severity)
}

func TestSeverityWeights(t *testing.T) {
	assert.Greater(t, SeverityCritical.Weight(), SeverityWarn.Weight())
	assert.Greater(t, SeverityWarn.Weight(), SeverityWatch.Weight())
	assert.Greater(t, SeverityWatch.Weight(), SeverityIdeal.Weight())
}
