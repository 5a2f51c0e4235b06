package scoring

import "math"

// Severity classifies a metric's deviation tier. The tiers double as the
// color bands the UI renders.
type Severity string

const (
	SeverityIdeal    Severity = "ideal"
	SeverityWatch    Severity = "watch"
	SeverityWarn     Severity = "warn"
	SeverityCritical Severity = "critical"
)

// Weight returns the severity's contribution to suggestion priority.
func (s Severity) Weight() float64 {
	switch s {
	case SeverityCritical:
		return 3.0
	case SeverityWarn:
		return 2.0
	case SeverityWatch:
		return 1.0
	default:
		return 0.0
	}
}

// minTolerance is the defensive clamp floor. The resolver guarantees
// tolerance > 0 before values reach this package; the scorer clamps again so
// a bad caller can never divide by zero.
const minTolerance = 0.001

// scoreFloor bounds the per-metric score from below so one pathological
// metric cannot zero out a whole category. Paired with the aggregator's
// penalty cap.
const scoreFloor = 30.0

// MetricScore is the scored result for one metric.
type MetricScore struct {
	Key            string   `json:"key"`
	Measured       float64  `json:"measured"`
	Target         float64  `json:"target"`
	Tolerance      float64  `json:"tolerance"`
	Deviation      float64  `json:"deviation"`
	DeviationRatio float64  `json:"deviation_ratio"`
	Score          float64  `json:"score"`
	Severity       Severity `json:"severity"`
}

// ScoreDeviation maps a measured value against its reference through the
// piecewise-linear scoring curve:
//
//	ratio <= 1:  100 - ratio*10          (90-100, ideal)
//	ratio <= 2:  90 - (ratio-1)*20       (70-90, watch)
//	ratio <= 3:  70 - (ratio-2)*20       (50-70, warn)
//	otherwise:   max(30, 50-(ratio-3)*10) (30-50, critical)
//
// The curve is monotone non-increasing in the ratio; the tier boundaries are
// the severity classification.
func ScoreDeviation(key string, measured, target, tolerance float64) MetricScore {
	if tolerance < minTolerance {
		tolerance = minTolerance
	}

	deviation := measured - target
	ratio := math.Abs(deviation) / tolerance

	var score float64
	var severity Severity
	switch {
	case ratio <= 1.0:
		score = 100 - ratio*10
		severity = SeverityIdeal
	case ratio <= 2.0:
		score = 90 - (ratio-1)*20
		severity = SeverityWatch
	case ratio <= 3.0:
		score = 70 - (ratio-2)*20
		severity = SeverityWarn
	default:
		score = math.Max(scoreFloor, 50-(ratio-3)*10)
		severity = SeverityCritical
	}

	return MetricScore{
		Key:            key,
		Measured:       measured,
		Target:         target,
		Tolerance:      tolerance,
		Deviation:      deviation,
		DeviationRatio: ratio,
		Score:          score,
		Severity:       severity,
	}
}
