package scoring

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Weights maps categories to their share of the overall score. Values are
// percentages and should sum to 100.
type Weights map[Category]float64

// DefaultWeights returns the default category weighting.
func DefaultWeights() Weights {
	return Weights{
		CategoryLoudness:  25,
		CategoryFrequency: 25,
		CategoryDynamics:  20,
		CategoryTechnical: 15,
		CategoryStereo:    15,
	}
}

// Caps maps categories to penalty-cap points. A capped category cannot pull
// the overall score below (100 - points) on its own; the cap bounds the
// category's weighted contribution, never its displayed sub-score.
type Caps map[Category]float64

// DefaultCaps returns the default penalty caps (stereo only).
func DefaultCaps() Caps {
	return Caps{CategoryStereo: 20}
}

// Aggregate is the combined result of category aggregation.
type Aggregate struct {
	Categories []CategoryScore
	Overall    float64
}

// Strategy is one scoring/aggregation algorithm. Exactly one strategy is
// active per engine, selected by explicit configuration; there is no runtime
// fallback between strategies.
type Strategy interface {
	Name() string
	Aggregate(scores []MetricScore) Aggregate
}

// MethodEqualWeightV4 is the current production aggregation method: equal
// weight within each category, configurable weights across categories,
// penalty-capped contributions.
const MethodEqualWeightV4 = "equal_weight_v4"

// NewStrategy returns the strategy for a configured method name. Unknown
// methods are an error, never a silent fallback.
func NewStrategy(method string, weights Weights, caps Caps) (Strategy, error) {
	if len(weights) == 0 {
		weights = DefaultWeights()
	}
	if caps == nil {
		caps = DefaultCaps()
	}

	total := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, fmt.Errorf("negative category weight: %v", w)
		}
		total += w
	}
	if total <= 0 {
		return nil, fmt.Errorf("category weights must sum to a positive value")
	}

	switch method {
	case MethodEqualWeightV4:
		return &equalWeightV4{weights: weights, caps: caps}, nil
	default:
		return nil, fmt.Errorf("unknown scoring method %q", method)
	}
}

type equalWeightV4 struct {
	weights Weights
	caps    Caps
}

func (s *equalWeightV4) Name() string { return MethodEqualWeightV4 }

// Aggregate groups metric scores into category sub-scores and combines them
// into the overall score. Each category is the arithmetic mean of its
// members, so several failing metrics in one category cannot be masked by a
// single good one. Absent categories drop out of the weighted mean, which
// redistributes their weight proportionally across the rest.
func (s *equalWeightV4) Aggregate(scores []MetricScore) Aggregate {
	members := make(map[Category][]float64)
	memberKeys := make(map[Category][]string)
	for _, ms := range scores {
		category, ok := CategoryFor(ms.Key)
		if !ok {
			continue
		}
		members[category] = append(members[category], ms.Score)
		memberKeys[category] = append(memberKeys[category], ms.Key)
	}

	var categories []CategoryScore
	var effective, weights []float64
	for _, category := range CategoryOrder {
		values, present := members[category]
		if !present {
			continue
		}

		score := stat.Mean(values, nil)
		categories = append(categories, CategoryScore{
			Name:    category,
			Score:   score,
			Metrics: memberKeys[category],
		})

		contribution := score
		if cap, capped := s.caps[category]; capped && cap > 0 {
			contribution = math.Max(contribution, 100-cap)
		}
		effective = append(effective, contribution)
		weights = append(weights, s.weights[category])
	}

	if len(categories) == 0 {
		return Aggregate{}
	}

	weightTotal := 0.0
	for _, w := range weights {
		weightTotal += w
	}
	if weightTotal <= 0 {
		// All present categories carry zero weight; fall back to a plain mean
		// so the result stays defined.
		return Aggregate{Categories: categories, Overall: stat.Mean(effective, nil)}
	}

	return Aggregate{
		Categories: categories,
		Overall:    stat.Mean(effective, weights),
	}
}
