package report

import (
	"math"
	"sort"

	"github.com/mixgrade/mixgrade/internal/scoring"
	"github.com/mixgrade/mixgrade/internal/suggest"
)

// Classification is the quality tier label shown to the user. The labels are
// the product's fixed Portuguese strings.
type Classification string

const (
	ClassWorldReference Classification = "Referência Mundial"
	ClassAdvanced       Classification = "Avançado"
	ClassIntermediate   Classification = "Intermediário"
	ClassBasic          Classification = "Básico"
	ClassIndeterminate  Classification = "Indeterminado"
)

// Classify maps an overall score to its classification tier.
func Classify(overall int) Classification {
	switch {
	case overall >= 85:
		return ClassWorldReference
	case overall >= 70:
		return ClassAdvanced
	case overall >= 55:
		return ClassIntermediate
	default:
		return ClassBasic
	}
}

// neutralScore is the single documented midpoint returned when zero metrics
// are usable. There is exactly one such fallback path.
const neutralScore = 50

// ScoreResult is the immutable output of one scoring run. Re-scoring returns
// a new ScoreResult; nothing mutates one after assembly.
type ScoreResult struct {
	OverallScore     int                     `json:"overall_score"`
	Classification   Classification          `json:"classification"`
	Categories       []scoring.CategoryScore `json:"categories"`
	PerMetric        []scoring.MetricScore   `json:"per_metric"`
	Suggestions      []suggest.Suggestion    `json:"suggestions"`
	Alerts           []suggest.Alert         `json:"alerts,omitempty"`
	Method           string                  `json:"method"`
	EngineVersion    string                  `json:"engine_version"`
	InsufficientData bool                    `json:"insufficient_data,omitempty"`
}

// Assemble packages a scoring run into a ScoreResult. Pure function, no I/O.
// Per-metric detail is ordered by key so identical inputs serialize to
// identical bytes.
func Assemble(agg scoring.Aggregate, perMetric []scoring.MetricScore, suggestions []suggest.Suggestion, alerts []suggest.Alert, method, engineVersion string) ScoreResult {
	ordered := append([]scoring.MetricScore(nil), perMetric...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Key < ordered[j].Key })

	overall := int(math.Round(agg.Overall))

	return ScoreResult{
		OverallScore:   overall,
		Classification: Classify(overall),
		Categories:     agg.Categories,
		PerMetric:      ordered,
		Suggestions:    suggestions,
		Alerts:         alerts,
		Method:         method,
		EngineVersion:  engineVersion,
	}
}

// Insufficient returns the flagged neutral result used when no metric could
// be scored. The caller always receives a complete, explainable result,
// never an error or a nil.
func Insufficient(method, engineVersion string) ScoreResult {
	return ScoreResult{
		OverallScore:     neutralScore,
		Classification:   ClassIndeterminate,
		Categories:       []scoring.CategoryScore{},
		PerMetric:        []scoring.MetricScore{},
		Suggestions:      []suggest.Suggestion{},
		Method:           method,
		EngineVersion:    engineVersion,
		InsufficientData: true,
	}
}
