// Package mixgrade scores extracted audio metrics against genre reference
// profiles and derives mixing/mastering suggestions.
//
// The engine is a pure, synchronous computation: feature extraction happens
// upstream, and every call returns a freshly assembled result, so one engine
// is safe to share across concurrent scoring requests.
package mixgrade

import (
	"fmt"
	"math"

	"github.com/mixgrade/mixgrade/internal/metrics"
	"github.com/mixgrade/mixgrade/internal/reference"
	"github.com/mixgrade/mixgrade/internal/report"
	"github.com/mixgrade/mixgrade/internal/scoring"
	"github.com/mixgrade/mixgrade/internal/suggest"
	"github.com/mixgrade/mixgrade/pkg/logging"
)

// EngineVersion is stamped on every ScoreResult so downstream consumers and
// regression tests can assert which engine produced a result.
const EngineVersion = "4.1.0"

// EngineConfig contains configuration for the scoring engine
type EngineConfig struct {
	// Method selects the scoring strategy. Required; an unknown method is a
	// construction error, never a silent fallback.
	Method string
	// Weights and Caps calibrate the aggregator; zero values use defaults.
	Weights scoring.Weights
	Caps    scoring.Caps
	// ResolverDefaults controls reference fallbacks.
	ResolverDefaults reference.Defaults
	// Suggestions configures the suggestion engine thresholds.
	Suggestions suggest.Config
	// Profiles is the genre profile store; nil loads the embedded set.
	Profiles *reference.Store
	Logger   logging.Logger
}

// Engine is the scoring pipeline: normalizer, resolver, deviation scorer,
// aggregator, suggestion engine, assembler.
type Engine struct {
	logger     logging.Logger
	normalizer *metrics.Normalizer
	resolver   *reference.Resolver
	strategy   scoring.Strategy
	suggester  *suggest.Engine
	profiles   *reference.Store
}

// NewEngine creates a scoring engine from its configuration.
func NewEngine(config *EngineConfig) (*Engine, error) {
	if config == nil {
		config = &EngineConfig{}
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	method := config.Method
	if method == "" {
		method = scoring.MethodEqualWeightV4
	}
	strategy, err := scoring.NewStrategy(method, config.Weights, config.Caps)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring strategy: %w", err)
	}

	profiles := config.Profiles
	if profiles == nil {
		profiles, err = reference.NewStore(logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load genre profiles: %w", err)
		}
	}

	defaults := config.ResolverDefaults
	if defaults == (reference.Defaults{}) {
		defaults = reference.DefaultDefaults()
	}

	suggestCfg := config.Suggestions
	if suggestCfg == (suggest.Config{}) {
		suggestCfg = suggest.DefaultConfig()
	}

	return &Engine{
		logger:     logger,
		normalizer: metrics.NewNormalizer(logger),
		resolver:   reference.NewResolver(profiles, defaults, logger),
		strategy:   strategy,
		suggester:  suggest.NewEngine(suggestCfg, logger),
		profiles:   profiles,
	}, nil
}

// Profiles exposes the genre profile store (for listing and hot reload).
func (e *Engine) Profiles() *reference.Store {
	return e.profiles
}

// Method returns the active scoring method name.
func (e *Engine) Method() string {
	return e.strategy.Name()
}

// Score runs the full pipeline over a raw metrics object for one genre and
// returns a fresh, immutable result. Missing metrics are excluded rather
// than scored; a run with zero usable metrics yields the flagged neutral
// result, never an error.
func (e *Engine) Score(raw map[string]any, genre string) report.ScoreResult {
	record := e.normalizer.Normalize(raw)
	targets := e.resolver.Resolve(genre, record.Keys())

	var perMetric []scoring.MetricScore
	for _, key := range record.Keys() {
		if key == metrics.KeyClippingSamples {
			// Clipping evidence for the suggestion engine; a sample count
			// has no reference target to deviate from.
			continue
		}
		measured := record[key]
		target, ok := targets[key]
		if !ok {
			continue
		}

		ms := scoring.ScoreDeviation(key, measured, target.Target, target.Tolerance)
		if math.IsNaN(ms.Score) || math.IsInf(ms.Score, 0) {
			// One bad metric drops out; it never aborts the run.
			e.logger.Warn("Dropping metric with non-finite score", logging.Fields{
				"key":      key,
				"measured": measured,
			})
			continue
		}
		perMetric = append(perMetric, ms)
	}

	scorable := 0
	for _, ms := range perMetric {
		if _, ok := scoring.CategoryFor(ms.Key); ok {
			scorable++
		}
	}
	if scorable == 0 {
		e.logger.Warn("No usable metrics, returning neutral result", logging.Fields{
			"genre": genre,
		})
		return report.Insufficient(e.strategy.Name(), EngineVersion)
	}

	aggregate := e.strategy.Aggregate(perMetric)
	suggestions, alerts := e.suggester.Evaluate(perMetric, record)

	result := report.Assemble(aggregate, perMetric, suggestions, alerts, e.strategy.Name(), EngineVersion)

	e.logger.Debug("Scoring run completed", logging.Fields{
		"genre":          genre,
		"overall":        result.OverallScore,
		"classification": string(result.Classification),
		"metrics":        len(perMetric),
		"suggestions":    len(suggestions),
	})

	return result
}
