package configs

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/mixgrade/mixgrade/internal/reference"
	"github.com/mixgrade/mixgrade/internal/scoring"
	"github.com/mixgrade/mixgrade/internal/suggest"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	OutputFormat string `mapstructure:"output_format"`

	// Scoring engine configuration
	Scoring ScoringConfig `mapstructure:"scoring"`

	// Reference profile configuration
	Reference ReferenceConfig `mapstructure:"reference"`

	// Suggestion engine configuration
	Suggestions SuggestionsConfig `mapstructure:"suggestions"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// ScoringConfig selects the active scoring method and its calibration.
// The method is explicit: there is no default-with-fallback behavior, and an
// unknown method fails configuration validation.
type ScoringConfig struct {
	Method  string             `mapstructure:"method"`
	Weights map[string]float64 `mapstructure:"weights"`
	Caps    map[string]float64 `mapstructure:"caps"`
}

// ReferenceConfig controls genre profile loading and resolver defaults.
type ReferenceConfig struct {
	ProfileDir       string  `mapstructure:"profile_dir"`
	DefaultTarget    float64 `mapstructure:"default_target"`
	DefaultTolerance float64 `mapstructure:"default_tolerance"`
	MinTolerance     float64 `mapstructure:"min_tolerance"`
}

// SuggestionsConfig holds the suggestion engine's safety thresholds.
type SuggestionsConfig struct {
	TruePeakCeiling     float64 `mapstructure:"true_peak_ceiling"`
	CorrelationCritical float64 `mapstructure:"correlation_critical"`
	CorrelationWarning  float64 `mapstructure:"correlation_warning"`
	MaxSuggestions      int     `mapstructure:"max_suggestions"`
	Locale              string  `mapstructure:"locale"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Precision       int  `mapstructure:"precision"`
	IncludeMetadata bool `mapstructure:"include_metadata"`
	Colors          bool `mapstructure:"colors"`
}

// LoadConfig loads configuration from viper
func LoadConfig() (*Config, error) {
	config := &Config{}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config.Scoring.Method == "" {
		return fmt.Errorf("scoring method must be set")
	}

	total := 0.0
	for category, weight := range config.Scoring.Weights {
		if weight < 0 {
			return fmt.Errorf("category weight for %q cannot be negative", category)
		}
		total += weight
	}
	if len(config.Scoring.Weights) > 0 && total <= 0 {
		return fmt.Errorf("category weights must sum to a positive value")
	}

	for category, points := range config.Scoring.Caps {
		if points < 0 || points > 100 {
			return fmt.Errorf("penalty cap for %q must be within [0,100]", category)
		}
	}

	if config.Suggestions.TruePeakCeiling > 0 {
		return fmt.Errorf("true peak ceiling must not be above 0 dBTP")
	}

	if config.Suggestions.CorrelationWarning < config.Suggestions.CorrelationCritical {
		return fmt.Errorf("correlation warning threshold must not be below the critical threshold")
	}

	if config.Reference.DefaultTolerance <= 0 {
		return fmt.Errorf("default tolerance must be positive")
	}

	if config.Output.Precision < 0 {
		return fmt.Errorf("output precision cannot be negative")
	}

	return nil
}

// CategoryWeights converts the configured weight table to the scoring type.
func (c ScoringConfig) CategoryWeights() scoring.Weights {
	if len(c.Weights) == 0 {
		return scoring.DefaultWeights()
	}
	weights := make(scoring.Weights, len(c.Weights))
	for category, weight := range c.Weights {
		weights[scoring.Category(category)] = weight
	}
	return weights
}

// CategoryCaps converts the configured penalty caps to the scoring type.
func (c ScoringConfig) CategoryCaps() scoring.Caps {
	if len(c.Caps) == 0 {
		return scoring.DefaultCaps()
	}
	caps := make(scoring.Caps, len(c.Caps))
	for category, points := range c.Caps {
		caps[scoring.Category(category)] = points
	}
	return caps
}

// ResolverDefaults converts the reference section to resolver defaults.
func (c ReferenceConfig) ResolverDefaults() reference.Defaults {
	defaults := reference.DefaultDefaults()
	if c.DefaultTarget != 0 {
		defaults.Target = c.DefaultTarget
	}
	if c.DefaultTolerance > 0 {
		defaults.Tolerance = c.DefaultTolerance
	}
	if c.MinTolerance > 0 {
		defaults.MinTolerance = c.MinTolerance
	}
	return defaults
}

// EngineConfig converts the suggestions section to the engine config.
// Values pass through verbatim: SetDefaults guarantees every key is
// populated, so a deliberately configured zero (a 0 dBTP ceiling, a 0.0
// critical threshold) reaches the engine unchanged.
func (c SuggestionsConfig) EngineConfig() suggest.Config {
	return suggest.Config{
		TruePeakCeiling:     c.TruePeakCeiling,
		CorrelationCritical: c.CorrelationCritical,
		CorrelationWarning:  c.CorrelationWarning,
		MaxSuggestions:      c.MaxSuggestions,
		Locale:              c.Locale,
	}
}
