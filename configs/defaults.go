package configs

import (
	"github.com/spf13/viper"
)

// SetDefaults sets default configuration values for all components. Values
// already present (from file, env, or flags) are left untouched.
func SetDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}

	// Scoring defaults. The method is explicit so results are reproducible:
	// changing the algorithm means changing configuration, not ambient state.
	if !v.IsSet("scoring.method") {
		v.Set("scoring.method", "equal_weight_v4")
	}
	if !v.IsSet("scoring.weights") {
		v.Set("scoring.weights", map[string]float64{
			"loudness":  25,
			"frequency": 25,
			"dynamics":  20,
			"technical": 15,
			"stereo":    15,
		})
	}
	if !v.IsSet("scoring.caps") {
		v.Set("scoring.caps", map[string]float64{
			"stereo": 20,
		})
	}

	// Reference resolver defaults
	if !v.IsSet("reference.default_target") {
		v.Set("reference.default_target", -14.0)
	}
	if !v.IsSet("reference.default_tolerance") {
		v.Set("reference.default_tolerance", 3.0)
	}
	if !v.IsSet("reference.min_tolerance") {
		v.Set("reference.min_tolerance", 0.001)
	}

	// Suggestion engine defaults
	if !v.IsSet("suggestions.true_peak_ceiling") {
		v.Set("suggestions.true_peak_ceiling", -0.6)
	}
	if !v.IsSet("suggestions.correlation_critical") {
		v.Set("suggestions.correlation_critical", 0.10)
	}
	if !v.IsSet("suggestions.correlation_warning") {
		v.Set("suggestions.correlation_warning", 0.30)
	}
	if !v.IsSet("suggestions.max_suggestions") {
		v.Set("suggestions.max_suggestions", 0)
	}
	if !v.IsSet("suggestions.locale") {
		v.Set("suggestions.locale", "pt-BR")
	}

	// Output defaults
	if !v.IsSet("output.precision") {
		v.Set("output.precision", 1)
	}
	if !v.IsSet("output.include_metadata") {
		v.Set("output.include_metadata", true)
	}
	if !v.IsSet("output.colors") {
		v.Set("output.colors", false)
	}
}
