package reference

import (
	"strings"

	"github.com/mixgrade/mixgrade/internal/metrics"
	"github.com/mixgrade/mixgrade/pkg/logging"
)

// Defaults controls the resolver's fallback behavior for metrics or bands
// missing from a genre profile.
type Defaults struct {
	// Target applies to loudness-like and band metrics with no reference
	// data. Chosen to avoid over-penalizing tracks when reference data is
	// incomplete.
	Target float64
	// Tolerance applies wherever a profile omits one, in the metric's unit.
	Tolerance float64
	// MinTolerance is the clamp floor guaranteeing tolerance > 0 downstream.
	MinTolerance float64
}

// DefaultDefaults returns the documented global defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		Target:       -14.0,
		Tolerance:    3.0,
		MinTolerance: 0.001,
	}
}

// keyDefaults carries built-in neutral targets for metric keys the genre
// profile format has no field for. Units follow the canonical key.
var keyDefaults = map[string]Target{
	metrics.KeyCrestFactor:       {Target: 10.0, Tolerance: 3.0},
	metrics.KeyStereoCorrelation: {Target: 0.35, Tolerance: 0.25},
	metrics.KeyStereoWidth:       {Target: 0.6, Tolerance: 0.25},
	metrics.KeyBalanceLR:         {Target: 0.0, Tolerance: 0.15},
	metrics.KeyDCOffset:          {Target: 0.0, Tolerance: 0.01},
	metrics.KeyClippingPct:       {Target: 0.0, Tolerance: 0.1},
	metrics.KeySpectralCentroid:  {Target: 2500.0, Tolerance: 1200.0},
}

// Resolver resolves (target, tolerance) pairs for canonical metric keys
// against a genre profile store.
type Resolver struct {
	store    *Store
	defaults Defaults
	logger   logging.Logger
}

// NewResolver creates a resolver over a profile store.
func NewResolver(store *Store, defaults Defaults, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if defaults.MinTolerance <= 0 {
		defaults.MinTolerance = DefaultDefaults().MinTolerance
	}
	return &Resolver{store: store, defaults: defaults, logger: logger}
}

// Resolve returns a (target, tolerance) pair for every requested key. An
// unknown genre falls back to the neutral profile; a missing metric or band
// falls back to the global defaults. It never fails: every key scored
// downstream has a resolvable pair, and every tolerance is > 0.
func (r *Resolver) Resolve(genre string, keys []string) map[string]Target {
	profile, ok := r.store.Get(genre)
	if !ok {
		r.logger.Debug("Unknown genre, using neutral reference profile", logging.Fields{
			"genre": genre,
		})
		profile = r.store.Neutral()
	}

	resolved := make(map[string]Target, len(keys))
	for _, key := range keys {
		resolved[key] = r.resolveKey(profile, key)
	}
	return resolved
}

func (r *Resolver) resolveKey(profile *Profile, key string) Target {
	if strings.HasPrefix(key, metrics.BandPrefix) {
		return r.resolveBand(profile, strings.TrimPrefix(key, metrics.BandPrefix))
	}

	var target, tolerance *float64
	switch key {
	case metrics.KeyLUFSIntegrated:
		target, tolerance = profile.LUFSTarget, profile.TolLUFS
	case metrics.KeyTruePeak:
		target, tolerance = profile.TruePeakTarget, profile.TolTruePeak
	case metrics.KeyDR:
		target, tolerance = profile.DRTarget, profile.TolDR
	case metrics.KeyLRA:
		target, tolerance = profile.LRATarget, profile.TolLRA
	case metrics.KeyStereoCorrelation:
		target, tolerance = profile.StereoTarget, profile.TolStereo
	}

	resolved := r.fallbackFor(key)
	if target != nil {
		resolved.Target = *target
	}
	if tolerance != nil {
		resolved.Tolerance = *tolerance
	}
	return r.clamped(key, resolved)
}

func (r *Resolver) resolveBand(profile *Profile, band string) Target {
	resolved := Target{Target: r.defaults.Target, Tolerance: r.defaults.Tolerance}
	if entry, ok := profile.Bands[band]; ok {
		resolved = Target{Target: entry.TargetDB, Tolerance: entry.TolDB}
	}
	return r.clamped(metrics.BandPrefix+band, resolved)
}

// fallbackFor returns the default pair for a non-band key: the per-key
// neutral entry when one exists, the loudness-like global default otherwise.
func (r *Resolver) fallbackFor(key string) Target {
	if fallback, ok := keyDefaults[key]; ok {
		return fallback
	}
	return Target{Target: r.defaults.Target, Tolerance: r.defaults.Tolerance}
}

// clamped enforces tolerance > 0. A non-positive tolerance is a reference
// data-quality problem, logged and clamped, never propagated.
func (r *Resolver) clamped(key string, t Target) Target {
	if t.Tolerance < r.defaults.MinTolerance {
		r.logger.Warn("Invalid reference tolerance, clamping", logging.Fields{
			"key":       key,
			"tolerance": t.Tolerance,
			"clamp":     r.defaults.MinTolerance,
		})
		t.Tolerance = r.defaults.MinTolerance
	}
	return t
}
