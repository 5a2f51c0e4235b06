package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixgrade/mixgrade/internal/metrics"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	store, err := NewStore(nil)
	require.NoError(t, err)
	return NewResolver(store, DefaultDefaults(), nil)
}

func TestResolveProfileFields(t *testing.T) {
	r := newTestResolver(t)

	resolved := r.Resolve("funk", []string{
		metrics.KeyLUFSIntegrated,
		metrics.KeyTruePeak,
		metrics.KeyDR,
		metrics.KeyLRA,
		metrics.KeyStereoCorrelation,
	})

	assert.Equal(t, Target{Target: -7.5, Tolerance: 1.5}, resolved[metrics.KeyLUFSIntegrated])
	assert.Equal(t, Target{Target: -0.8, Tolerance: 0.4}, resolved[metrics.KeyTruePeak])
	assert.Equal(t, Target{Target: 6.0, Tolerance: 2.0}, resolved[metrics.KeyDR])
	assert.Equal(t, Target{Target: 4.0, Tolerance: 2.0}, resolved[metrics.KeyLRA])
	assert.Equal(t, Target{Target: 0.45, Tolerance: 0.2}, resolved[metrics.KeyStereoCorrelation])
}

func TestResolveBands(t *testing.T) {
	r := newTestResolver(t)

	resolved := r.Resolve("funk", []string{"band_sub", "band_air", "band_custom"})

	assert.Equal(t, Target{Target: -10.0, Tolerance: 2.5}, resolved["band_sub"])
	assert.Equal(t, Target{Target: -22.0, Tolerance: 4.0}, resolved["band_air"])
	// Bands absent from the profile resolve through the global defaults.
	assert.Equal(t, Target{Target: -14.0, Tolerance: 3.0}, resolved["band_custom"])
}

func TestResolveUnknownGenreFallsBackToNeutral(t *testing.T) {
	r := newTestResolver(t)

	unknown := r.Resolve("polka", []string{metrics.KeyLUFSIntegrated})
	neutral := r.Resolve("neutral", []string{metrics.KeyLUFSIntegrated})

	assert.Equal(t, neutral, unknown)
}

func TestResolveGenreIsCaseInsensitive(t *testing.T) {
	r := newTestResolver(t)

	assert.Equal(t,
		r.Resolve("funk", []string{metrics.KeyLUFSIntegrated}),
		r.Resolve("  Funk ", []string{metrics.KeyLUFSIntegrated}))
}

func TestResolveKeyDefaults(t *testing.T) {
	r := newTestResolver(t)

	resolved := r.Resolve("neutral", []string{
		metrics.KeyDCOffset,
		metrics.KeyClippingPct,
		metrics.KeyBalanceLR,
		metrics.KeyCrestFactor,
	})

	assert.Equal(t, Target{Target: 0.0, Tolerance: 0.01}, resolved[metrics.KeyDCOffset])
	assert.Equal(t, Target{Target: 0.0, Tolerance: 0.1}, resolved[metrics.KeyClippingPct])
	assert.Equal(t, Target{Target: 0.0, Tolerance: 0.15}, resolved[metrics.KeyBalanceLR])
	assert.Equal(t, Target{Target: 10.0, Tolerance: 3.0}, resolved[metrics.KeyCrestFactor])
}

func TestResolveClampsNonPositiveTolerance(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	zero := 0.0
	target := -9.0
	store.Put(&Profile{
		Genre:      "broken",
		LUFSTarget: &target,
		TolLUFS:    &zero,
		Bands: map[string]BandTarget{
			"sub": {TargetDB: -10.0, TolDB: -1.0},
		},
	})

	r := NewResolver(store, DefaultDefaults(), nil)
	resolved := r.Resolve("broken", []string{metrics.KeyLUFSIntegrated, "band_sub"})

	assert.Equal(t, Target{Target: -9.0, Tolerance: 0.001}, resolved[metrics.KeyLUFSIntegrated])
	assert.Equal(t, Target{Target: -10.0, Tolerance: 0.001}, resolved["band_sub"])
}

func TestResolvePartialProfileMergesDefaults(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	target := -11.0
	store.Put(&Profile{Genre: "sparse", LUFSTarget: &target})

	r := NewResolver(store, DefaultDefaults(), nil)
	resolved := r.Resolve("sparse", []string{
		metrics.KeyLUFSIntegrated,
		metrics.KeyDR,
	})

	// Target from the profile, tolerance from the global defaults.
	assert.Equal(t, Target{Target: -11.0, Tolerance: 3.0}, resolved[metrics.KeyLUFSIntegrated])
	// Nothing in the profile at all: the global defaults apply.
	assert.Equal(t, Target{Target: -14.0, Tolerance: 3.0}, resolved[metrics.KeyDR])
}

func TestStoreEmbeddedGenres(t *testing.T) {
	store, err := NewStore(nil)
	require.NoError(t, err)

	genres := store.Genres()
	assert.Equal(t, []string{"eletronica", "funk", "neutral", "pop", "rock", "sertanejo", "trap"}, genres)

	funk, ok := store.Get("funk")
	require.True(t, ok)
	assert.Equal(t, "Funk Brasileiro", funk.DisplayName)
	assert.Len(t, funk.Bands, 7)
}

func TestParseProfileRejectsMissingGenre(t *testing.T) {
	_, err := ParseProfile([]byte(`{"lufs_target": -14.0}`))
	assert.Error(t, err)

	_, err = ParseProfile([]byte(`not json`))
	assert.Error(t, err)
}
