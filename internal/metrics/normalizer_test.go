package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAliasFolding(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"lufs_integrated":    -9.5,
		"true_peak":          -0.8,
		"dynamic_range":      7.0,
		"crest_factor":       11.2,
		"stereo_correlation": 0.4,
		"loudness_range":     5.5,
	})

	assert.Equal(t, MetricRecord{
		KeyLUFSIntegrated:    -9.5,
		KeyTruePeak:          -0.8,
		KeyDR:                7.0,
		KeyCrestFactor:       11.2,
		KeyStereoCorrelation: 0.4,
		KeyLRA:               5.5,
	}, record)
}

func TestNormalizeCanonicalKeysPassThrough(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"lufsIntegrated": -14.0,
		"truePeakDbtp":   -1.0,
	})

	assert.Equal(t, -14.0, record[KeyLUFSIntegrated])
	assert.Equal(t, -1.0, record[KeyTruePeak])
}

func TestNormalizeDropsNonFinite(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"lufsIntegrated": math.NaN(),
		"truePeakDbtp":   math.Inf(-1),
		"dr":             nil,
		"crestFactor":    "not a number",
		"lra":            6.0,
	})

	// Absent values are absent, never zero.
	_, hasLUFS := record.Get(KeyLUFSIntegrated)
	_, hasPeak := record.Get(KeyTruePeak)
	_, hasDR := record.Get(KeyDR)
	_, hasCrest := record.Get(KeyCrestFactor)
	assert.False(t, hasLUFS)
	assert.False(t, hasPeak)
	assert.False(t, hasDR)
	assert.False(t, hasCrest)

	v, ok := record.Get(KeyLRA)
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
}

func TestNormalizeNumericTypes(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"dr":              int(9),
		"lra":             float32(4.5),
		"clippingSamples": int64(500),
		"crestFactor":     json.Number("10.5"),
		"stereoWidth":     "0.62",
	})

	assert.Equal(t, 9.0, record[KeyDR])
	assert.InDelta(t, 4.5, record[KeyLRA], 1e-6)
	assert.Equal(t, 500.0, record[KeyClippingSamples])
	assert.Equal(t, 10.5, record[KeyCrestFactor])
	assert.Equal(t, 0.62, record[KeyStereoWidth])
}

func TestNormalizeFlattensBands(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"bandEnergies": map[string]any{
			"sub":    map[string]any{"rms_db": -11.2},
			"bass":   -12.5,
			"lowMid": map[string]any{"energy_db": -15.0},
			"mid":    map[string]any{"rms_db": math.NaN()},
		},
	})

	assert.Equal(t, -11.2, record["band_sub"])
	assert.Equal(t, -12.5, record["band_bass"])
	assert.Equal(t, -15.0, record["band_low_mid"])
	_, hasMid := record.Get("band_mid")
	assert.False(t, hasMid)
}

func TestNormalizeTonalBalanceAlias(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"tonalBalance": map[string]any{
			"presence": map[string]any{"rmsDb": -18.4},
		},
	})

	assert.Equal(t, -18.4, record["band_presence"])
}

func TestNormalizeIgnoresUnknownKeys(t *testing.T) {
	n := NewNormalizer(nil)

	record := n.Normalize(map[string]any{
		"fileName":   "track.wav",
		"sampleRate": 44100,
	})
	assert.Empty(t, record)
}

func TestBandKeysOrdering(t *testing.T) {
	record := MetricRecord{
		"band_air":     -20.0,
		"band_sub":     -10.0,
		"band_mid":     -15.0,
		"band_unknown": -12.0,
		"lufsIntegrated": -9.0,
	}

	assert.Equal(t, []string{"band_sub", "band_mid", "band_air", "band_unknown"},
		record.BandKeys())
}

func TestHasClipping(t *testing.T) {
	assert.True(t, MetricRecord{KeyClippingSamples: 500}.HasClipping())
	assert.True(t, MetricRecord{KeyClippingPct: 0.3}.HasClipping())
	assert.False(t, MetricRecord{KeyClippingSamples: 0}.HasClipping())
	assert.False(t, MetricRecord{}.HasClipping())
}
