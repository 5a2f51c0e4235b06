package metrics

// Canonical metric keys. Every component downstream of the normalizer only
// ever sees these; extractor-side naming variants are folded here.
const (
	KeyLUFSIntegrated    = "lufsIntegrated"
	KeyLRA               = "lra"
	KeyTruePeak          = "truePeakDbtp"
	KeyDR                = "dr"
	KeyCrestFactor       = "crestFactor"
	KeyStereoCorrelation = "stereoCorrelation"
	KeyStereoWidth       = "stereoWidth"
	KeyBalanceLR         = "balanceLR"
	KeyDCOffset          = "dcOffset"
	KeyClippingPct       = "clippingPct"
	KeyClippingSamples   = "clippingSamples"
	KeySpectralCentroid  = "spectralCentroid"

	// BandPrefix prefixes flattened spectral band keys (band_sub, band_bass, ...)
	BandPrefix = "band_"
)

// aliases folds extractor-side key variants into canonical keys
var aliases = map[string]string{
	"lufs_integrated":     KeyLUFSIntegrated,
	"integrated_lufs":     KeyLUFSIntegrated,
	"integratedLufs":      KeyLUFSIntegrated,
	"lufs":                KeyLUFSIntegrated,
	"loudness_range":      KeyLRA,
	"true_peak_dbtp":      KeyTruePeak,
	"true_peak":           KeyTruePeak,
	"truePeak":            KeyTruePeak,
	"dynamic_range":       KeyDR,
	"dynamicRange":        KeyDR,
	"crest_factor":        KeyCrestFactor,
	"stereo_correlation":  KeyStereoCorrelation,
	"correlation":         KeyStereoCorrelation,
	"stereo_width":        KeyStereoWidth,
	"balance_lr":          KeyBalanceLR,
	"lr_balance":          KeyBalanceLR,
	"dc_offset":           KeyDCOffset,
	"clipping_pct":        KeyClippingPct,
	"clipping_percentage": KeyClippingPct,
	"clippingPercentage":  KeyClippingPct,
	"clipping_samples":    KeyClippingSamples,
	"spectral_centroid":   KeySpectralCentroid,
}

// bandAliases folds band naming variants into canonical band names
var bandAliases = map[string]string{
	"lowMid":     "low_mid",
	"low-mid":    "low_mid",
	"highMid":    "high_mid",
	"high-mid":   "high_mid",
	"brilliance": "air",
	"highs":      "air",
	"lows":       "sub",
}

// BandOrder is the canonical low-to-high ordering of spectral bands, used by
// the suggestion engine to merge contiguous band deviations.
var BandOrder = []string{"sub", "bass", "low_mid", "mid", "high_mid", "presence", "air"}

// CanonicalKey returns the canonical form of a raw metric key and whether the
// key is recognized at all.
func CanonicalKey(raw string) (string, bool) {
	if canonical, ok := aliases[raw]; ok {
		return canonical, true
	}
	switch raw {
	case KeyLUFSIntegrated, KeyLRA, KeyTruePeak, KeyDR, KeyCrestFactor,
		KeyStereoCorrelation, KeyStereoWidth, KeyBalanceLR, KeyDCOffset,
		KeyClippingPct, KeyClippingSamples, KeySpectralCentroid:
		return raw, true
	}
	return "", false
}

// CanonicalBand returns the canonical band name for a raw band name.
func CanonicalBand(raw string) string {
	if canonical, ok := bandAliases[raw]; ok {
		return canonical
	}
	return raw
}

// BandIndex returns the position of a band in the canonical ordering, or -1
// for bands outside the known set.
func BandIndex(name string) int {
	for i, b := range BandOrder {
		if b == name {
			return i
		}
	}
	return -1
}
