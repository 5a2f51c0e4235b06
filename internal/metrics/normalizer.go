package metrics

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mixgrade/mixgrade/pkg/logging"
)

// MetricRecord is the canonical, flat metric map produced by the normalizer.
// A key is present only when its value is a finite number; absent metrics are
// genuinely absent, never zero.
type MetricRecord map[string]float64

// Get returns the value for a canonical key and whether it is present.
func (r MetricRecord) Get(key string) (float64, bool) {
	v, ok := r[key]
	return v, ok
}

// Keys returns the present canonical keys in sorted order.
func (r MetricRecord) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// BandKeys returns the present band_* keys in canonical low-to-high order,
// unknown bands last in name order.
func (r MetricRecord) BandKeys() []string {
	var bands []string
	for k := range r {
		if strings.HasPrefix(k, BandPrefix) {
			bands = append(bands, k)
		}
	}
	sort.Slice(bands, func(i, j int) bool {
		bi := BandIndex(strings.TrimPrefix(bands[i], BandPrefix))
		bj := BandIndex(strings.TrimPrefix(bands[j], BandPrefix))
		if bi == -1 && bj == -1 {
			return bands[i] < bands[j]
		}
		if bi == -1 || bj == -1 {
			return bj == -1
		}
		return bi < bj
	})
	return bands
}

// HasClipping reports whether the record carries any clipping evidence.
func (r MetricRecord) HasClipping() bool {
	if v, ok := r[KeyClippingSamples]; ok && v > 0 {
		return true
	}
	if v, ok := r[KeyClippingPct]; ok && v > 0 {
		return true
	}
	return false
}

// Normalizer maps loosely-structured extractor output into a MetricRecord.
type Normalizer struct {
	logger logging.Logger
}

// NewNormalizer creates a normalizer. A nil logger falls back to the default.
func NewNormalizer(logger logging.Logger) *Normalizer {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Normalizer{logger: logger}
}

// Normalize converts a raw metrics object into the canonical flat record.
// Values that are not finite numbers are dropped, with a data-quality log
// line; nested band structures are flattened to band_<name> keys.
func (n *Normalizer) Normalize(raw map[string]any) MetricRecord {
	record := make(MetricRecord, len(raw))

	for rawKey, rawValue := range raw {
		switch rawKey {
		case "bandEnergies", "band_energies", "tonalBalance", "tonal_balance", "bands":
			n.flattenBands(rawValue, record)
			continue
		}

		key, known := CanonicalKey(rawKey)
		if !known {
			continue
		}

		value, ok := toFloat(rawValue)
		if !ok {
			n.logger.Warn("Dropping non-finite metric value", logging.Fields{
				"key":   rawKey,
				"value": rawValue,
			})
			continue
		}
		record[key] = value
	}

	return record
}

// flattenBands flattens a band-energy structure into band_<name> entries.
// Each band value may be a bare number or a nested object carrying an
// rms_db/energy_db field.
func (n *Normalizer) flattenBands(raw any, record MetricRecord) {
	bands, ok := raw.(map[string]any)
	if !ok {
		return
	}

	for name, bandValue := range bands {
		canonical := CanonicalBand(name)

		value, ok := toFloat(bandValue)
		if !ok {
			value, ok = bandField(bandValue)
		}
		if !ok {
			n.logger.Warn("Dropping non-finite band energy", logging.Fields{
				"band": name,
			})
			continue
		}
		record[BandPrefix+canonical] = value
	}
}

// bandField extracts the energy value from a nested band object.
func bandField(raw any) (float64, bool) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	for _, field := range []string{"rms_db", "rmsDb", "energy_db", "energyDb", "db", "value"} {
		if v, present := obj[field]; present {
			if f, finite := toFloat(v); finite {
				return f, true
			}
		}
	}
	return 0, false
}

// toFloat converts the numeric types that show up in decoded JSON and ad-hoc
// extractor maps. Non-numbers and non-finite values are rejected.
func toFloat(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
