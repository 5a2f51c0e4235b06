package suggest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mixgrade/mixgrade/internal/metrics"
	"github.com/mixgrade/mixgrade/internal/scoring"
	"github.com/mixgrade/mixgrade/pkg/logging"
)

// Suggestion is one ranked, human-actionable improvement. Every suggestion is
// traceable to the metric keys and deviations that produced it.
type Suggestion struct {
	Type       Type             `json:"type"`
	Severity   scoring.Severity `json:"severity"`
	Message    string           `json:"message"`
	Action     string           `json:"action"`
	MetricKeys []string         `json:"metric_keys"`
	Priority   float64          `json:"priority"`
}

// Alert is a visibility record decoupled from scoring. Stereo-correlation
// alerts fire regardless of the aggregator's penalty cap: the cap limits
// score impact, not visibility.
type Alert struct {
	Severity  scoring.Severity `json:"severity"`
	MetricKey string           `json:"metric_key"`
	Value     float64          `json:"value"`
	Threshold float64          `json:"threshold"`
	Message   string           `json:"message"`
}

// Config holds the suggestion engine's safety thresholds. Threshold values
// are taken literally: a 0 dBTP ceiling or a 0.0 critical threshold is a
// valid, expressible configuration. Start from DefaultConfig for the
// documented defaults.
type Config struct {
	// TruePeakCeiling is the safe true-peak ceiling in dBTP used by the
	// headroom gate.
	TruePeakCeiling float64
	// CorrelationCritical and CorrelationWarning are the stereo alert
	// thresholds.
	CorrelationCritical float64
	CorrelationWarning  float64
	// MaxSuggestions truncates the ranked list; 0 means unlimited.
	MaxSuggestions int
	// Locale selects the message language (BCP 47); default pt-BR.
	Locale string
}

// DefaultConfig returns the default safety thresholds.
func DefaultConfig() Config {
	return Config{
		TruePeakCeiling:     -0.6,
		CorrelationCritical: 0.10,
		CorrelationWarning:  0.30,
		MaxSuggestions:      0,
		Locale:              "pt-BR",
	}
}

// importance weights metric keys for priority ranking. Priority is
// severity weight times the highest importance among the implicated keys.
var importance = map[string]float64{
	metrics.KeyLUFSIntegrated:    1.0,
	metrics.KeyClippingPct:       1.0,
	metrics.KeyClippingSamples:   1.0,
	metrics.KeyTruePeak:          0.9,
	metrics.KeyDR:                0.8,
	metrics.KeyLRA:               0.7,
	metrics.KeyCrestFactor:       0.7,
	metrics.KeyStereoCorrelation: 0.6,
	metrics.KeyStereoWidth:       0.5,
	metrics.KeyBalanceLR:         0.5,
	metrics.KeyDCOffset:          0.4,
}

const bandImportance = 0.6

// Engine derives suggestions and alerts from scored metrics.
type Engine struct {
	cfg    Config
	msgs   map[Type]template
	bands  map[string]string
	logger logging.Logger
}

// NewEngine creates a suggestion engine.
func NewEngine(cfg Config, logger logging.Logger) *Engine {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	msgs, bands := catalogFor(cfg.Locale)
	return &Engine{cfg: cfg, msgs: msgs, bands: bands, logger: logger}
}

// Evaluate produces ranked suggestions and decoupled alerts from the scored
// metrics and the underlying record.
func (e *Engine) Evaluate(scores []scoring.MetricScore, record metrics.MetricRecord) ([]Suggestion, []Alert) {
	byKey := make(map[string]scoring.MetricScore, len(scores))
	for _, ms := range scores {
		byKey[ms.Key] = ms
	}

	var suggestions []Suggestion
	add := func(s *Suggestion) {
		if s != nil {
			suggestions = append(suggestions, *s)
		}
	}

	add(e.loudnessRule(byKey, record))
	add(e.clippingRule(record))
	add(e.truePeakRule(record))
	suggestions = append(suggestions, e.dynamicsRules(byKey)...)
	suggestions = append(suggestions, e.bandRules(byKey, record)...)
	suggestions = append(suggestions, e.stereoRules(byKey)...)
	add(e.dcOffsetRule(byKey))

	for i := range suggestions {
		suggestions[i].Priority = priorityOf(suggestions[i])
	}
	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Priority != suggestions[j].Priority {
			return suggestions[i].Priority > suggestions[j].Priority
		}
		return suggestions[i].Type < suggestions[j].Type
	})

	if e.cfg.MaxSuggestions > 0 && len(suggestions) > e.cfg.MaxSuggestions {
		suggestions = suggestions[:e.cfg.MaxSuggestions]
	}

	return suggestions, e.stereoAlerts(record)
}

// loudnessRule handles the integrated-loudness deviation with the headroom
// gate. A loudness increase is only ever suggested when the measured true
// peak leaves at least the needed gain below the safe ceiling; otherwise a
// limited-headroom advisory is emitted instead. Clipping suppresses the rule
// entirely (the clipping rule takes over).
func (e *Engine) loudnessRule(byKey map[string]scoring.MetricScore, record metrics.MetricRecord) *Suggestion {
	ms, ok := byKey[metrics.KeyLUFSIntegrated]
	if !ok || ms.Severity == scoring.SeverityIdeal {
		return nil
	}

	if ms.Deviation > 0 {
		t := e.msgs[TypeReduceLoudness]
		return &Suggestion{
			Type:       TypeReduceLoudness,
			Severity:   ms.Severity,
			Message:    fmt.Sprintf(t.message, ms.Measured, ms.Target),
			Action:     fmt.Sprintf(t.action, ms.Deviation),
			MetricKeys: []string{metrics.KeyLUFSIntegrated},
		}
	}

	// Too quiet. Never suggest a gain increase on clipped material.
	if record.HasClipping() {
		return nil
	}

	gainNeeded := -ms.Deviation
	truePeak, hasPeak := record.Get(metrics.KeyTruePeak)
	headroom := 0.0
	if hasPeak {
		headroom = e.cfg.TruePeakCeiling - truePeak
	}

	if hasPeak && headroom >= gainNeeded {
		t := e.msgs[TypeIncreaseLoudness]
		return &Suggestion{
			Type:       TypeIncreaseLoudness,
			Severity:   ms.Severity,
			Message:    fmt.Sprintf(t.message, ms.Measured, ms.Target),
			Action:     fmt.Sprintf(t.action, gainNeeded, headroom, e.cfg.TruePeakCeiling),
			MetricKeys: []string{metrics.KeyLUFSIntegrated, metrics.KeyTruePeak},
		}
	}

	// Headroom insufficient (or unverifiable without a true-peak reading):
	// advisory only, never an instruction that would itself induce clipping.
	keys := []string{metrics.KeyLUFSIntegrated}
	if hasPeak {
		keys = append(keys, metrics.KeyTruePeak)
	}
	t := e.msgs[TypeLimitedHeadroom]
	return &Suggestion{
		Type:       TypeLimitedHeadroom,
		Severity:   ms.Severity,
		Message:    fmt.Sprintf(t.message, ms.Measured, ms.Target, headroom, gainNeeded),
		Action:     t.action,
		MetricKeys: keys,
	}
}

func (e *Engine) clippingRule(record metrics.MetricRecord) *Suggestion {
	if !record.HasClipping() {
		return nil
	}

	var keys []string
	var detail []string
	if v, ok := record.Get(metrics.KeyClippingSamples); ok && v > 0 {
		keys = append(keys, metrics.KeyClippingSamples)
		detail = append(detail, fmt.Sprintf("%.0f samples", v))
	}
	if v, ok := record.Get(metrics.KeyClippingPct); ok && v > 0 {
		keys = append(keys, metrics.KeyClippingPct)
		detail = append(detail, fmt.Sprintf("%.2f%%", v))
	}

	t := e.msgs[TypeFixClipping]
	return &Suggestion{
		Type:       TypeFixClipping,
		Severity:   scoring.SeverityCritical,
		Message:    fmt.Sprintf(t.message, strings.Join(detail, ", ")),
		Action:     t.action,
		MetricKeys: keys,
	}
}

func (e *Engine) truePeakRule(record metrics.MetricRecord) *Suggestion {
	truePeak, ok := record.Get(metrics.KeyTruePeak)
	if !ok || truePeak <= e.cfg.TruePeakCeiling {
		return nil
	}

	severity := scoring.SeverityWarn
	if truePeak >= 0 {
		severity = scoring.SeverityCritical
	}
	t := e.msgs[TypeLimitTruePeak]
	return &Suggestion{
		Type:       TypeLimitTruePeak,
		Severity:   severity,
		Message:    fmt.Sprintf(t.message, truePeak, e.cfg.TruePeakCeiling),
		Action:     fmt.Sprintf(t.action, e.cfg.TruePeakCeiling),
		MetricKeys: []string{metrics.KeyTruePeak},
	}
}

// dynamicsRules merges the dynamics metrics that imply the same corrective
// action into a single suggestion referencing every implicated key.
func (e *Engine) dynamicsRules(byKey map[string]scoring.MetricScore) []Suggestion {
	var low, high []scoring.MetricScore
	for _, key := range []string{metrics.KeyDR, metrics.KeyLRA, metrics.KeyCrestFactor} {
		ms, ok := byKey[key]
		if !ok || ms.Severity == scoring.SeverityIdeal {
			continue
		}
		if ms.Deviation < 0 {
			low = append(low, ms)
		} else {
			high = append(high, ms)
		}
	}

	var out []Suggestion
	if len(low) > 0 {
		out = append(out, e.dynamicsSuggestion(TypeReduceCompression, low))
	}
	if len(high) > 0 {
		out = append(out, e.dynamicsSuggestion(TypeTameDynamics, high))
	}
	return out
}

func (e *Engine) dynamicsSuggestion(suggestionType Type, group []scoring.MetricScore) Suggestion {
	keys := make([]string, 0, len(group))
	detail := make([]string, 0, len(group))
	severity := scoring.SeverityWatch
	for _, ms := range group {
		keys = append(keys, ms.Key)
		detail = append(detail, fmt.Sprintf("%s %.1f vs %.1f", ms.Key, ms.Measured, ms.Target))
		severity = maxSeverity(severity, ms.Severity)
	}

	t := e.msgs[suggestionType]
	return Suggestion{
		Type:       suggestionType,
		Severity:   severity,
		Message:    fmt.Sprintf(t.message, strings.Join(detail, ", ")),
		Action:     t.action,
		MetricKeys: keys,
	}
}

// bandRules walks the spectral bands in low-to-high order and merges
// contiguous runs deviating in the same direction into one suggestion, so
// five adjacent low bands produce one EQ move, not five.
func (e *Engine) bandRules(byKey map[string]scoring.MetricScore, record metrics.MetricRecord) []Suggestion {
	type run struct {
		keys     []string
		maxDev   float64
		severity scoring.Severity
		low      bool
	}

	var out []Suggestion
	var current *run

	flush := func() {
		if current == nil {
			return
		}
		suggestionType := TypeCutBands
		if current.low {
			suggestionType = TypeBoostBands
		}
		region := e.bandRegion(current.keys)
		t := e.msgs[suggestionType]
		out = append(out, Suggestion{
			Type:       suggestionType,
			Severity:   current.severity,
			Message:    fmt.Sprintf(t.message, region, current.maxDev),
			Action:     fmt.Sprintf(t.action, region),
			MetricKeys: append([]string(nil), current.keys...),
		})
		current = nil
	}

	for _, key := range record.BandKeys() {
		ms, ok := byKey[key]
		if !ok || ms.Severity == scoring.SeverityIdeal || ms.Severity == scoring.SeverityWatch {
			flush()
			continue
		}

		low := ms.Deviation < 0
		if current == nil || current.low != low {
			flush()
			current = &run{low: low, severity: ms.Severity}
		}
		current.keys = append(current.keys, key)
		if dev := absFloat(ms.Deviation); dev > current.maxDev {
			current.maxDev = dev
		}
		current.severity = maxSeverity(current.severity, ms.Severity)
	}
	flush()

	return out
}

// bandRegion renders a human label for a run of band keys, e.g.
// "graves–médios" for a bass..mid run.
func (e *Engine) bandRegion(keys []string) string {
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		name := strings.TrimPrefix(key, metrics.BandPrefix)
		if label, ok := e.bands[name]; ok {
			labels = append(labels, label)
		} else {
			labels = append(labels, name)
		}
	}
	if len(labels) > 2 {
		return labels[0] + "–" + labels[len(labels)-1]
	}
	return strings.Join(labels, ", ")
}

func (e *Engine) stereoRules(byKey map[string]scoring.MetricScore) []Suggestion {
	var out []Suggestion

	if ms, ok := byKey[metrics.KeyStereoCorrelation]; ok && ms.Severity != scoring.SeverityIdeal && ms.Deviation < 0 {
		t := e.msgs[TypeFixCorrelation]
		out = append(out, Suggestion{
			Type:       TypeFixCorrelation,
			Severity:   ms.Severity,
			Message:    fmt.Sprintf(t.message, ms.Measured, ms.Target),
			Action:     t.action,
			MetricKeys: []string{metrics.KeyStereoCorrelation},
		})
	}

	if ms, ok := byKey[metrics.KeyStereoWidth]; ok && ms.Severity != scoring.SeverityIdeal {
		t := e.msgs[TypeAdjustWidth]
		out = append(out, Suggestion{
			Type:       TypeAdjustWidth,
			Severity:   ms.Severity,
			Message:    fmt.Sprintf(t.message, ms.Measured, ms.Target),
			Action:     t.action,
			MetricKeys: []string{metrics.KeyStereoWidth},
		})
	}

	if ms, ok := byKey[metrics.KeyBalanceLR]; ok && ms.Severity != scoring.SeverityIdeal {
		t := e.msgs[TypeFixBalance]
		out = append(out, Suggestion{
			Type:       TypeFixBalance,
			Severity:   ms.Severity,
			Message:    fmt.Sprintf(t.message, ms.Measured, ms.Target),
			Action:     t.action,
			MetricKeys: []string{metrics.KeyBalanceLR},
		})
	}

	return out
}

func (e *Engine) dcOffsetRule(byKey map[string]scoring.MetricScore) *Suggestion {
	ms, ok := byKey[metrics.KeyDCOffset]
	if !ok || ms.Severity == scoring.SeverityIdeal {
		return nil
	}
	t := e.msgs[TypeRemoveDCOffset]
	return &Suggestion{
		Type:       TypeRemoveDCOffset,
		Severity:   ms.Severity,
		Message:    fmt.Sprintf(t.message, ms.Measured),
		Action:     t.action,
		MetricKeys: []string{metrics.KeyDCOffset},
	}
}

// stereoAlerts emits correlation alerts from the raw measurement. These fire
// independently of scoring and of the aggregator's penalty cap.
func (e *Engine) stereoAlerts(record metrics.MetricRecord) []Alert {
	correlation, ok := record.Get(metrics.KeyStereoCorrelation)
	if !ok {
		return nil
	}

	switch {
	case correlation < e.cfg.CorrelationCritical:
		t := e.msgs[alertCorrelationCritical]
		return []Alert{{
			Severity:  scoring.SeverityCritical,
			MetricKey: metrics.KeyStereoCorrelation,
			Value:     correlation,
			Threshold: e.cfg.CorrelationCritical,
			Message:   fmt.Sprintf(t.message, correlation, e.cfg.CorrelationCritical),
		}}
	case correlation < e.cfg.CorrelationWarning:
		t := e.msgs[alertCorrelationWarning]
		return []Alert{{
			Severity:  scoring.SeverityWarn,
			MetricKey: metrics.KeyStereoCorrelation,
			Value:     correlation,
			Threshold: e.cfg.CorrelationWarning,
			Message:   fmt.Sprintf(t.message, correlation, e.cfg.CorrelationWarning),
		}}
	}
	return nil
}

func priorityOf(s Suggestion) float64 {
	weight := 0.0
	for _, key := range s.MetricKeys {
		w, ok := importance[key]
		if !ok && strings.HasPrefix(key, metrics.BandPrefix) {
			w = bandImportance
		}
		if w > weight {
			weight = w
		}
	}
	return s.Severity.Weight() * weight
}

func maxSeverity(a, b scoring.Severity) scoring.Severity {
	if b.Weight() > a.Weight() {
		return b
	}
	return a
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
