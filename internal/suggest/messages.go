package suggest

import "golang.org/x/text/language"

// Type identifies the corrective action a suggestion proposes.
type Type string

const (
	TypeIncreaseLoudness  Type = "increase_loudness"
	TypeReduceLoudness    Type = "reduce_loudness"
	TypeLimitedHeadroom   Type = "limited_headroom"
	TypeFixClipping       Type = "fix_clipping"
	TypeLimitTruePeak     Type = "limit_true_peak"
	TypeReduceCompression Type = "reduce_compression"
	TypeTameDynamics      Type = "tame_dynamics"
	TypeBoostBands        Type = "boost_bands"
	TypeCutBands          Type = "cut_bands"
	TypeFixCorrelation    Type = "fix_phase_correlation"
	TypeAdjustWidth       Type = "adjust_stereo_width"
	TypeFixBalance        Type = "fix_channel_balance"
	TypeRemoveDCOffset    Type = "remove_dc_offset"
)

// Alert message catalog keys. Alerts have no action text; only the message
// is localized.
const (
	alertCorrelationCritical Type = "alert_correlation_critical"
	alertCorrelationWarning  Type = "alert_correlation_warning"
)

// template carries the localized message/action format strings for one
// suggestion type. Argument order is identical across languages.
type template struct {
	message string
	action  string
}

// supportedLocales drives the x/text matcher; index 0 is the default.
var supportedLocales = []language.Tag{
	language.BrazilianPortuguese,
	language.English,
}

var catalogPT = map[Type]template{
	TypeIncreaseLoudness: {
		message: "Loudness integrado em %.1f LUFS, abaixo do alvo de %.1f LUFS para o gênero.",
		action:  "Aumente o ganho em aproximadamente %.1f dB; headroom disponível de %.1f dB até o teto de %.1f dBTP.",
	},
	TypeReduceLoudness: {
		message: "Loudness integrado em %.1f LUFS, acima do alvo de %.1f LUFS para o gênero.",
		action:  "Reduza o ganho em aproximadamente %.1f dB para alinhar ao alvo.",
	},
	TypeLimitedHeadroom: {
		message: "Loudness em %.1f LUFS está abaixo do alvo de %.1f LUFS, mas o headroom disponível (%.1f dB) é menor que o ganho necessário (%.1f dB).",
		action:  "Aplique limitação de true peak ou reduza picos antes de subir o ganho; aumentar o volume agora causaria clipping.",
	},
	TypeFixClipping: {
		message: "Clipping detectado (%s).",
		action:  "Reduza o ganho de saída e re-renderize; corrija o estágio que está saturando antes de qualquer ajuste de loudness.",
	},
	TypeLimitTruePeak: {
		message: "True peak em %.2f dBTP, acima do teto seguro de %.1f dBTP.",
		action:  "Use um limitador true peak com teto em %.1f dBTP para evitar clipping inter-sample.",
	},
	TypeReduceCompression: {
		message: "Dinâmica abaixo do alvo do gênero (%s).",
		action:  "Reduza a compressão/limitação no master para recuperar transientes.",
	},
	TypeTameDynamics: {
		message: "Dinâmica acima do alvo do gênero (%s).",
		action:  "Considere compressão leve para controlar a variação de nível.",
	},
	TypeBoostBands: {
		message: "Energia baixa nas bandas %s (até %.1f dB abaixo do alvo).",
		action:  "Aplique um realce de EQ suave na região %s.",
	},
	TypeCutBands: {
		message: "Energia alta nas bandas %s (até %.1f dB acima do alvo).",
		action:  "Aplique uma atenuação de EQ na região %s.",
	},
	TypeFixCorrelation: {
		message: "Correlação estéreo em %.2f, alvo %.2f; risco de cancelamento de fase em mono.",
		action:  "Verifique processadores de alargamento estéreo e a fase entre canais.",
	},
	TypeAdjustWidth: {
		message: "Largura estéreo em %.2f, alvo %.2f.",
		action:  "Ajuste o processamento mid/side para aproximar a imagem do alvo do gênero.",
	},
	TypeFixBalance: {
		message: "Desbalanceamento entre canais de %.2f (alvo %.2f).",
		action:  "Corrija o pan ou o ganho por canal no master.",
	},
	TypeRemoveDCOffset: {
		message: "DC offset de %.4f detectado.",
		action:  "Aplique um filtro high-pass subsônico (ex.: 20 Hz) para remover o offset.",
	},
	alertCorrelationCritical: {
		message: "Correlação estéreo em %.2f, abaixo do limite crítico de %.2f.",
	},
	alertCorrelationWarning: {
		message: "Correlação estéreo em %.2f, abaixo do limite de atenção de %.2f.",
	},
}

var catalogEN = map[Type]template{
	TypeIncreaseLoudness: {
		message: "Integrated loudness at %.1f LUFS, below the genre target of %.1f LUFS.",
		action:  "Raise the gain by roughly %.1f dB; %.1f dB of headroom is available up to the %.1f dBTP ceiling.",
	},
	TypeReduceLoudness: {
		message: "Integrated loudness at %.1f LUFS, above the genre target of %.1f LUFS.",
		action:  "Lower the gain by roughly %.1f dB to meet the target.",
	},
	TypeLimitedHeadroom: {
		message: "Loudness at %.1f LUFS is below the %.1f LUFS target, but available headroom (%.1f dB) is smaller than the gain needed (%.1f dB).",
		action:  "Apply true-peak limiting or reduce peaks before raising the gain; raising the volume now would clip.",
	},
	TypeFixClipping: {
		message: "Clipping detected (%s).",
		action:  "Lower the output gain and re-render; fix the saturating stage before any loudness adjustment.",
	},
	TypeLimitTruePeak: {
		message: "True peak at %.2f dBTP, above the safe ceiling of %.1f dBTP.",
		action:  "Use a true-peak limiter with the ceiling at %.1f dBTP to avoid inter-sample clipping.",
	},
	TypeReduceCompression: {
		message: "Dynamics below the genre target (%s).",
		action:  "Back off master-bus compression/limiting to recover transients.",
	},
	TypeTameDynamics: {
		message: "Dynamics above the genre target (%s).",
		action:  "Consider gentle compression to control level variation.",
	},
	TypeBoostBands: {
		message: "Low energy in the %s bands (up to %.1f dB below target).",
		action:  "Apply a gentle EQ boost across the %s region.",
	},
	TypeCutBands: {
		message: "High energy in the %s bands (up to %.1f dB above target).",
		action:  "Apply an EQ cut across the %s region.",
	},
	TypeFixCorrelation: {
		message: "Stereo correlation at %.2f, target %.2f; risk of phase cancellation in mono.",
		action:  "Check stereo-widening processors and inter-channel phase.",
	},
	TypeAdjustWidth: {
		message: "Stereo width at %.2f, target %.2f.",
		action:  "Adjust mid/side processing to bring the image toward the genre target.",
	},
	TypeFixBalance: {
		message: "Channel balance off by %.2f (target %.2f).",
		action:  "Fix panning or per-channel gain on the master.",
	},
	TypeRemoveDCOffset: {
		message: "DC offset of %.4f detected.",
		action:  "Apply a subsonic high-pass filter (e.g. 20 Hz) to remove the offset.",
	},
	alertCorrelationCritical: {
		message: "Stereo correlation at %.2f, below the critical threshold of %.2f.",
	},
	alertCorrelationWarning: {
		message: "Stereo correlation at %.2f, below the warning threshold of %.2f.",
	},
}

var bandLabelsPT = map[string]string{
	"sub":      "subgraves",
	"bass":     "graves",
	"low_mid":  "médios-graves",
	"mid":      "médios",
	"high_mid": "médios-agudos",
	"presence": "presença",
	"air":      "brilho",
}

var bandLabelsEN = map[string]string{
	"sub":      "sub bass",
	"bass":     "bass",
	"low_mid":  "low mids",
	"mid":      "mids",
	"high_mid": "high mids",
	"presence": "presence",
	"air":      "air",
}

// catalogFor resolves the best-matching message catalog for a BCP 47 locale
// string. Unknown locales fall back to Brazilian Portuguese, the product's
// default.
func catalogFor(locale string) (map[Type]template, map[string]string) {
	matcher := language.NewMatcher(supportedLocales)
	_, index := language.MatchStrings(matcher, locale)
	if index == 1 {
		return catalogEN, bandLabelsEN
	}
	return catalogPT, bandLabelsPT
}
