package tts

type Gender string

const (
	GenderNeutral Gender = "NEUTRAL"
	GenderFemale  Gender = "FEMALE"
	GenderMale    Gender = "MALE"
)

// DefaultLocale's voice is used for locales missing from the table.
const DefaultLocale = "en-US"

// Voice selects a speaker for one locale.
type Voice struct {
	Locale string `json:"locale"`
	Name   string `json:"name"`
	Gender Gender `json:"gender"`
}

var voices = map[string]Voice{
	"en-US": {Locale: "en-US", Name: "en-US-Wavenet-D", Gender: GenderNeutral},
	"es-ES": {Locale: "es-ES", Name: "es-ES-Wavenet-B", Gender: GenderFemale},
	"fr-FR": {Locale: "fr-FR", Name: "fr-FR-Wavenet-C", Gender: GenderFemale},
}

// VoiceFor returns the voice for locale, or the default locale's voice.
func VoiceFor(locale string) Voice {
	if v, ok := voices[locale]; ok {
		return v
	}
	return voices[DefaultLocale]
}
