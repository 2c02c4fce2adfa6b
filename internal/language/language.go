// Package language holds the static routing table for supported user
// languages.
package language

import "sort"

// Pivot is the language sent to the generative provider.
const Pivot = "en"

// Profile maps a two-letter code to the codes each provider expects.
type Profile struct {
	Code          string
	SpeechLocale  string
	TranslateCode string
	Name          string
}

var profiles = map[string]Profile{
	"en": {Code: "en", SpeechLocale: "en-US", TranslateCode: "en", Name: "English"},
	"es": {Code: "es", SpeechLocale: "es-ES", TranslateCode: "es", Name: "Spanish"},
	"fr": {Code: "fr", SpeechLocale: "fr-FR", TranslateCode: "fr", Name: "French"},
}

var supported = func() []string {
	codes := make([]string, 0, len(profiles))
	for c := range profiles {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}()

// Lookup returns the profile for code.
func Lookup(code string) (Profile, bool) {
	p, ok := profiles[code]
	return p, ok
}

// IsSupported reports whether code is a supported language code.
func IsSupported(code string) bool {
	_, ok := profiles[code]
	return ok
}

// Supported returns the supported codes in sorted order. The slice is a copy.
func Supported() []string {
	out := make([]string, len(supported))
	copy(out, supported)
	return out
}

// Locales returns every supported speech locale, ordered by language code.
func Locales() []string {
	out := make([]string, 0, len(supported))
	for _, c := range supported {
		out = append(out, profiles[c].SpeechLocale)
	}
	return out
}

// AlternateLocales returns the supported speech locales other than locale.
func AlternateLocales(locale string) []string {
	var out []string
	for _, l := range Locales() {
		if l != locale {
			out = append(out, l)
		}
	}
	return out
}

// IsPivot reports whether code needs no translation around generation.
func (p Profile) IsPivot() bool {
	return p.Code == Pivot
}
