package stt

import "context"

// TranscriptionRequest holds the parameters for audio transcription.
type TranscriptionRequest struct {
	Audio            []byte   `json:"-"`
	Locale           string   `json:"locale"`
	AlternateLocales []string `json:"alternate_locales,omitempty"`
}

// Alternative is one recognition hypothesis.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Result is one recognized utterance; Alternatives are ordered best first.
type Result struct {
	Alternatives []Alternative `json:"alternatives"`
}

// TranscriptionResponse holds the transcription result. No Results means
// nothing was recognized.
type TranscriptionResponse struct {
	Results []Result `json:"results"`
}

// STTProvider is the interface for speech-to-text backends.
type STTProvider interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
	Name() string
}

// languageOf turns "es-ES" into "es" for backends that want a bare code.
func languageOf(locale string) string {
	for i := 0; i < len(locale); i++ {
		if locale[i] == '-' || locale[i] == '_' {
			return locale[:i]
		}
	}
	return locale
}
