package stt

import (
	"time"

	"github.com/nikhilbhutani/voicechat/internal/config"
)

// NewFromConfig builds the configured backend, or returns nil when the
// backend's credentials are missing.
func NewFromConfig(cfg config.STTConfig, google config.GoogleConfig, timeout time.Duration) STTProvider {
	switch cfg.Backend {
	case "openai":
		if cfg.OpenAIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil
		}
		return NewOpenAISTT(OpenAISTTConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: timeout,
		})
	case "deepgram":
		if cfg.DeepgramKey == "" {
			return nil
		}
		return NewDeepgramSTT(DeepgramSTTConfig{
			APIKey:      cfg.DeepgramKey,
			BaseURL:     cfg.DeepgramBaseURL,
			Model:       cfg.DeepgramModel,
			ContentType: ContentTypeFor(cfg.Encoding),
			Timeout:     timeout,
		})
	default:
		if google.APIKey == "" {
			return nil
		}
		return NewGoogleSTT(GoogleSTTConfig{
			APIKey:          google.APIKey,
			BaseURL:         google.SpeechBaseURL,
			Encoding:        cfg.Encoding,
			SampleRateHertz: cfg.SampleRateHertz,
			Timeout:         timeout,
		})
	}
}

// ContentTypeFor maps a Google encoding name to the MIME type other backends expect.
func ContentTypeFor(encoding string) string {
	switch encoding {
	case "OGG_OPUS":
		return "audio/ogg"
	case "LINEAR16":
		return "audio/wav"
	case "MP3":
		return "audio/mpeg"
	case "FLAC":
		return "audio/flac"
	default:
		return "audio/webm"
	}
}
