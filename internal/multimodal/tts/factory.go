package tts

import (
	"time"

	"github.com/nikhilbhutani/voicechat/internal/config"
)

// NewFromConfig builds the configured backend, or returns nil when the
// backend's credentials are missing.
func NewFromConfig(cfg config.TTSConfig, google config.GoogleConfig, timeout time.Duration) TTSProvider {
	switch cfg.Backend {
	case "openai":
		if cfg.OpenAIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil
		}
		return NewOpenAITTS(OpenAITTSConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: timeout,
		})
	case "elevenlabs":
		if cfg.ElevenLabsKey == "" {
			return nil
		}
		return NewElevenLabsTTS(ElevenLabsConfig{
			APIKey:  cfg.ElevenLabsKey,
			BaseURL: cfg.ElevenLabsBaseURL,
			VoiceID: cfg.ElevenLabsVoiceID,
			Model:   cfg.ElevenLabsModel,
			Timeout: timeout,
		})
	default:
		if google.APIKey == "" {
			return nil
		}
		return NewGoogleTTS(GoogleTTSConfig{
			APIKey:  google.APIKey,
			BaseURL: google.TTSBaseURL,
			Timeout: timeout,
		})
	}
}
