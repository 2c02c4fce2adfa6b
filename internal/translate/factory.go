package translate

import (
	"time"

	"github.com/nikhilbhutani/voicechat/internal/config"
)

// NewFromConfig returns nil when the backend has no credentials. Google is
// the only backend config.Validate accepts.
func NewFromConfig(_ config.TranslateConfig, google config.GoogleConfig, timeout time.Duration) Provider {
	if google.APIKey == "" {
		return nil
	}
	return NewGoogle(GoogleConfig{
		APIKey:  google.APIKey,
		BaseURL: google.TranslateBaseURL,
		Timeout: timeout,
	})
}
