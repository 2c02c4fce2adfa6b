package llm

import (
	"time"

	"github.com/nikhilbhutani/voicechat/internal/config"
)

// NewFromConfig builds the backend named by cfg.Backend. It returns nil when
// that backend has no credentials; Ollama needs only a URL.
func NewFromConfig(cfg config.LLMConfig, timeout time.Duration) Provider {
	switch cfg.Backend {
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil
		}
		return NewOpenAIProvider(OpenAIConfig{
			APIKey:  cfg.OpenAIKey,
			BaseURL: cfg.OpenAIURL,
			Timeout: timeout,
		})
	case "anthropic":
		if cfg.AnthropicKey == "" {
			return nil
		}
		return NewAnthropicProvider(AnthropicConfig{
			APIKey:  cfg.AnthropicKey,
			Timeout: timeout,
		})
	case "gemini":
		if cfg.GeminiKey == "" {
			return nil
		}
		return NewGeminiProvider(GeminiConfig{
			APIKey:  cfg.GeminiKey,
			BaseURL: cfg.GeminiURL,
			Timeout: timeout,
		})
	case "ollama":
		if cfg.OllamaURL == "" {
			return nil
		}
		return NewOllamaProvider(cfg.OllamaURL, "", timeout)
	default:
		if cfg.GroqKey == "" {
			return nil
		}
		return NewGroqProvider(cfg.GroqKey, cfg.GroqBaseURL, timeout)
	}
}
