package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STT_BACKEND", "")
	t.Setenv("RESPONDER_BACKEND", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "google", cfg.STT.Backend)
	assert.Equal(t, "google", cfg.TTS.Backend)
	assert.Equal(t, "groq", cfg.LLM.Backend)
	assert.Equal(t, 200, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, "WEBM_OPUS", cfg.STT.Encoding)
	assert.Equal(t, 48000, cfg.STT.SampleRateHertz)
	assert.Equal(t, 30*time.Second, cfg.Server.ProviderTimeout)
	assert.Equal(t, defaultOrigins, cfg.CORS.AllowedOrigins)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DEBUG", "true")
	t.Setenv("RESPONDER_BACKEND", "Anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("TRANSLATION_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "anthropic", cfg.LLM.Backend)
	assert.Equal(t, "sk-ant", cfg.LLM.AnthropicKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.Translate.CacheTTL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("TTS_BACKEND", "piper")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TTS_BACKEND")
}

func TestLoadKeepsZeroTemperature(t *testing.T) {
	t.Setenv("RESPONDER_TEMPERATURE", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.LLM.Temperature)
}

func TestLoadRejectsNegativeTemperature(t *testing.T) {
	t.Setenv("RESPONDER_TEMPERATURE", "-1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESPONDER_TEMPERATURE")
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{ProviderTimeout: time.Second},
		RateLimit: RateLimitConfig{RequestsPerMinute: 10},
		STT:       STTConfig{Backend: "deepgram"},
		TTS:       TTSConfig{Backend: "elevenlabs"},
		Translate: TranslateConfig{Backend: "google"},
		LLM:       LLMConfig{Backend: "ollama", MaxTokens: 0},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESPONDER_MAX_TOKENS")

	cfg.LLM.MaxTokens = 50
	assert.NoError(t, cfg.Validate())
}
