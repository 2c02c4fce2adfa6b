package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Debug     bool
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
	Google    GoogleConfig
	STT       STTConfig
	TTS       TTSConfig
	Translate TranslateConfig
	LLM       LLMConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ProviderTimeout time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TelemetryConfig struct {
	ServiceName  string
	OTLPEndpoint string // empty disables export
	Insecure     bool
	SampleRate   float64
}

// GoogleConfig is shared by the Google speech, translation and synthesis backends.
type GoogleConfig struct {
	APIKey           string
	SpeechBaseURL    string
	TranslateBaseURL string
	TTSBaseURL       string
}

type STTConfig struct {
	Backend         string // "google", "openai" or "deepgram"
	Encoding        string
	SampleRateHertz int
	OpenAIKey       string
	OpenAIBaseURL   string
	OpenAIModel     string
	DeepgramKey     string
	DeepgramBaseURL string
	DeepgramModel   string
}

type TTSConfig struct {
	Backend           string // "google", "openai" or "elevenlabs"
	OpenAIKey         string
	OpenAIBaseURL     string
	OpenAIModel       string
	ElevenLabsKey     string
	ElevenLabsBaseURL string
	ElevenLabsVoiceID string
	ElevenLabsModel   string
}

type TranslateConfig struct {
	Backend  string // "google"
	CacheTTL time.Duration
}

type LLMConfig struct {
	Backend      string // "groq", "openai", "anthropic", "gemini" or "ollama"
	Model        string // empty selects the backend default
	MaxTokens    int
	Temperature  float64
	GroqKey      string
	GroqBaseURL  string
	OpenAIKey    string
	OpenAIURL    string
	AnthropicKey string
	GeminiKey    string
	GeminiURL    string
	OllamaURL    string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetInt("SERVER_PORT"),
			ProviderTimeout: v.GetDuration("PROVIDER_TIMEOUT"),
		},
		Debug: v.GetBool("DEBUG"),
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("RATE_LIMIT_RPM"),
		},
		Database: DatabaseConfig{
			URL:      v.GetString("DATABASE_URL"),
			MaxConns: v.GetInt("DB_MAX_CONNS"),
			MinConns: v.GetInt("DB_MIN_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:  v.GetString("OTEL_SERVICE_NAME"),
			OTLPEndpoint: v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:     v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
			SampleRate:   v.GetFloat64("OTEL_SAMPLE_RATE"),
		},
		Google: GoogleConfig{
			APIKey:           v.GetString("GOOGLE_API_KEY"),
			SpeechBaseURL:    v.GetString("GOOGLE_SPEECH_BASE_URL"),
			TranslateBaseURL: v.GetString("GOOGLE_TRANSLATE_BASE_URL"),
			TTSBaseURL:       v.GetString("GOOGLE_TTS_BASE_URL"),
		},
		STT: STTConfig{
			Backend:         strings.ToLower(v.GetString("STT_BACKEND")),
			Encoding:        v.GetString("STT_ENCODING"),
			SampleRateHertz: v.GetInt("STT_SAMPLE_RATE_HERTZ"),
			OpenAIKey:       v.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL:   v.GetString("STT_OPENAI_BASE_URL"),
			OpenAIModel:     v.GetString("STT_OPENAI_MODEL"),
			DeepgramKey:     v.GetString("DEEPGRAM_API_KEY"),
			DeepgramBaseURL: v.GetString("DEEPGRAM_BASE_URL"),
			DeepgramModel:   v.GetString("DEEPGRAM_MODEL"),
		},
		TTS: TTSConfig{
			Backend:           strings.ToLower(v.GetString("TTS_BACKEND")),
			OpenAIKey:         v.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL:     v.GetString("TTS_OPENAI_BASE_URL"),
			OpenAIModel:       v.GetString("TTS_OPENAI_MODEL"),
			ElevenLabsKey:     v.GetString("ELEVENLABS_API_KEY"),
			ElevenLabsBaseURL: v.GetString("ELEVENLABS_BASE_URL"),
			ElevenLabsVoiceID: v.GetString("ELEVENLABS_VOICE_ID"),
			ElevenLabsModel:   v.GetString("ELEVENLABS_MODEL"),
		},
		Translate: TranslateConfig{
			Backend:  strings.ToLower(v.GetString("TRANSLATE_BACKEND")),
			CacheTTL: v.GetDuration("TRANSLATION_CACHE_TTL"),
		},
		LLM: LLMConfig{
			Backend:      strings.ToLower(v.GetString("RESPONDER_BACKEND")),
			Model:        v.GetString("RESPONDER_MODEL"),
			MaxTokens:    v.GetInt("RESPONDER_MAX_TOKENS"),
			Temperature:  v.GetFloat64("RESPONDER_TEMPERATURE"),
			GroqKey:      v.GetString("GROQ_API_KEY"),
			GroqBaseURL:  v.GetString("GROQ_BASE_URL"),
			OpenAIKey:    v.GetString("OPENAI_API_KEY"),
			OpenAIURL:    v.GetString("OPENAI_BASE_URL"),
			AnthropicKey: v.GetString("ANTHROPIC_API_KEY"),
			GeminiKey:    v.GetString("GEMINI_API_KEY"),
			GeminiURL:    v.GetString("GEMINI_BASE_URL"),
			OllamaURL:    v.GetString("OLLAMA_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8000)
	v.SetDefault("PROVIDER_TIMEOUT", 30*time.Second)
	v.SetDefault("DEBUG", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", strings.Join(defaultOrigins, ","))
	v.SetDefault("RATE_LIMIT_RPM", 120)

	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MIN_CONNS", 0)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("OTEL_SERVICE_NAME", "voicechat")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", true)
	v.SetDefault("OTEL_SAMPLE_RATE", 1.0)

	v.SetDefault("STT_BACKEND", "google")
	v.SetDefault("STT_ENCODING", "WEBM_OPUS")
	v.SetDefault("STT_SAMPLE_RATE_HERTZ", 48000)
	v.SetDefault("DEEPGRAM_MODEL", "nova-2")

	v.SetDefault("TTS_BACKEND", "google")
	v.SetDefault("ELEVENLABS_VOICE_ID", "EXAVITQu4vr4xnSDxMaL")
	v.SetDefault("ELEVENLABS_MODEL", "eleven_multilingual_v2")

	v.SetDefault("TRANSLATE_BACKEND", "google")
	v.SetDefault("TRANSLATION_CACHE_TTL", 24*time.Hour)

	v.SetDefault("RESPONDER_BACKEND", "groq")
	v.SetDefault("RESPONDER_MAX_TOKENS", 200)
	v.SetDefault("RESPONDER_TEMPERATURE", 0.7)
	v.SetDefault("OLLAMA_URL", "http://localhost:11434")
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) Validate() error {
	var problems []string
	if !oneOf(c.STT.Backend, "google", "openai", "deepgram") {
		problems = append(problems, fmt.Sprintf("STT_BACKEND %q", c.STT.Backend))
	}
	if !oneOf(c.TTS.Backend, "google", "openai", "elevenlabs") {
		problems = append(problems, fmt.Sprintf("TTS_BACKEND %q", c.TTS.Backend))
	}
	if !oneOf(c.Translate.Backend, "google") {
		problems = append(problems, fmt.Sprintf("TRANSLATE_BACKEND %q", c.Translate.Backend))
	}
	if !oneOf(c.LLM.Backend, "groq", "openai", "anthropic", "gemini", "ollama") {
		problems = append(problems, fmt.Sprintf("RESPONDER_BACKEND %q", c.LLM.Backend))
	}
	if c.LLM.MaxTokens <= 0 {
		problems = append(problems, "RESPONDER_MAX_TOKENS must be positive")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		problems = append(problems, "RESPONDER_TEMPERATURE must be between 0 and 2")
	}
	if c.Server.ProviderTimeout <= 0 {
		problems = append(problems, "PROVIDER_TIMEOUT must be positive")
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		problems = append(problems, "RATE_LIMIT_RPM must be positive")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
