package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

type ElevenLabsConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.elevenlabs.io"
	VoiceID string // default: "EXAVITQu4vr4xnSDxMaL"
	Model   string // default: "eleven_multilingual_v2"
	Timeout time.Duration
}

// ElevenLabsTTS uses one configured multilingual voice for every locale.
type ElevenLabsTTS struct {
	cfg    ElevenLabsConfig
	client *resty.Client
}

func NewElevenLabsTTS(cfg ElevenLabsConfig) *ElevenLabsTTS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.VoiceID == "" {
		cfg.VoiceID = "EXAVITQu4vr4xnSDxMaL"
	}
	if cfg.Model == "" {
		cfg.Model = "eleven_multilingual_v2"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &ElevenLabsTTS{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("xi-api-key", cfg.APIKey),
	}
}

func (e *ElevenLabsTTS) Name() string { return "elevenlabs" }

func (e *ElevenLabsTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		SetPathParam("voice", e.cfg.VoiceID).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "audio/mpeg").
		SetBody(map[string]string{
			"text":     req.Input,
			"model_id": e.cfg.Model,
		}).
		Post("/v1/text-to-speech/{voice}")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "elevenlabs.tts", "tts request", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.KindProvider, "elevenlabs.tts",
			fmt.Sprintf("tts failed (status %d): %s", resp.StatusCode(), resp.String()))
	}

	return &SynthesisResult{
		Audio:       resp.Body(),
		ContentType: "audio/mpeg",
	}, nil
}
