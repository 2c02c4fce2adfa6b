package tts

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

type GoogleTTSConfig struct {
	APIKey  string
	BaseURL string // default: "https://texttospeech.googleapis.com"
	Timeout time.Duration
}

// GoogleTTS synthesizes MP3 audio with the Cloud Text-to-Speech REST API.
type GoogleTTS struct {
	cfg    GoogleTTSConfig
	client *resty.Client
}

func NewGoogleTTS(cfg GoogleTTSConfig) *GoogleTTS {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://texttospeech.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GoogleTTS{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (g *GoogleTTS) Name() string { return "google-tts" }

type googleSynthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name,omitempty"`
		SsmlGender   string `json:"ssmlGender,omitempty"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string `json:"audioEncoding"`
	} `json:"audioConfig"`
}

type googleSynthesizeResponse struct {
	AudioContent []byte `json:"audioContent"` // base64 on the wire
}

func (g *GoogleTTS) Synthesize(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	var body googleSynthesizeRequest
	body.Input.Text = req.Input
	body.Voice.LanguageCode = req.Voice.Locale
	body.Voice.Name = req.Voice.Name
	body.Voice.SsmlGender = string(req.Voice.Gender)
	body.AudioConfig.AudioEncoding = "MP3"

	var out googleSynthesizeResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post("/v1/text:synthesize")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "google.synthesize", "synthesis request", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.KindProvider, "google.synthesize",
			fmt.Sprintf("synthesis failed (status %d): %s", resp.StatusCode(), resp.String()))
	}

	return &SynthesisResult{
		Audio:       out.AudioContent,
		ContentType: "audio/mpeg",
	}, nil
}
