package stt

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

// GoogleSTTConfig holds configuration for the Google Cloud Speech-to-Text backend.
type GoogleSTTConfig struct {
	APIKey          string
	BaseURL         string // default: "https://speech.googleapis.com"
	Encoding        string // default: "WEBM_OPUS"
	SampleRateHertz int    // default: 48000
	Timeout         time.Duration
}

// GoogleSTT calls the speech:recognize REST method. The v1p1beta1 surface is
// used because it accepts alternative language codes.
type GoogleSTT struct {
	cfg    GoogleSTTConfig
	client *resty.Client
}

func NewGoogleSTT(cfg GoogleSTTConfig) *GoogleSTT {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://speech.googleapis.com"
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "WEBM_OPUS"
	}
	if cfg.SampleRateHertz == 0 {
		cfg.SampleRateHertz = 48000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GoogleSTT{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (g *GoogleSTT) Name() string { return "google-speech" }

type googleRecognizeRequest struct {
	Config googleRecognitionConfig `json:"config"`
	Audio  googleRecognitionAudio  `json:"audio"`
}

type googleRecognitionConfig struct {
	Encoding                   string   `json:"encoding"`
	SampleRateHertz            int      `json:"sampleRateHertz"`
	LanguageCode               string   `json:"languageCode"`
	AlternativeLanguageCodes   []string `json:"alternativeLanguageCodes,omitempty"`
	EnableAutomaticPunctuation bool     `json:"enableAutomaticPunctuation"`
}

type googleRecognitionAudio struct {
	Content string `json:"content"`
}

type googleRecognizeResponse struct {
	Results []Result `json:"results"`
}

func (g *GoogleSTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	body := googleRecognizeRequest{
		Config: googleRecognitionConfig{
			Encoding:                   g.cfg.Encoding,
			SampleRateHertz:            g.cfg.SampleRateHertz,
			LanguageCode:               req.Locale,
			AlternativeLanguageCodes:   req.AlternateLocales,
			EnableAutomaticPunctuation: true,
		},
		Audio: googleRecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(req.Audio),
		},
	}

	var out googleRecognizeResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.cfg.APIKey).
		SetBody(body).
		SetResult(&out).
		Post("/v1p1beta1/speech:recognize")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "google.recognize", "recognition request", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.KindProvider, "google.recognize",
			fmt.Sprintf("recognition failed (status %d): %s", resp.StatusCode(), resp.String()))
	}

	return &TranscriptionResponse{Results: out.Results}, nil
}
