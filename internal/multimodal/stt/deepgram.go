package stt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

type DeepgramSTTConfig struct {
	APIKey      string
	BaseURL     string // default: "https://api.deepgram.com"
	Model       string // default: "nova-2"
	ContentType string // default: "audio/webm"
	Timeout     time.Duration
}

// DeepgramSTT posts the raw recording to Deepgram's pre-recorded listen API.
type DeepgramSTT struct {
	cfg    DeepgramSTTConfig
	client *resty.Client
}

func NewDeepgramSTT(cfg DeepgramSTTConfig) *DeepgramSTT {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepgram.com"
	}
	if cfg.Model == "" {
		cfg.Model = "nova-2"
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "audio/webm"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &DeepgramSTT{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Authorization", "Token "+cfg.APIKey),
	}
}

func (d *DeepgramSTT) Name() string { return "deepgram" }

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []Alternative `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (d *DeepgramSTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	var out deepgramResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"model":        d.cfg.Model,
			"smart_format": "true",
			"language":     languageOf(req.Locale),
		}).
		SetHeader("Content-Type", d.cfg.ContentType).
		SetBody(req.Audio).
		SetResult(&out).
		Post("/v1/listen")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "deepgram.listen", "listen request", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.KindProvider, "deepgram.listen",
			fmt.Sprintf("listen failed (status %d): %s", resp.StatusCode(), resp.String()))
	}

	var results []Result
	for _, ch := range out.Results.Channels {
		if len(ch.Alternatives) == 0 || ch.Alternatives[0].Transcript == "" {
			continue
		}
		results = append(results, Result{Alternatives: ch.Alternatives})
	}
	return &TranscriptionResponse{Results: results}, nil
}
