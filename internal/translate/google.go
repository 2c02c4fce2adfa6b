package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

type GoogleConfig struct {
	APIKey  string
	BaseURL string // default: "https://translation.googleapis.com"
	Timeout time.Duration
}

// Google calls the Cloud Translation v2 REST API.
type Google struct {
	cfg    GoogleConfig
	client *resty.Client
}

func NewGoogle(cfg GoogleConfig) *Google {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://translation.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Google{
		cfg: cfg,
		client: resty.New().
			SetBaseURL(cfg.BaseURL).
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (g *Google) Name() string { return "google-translate" }

type googleTranslateRequest struct {
	Q      string `json:"q"`
	Target string `json:"target"`
	Source string `json:"source,omitempty"`
	Format string `json:"format"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

func (g *Google) Translate(ctx context.Context, req Request) (*Response, error) {
	var out googleTranslateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", g.cfg.APIKey).
		SetBody(googleTranslateRequest{
			Q:      req.Text,
			Target: req.Target,
			Source: req.Source,
			Format: "text",
		}).
		SetResult(&out).
		Post("/language/translate/v2")
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "google.translate", "translate request", err)
	}
	if resp.IsError() {
		return nil, apperr.New(apperr.KindProvider, "google.translate",
			fmt.Sprintf("translate failed (status %d): %s", resp.StatusCode(), resp.String()))
	}
	if len(out.Data.Translations) == 0 {
		return nil, apperr.New(apperr.KindProvider, "google.translate", "no translations in response")
	}

	t := out.Data.Translations[0]
	return &Response{Text: t.TranslatedText, DetectedSource: t.DetectedSourceLanguage}, nil
}
