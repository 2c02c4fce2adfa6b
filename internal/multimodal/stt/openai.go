package stt

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
)

// OpenAISTTConfig holds configuration for the OpenAI STT backend.
type OpenAISTTConfig struct {
	APIKey  string
	BaseURL string // default: "https://api.openai.com/v1"
	Model   string // default: "whisper-1"
	Timeout time.Duration
}

// OpenAISTT transcribes audio using OpenAI's Whisper API (or a compatible
// endpoint such as a local whisper.cpp server).
type OpenAISTT struct {
	cfg    OpenAISTTConfig
	client *openai.Client
}

// NewOpenAISTT creates an OpenAISTT with sensible defaults applied.
func NewOpenAISTT(cfg OpenAISTTConfig) *OpenAISTT {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 300 * time.Second
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAISTT{
		cfg:    cfg,
		client: openai.NewClientWithConfig(clientCfg),
	}
}

func (o *OpenAISTT) Name() string { return "openai-whisper" }

// Transcribe uploads the recording. Whisper has no alternate-language hints, so
// only the primary locale's language is sent.
func (o *OpenAISTT) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.cfg.Model,
		FilePath: "voice.webm",
		Reader:   bytes.NewReader(req.Audio),
		Language: languageOf(req.Locale),
		Format:   openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindProvider, "openai.transcribe", "transcription request", err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return &TranscriptionResponse{}, nil
	}
	return &TranscriptionResponse{
		Results: []Result{{Alternatives: []Alternative{{Transcript: text}}}},
	}, nil
}
