package llm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/provider"
)

const (
	// FallbackUnavailable is the reply when no backend is configured.
	FallbackUnavailable = "AI response service not available. Please check your API key configuration."
	failurePrefix       = "I'm sorry, I encountered an error while processing your request: "
)

// FailureReply is the reply text used when generation fails with cause.
func FailureReply(cause string) string {
	return failurePrefix + cause
}

// Reply is the outcome of one generation. Text is always speakable.
type Reply struct {
	Text     string
	Provider string
	Model    string
	Status   provider.Status
	Err      error
}

type ResponderConfig struct {
	Model       string // empty selects the backend default
	MaxTokens   int
	Temperature float64 // sent as is; zero selects greedy decoding
}

// Responder asks a chat backend for a short conversational reply. A single
// attempt is made per call.
type Responder struct {
	provider Provider
	cfg      ResponderConfig
	logger   *zap.Logger
}

// NewResponder wraps p. A nil p answers every prompt with FallbackUnavailable.
func NewResponder(p Provider, cfg ResponderConfig, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 200
	}
	if cfg.Model == "" && p != nil {
		cfg.Model = p.DefaultModel()
	}
	return &Responder{provider: p, cfg: cfg, logger: logger.Named("llm")}
}

func (r *Responder) Configured() bool { return r.provider != nil }

func (r *Responder) Backend() string {
	if r.provider == nil {
		return ""
	}
	return r.provider.Name()
}

func (r *Responder) Model() string { return r.cfg.Model }

// GenerateReply answers prompt in language.
func (r *Responder) GenerateReply(ctx context.Context, prompt, language string) Reply {
	if r.provider == nil {
		r.logger.Debug("no chat backend configured, using placeholder reply")
		return Reply{Text: FallbackUnavailable, Status: provider.Unavailable}
	}

	resp, err := r.provider.ChatCompletion(ctx, ChatRequest{
		Model:       r.cfg.Model,
		Messages:    userMessage(BuildPrompt(language, prompt)),
		Temperature: r.cfg.Temperature,
		MaxTokens:   r.cfg.MaxTokens,
	})
	if err != nil {
		r.logger.Error("chat completion failed",
			zap.String("provider", r.provider.Name()),
			zap.String("model", r.cfg.Model),
			zap.Error(err),
		)
		return Reply{
			Text:     FailureReply(apperr.MessageOf(err)),
			Provider: r.provider.Name(),
			Model:    r.cfg.Model,
			Status:   provider.Failed,
			Err:      err,
		}
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		r.logger.Warn("chat completion returned no content",
			zap.String("provider", r.provider.Name()),
			zap.String("model", resp.Model),
		)
		return Reply{
			Text:     FailureReply("empty response"),
			Provider: r.provider.Name(),
			Model:    resp.Model,
			Status:   provider.Empty,
		}
	}

	r.logger.Info("chat completion",
		zap.String("provider", resp.Provider),
		zap.String("model", resp.Model),
		zap.Int("input_tokens", resp.InputTokens),
		zap.Int("output_tokens", resp.OutputTokens),
		zap.Float64("cost_usd", resp.CostUSD),
		zap.Int64("latency_ms", resp.LatencyMs),
	)
	return Reply{
		Text:     text,
		Provider: resp.Provider,
		Model:    resp.Model,
		Status:   provider.OK,
	}
}
