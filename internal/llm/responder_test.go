package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/voicechat/internal/provider"
)

type stubProvider struct {
	resp  *ChatResponse
	err   error
	calls []ChatRequest
}

func (s *stubProvider) Name() string         { return "stub" }
func (s *stubProvider) DefaultModel() string { return "stub-model" }

func (s *stubProvider) ChatCompletion(_ context.Context, req ChatRequest) (*ChatResponse, error) {
	s.calls = append(s.calls, req)
	return s.resp, s.err
}

func TestResponderSendsTemplatedPrompt(t *testing.T) {
	p := &stubProvider{resp: &ChatResponse{Provider: "stub", Model: "stub-model", Content: "  Doing well!  "}}
	r := NewResponder(p, ResponderConfig{Temperature: 0.7}, nil)

	got := r.GenerateReply(context.Background(), "How are you?", "en")

	assert.Equal(t, provider.OK, got.Status)
	assert.Equal(t, "Doing well!", got.Text)
	require.Len(t, p.calls, 1)

	req := p.calls[0]
	assert.Equal(t, "stub-model", req.Model)
	assert.Equal(t, 200, req.MaxTokens)
	assert.InDelta(t, 0.7, req.Temperature, 1e-9)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "user", req.Messages[0].Role)
	assert.Equal(t,
		"You are a helpful AI assistant. Respond naturally and conversationally in English to: How are you?",
		req.Messages[0].Content)
}

func TestResponderConfigOverrides(t *testing.T) {
	p := &stubProvider{resp: &ChatResponse{Content: "ok"}}
	r := NewResponder(p, ResponderConfig{Model: "llama3-70b-8192", MaxTokens: 50, Temperature: 0.2}, nil)
	r.GenerateReply(context.Background(), "hi", "en")

	require.Len(t, p.calls, 1)
	assert.Equal(t, "llama3-70b-8192", p.calls[0].Model)
	assert.Equal(t, 50, p.calls[0].MaxTokens)
	assert.Equal(t, "llama3-70b-8192", r.Model())
}

func TestResponderKeepsZeroTemperature(t *testing.T) {
	p := &stubProvider{resp: &ChatResponse{Content: "ok"}}
	r := NewResponder(p, ResponderConfig{Temperature: 0}, nil)
	r.GenerateReply(context.Background(), "hi", "en")

	require.Len(t, p.calls, 1)
	assert.Zero(t, p.calls[0].Temperature)
}

func TestResponderFallbacks(t *testing.T) {
	got := NewResponder(nil, ResponderConfig{}, nil).GenerateReply(context.Background(), "hi", "en")
	assert.Equal(t, provider.Unavailable, got.Status)
	assert.Equal(t, FallbackUnavailable, got.Text)

	failing := &stubProvider{err: errors.New("rate limited")}
	got = NewResponder(failing, ResponderConfig{}, nil).GenerateReply(context.Background(), "hi", "en")
	assert.Equal(t, provider.Failed, got.Status)
	assert.Equal(t, "I'm sorry, I encountered an error while processing your request: rate limited", got.Text)
	assert.Len(t, failing.calls, 1)

	blank := &stubProvider{resp: &ChatResponse{Content: "   "}}
	got = NewResponder(blank, ResponderConfig{}, nil).GenerateReply(context.Background(), "hi", "en")
	assert.Equal(t, provider.Empty, got.Status)
	assert.Equal(t, FailureReply("empty response"), got.Text)
}

func TestBuildPrompt(t *testing.T) {
	assert.Equal(t,
		"Eres un asistente de IA útil. Responde de forma natural y conversacional en español a: hola",
		BuildPrompt("es", "hola"))
	assert.Equal(t,
		"Vous êtes un assistant IA utile. Répondez de manière naturelle et conversationnelle en français à: salut",
		BuildPrompt("fr", "salut"))
	assert.Equal(t, BuildPrompt("en", "hallo"), BuildPrompt("de", "hallo"))
	assert.Equal(t, BuildPrompt("en", "{text}"), "You are a helpful AI assistant. Respond naturally and conversationally in English to: {text}")
}

func TestCalculateCost(t *testing.T) {
	assert.InDelta(t, 0.00015+0.0006, CalculateCost("gpt-4o-mini", 1000, 1000), 1e-12)
	assert.InDelta(t, 0.0, CalculateCost("unknown-model", 1000, 1000), 1e-12)
	assert.Greater(t, CalculateCost("llama3-8b-8192", 100, 200), 0.0)
}
