package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/voicechat/internal/provider"
)

type stubProvider struct {
	resp  *Response
	err   error
	calls []Request
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Translate(_ context.Context, req Request) (*Response, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &Response{Text: "[" + req.Target + "] " + req.Text}, nil
}

func TestTranslatorTranslates(t *testing.T) {
	p := &stubProvider{}
	tr := NewTranslator(p, nil)

	got := tr.Translate(context.Background(), "Hola", "en", "es")

	assert.Equal(t, provider.OK, got.Status)
	assert.Equal(t, "[en] Hola", got.Text)
	require.Len(t, p.calls, 1)
	assert.Equal(t, Request{Text: "Hola", Target: "en", Source: "es"}, p.calls[0])
}

func TestTranslatorSkipsProvider(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		target string
		source string
		status provider.Status
	}{
		{"empty text", "", "en", "es", provider.Empty},
		{"blank text", "  ", "en", "es", provider.Empty},
		{"same language", "Bonjour", "fr", "fr", provider.OK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &stubProvider{}
			got := NewTranslator(p, nil).Translate(context.Background(), tt.text, tt.target, tt.source)

			assert.Equal(t, tt.text, got.Text)
			assert.Equal(t, tt.status, got.Status)
			assert.Empty(t, p.calls)
		})
	}
}

func TestTranslatorFallsBackToInput(t *testing.T) {
	failing := &stubProvider{err: errors.New("quota exceeded")}
	got := NewTranslator(failing, nil).Translate(context.Background(), "Hola", "en", "es")
	assert.Equal(t, "Hola", got.Text)
	assert.Equal(t, provider.Failed, got.Status)
	assert.EqualError(t, got.Err, "quota exceeded")

	got = NewTranslator(nil, nil).Translate(context.Background(), "Hola", "en", "es")
	assert.Equal(t, "Hola", got.Text)
	assert.Equal(t, provider.Unavailable, got.Status)

	blank := &stubProvider{resp: &Response{Text: ""}}
	got = NewTranslator(blank, nil).Translate(context.Background(), "Hola", "en", "es")
	assert.Equal(t, "Hola", got.Text)
	assert.Equal(t, provider.Empty, got.Status)
}

func TestTranslatorAutoDetect(t *testing.T) {
	p := &stubProvider{resp: &Response{Text: "Hello", DetectedSource: "es"}}
	got := NewTranslator(p, nil).Translate(context.Background(), "Hola", "en", "")

	assert.Equal(t, "es", got.DetectedSource)
	require.Len(t, p.calls, 1)
	assert.Empty(t, p.calls[0].Source)
}
