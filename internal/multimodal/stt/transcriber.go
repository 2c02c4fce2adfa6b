package stt

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/language"
	"github.com/nikhilbhutani/voicechat/internal/provider"
)

// Fallback transcripts used in degraded mode.
const (
	FallbackUnavailable = "Hello, I sent you a voice message. Please respond appropriately."
	FallbackNoSpeech    = "Sorry, I couldn't understand what you said."
	FallbackFailed      = "I had trouble processing your voice message."
)

// Transcript is the outcome of one transcription. Text is always usable.
type Transcript struct {
	Text       string
	Confidence float64
	Status     provider.Status
	Err        error
}

// Transcriber turns recordings into text and never fails: provider absence
// and errors are replaced by fixed sentences.
type Transcriber struct {
	provider STTProvider
	logger   *zap.Logger
}

// NewTranscriber wraps p. A nil p runs the transcriber in degraded mode.
func NewTranscriber(p STTProvider, logger *zap.Logger) *Transcriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transcriber{provider: p, logger: logger.Named("stt")}
}

func (t *Transcriber) Configured() bool { return t.provider != nil }

func (t *Transcriber) Backend() string {
	if t.provider == nil {
		return ""
	}
	return t.provider.Name()
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, locale string) Transcript {
	if t.provider == nil {
		t.logger.Debug("speech provider not configured, using placeholder transcript")
		return Transcript{Text: FallbackUnavailable, Status: provider.Unavailable}
	}
	if len(audio) == 0 {
		return Transcript{Text: FallbackNoSpeech, Status: provider.Empty}
	}

	start := time.Now()
	resp, err := t.provider.Transcribe(ctx, TranscriptionRequest{
		Audio:            audio,
		Locale:           locale,
		AlternateLocales: language.AlternateLocales(locale),
	})
	if err != nil {
		t.logger.Error("speech-to-text failed",
			zap.String("provider", t.provider.Name()),
			zap.String("locale", locale),
			zap.Error(err),
		)
		return Transcript{Text: FallbackFailed, Status: provider.Failed, Err: err}
	}

	if resp == nil || len(resp.Results) == 0 || len(resp.Results[0].Alternatives) == 0 {
		return Transcript{Text: FallbackNoSpeech, Status: provider.Empty}
	}
	best := resp.Results[0].Alternatives[0]
	text := strings.TrimSpace(best.Transcript)
	if text == "" {
		return Transcript{Text: FallbackNoSpeech, Status: provider.Empty}
	}

	t.logger.Info("speech-to-text",
		zap.String("provider", t.provider.Name()),
		zap.String("locale", locale),
		zap.Float64("confidence", best.Confidence),
		zap.Duration("latency", time.Since(start)),
	)
	return Transcript{Text: text, Confidence: best.Confidence, Status: provider.OK}
}
