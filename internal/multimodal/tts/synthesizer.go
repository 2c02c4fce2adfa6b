package tts

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/provider"
)

// Speech is the outcome of one synthesis. Audio is empty whenever Status is
// not OK.
type Speech struct {
	Audio       []byte
	ContentType string
	Voice       Voice
	Status      provider.Status
	Err         error
}

// Synthesizer speaks reply text. It never fails: a missing or failing provider
// yields empty audio.
type Synthesizer struct {
	provider TTSProvider
	logger   *zap.Logger
}

// NewSynthesizer wraps p. A nil p runs the synthesizer in degraded mode.
func NewSynthesizer(p TTSProvider, logger *zap.Logger) *Synthesizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synthesizer{provider: p, logger: logger.Named("tts")}
}

func (s *Synthesizer) Configured() bool { return s.provider != nil }

func (s *Synthesizer) Backend() string {
	if s.provider == nil {
		return ""
	}
	return s.provider.Name()
}

func (s *Synthesizer) Synthesize(ctx context.Context, text, locale string) Speech {
	voice := VoiceFor(locale)
	if s.provider == nil {
		s.logger.Debug("speech synthesis not configured, returning no audio")
		return Speech{Voice: voice, Status: provider.Unavailable}
	}
	if strings.TrimSpace(text) == "" {
		return Speech{Voice: voice, Status: provider.Empty}
	}

	start := time.Now()
	res, err := s.provider.Synthesize(ctx, SynthesisRequest{Input: text, Voice: voice})
	if err != nil {
		s.logger.Error("text-to-speech failed",
			zap.String("provider", s.provider.Name()),
			zap.String("voice", voice.Name),
			zap.Error(err),
		)
		return Speech{Voice: voice, Status: provider.Failed, Err: err}
	}
	if res == nil || len(res.Audio) == 0 {
		return Speech{Voice: voice, Status: provider.Empty}
	}

	s.logger.Info("text-to-speech",
		zap.String("provider", s.provider.Name()),
		zap.String("voice", voice.Name),
		zap.Int("bytes", len(res.Audio)),
		zap.Duration("latency", time.Since(start)),
	)
	return Speech{
		Audio:       res.Audio,
		ContentType: res.ContentType,
		Voice:       voice,
		Status:      provider.OK,
	}
}
