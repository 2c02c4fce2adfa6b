package translate

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/provider"
)

// Translation is the outcome of one translation. Text is the original input
// whenever Status is not OK.
type Translation struct {
	Text           string
	DetectedSource string
	Status         provider.Status
	Err            error
}

type Translator struct {
	provider Provider
	logger   *zap.Logger
}

// NewTranslator wraps p. A nil p passes every text through untranslated.
func NewTranslator(p Provider, logger *zap.Logger) *Translator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Translator{provider: p, logger: logger.Named("translate")}
}

func (t *Translator) Configured() bool { return t.provider != nil }

func (t *Translator) Backend() string {
	if t.provider == nil {
		return ""
	}
	return t.provider.Name()
}

// Translate converts text into target. An empty source asks the backend to
// detect it.
func (t *Translator) Translate(ctx context.Context, text, target, source string) Translation {
	if strings.TrimSpace(text) == "" {
		return Translation{Text: text, Status: provider.Empty}
	}
	if source != "" && source == target {
		return Translation{Text: text, DetectedSource: source, Status: provider.OK}
	}
	if t.provider == nil {
		t.logger.Debug("translation not configured, passing text through",
			zap.String("source", source),
			zap.String("target", target),
		)
		return Translation{Text: text, Status: provider.Unavailable}
	}

	start := time.Now()
	resp, err := t.provider.Translate(ctx, Request{Text: text, Target: target, Source: source})
	if err != nil {
		t.logger.Error("translation failed",
			zap.String("provider", t.provider.Name()),
			zap.String("source", source),
			zap.String("target", target),
			zap.Error(err),
		)
		return Translation{Text: text, Status: provider.Failed, Err: err}
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return Translation{Text: text, Status: provider.Empty}
	}

	t.logger.Info("translated",
		zap.String("provider", t.provider.Name()),
		zap.String("source", source),
		zap.String("target", target),
		zap.Duration("latency", time.Since(start)),
	)
	return Translation{Text: resp.Text, DetectedSource: resp.DetectedSource, Status: provider.OK}
}
