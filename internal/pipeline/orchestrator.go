// Package pipeline runs one voice exchange: transcription, translation to the
// pivot language, reply generation, translation back and speech synthesis.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/language"
	"github.com/nikhilbhutani/voicechat/internal/llm"
	"github.com/nikhilbhutani/voicechat/internal/multimodal/stt"
	"github.com/nikhilbhutani/voicechat/internal/multimodal/tts"
	"github.com/nikhilbhutani/voicechat/internal/provider"
	"github.com/nikhilbhutani/voicechat/internal/translate"
)

const tracerName = "github.com/nikhilbhutani/voicechat/internal/pipeline"

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, locale string) stt.Transcript
}

type Translator interface {
	Translate(ctx context.Context, text, target, source string) translate.Translation
}

type Responder interface {
	GenerateReply(ctx context.Context, prompt, language string) llm.Reply
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, locale string) tts.Speech
}

type Option func(*Orchestrator)

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Orchestrator) { o.tracer = tp.Tracer(tracerName) }
}

// Orchestrator sequences the four wrappers. It holds no per-request state and
// is safe for concurrent use.
type Orchestrator struct {
	transcriber Transcriber
	translator  Translator
	responder   Responder
	synthesizer Synthesizer
	logger      *zap.Logger
	tracer      trace.Tracer
}

func New(t Transcriber, tr Translator, r Responder, s Synthesizer, logger *zap.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		transcriber: t,
		translator:  tr,
		responder:   r,
		synthesizer: s,
		logger:      logger.Named("pipeline"),
		tracer:      otel.GetTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// UnsupportedLanguage is the validation error for a code outside the table.
func UnsupportedLanguage(code string) error {
	return apperr.New(apperr.KindValidation, "language.lookup",
		fmt.Sprintf("Unsupported language: %s. Supported: %v", code, language.Supported()))
}

// Run processes one recording spoken in lang. It never panics and never
// returns an error; failures surface as an error Result.
func (o *Orchestrator) Run(ctx context.Context, audio []byte, lang string) (res Result) {
	exchangeID := uuid.NewString()
	ctx, span := o.tracer.Start(ctx, "pipeline.run", trace.WithAttributes(
		attribute.String("exchange.id", exchangeID),
		attribute.String("language", lang),
		attribute.Int("audio.bytes", len(audio)),
	))
	defer span.End()

	log := o.logger.With(zap.String("exchange_id", exchangeID), zap.String("language", lang))

	defer func() {
		if r := recover(); r != nil {
			err := apperr.New(apperr.KindPipeline, "pipeline.run", fmt.Sprint(r))
			log.Error("pipeline panicked", zap.Any("panic", r), zap.Stack("stack"))
			res = o.fail(span, exchangeID, err)
		}
	}()

	profile, ok := language.Lookup(lang)
	if !ok {
		return o.fail(span, exchangeID, UnsupportedLanguage(lang))
	}
	if err := ctx.Err(); err != nil {
		return o.fail(span, exchangeID, cancelled(err))
	}

	res.ExchangeID = exchangeID

	// 1. speech to text
	stepCtx, stepSpan := o.startStep(ctx, "transcribe", attribute.String("locale", profile.SpeechLocale))
	transcript := o.transcriber.Transcribe(stepCtx, audio, profile.SpeechLocale)
	endStep(stepSpan, transcript.Status, transcript.Err)
	res.noteStatus("transcribe", transcript.Status)
	res.UserText = transcript.Text
	log.Info("transcribed", zap.Stringer("status", transcript.Status), zap.Int("chars", len(transcript.Text)))
	if err := ctx.Err(); err != nil {
		return o.fail(span, exchangeID, cancelled(err))
	}

	// 2. into the pivot language
	pivotText := transcript.Text
	if !profile.IsPivot() {
		stepCtx, stepSpan = o.startStep(ctx, "translate",
			attribute.String("source", profile.TranslateCode),
			attribute.String("target", language.Pivot),
		)
		in := o.translator.Translate(stepCtx, transcript.Text, language.Pivot, profile.TranslateCode)
		endStep(stepSpan, in.Status, in.Err)
		res.noteStatus("translate_to_pivot", in.Status)
		pivotText = in.Text
		log.Debug("translated to pivot", zap.Stringer("status", in.Status))
		if err := ctx.Err(); err != nil {
			return o.fail(span, exchangeID, cancelled(err))
		}
	}

	// 3. reply
	stepCtx, stepSpan = o.startStep(ctx, "generate")
	reply := o.responder.GenerateReply(stepCtx, pivotText, language.Pivot)
	stepSpan.SetAttributes(attribute.String("llm.provider", reply.Provider), attribute.String("llm.model", reply.Model))
	endStep(stepSpan, reply.Status, reply.Err)
	res.noteStatus("generate", reply.Status)
	log.Info("reply generated", zap.Stringer("status", reply.Status), zap.String("provider", reply.Provider))
	if err := ctx.Err(); err != nil {
		return o.fail(span, exchangeID, cancelled(err))
	}

	// 4. back to the user's language
	replyText := reply.Text
	if !profile.IsPivot() {
		stepCtx, stepSpan = o.startStep(ctx, "translate",
			attribute.String("source", language.Pivot),
			attribute.String("target", profile.TranslateCode),
		)
		out := o.translator.Translate(stepCtx, reply.Text, profile.TranslateCode, language.Pivot)
		endStep(stepSpan, out.Status, out.Err)
		res.noteStatus("translate_from_pivot", out.Status)
		replyText = out.Text
		log.Debug("translated reply", zap.Stringer("status", out.Status))
		if err := ctx.Err(); err != nil {
			return o.fail(span, exchangeID, cancelled(err))
		}
	}
	res.ResponseText = replyText

	// 5. text to speech
	stepCtx, stepSpan = o.startStep(ctx, "synthesize", attribute.String("locale", profile.SpeechLocale))
	speech := o.synthesizer.Synthesize(stepCtx, replyText, profile.SpeechLocale)
	stepSpan.SetAttributes(attribute.Int("audio.bytes", len(speech.Audio)))
	endStep(stepSpan, speech.Status, speech.Err)
	res.noteStatus("synthesize", speech.Status)
	res.ResponseAudio = speech.Audio
	if err := ctx.Err(); err != nil {
		return o.fail(span, exchangeID, cancelled(err))
	}

	span.SetAttributes(attribute.StringSlice("degraded", res.Degraded))
	log.Info("exchange completed",
		zap.Strings("degraded", res.Degraded),
		zap.Int("audio_bytes", len(res.ResponseAudio)),
	)
	return res
}

// CheckLanguage runs text through translation, generation and synthesis
// without any audio input.
func (o *Orchestrator) CheckLanguage(ctx context.Context, text, source, target string) (check LanguageCheck) {
	check = LanguageCheck{OriginalText: text, SourceLanguage: source, TargetLanguage: target}

	ctx, span := o.tracer.Start(ctx, "pipeline.check_language", trace.WithAttributes(
		attribute.String("source", source),
		attribute.String("target", target),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := apperr.New(apperr.KindPipeline, "pipeline.check_language", fmt.Sprint(r))
			o.logger.Error("language check panicked", zap.Any("panic", r), zap.Stack("stack"))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			check.Err = err
		}
	}()

	src, ok := language.Lookup(source)
	if !ok {
		check.Err = UnsupportedLanguage(source)
		return check
	}
	dst, ok := language.Lookup(target)
	if !ok {
		check.Err = UnsupportedLanguage(target)
		return check
	}

	stepCtx, stepSpan := o.startStep(ctx, "translate",
		attribute.String("source", src.TranslateCode),
		attribute.String("target", dst.TranslateCode),
	)
	tr := o.translator.Translate(stepCtx, text, dst.TranslateCode, src.TranslateCode)
	endStep(stepSpan, tr.Status, tr.Err)
	check.noteStatus("translate", tr.Status)
	check.TranslatedText = tr.Text

	stepCtx, stepSpan = o.startStep(ctx, "generate")
	reply := o.responder.GenerateReply(stepCtx, tr.Text, dst.Code)
	endStep(stepSpan, reply.Status, reply.Err)
	check.noteStatus("generate", reply.Status)
	check.AIResponse = reply.Text

	stepCtx, stepSpan = o.startStep(ctx, "synthesize", attribute.String("locale", dst.SpeechLocale))
	speech := o.synthesizer.Synthesize(stepCtx, reply.Text, dst.SpeechLocale)
	endStep(stepSpan, speech.Status, speech.Err)
	check.noteStatus("synthesize", speech.Status)
	check.AudioGenerated = len(speech.Audio) > 0

	o.logger.Info("language check completed",
		zap.String("source", source),
		zap.String("target", target),
		zap.Strings("degraded", check.Degraded),
	)
	return check
}

func (o *Orchestrator) startStep(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return o.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endStep(span trace.Span, st provider.Status, err error) {
	span.SetAttributes(attribute.String("provider.status", st.String()))
	if err != nil {
		span.RecordError(err)
	}
	span.End()
}

func (o *Orchestrator) fail(span trace.Span, exchangeID string, err error) Result {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if !apperr.IsKind(err, apperr.KindValidation) {
		o.logger.Error("exchange failed", zap.String("exchange_id", exchangeID), zap.Error(err))
	}
	return errorResult(exchangeID, err)
}

func cancelled(err error) error {
	return apperr.Wrap(apperr.KindPipeline, "pipeline.run", "request cancelled", err)
}
