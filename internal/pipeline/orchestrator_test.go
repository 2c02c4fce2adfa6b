package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/llm"
	"github.com/nikhilbhutani/voicechat/internal/multimodal/stt"
	"github.com/nikhilbhutani/voicechat/internal/multimodal/tts"
	"github.com/nikhilbhutani/voicechat/internal/provider"
	"github.com/nikhilbhutani/voicechat/internal/translate"
)

type fakeTranscriber struct {
	text    string
	locales []string
	hook    func()
}

func (f *fakeTranscriber) Transcribe(_ context.Context, _ []byte, locale string) stt.Transcript {
	f.locales = append(f.locales, locale)
	if f.hook != nil {
		f.hook()
	}
	return stt.Transcript{Text: f.text, Status: provider.OK}
}

type translateCall struct {
	Text, Target, Source string
}

type fakeTranslator struct {
	calls []translateCall
}

func (f *fakeTranslator) Translate(_ context.Context, text, target, source string) translate.Translation {
	f.calls = append(f.calls, translateCall{Text: text, Target: target, Source: source})
	return translate.Translation{Text: "<" + target + ">" + text, Status: provider.OK}
}

type replyCall struct {
	Prompt, Language string
}

type fakeResponder struct {
	reply    string
	calls    []replyCall
	panicMsg string
}

func (f *fakeResponder) GenerateReply(_ context.Context, prompt, lang string) llm.Reply {
	f.calls = append(f.calls, replyCall{Prompt: prompt, Language: lang})
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return llm.Reply{Text: f.reply, Provider: "fake", Status: provider.OK}
}

type synthCall struct {
	Text, Locale string
}

type fakeSynthesizer struct {
	calls []synthCall
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text, locale string) tts.Speech {
	f.calls = append(f.calls, synthCall{Text: text, Locale: locale})
	return tts.Speech{Audio: []byte("mp3:" + text), Status: provider.OK}
}

type fakes struct {
	stt *fakeTranscriber
	tr  *fakeTranslator
	llm *fakeResponder
	tts *fakeSynthesizer
}

func newFakes() fakes {
	return fakes{
		stt: &fakeTranscriber{text: "hola"},
		tr:  &fakeTranslator{},
		llm: &fakeResponder{reply: "hi there"},
		tts: &fakeSynthesizer{},
	}
}

func (f fakes) orchestrator(opts ...Option) *Orchestrator {
	return New(f.stt, f.tr, f.llm, f.tts, nil, opts...)
}

func (f fakes) totalCalls() int {
	return len(f.stt.locales) + len(f.tr.calls) + len(f.llm.calls) + len(f.tts.calls)
}

func TestRunUnsupportedLanguage(t *testing.T) {
	f := newFakes()
	res := f.orchestrator().Run(context.Background(), []byte("audio"), "de")

	require.True(t, res.Failed())
	assert.True(t, apperr.IsKind(res.Err, apperr.KindValidation))
	assert.Equal(t, ErrorUserText, res.UserText)
	assert.Equal(t, "Sorry, I encountered an error: Unsupported language: de. Supported: [en es fr]", res.ResponseText)
	assert.Empty(t, res.ResponseAudio)
	assert.Zero(t, f.totalCalls())
}

func TestRunSupportedLanguages(t *testing.T) {
	for _, lang := range []string{"en", "es", "fr"} {
		t.Run(lang, func(t *testing.T) {
			f := newFakes()
			res := f.orchestrator().Run(context.Background(), []byte("audio"), lang)

			require.False(t, res.Failed())
			assert.NotEmpty(t, res.UserText)
			assert.NotEmpty(t, res.ResponseText)
			assert.NotEmpty(t, res.ResponseAudio)
			assert.NotEmpty(t, res.ExchangeID)
			assert.Empty(t, res.Degraded)
		})
	}
}

func TestRunPivotLanguageSkipsTranslation(t *testing.T) {
	f := newFakes()
	f.stt.text = "how are you"

	res := f.orchestrator().Run(context.Background(), []byte("audio"), "en")

	assert.Empty(t, f.tr.calls)
	assert.Equal(t, []string{"en-US"}, f.stt.locales)
	assert.Equal(t, []replyCall{{Prompt: "how are you", Language: "en"}}, f.llm.calls)
	assert.Equal(t, []synthCall{{Text: "hi there", Locale: "en-US"}}, f.tts.calls)
	assert.Equal(t, "how are you", res.UserText)
	assert.Equal(t, "hi there", res.ResponseText)
	assert.Equal(t, []byte("mp3:hi there"), res.ResponseAudio)
}

func TestRunTranslatesThroughPivot(t *testing.T) {
	f := newFakes()
	res := f.orchestrator().Run(context.Background(), []byte("audio"), "es")

	require.Len(t, f.tr.calls, 2)
	assert.Equal(t, translateCall{Text: "hola", Target: "en", Source: "es"}, f.tr.calls[0])
	assert.Equal(t, translateCall{Text: "hi there", Target: "es", Source: "en"}, f.tr.calls[1])

	assert.Equal(t, []string{"es-ES"}, f.stt.locales)
	assert.Equal(t, []replyCall{{Prompt: "<en>hola", Language: "en"}}, f.llm.calls)
	assert.Equal(t, []synthCall{{Text: "<es>hi there", Locale: "es-ES"}}, f.tts.calls)

	assert.Equal(t, "hola", res.UserText)
	assert.Equal(t, "<es>hi there", res.ResponseText)
}

func TestRunTranscriberUnavailable(t *testing.T) {
	f := newFakes()
	o := New(stt.NewTranscriber(nil, nil), f.tr, f.llm, f.tts, nil)

	res := o.Run(context.Background(), []byte("audio"), "en")

	require.False(t, res.Failed())
	assert.Equal(t, stt.FallbackUnavailable, res.UserText)
	assert.Len(t, f.llm.calls, 1)
	assert.Len(t, f.tts.calls, 1)
	assert.Equal(t, []string{"transcribe:unavailable"}, res.Degraded)
}

func TestRunSynthesizerUnavailable(t *testing.T) {
	f := newFakes()
	o := New(f.stt, f.tr, f.llm, tts.NewSynthesizer(nil, nil), nil)

	res := o.Run(context.Background(), []byte("audio"), "fr")

	require.False(t, res.Failed())
	assert.Empty(t, res.ResponseAudio)
	assert.Equal(t, "<fr>hi there", res.ResponseText)
	assert.Equal(t, []string{"synthesize:unavailable"}, res.Degraded)
}

func TestRunResponderUnavailableStillSpeaks(t *testing.T) {
	f := newFakes()
	o := New(f.stt, f.tr, llm.NewResponder(nil, llm.ResponderConfig{}, nil), f.tts, nil)

	res := o.Run(context.Background(), []byte("audio"), "es")

	require.Len(t, f.tr.calls, 2)
	assert.Equal(t, llm.FallbackUnavailable, f.tr.calls[1].Text)
	assert.Equal(t, "<es>"+llm.FallbackUnavailable, res.ResponseText)
	assert.NotEmpty(t, res.ResponseAudio)
	assert.Contains(t, res.Degraded, "generate:unavailable")
}

func TestRunRecoversPanic(t *testing.T) {
	f := newFakes()
	f.llm.panicMsg = "nil map write"

	var res Result
	require.NotPanics(t, func() {
		res = f.orchestrator().Run(context.Background(), []byte("audio"), "en")
	})

	require.True(t, res.Failed())
	assert.Equal(t, ErrorUserText, res.UserText)
	assert.Equal(t, "Sorry, I encountered an error: nil map write", res.ResponseText)
	assert.Empty(t, res.ResponseAudio)
	assert.Empty(t, f.tts.calls)
}

func TestRunCancelledContext(t *testing.T) {
	f := newFakes()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := f.orchestrator().Run(ctx, []byte("audio"), "es")

	require.True(t, res.Failed())
	assert.Zero(t, f.totalCalls())
	assert.Equal(t, ErrorUserText, res.UserText)
	assert.True(t, strings.HasPrefix(res.ResponseText, "Sorry, I encountered an error: request cancelled"))
}

func TestRunCancelledMidway(t *testing.T) {
	f := newFakes()
	ctx, cancel := context.WithCancel(context.Background())
	f.stt.hook = cancel

	res := f.orchestrator().Run(ctx, []byte("audio"), "es")

	require.True(t, res.Failed())
	assert.Len(t, f.stt.locales, 1)
	assert.Empty(t, f.tr.calls)
	assert.Empty(t, f.llm.calls)
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestRunSpans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))

	f := newFakes()
	f.orchestrator(WithTracerProvider(tp)).Run(context.Background(), []byte("audio"), "fr")

	ended := sr.Ended()
	names := make([]string, len(ended))
	for i, s := range ended {
		names[i] = s.Name()
	}
	assert.Equal(t, []string{"transcribe", "translate", "generate", "translate", "synthesize", "pipeline.run"}, names)

	root := ended[len(ended)-1]
	for _, s := range ended[:len(ended)-1] {
		assert.Equal(t, root.SpanContext().SpanID(), s.Parent().SpanID(), s.Name())
	}
}

func TestCheckLanguage(t *testing.T) {
	f := newFakes()
	f.llm.reply = "¡Muy bien!"

	check := f.orchestrator().CheckLanguage(context.Background(), "Hello, how are you?", "en", "es")

	require.NoError(t, check.Err)
	assert.Equal(t, "Hello, how are you?", check.OriginalText)
	assert.Equal(t, "<es>Hello, how are you?", check.TranslatedText)
	assert.Equal(t, "¡Muy bien!", check.AIResponse)
	assert.True(t, check.AudioGenerated)
	assert.Equal(t, []translateCall{{Text: "Hello, how are you?", Target: "es", Source: "en"}}, f.tr.calls)
	assert.Equal(t, []replyCall{{Prompt: "<es>Hello, how are you?", Language: "es"}}, f.llm.calls)
	assert.Equal(t, []synthCall{{Text: "¡Muy bien!", Locale: "es-ES"}}, f.tts.calls)
}

func TestCheckLanguageRejectsUnsupported(t *testing.T) {
	f := newFakes()
	check := f.orchestrator().CheckLanguage(context.Background(), "hi", "en", "it")

	require.Error(t, check.Err)
	assert.True(t, apperr.IsKind(check.Err, apperr.KindValidation))
	assert.Zero(t, f.totalCalls())
}

func TestCheckLanguageWithoutSynthesis(t *testing.T) {
	f := newFakes()
	o := New(f.stt, f.tr, f.llm, tts.NewSynthesizer(nil, nil), nil)

	check := o.CheckLanguage(context.Background(), "Bonjour", "fr", "en")

	require.NoError(t, check.Err)
	assert.False(t, check.AudioGenerated)
	assert.Equal(t, []string{"synthesize:unavailable"}, check.Degraded)
}
