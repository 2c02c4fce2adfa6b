package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/language"
	"github.com/nikhilbhutani/voicechat/internal/pipeline"
)

const defaultLanguage = "en"

// VoicePipeline runs one voice exchange.
type VoicePipeline interface {
	Run(ctx context.Context, audio []byte, language string) pipeline.Result
}

// Capabilities describes which providers were configured at startup.
type Capabilities struct {
	LLMConfigured         bool
	LLMBackend            string
	SpeechConfigured      bool
	TranslationConfigured bool
	SynthesisConfigured   bool
	GoogleCloudConfigured bool
}

type ChatbotHandler struct {
	pipeline VoicePipeline
	caps     Capabilities
	logger   *zap.Logger
}

func NewChatbotHandler(p VoicePipeline, caps Capabilities, logger *zap.Logger) *ChatbotHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatbotHandler{pipeline: p, caps: caps, logger: logger.Named("chatbot")}
}

type ChatbotRequest struct {
	Audio    string `json:"audio" validate:"required"`
	Language string `json:"language" validate:"supported_language"`
}

type ChatbotResponse struct {
	UserText          string `json:"user_text"`
	ResponseText      string `json:"response_text"`
	ResponseAudio     string `json:"response_audio"`
	Language          string `json:"language"`
	WorkflowCompleted bool   `json:"workflow_completed"`
}

type ProbeResponse struct {
	Status                string   `json:"status"`
	Message               string   `json:"message"`
	LLMConfigured         bool     `json:"llm_configured"`
	LLMBackend            string   `json:"llm_backend"`
	SpeechConfigured      bool     `json:"speech_configured"`
	TranslationConfigured bool     `json:"translation_configured"`
	SynthesisConfigured   bool     `json:"synthesis_configured"`
	GoogleCloudConfigured bool     `json:"google_cloud_configured"`
	SupportedLanguages    []string `json:"supported_languages"`
	Features              []string `json:"features"`
}

// Process accepts a base64 recording and answers with text and speech in
// the same language.
func (h *ChatbotHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ChatbotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = defaultLanguage
	}

	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, apperr.MessageOf(err))
		return
	}

	audio, err := decodeAudio(req.Audio)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid audio data: "+err.Error())
		return
	}

	h.logger.Info("processing voice message",
		zap.String("language", req.Language),
		zap.Int("audio_bytes", len(audio)),
	)

	res := h.pipeline.Run(r.Context(), audio, req.Language)
	if res.Failed() {
		h.logger.Warn("voice message ended with an error result",
			zap.String("exchange_id", res.ExchangeID),
			zap.Error(res.Err),
		)
	}

	writeJSON(w, http.StatusOK, ChatbotResponse{
		UserText:          res.UserText,
		ResponseText:      res.ResponseText,
		ResponseAudio:     base64.StdEncoding.EncodeToString(res.ResponseAudio),
		Language:          req.Language,
		WorkflowCompleted: true,
	})
}

// Probe reports which providers are configured.
func (h *ChatbotHandler) Probe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProbeResponse{
		Status:                "OK",
		Message:               "Multilingual Voice Chatbot API is running",
		LLMConfigured:         h.caps.LLMConfigured,
		LLMBackend:            h.caps.LLMBackend,
		SpeechConfigured:      h.caps.SpeechConfigured,
		TranslationConfigured: h.caps.TranslationConfigured,
		SynthesisConfigured:   h.caps.SynthesisConfigured,
		GoogleCloudConfigured: h.caps.GoogleCloudConfigured,
		SupportedLanguages:    language.Supported(),
		Features: []string{
			"Speech-to-Text",
			"Text-to-Speech",
			"Language Translation",
			backendDisplayName(h.caps.LLMBackend) + " AI Integration",
		},
	})
}

var backendNames = map[string]string{
	"groq":      "Groq",
	"openai":    "OpenAI",
	"anthropic": "Anthropic",
	"gemini":    "Gemini",
	"ollama":    "Ollama",
}

func backendDisplayName(backend string) string {
	if name, ok := backendNames[backend]; ok {
		return name
	}
	return "Generative"
}

// decodeAudio accepts plain base64 or a browser data URL.
func decodeAudio(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		if i := strings.Index(encoded, ","); i >= 0 {
			encoded = encoded[i+1:]
		}
	}
	audio, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, err
	}
	if len(audio) == 0 {
		return nil, errors.New("decoded audio is empty")
	}
	return audio, nil
}
