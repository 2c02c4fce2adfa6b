package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/apperr"
	"github.com/nikhilbhutani/voicechat/internal/pipeline"
)

type LanguageChecker interface {
	CheckLanguage(ctx context.Context, text, source, target string) pipeline.LanguageCheck
}

type LanguageHandler struct {
	checker LanguageChecker
	logger  *zap.Logger
}

func NewLanguageHandler(c LanguageChecker, logger *zap.Logger) *LanguageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LanguageHandler{checker: c, logger: logger.Named("language")}
}

type LanguageTestRequest struct {
	Text           string `json:"text"`
	SourceLanguage string `json:"source_language" validate:"supported_language"`
	TargetLanguage string `json:"target_language" validate:"supported_language"`
}

type LanguageTestResponse struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	AIResponse     string `json:"ai_response"`
	AudioGenerated bool   `json:"audio_generated"`
	SourceLanguage string `json:"source_language"`
	TargetLanguage string `json:"target_language"`
}

// Test exercises translation, generation and synthesis for a language pair
// without audio input. An empty body uses the defaults.
func (h *LanguageHandler) Test(w http.ResponseWriter, r *http.Request) {
	var req LanguageTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		req.Text = "Hello, how are you?"
	}
	if req.SourceLanguage == "" {
		req.SourceLanguage = "en"
	}
	if req.TargetLanguage == "" {
		req.TargetLanguage = "es"
	}

	if err := validateRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, apperr.MessageOf(err))
		return
	}

	check := h.checker.CheckLanguage(r.Context(), req.Text, req.SourceLanguage, req.TargetLanguage)
	if check.Err != nil {
		status := http.StatusInternalServerError
		if apperr.IsKind(check.Err, apperr.KindValidation) {
			status = http.StatusBadRequest
		}
		h.logger.Error("language check failed", zap.Error(check.Err))
		writeError(w, status, apperr.MessageOf(check.Err))
		return
	}

	writeJSON(w, http.StatusOK, LanguageTestResponse{
		OriginalText:   check.OriginalText,
		TranslatedText: check.TranslatedText,
		AIResponse:     check.AIResponse,
		AudioGenerated: check.AudioGenerated,
		SourceLanguage: check.SourceLanguage,
		TargetLanguage: check.TargetLanguage,
	})
}
