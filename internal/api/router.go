package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/api/handlers"
	"github.com/nikhilbhutani/voicechat/internal/api/middleware"
	"github.com/nikhilbhutani/voicechat/internal/config"
)

// Router wires the HTTP surface onto prebuilt handlers.
type Router struct {
	mux      *chi.Mux
	cfg      *config.Config
	logger   *zap.Logger
	chatbot  *handlers.ChatbotHandler
	language *handlers.LanguageHandler
	health   *handlers.HealthHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	chatbot *handlers.ChatbotHandler,
	language *handlers.LanguageHandler,
	health *handlers.HealthHandler,
) *Router {
	return &Router{
		mux:      chi.NewRouter(),
		cfg:      cfg,
		logger:   logger,
		chatbot:  chatbot,
		language: language,
		health:   health,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.Recover(rt.logger))
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	// Health endpoints (no rate limit)
	r.Get("/healthz", rt.health.Healthz)
	r.Get("/readyz", rt.health.Readyz)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(rt.cfg.RateLimit.RequestsPerMinute))

		r.Get("/chatbot", rt.chatbot.Probe)
		r.Post("/chatbot", rt.chatbot.Process)
		r.Post("/test-language", rt.language.Test)
	})

	return r
}
