package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nikhilbhutani/voicechat/internal/api"
	"github.com/nikhilbhutani/voicechat/internal/api/handlers"
	"github.com/nikhilbhutani/voicechat/internal/cache"
	"github.com/nikhilbhutani/voicechat/internal/config"
	"github.com/nikhilbhutani/voicechat/internal/database"
	"github.com/nikhilbhutani/voicechat/internal/llm"
	"github.com/nikhilbhutani/voicechat/internal/logging"
	"github.com/nikhilbhutani/voicechat/internal/multimodal/stt"
	"github.com/nikhilbhutani/voicechat/internal/multimodal/tts"
	"github.com/nikhilbhutani/voicechat/internal/pipeline"
	"github.com/nikhilbhutani/voicechat/internal/telemetry"
	"github.com/nikhilbhutani/voicechat/internal/translate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("tracing unavailable", zap.Error(err))
		shutdownTracing = func(context.Context) error { return nil }
	}

	var deps []handlers.Dependency

	// Database connection (optional, readiness only)
	db, err := database.NewPool(ctx, cfg.Database)
	switch {
	case err != nil:
		logger.Warn("database unavailable, running without DB", zap.Error(err))
	case db != nil:
		defer db.Close()
		deps = append(deps, handlers.Dependency{Name: "database", Pinger: db})
	}

	// Redis connection (optional, translation cache)
	var translationCache *cache.Cache
	rdb, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, running without translation cache", zap.Error(err))
	} else {
		defer rdb.Close()
		translationCache = cache.NewCache(rdb)
		deps = append(deps, handlers.Dependency{Name: "redis", Pinger: translationCache})
	}

	timeout := cfg.Server.ProviderTimeout

	transcriber := stt.NewTranscriber(stt.NewFromConfig(cfg.STT, cfg.Google, timeout), logger)

	var translateProvider translate.Provider
	if p := translate.NewFromConfig(cfg.Translate, cfg.Google, timeout); p != nil {
		translateProvider = p
		if translationCache != nil && cfg.Translate.CacheTTL > 0 {
			translateProvider = translate.NewCachedProvider(p, translationCache, cfg.Translate.CacheTTL, logger)
		}
	}
	translator := translate.NewTranslator(translateProvider, logger)

	responder := llm.NewResponder(llm.NewFromConfig(cfg.LLM, timeout), llm.ResponderConfig{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}, logger)

	synthesizer := tts.NewSynthesizer(tts.NewFromConfig(cfg.TTS, cfg.Google, timeout), logger)

	logger.Info("providers configured",
		zap.String("stt", transcriber.Backend()),
		zap.String("translate", translator.Backend()),
		zap.String("llm", responder.Backend()),
		zap.String("llm_model", responder.Model()),
		zap.String("tts", synthesizer.Backend()),
	)

	orch := pipeline.New(transcriber, translator, responder, synthesizer, logger)

	caps := handlers.Capabilities{
		LLMConfigured:         responder.Configured(),
		LLMBackend:            cfg.LLM.Backend,
		SpeechConfigured:      transcriber.Configured(),
		TranslationConfigured: translator.Configured(),
		SynthesisConfigured:   synthesizer.Configured(),
		GoogleCloudConfigured: cfg.Google.APIKey != "",
	}

	router := api.NewRouter(cfg, logger,
		handlers.NewChatbotHandler(orch, caps, logger),
		handlers.NewLanguageHandler(orch, logger),
		handlers.NewHealthHandler(deps...),
	)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting API server", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}
