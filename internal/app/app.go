package app

import (
	"log/slog"

	"vaamtranscribe/internal/adapters/downloader"
	"vaamtranscribe/internal/adapters/gemini"
	"vaamtranscribe/internal/adapters/localstorage"
	"vaamtranscribe/internal/adapters/openaicompat"
	"vaamtranscribe/internal/adapters/vaam"
	"vaamtranscribe/internal/config"
	"vaamtranscribe/internal/core/ports"
	"vaamtranscribe/internal/service"
)

type App struct {
	Orchestrator *service.Orchestrator
}

func New(cfg *config.Config, logger *slog.Logger) *App {
	resolver := vaam.NewClient(cfg.LookupURL, cfg.LookupKey, nil)
	dl := downloader.NewHTTPDownloader(nil)
	storage := localstorage.NewLocalStorage(cfg.TempDir)

	return &App{
		Orchestrator: service.NewOrchestrator(resolver, dl, storage, newTranscriber(cfg, logger), logger),
	}
}

func newTranscriber(cfg *config.Config, logger *slog.Logger) ports.Transcriber {
	switch cfg.Backend {
	case config.BackendOpenAI:
		return openaicompat.NewTranscriber(openaicompat.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.Model,
			Prompt:  cfg.Prompt,
		})
	case config.BackendGemini, "":
	default:
		logger.Warn("unknown backend, using gemini", slog.String("backend", cfg.Backend))
	}
	return gemini.NewTranscriber(gemini.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Prompt:  cfg.Prompt,
		BaseURL: cfg.GeminiBaseURL,
	})
}
