package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fablestream/internal/config"
	"fablestream/internal/handlers"
	"fablestream/internal/logger"
	"fablestream/internal/services"
	"fablestream/internal/services/events"
	"fablestream/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting Fablestream API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"llm_provider", cfg.LLMProvider,
		"model_name", cfg.ModelName)

	var llmService services.LLMService
	switch strings.ToLower(cfg.LLMProvider) {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			log.Error("Anthropic API key is required when using anthropic provider")
			os.Exit(1)
		}
		llmService = services.NewAnthropicService(cfg.AnthropicAPIKey, cfg.ModelName, log)
	default:
		log.Error("Invalid LLM provider specified", "provider", cfg.LLMProvider, "supported", []string{"anthropic"})
		os.Exit(1)
	}

	store, err := services.NewRedisStore(cfg.RedisURL, log)
	if err != nil {
		log.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	initCtx, initCancel := context.WithTimeout(context.Background(), time.Minute)
	defer initCancel()
	if err := llmService.InitModel(initCtx, cfg.ModelName); err != nil {
		log.Error("Failed to initialize LLM model", "error", err, "model", cfg.ModelName)
		os.Exit(1)
	}

	var mediaService services.MediaService
	if cfg.MediaAPIKey != "" {
		mediaService = services.NewVeniceMediaService(cfg.MediaAPIKey, cfg.MediaBaseURL)
		log.Info("Media generation enabled", "base_url", cfg.MediaBaseURL)
	} else {
		log.Info("Media generation disabled (no MEDIA_API_KEY)")
	}

	broadcaster := events.NewBroadcaster(store.Client(), log)
	processor := worker.NewTurnProcessor(store, llmService, mediaService, broadcaster, cfg.Settings, log)

	gamesHandler := handlers.NewGamesHandler(store, log)
	turnHandler := handlers.NewTurnHandler(processor, log)

	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, log))
	mux.Handle("/v1/games", gamesHandler)
	mux.Handle("/v1/events/games/", handlers.NewEventsHandler(store.Client(), log))
	mux.HandleFunc("/v1/games/", func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/turn") {
			turnHandler.ServeHTTP(w, r)
			return
		}
		gamesHandler.ServeHTTP(w, r)
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 180 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	<-shutdown

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if err := store.Close(); err != nil {
		log.Error("Storage close failed", "error", err)
	}
}
