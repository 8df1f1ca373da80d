package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clanchief-backend/internal/config"
	"clanchief-backend/internal/handlers"
	"clanchief-backend/internal/metrics"
	"clanchief-backend/internal/router"
	"clanchief-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Clan Chief Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Completion Client ────
	var llm handlers.Completer
	switch cfg.Provider {
	case config.ProviderGemini:
		geminiService, err := services.NewGeminiService(context.Background(), services.GeminiConfig{
			APIKey:      cfg.GeminiAPIKey,
			Model:       cfg.GeminiModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.UpstreamTimeout,
		})
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer geminiService.Close()
		llm = geminiService
		log.Printf("✓ Gemini client initialized (model %s)", cfg.GeminiModel)
	default:
		llm = services.NewOpenAIService(services.OpenAIConfig{
			APIKey:      cfg.OpenAIAPIKey,
			APIURL:      cfg.OpenAIAPIURL,
			Model:       cfg.OpenAIModel,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
			Timeout:     cfg.UpstreamTimeout,
		})
		log.Printf("✓ OpenAI client initialized (model %s)", cfg.OpenAIModel)
	}

	// ──── Step 3: Initialize Metrics & Handlers ────
	collector := metrics.New(cfg.MetricsNamespace)
	chatHandler := handlers.NewChatHandler(llm, collector)

	// ──── Step 4: Start HTTP Server ────
	r := router.New(chatHandler, collector, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Clan Chief Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  Chat:    http://localhost:%s/api/chat", cfg.Port)
	log.Printf("  Metrics: http://localhost:%s/metrics", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
