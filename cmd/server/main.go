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

	"studybot-backend/internal/config"
	"studybot-backend/internal/database"
	"studybot-backend/internal/handlers"
	"studybot-backend/internal/middleware"
	"studybot-backend/internal/repository"
	"studybot-backend/internal/router"
	"studybot-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting StudyBot Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	conversationRepo := repository.NewConversationRepo(pool)

	// ──── Step 5: Initialize Model Gateway ────
	// A missing API key is not fatal: /chat reports the missing
	// configuration instead.
	var gateway services.ModelGateway
	switch cfg.ModelProvider {
	case "gemini":
		if cfg.GeminiAPIKey != "" {
			gemini, err := services.NewGeminiGateway(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SystemPrompt)
			if err != nil {
				log.Fatalf("✗ Gemini client initialization failed: %v", err)
			}
			defer gemini.Close()
			gateway = gemini
		}
	default:
		if cfg.GroqAPIKey != "" {
			gateway = services.NewGroqGateway(cfg.GroqAPIKey, cfg.GroqModel, cfg.SystemPrompt)
		}
	}
	if gateway == nil {
		log.Printf("⚠ No API key set for model provider %q; /chat is disabled until one is configured", cfg.ModelProvider)
	} else {
		log.Printf("✓ Model gateway ready (%s)", cfg.ModelProvider)
	}

	// ──── Initialize Services ────
	authService := services.NewAuthService(userRepo)
	chatService := services.NewChatService(
		authService,
		conversationRepo,
		gateway,
		time.Duration(cfg.GenerateTimeoutSecs)*time.Second,
	)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	chatHandler := handlers.NewChatHandler(chatService)
	infoHandler := handlers.NewInfoHandler(cfg.Env)

	authLimiter := middleware.NewRateLimiter(redisClient, cfg.AuthRequestsPerMin, time.Minute, "auth_limit")

	// ──── Step 6: Start HTTP Server ────
	r := router.New(authHandler, chatHandler, infoHandler, authLimiter)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
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

	log.Printf("✓ StudyBot Backend ready on http://localhost:%s", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
