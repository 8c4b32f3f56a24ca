package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"visioncoach/internal/config"
	"visioncoach/internal/handlers"
	"visioncoach/internal/logging"
	"visioncoach/internal/middleware"
	"visioncoach/internal/services"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting VisionCoach Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// Load configuration
	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, Environment: %s)", cfg.Port, cfg.Environment)

	// Load the model/tab catalog, with optional YAML override
	catalog, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	log.Printf("📋 Catalog: %d model(s), %d tab(s), default model %s", len(catalog.Models), len(catalog.Tabs), catalog.DefaultModel)

	// Initialize stores and services
	conversations := services.NewConversationStore(cfg.EffectiveDefaultModel(catalog))
	sessions := services.NewSessionStore(conversations, catalog.DefaultTab())
	gate := services.NewAccessGate(sessions, conversations, catalog, cfg.UnlockPassword)
	openrouter := services.NewOpenRouterService(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey)
	metrics := services.InitMetrics(sessions)

	// Test upstream connectivity at startup
	if !openrouter.HasCredential() {
		log.Println("⚠️  OPENROUTER_API_KEY not set - chat turns will fail until it is configured")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if openrouter.TestConnection(ctx) {
			log.Println("✅ OpenRouter connection OK")
		} else {
			log.Println("⚠️  OpenRouter not reachable - continuing, chat turns may fail")
		}
		cancel()
	}

	// Background idle-session sweep
	sweeper, err := services.NewSweeper(sessions, cfg.SessionTimeout)
	if err != nil {
		log.Fatalf("❌ Failed to create session sweeper: %v", err)
	}
	if err := sweeper.Start(); err != nil {
		log.Fatalf("❌ Failed to start session sweeper: %v", err)
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "VisionCoach v1.0",
		ReadTimeout:  120 * time.Second, // matches the upstream client timeout
		WriteTimeout: 300 * time.Second, // streamed turns can run long in comparison mode
		IdleTimeout:  300 * time.Second,
		BodyLimit:    1 * 1024 * 1024, // chat bodies are small JSON
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("visioncoach")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	// CORS configuration with environment-based origins
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept",
		AllowCredentials: cfg.AllowedOrigins != "*",
	}))
	log.Printf("🔒 [SECURITY] CORS allowed origins: %s", cfg.AllowedOrigins)

	// Rate limiting
	rateLimitConfig := middleware.LoadRateLimitConfig()
	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))
	log.Printf("🛡️  [RATE-LIMIT] Global=%d/min, Chat=%d/min", rateLimitConfig.GlobalAPIMax, rateLimitConfig.ChatMax)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(sessions, openrouter, cfg.Environment)
	sessionHandler := handlers.NewSessionHandler(sessions)
	tabsHandler := handlers.NewTabsHandler(sessions, gate, catalog, metrics)
	chatHandler := handlers.NewChatHandler(sessions, conversations, gate, openrouter, catalog, metrics)
	configHandler := handlers.NewConfigHandler(catalog)

	// Routes
	api := app.Group("/api")

	api.Get("/health", healthHandler.Handle)

	api.Post("/session/create", sessionHandler.Create)
	api.Get("/session/:sessionId", sessionHandler.Get)
	api.Put("/session/:sessionId", sessionHandler.Update)
	api.Delete("/session/:sessionId", sessionHandler.Delete)

	api.Get("/tabs/available/:sessionId", tabsHandler.Available)
	api.Post("/tabs/unlock", tabsHandler.Unlock)

	api.Post("/chat/send", middleware.ChatRateLimiter(rateLimitConfig), chatHandler.Send)
	api.Get("/chat/history/:sessionId/:tabId", chatHandler.History)
	api.Delete("/chat/history/:sessionId/:tabId", chatHandler.ClearHistory)
	api.Put("/chat/settings/:sessionId/:tabId", chatHandler.UpdateSettings)

	api.Get("/config/models", configHandler.Models)
	api.Get("/config/app", configHandler.App)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := sweeper.Stop(); err != nil {
			log.Printf("⚠️ Error stopping session sweeper: %v", err)
		}

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	log.Printf("🌐 Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
