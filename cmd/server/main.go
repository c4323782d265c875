package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kalenwallin/clipsync/internal/config"
	"github.com/kalenwallin/clipsync/internal/handlers"
	custommw "github.com/kalenwallin/clipsync/internal/middleware"
	"github.com/kalenwallin/clipsync/internal/observability"
	"github.com/kalenwallin/clipsync/internal/repository"
	"github.com/kalenwallin/clipsync/internal/services"
)

const (
	serviceName    = "clipsync-relay"
	serviceVersion = "1.0.0"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize telemetry
	telemetry, err := observability.Initialize(context.Background(),
		observability.NewConfig(serviceName, serviceVersion))
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}

	// Initialize database
	var pairingRepo repository.PairingRepo
	var clipboardRepo repository.ClipboardRepo
	database := "sqlite"
	if cfg.UsePostgres() {
		database = "postgres"
		log.Println("Using PostgreSQL database")
		pgdb, err := repository.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize PostgreSQL database: %v", err)
		}
		defer pgdb.Close()
		pairingRepo = repository.NewPairingRepository(pgdb)
		clipboardRepo = repository.NewClipboardRepository(pgdb)
	} else {
		log.Println("Using SQLite database")
		sqdb, err := repository.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite database: %v", err)
		}
		defer sqdb.Close()
		pairingRepo = repository.NewPairingRepository(sqdb)
		clipboardRepo = repository.NewClipboardRepository(sqdb)
	}

	// Initialize services
	pairingService := services.NewPairingService(pairingRepo)
	clipboardService := services.NewClipboardService(
		pairingRepo,
		clipboardRepo,
		cfg.Clipboard.MaxContentBytes,
		cfg.Clipboard.DefaultHistoryLimit,
		cfg.Clipboard.MaxHistoryLimit,
	)

	hub := services.NewWebSocketHub()
	go hub.Run()

	// Initialize handlers
	pairingHandler := handlers.NewPairingHandler(pairingService, hub)
	clipboardHandler := handlers.NewClipboardHandler(clipboardService, hub)
	websocketHandler := handlers.NewWebSocketHandler(hub)
	healthHandler := handlers.NewHealthHandler(serviceName, database)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.TracingMiddleware(serviceName))
	r.Use(custommw.APIKeyAuth(cfg.Security.APIKey, cfg.Security.APIKeyHeader))

	// Routes
	r.Get("/health", healthHandler.HealthCheck)
	r.Get("/api/health", healthHandler.HealthCheck)
	r.Get("/ws", websocketHandler.HandleConnection)

	r.Route("/api/pairings", func(r chi.Router) {
		r.Post("/", pairingHandler.Create)
		r.Get("/watch", pairingHandler.Watch)
		r.Get("/by-mac/{macDeviceId}", pairingHandler.GetByMacID)
		r.Get("/{id}", pairingHandler.GetByID)
		r.Get("/{id}/exists", pairingHandler.Exists)
		r.Delete("/{id}", pairingHandler.Remove)
	})

	r.Route("/api/clipboard/{pairingId}/items", func(r chi.Router) {
		r.Post("/", clipboardHandler.Send)
		r.Get("/", clipboardHandler.GetHistory)
		r.Get("/latest", clipboardHandler.GetLatest)
		r.Delete("/", clipboardHandler.Clear)
	})

	// Create server
	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("ClipSync relay server starting on %s", cfg.ServerAddress)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(ctx); err != nil {
			log.Printf("Warning: telemetry shutdown failed: %v", err)
		}
	}

	log.Println("Server stopped")
}
