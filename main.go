package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/taskboard/taskboard-be/internal/api"
	"github.com/taskboard/taskboard-be/internal/auth"
	"github.com/taskboard/taskboard-be/internal/config"
	"github.com/taskboard/taskboard-be/internal/logger"
	"github.com/taskboard/taskboard-be/internal/monitoring"
	"github.com/taskboard/taskboard-be/internal/services"
	"github.com/taskboard/taskboard-be/internal/storage"
	mongostore "github.com/taskboard/taskboard-be/internal/storage/mongo"
	sqlitestore "github.com/taskboard/taskboard-be/internal/storage/sqlite"
	"github.com/taskboard/taskboard-be/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Set up the persistence backend selected by configuration
	store, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to initialize storage")
	}
	defer store.Close(context.Background())

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(store)
	authService := services.NewAuthService(store, tokens, eventService)
	taskService := services.NewTaskService(store, eventService, hub)

	// Set up and run the background session reaper
	reaper, err := monitoring.NewReaper(store, cfg.ReaperSchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.ReaperSchedule).Msg("Invalid reaper schedule")
	}
	go reaper.Run()

	// Set up router
	router := api.NewRouter(hub, tokens, authService, taskService, eventService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("backend", cfg.StorageBackend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

// openStore builds the configured storage backend.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case config.BackendMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return mongostore.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return sqlitestore.New(cfg.DatabasePath)
	}
}
