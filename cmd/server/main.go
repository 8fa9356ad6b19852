package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/REDDITARUN/helix/internal/api"
	"github.com/REDDITARUN/helix/internal/config"
	"github.com/REDDITARUN/helix/internal/llm/gemini"
	"github.com/REDDITARUN/helix/internal/repository/postgres"
	"github.com/REDDITARUN/helix/internal/repository/redis"
	"github.com/REDDITARUN/helix/internal/vector/pinecone"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file - try multiple locations
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Setup logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting Helix recruiting assistant server")

	// Initialize database
	db, err := postgres.NewDB(context.Background(), cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize Redis
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Initialize Gemini provider
	provider := gemini.NewProvider(cfg.Gemini)
	if !provider.IsConfigured() {
		log.Fatal().Msg("Gemini provider is not configured")
	}

	// Initialize vector index and verify the embedding dimension matches.
	// A mismatch would silently produce useless similarity scores, so the
	// server refuses to start.
	index := pinecone.NewClient(cfg.Pinecone)
	dim, err := index.Dimension(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to describe Pinecone index")
	}
	if dim != cfg.Gemini.EmbeddingDim {
		log.Fatal().
			Int("index_dimension", dim).
			Int("embedding_dimension", cfg.Gemini.EmbeddingDim).
			Msg("Pinecone index dimension does not match embedding model dimension")
	}
	log.Info().Str("index", cfg.Pinecone.Index).Int("dimension", dim).Msg("Connected to Pinecone index")

	// Initialize router
	router := api.NewRouter(cfg, db, redisClient, provider, index)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Msgf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
