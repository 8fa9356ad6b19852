package api

import (
	"net/http"

	"github.com/REDDITARUN/helix/internal/api/handler"
	customMiddleware "github.com/REDDITARUN/helix/internal/api/middleware"
	"github.com/REDDITARUN/helix/internal/chat"
	"github.com/REDDITARUN/helix/internal/config"
	"github.com/REDDITARUN/helix/internal/llm"
	"github.com/REDDITARUN/helix/internal/rag"
	"github.com/REDDITARUN/helix/internal/repository/postgres"
	"github.com/REDDITARUN/helix/internal/repository/redis"
	"github.com/REDDITARUN/helix/internal/sequence"
	"github.com/REDDITARUN/helix/internal/vector"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, db *postgres.DB, redisClient *redis.Client, provider llm.Provider, index vector.Index) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize repositories
	sessionRepo := postgres.NewSessionRepository(db.Pool)
	turnRepo := postgres.NewTurnRepository(db.Pool)
	sequenceRepo := postgres.NewSequenceRepository(db.Pool)

	// Initialize rate limiter
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	// Initialize services
	chatService := chat.NewService(sessionRepo, turnRepo, provider)
	sequenceService := sequence.NewService(sessionRepo, sequenceRepo, provider, chatService)
	ragService := rag.NewService(sessionRepo, turnRepo, chatService, provider, index, cfg.RAG)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, ragService)
	sequenceHandler := handler.NewSequenceHandler(sequenceService)
	documentHandler := handler.NewDocumentHandler(ragService, cfg.Upload.MaxSizeMB)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))

		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			// Chat routes
			r.Route("/chat", func(r chi.Router) {
				r.Post("/", chatHandler.Start)

				r.Route("/{sessionID}", func(r chi.Router) {
					r.Post("/message", chatHandler.PostMessage)
					r.Post("/rag", chatHandler.Augment)
					r.Get("/history", chatHandler.History)
				})
			})

			// Sequence routes
			r.Route("/sequences", func(r chi.Router) {
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", sequenceHandler.List)
					r.Post("/generate", sequenceHandler.Generate)
					r.Post("/modify", sequenceHandler.Modify)
				})

				r.Put("/item/{sequenceID}", sequenceHandler.UpdateItem)
			})

			// Document ingestion
			r.Post("/documents/upload", documentHandler.Upload)
		})
	})

	return r
}
