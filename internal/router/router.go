package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studybot-backend/internal/handlers"
	"studybot-backend/internal/middleware"
)

func New(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	infoHandler *handlers.InfoHandler,
	authLimiter *middleware.RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS)

	r.Get("/", infoHandler.Root)
	r.Get("/healthz", infoHandler.Health)

	r.Group(func(r chi.Router) {
		if authLimiter != nil {
			r.Use(authLimiter.Middleware)
		}
		r.Post("/auth", authHandler.Authenticate)
	})

	r.Post("/history", chatHandler.History)
	r.Post("/chat", chatHandler.Chat)

	return r
}
