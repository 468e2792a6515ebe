package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/reflect-backend/internal/config"
	"github.com/heartmarshall/reflect-backend/internal/transport/middleware"
)

// RouterDeps are the handlers and settings the router is built from.
// Limiter may be nil to disable rate limiting.
type RouterDeps struct {
	Chat      *ChatHandler
	Health    *HealthHandler
	Logger    *slog.Logger
	CORS      config.CORSConfig
	Limiter   *middleware.RateLimiter
	ChatLimit int
}

// NewRouter wires the API routes behind the shared middleware stack.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.CORS(deps.CORS),
	)

	r.Get("/healthz", deps.Health.Live)
	r.Get("/readyz", deps.Health.Ready)

	var limit middleware.Middleware
	if deps.Limiter != nil && deps.ChatLimit > 0 {
		limit = deps.Limiter.Limit(deps.ChatLimit)
	}
	r.With(middleware.Chain(limit)).Post("/chat", deps.Chat.Chat)
	r.Get("/conversations/{userID}", deps.Chat.Conversation)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
