package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"clanchief-backend/internal/handlers"
	"clanchief-backend/internal/metrics"
	"clanchief-backend/internal/middleware"
)

func New(
	chatHandler *handlers.ChatHandler,
	collector *metrics.Collector,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Handle("/metrics", collector.Handler())

	// ──── Chat Route (public) ────
	r.Group(func(r chi.Router) {
		r.Use(middleware.CORS(frontendURL))
		// Every method reaches the handler; it answers non-POST with 405 itself.
		r.HandleFunc("/api/chat", chatHandler.Chat)
	})

	return r
}
