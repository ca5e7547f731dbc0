package router

import (
	"net/http"

	"github.com/cx-tal-miterani/flight-quote/internal/handlers"
	"github.com/cx-tal-miterani/flight-quote/internal/websocket"
	"github.com/gorilla/mux"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(h *handlers.Handler, hub *websocket.Hub, allowedOrigin string) *mux.Router {
	r := mux.NewRouter()

	// CORS middleware
	r.Use(corsMiddleware(allowedOrigin))

	// API routes
	api := r.PathPrefix("/api").Subrouter()

	// Quotes
	api.HandleFunc("/templates", h.GetTemplates).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/quotes", h.CreateQuote).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/quotes/{id}", h.GetQuote).Methods(http.MethodGet, http.MethodOptions)

	// Airports
	api.HandleFunc("/airports", h.GetAirports).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/airports", h.AddAirport).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/airports/suggest", h.SuggestAirports).Methods(http.MethodGet, http.MethodOptions)

	// WebSocket for autocomplete sessions
	api.HandleFunc("/suggest/ws", hub.HandleWebSocket)

	// Health check
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)

	return r
}

func corsMiddleware(allowedOrigin string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
