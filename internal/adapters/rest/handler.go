// Package rest is the HTTP adapter: it exposes the game service to the
// browser frontend.
package rest

import (
	"encoding/json"
	"net/http"

	"github.com/yearworm/backend/internal/core/services"
)

// gameCookie carries the session id between requests.
const gameCookie = "yearworm_game"

// Handler manages the HTTP interface for our application.
type Handler struct {
	svc    *services.GameService // Dependency on the Core Service
	router *http.ServeMux        // Standard library router
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.GameService) *Handler {
	h := &Handler{
		svc:    svc,
		router: http.NewServeMux(),
	}

	// Register Routes
	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface.
// It acts as a proxy, passing the request to our internal router.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	// Health Check
	h.router.HandleFunc("GET /health", h.HealthCheck)
	// Game Lifecycle
	h.router.HandleFunc("POST /games", h.StartGame)
	h.router.HandleFunc("GET /game/song", h.RoundSong)
	h.router.HandleFunc("POST /game/guess", h.Guess)
	h.router.HandleFunc("POST /game/end", h.EndGame)
	// Catalog Curation
	h.router.HandleFunc("POST /songs", h.AddSong)
	h.router.HandleFunc("POST /curated/{date}", h.SetCuratedDay)
	// Stats
	h.router.HandleFunc("GET /stats", h.Stats)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok", "message": "Yearworm is live 🎶"})
}
