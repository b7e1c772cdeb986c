package handler

import (
	"net/http"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/response"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
)

// HealthHandler reports service health
type HealthHandler struct {
	games storage.GameStore
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(games storage.GameStore) *HealthHandler {
	return &HealthHandler{games: games}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.games.ListRooms(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Rooms: len(rooms)})
}
