package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/identity"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/transport/sse"
)

// EventsHandler serves the outbound message streams
type EventsHandler struct {
	hubs *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(hubs *sse.HubManager) *EventsHandler {
	return &EventsHandler{hubs: hubs}
}

// Room handles GET /api/v1/rooms/{room}/events
func (h *EventsHandler) Room(w http.ResponseWriter, r *http.Request) {
	room := model.RoomID(mux.Vars(r)["room"])
	sse.ServeSSE(w, r, h.hubs.GetOrCreateHub(sse.RoomChannel(room)))
}

// Player handles GET /api/v1/players/{player}/events.
// Direct messages for the player are only deliverable while this stream is open.
func (h *EventsHandler) Player(w http.ResponseWriter, r *http.Request) {
	player := identity.Normalize(mux.Vars(r)["player"])
	if player == "" {
		WriteError(w, NewInvalidRequestError("player is required"))
		return
	}
	sse.ServeSSE(w, r, h.hubs.GetOrCreateHub(sse.DirectChannel(player)))
}
