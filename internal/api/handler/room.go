package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/request"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/response"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/clock"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/game"
)

const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// MessageHandler consumes inbound chat messages
type MessageHandler interface {
	Handle(ctx context.Context, msg model.InboundMessage) (bool, error)
}

// RoomHandler handles room endpoints
type RoomHandler struct {
	messages MessageHandler
	games    game.ControllerInterface
	clock    clock.Clock
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(messages MessageHandler, games game.ControllerInterface, clock clock.Clock) *RoomHandler {
	return &RoomHandler{
		messages: messages,
		games:    games,
		clock:    clock,
	}
}

// PostMessage handles POST /api/v1/rooms/{room}/messages
func (h *RoomHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	room := model.RoomID(mux.Vars(r)["room"])

	var req request.MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Sender == "" && req.Participant == "" && !req.FromMe {
		WriteError(w, NewInvalidRequestError("sender or participant is required"))
		return
	}

	handled, err := h.messages.Handle(r.Context(), model.InboundMessage{
		Room:        room,
		Sender:      req.Sender,
		Participant: req.Participant,
		FromMe:      req.FromMe,
		PushName:    req.PushName,
		Text:        req.Text,
		ReceivedAt:  h.clock.Now(),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResult{Handled: handled})
}

// GetGame handles GET /api/v1/rooms/{room}/game
func (h *RoomHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	room := model.RoomID(mux.Vars(r)["room"])

	report, err := h.games.Status(r.Context(), room)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameStatusFromModel(report))
}

// GetHistory handles GET /api/v1/rooms/{room}/history?limit=N
func (h *RoomHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	room := model.RoomID(mux.Vars(r)["room"])

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	rounds, err := h.games.History(r.Context(), room, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryFromModel(room, rounds))
}
