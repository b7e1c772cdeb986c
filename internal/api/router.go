package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/handler"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api/middleware"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/clock"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/game"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/transport/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	Messages       handler.MessageHandler
	GameController game.ControllerInterface
	GameStore      storage.GameStore
	HubManager     *sse.HubManager
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.Messages, cfg.GameController, cfg.Clock)
	eventsHandler := handler.NewEventsHandler(cfg.HubManager)
	healthHandler := handler.NewHealthHandler(cfg.GameStore)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Room routes
	rooms := api.PathPrefix("/rooms/{room}").Subrouter()
	rooms.HandleFunc("/messages", roomHandler.PostMessage).Methods(http.MethodPost)
	rooms.HandleFunc("/events", eventsHandler.Room).Methods(http.MethodGet)
	rooms.HandleFunc("/game", roomHandler.GetGame).Methods(http.MethodGet)
	rooms.HandleFunc("/history", roomHandler.GetHistory).Methods(http.MethodGet)

	// Private message streams
	api.HandleFunc("/players/{player}/events", eventsHandler.Player).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	return r
}
