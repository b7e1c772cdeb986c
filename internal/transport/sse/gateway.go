package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/clock"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/command"
)

// EventJSON is the wire form of an outbound chat event
type EventJSON struct {
	Type      model.EventType  `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Room      model.RoomID     `json:"room,omitempty"`
	PlayerID  model.PlayerID   `json:"player_id,omitempty"`
	Text      string           `json:"text"`
	Mentions  []model.PlayerID `json:"mentions,omitempty"`
}

// Gateway delivers chat messages to SSE subscribers. Room messages go to
// everyone watching the room; direct messages only reach a player who has
// their own stream open.
type Gateway struct {
	hubs   *HubManager
	clock  clock.Clock
	logger *slog.Logger
}

// NewGateway creates a new Gateway
func NewGateway(hubs *HubManager, clock clock.Clock, logger *slog.Logger) *Gateway {
	return &Gateway{
		hubs:   hubs,
		clock:  clock,
		logger: logger.With(slog.String("component", "sse-gateway")),
	}
}

// SendToRoom publishes a message to the room. A room nobody is watching is
// not an error.
func (g *Gateway) SendToRoom(ctx context.Context, room model.RoomID, text string, mentions []model.PlayerID) error {
	event := model.Event{
		Type:      model.EventRoomMessage,
		Timestamp: g.clock.Now(),
		Room:      room,
		Payload:   model.MessagePayload{Text: text, Mentions: mentions},
	}

	hub := g.hubs.GetHub(RoomChannel(room))
	if hub == nil {
		g.logger.Debug("room message without listeners", slog.String("room", string(room)))
		return nil
	}
	return g.publish(hub, event)
}

// SendDirect publishes a private message. It fails with
// model.ErrDirectMessageFailed when the player has no open stream.
func (g *Gateway) SendDirect(ctx context.Context, player model.PlayerID, text string) error {
	hub := g.hubs.GetHub(DirectChannel(player))
	if hub == nil || hub.ClientCount() == 0 {
		return fmt.Errorf("%w: %s has no open stream", model.ErrDirectMessageFailed, player)
	}

	event := model.Event{
		Type:      model.EventDirectMessage,
		Timestamp: g.clock.Now(),
		PlayerID:  player,
		Payload:   model.MessagePayload{Text: text},
	}
	return g.publish(hub, event)
}

func (g *Gateway) publish(hub *Hub, event model.Event) error {
	data, err := EncodeEvent(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	hub.BroadcastEvent(string(event.Type), string(data))
	return nil
}

// EncodeEvent renders an event as single-line JSON
func EncodeEvent(event model.Event) ([]byte, error) {
	return json.Marshal(EventJSON{
		Type:      event.Type,
		Timestamp: event.Timestamp,
		Room:      event.Room,
		PlayerID:  event.PlayerID,
		Text:      event.Payload.Text,
		Mentions:  event.Payload.Mentions,
	})
}

// Ensure Gateway implements Messenger
var _ command.Messenger = (*Gateway)(nil)
