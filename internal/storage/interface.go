package storage

import (
	"context"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
)

// GameStore is the registry of live games, at most one per room.
// Games are kept in process memory only and do not survive a restart.
type GameStore interface {
	// GetGame returns model.ErrNoActiveGame when the room has no game
	GetGame(ctx context.Context, room model.RoomID) (*model.Game, error)
	SaveGame(ctx context.Context, game *model.Game) error
	DeleteGame(ctx context.Context, room model.RoomID) error
	ListRooms(ctx context.Context) ([]model.RoomID, error)
}

// HistoryStore records summaries of finished rounds
type HistoryStore interface {
	SaveRound(ctx context.Context, round *model.RoundSummary) error
	// GetRound returns model.ErrRoundNotFound for unknown IDs
	GetRound(ctx context.Context, id string) (*model.RoundSummary, error)
	// ListRounds returns the room's most recent rounds, newest first
	ListRounds(ctx context.Context, room model.RoomID, limit int) ([]*model.RoundSummary, error)
	Close() error
}
