package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
)

// Storage is an in-memory implementation of both storage interfaces.
// Games and rounds are copied on the way in and out so callers never share state
// with the registry.
type Storage struct {
	mu sync.RWMutex

	games  map[model.RoomID]*model.Game
	rounds map[string]*model.RoundSummary
	order  []string // Round IDs in insertion order
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:  make(map[model.RoomID]*model.Game),
		rounds: make(map[string]*model.RoundSummary),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.GameStore    = (*Storage)(nil)
	_ storage.HistoryStore = (*Storage)(nil)
)

// Game operations

func (s *Storage) GetGame(ctx context.Context, room model.RoomID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[room]
	if !ok {
		return nil, model.ErrNoActiveGame
	}
	return game.Clone(), nil
}

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[game.Room] = game.Clone()
	return nil
}

func (s *Storage) DeleteGame(ctx context.Context, room model.RoomID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, room)
	return nil
}

func (s *Storage) ListRooms(ctx context.Context) ([]model.RoomID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]model.RoomID, 0, len(s.games))
	for room := range s.games {
		rooms = append(rooms, room)
	}
	slices.Sort(rooms)
	return rooms, nil
}

// History operations

func (s *Storage) SaveRound(ctx context.Context, round *model.RoundSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rounds[round.ID]; !exists {
		s.order = append(s.order, round.ID)
	}
	s.rounds[round.ID] = round.Clone()
	return nil
}

func (s *Storage) GetRound(ctx context.Context, id string) (*model.RoundSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, ok := s.rounds[id]
	if !ok {
		return nil, model.ErrRoundNotFound
	}
	return round.Clone(), nil
}

func (s *Storage) ListRounds(ctx context.Context, room model.RoomID, limit int) ([]*model.RoundSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.RoundSummary
	for i := len(s.order) - 1; i >= 0; i-- {
		if limit > 0 && len(result) >= limit {
			break
		}
		round := s.rounds[s.order[i]]
		if round.Room != room {
			continue
		}
		result = append(result, round.Clone())
	}
	return result, nil
}

// Close is a no-op for memory storage
func (s *Storage) Close() error {
	return nil
}
