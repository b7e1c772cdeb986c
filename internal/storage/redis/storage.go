package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/model"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
)

// Storage is a Redis-backed round history
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.HistoryStore = (*Storage)(nil)

func (s *Storage) SaveRound(ctx context.Context, round *model.RoundSummary) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}

	indexKey := roomRoundsIndexKey(round.Room)

	// Save the summary and index it in one round trip
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roundKey(round.ID), data, s.cfg.RoundTTL)
	pipe.ZAdd(ctx, indexKey, redis.Z{
		Score:  float64(round.EndedAt.UnixMilli()),
		Member: round.ID,
	})
	if s.cfg.MaxRoundsPerRoom > 0 {
		// Keep only the newest MaxRoundsPerRoom members
		pipe.ZRemRangeByRank(ctx, indexKey, 0, -s.cfg.MaxRoundsPerRoom-1)
	}
	pipe.Expire(ctx, indexKey, s.cfg.RoundTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRound(ctx context.Context, id string) (*model.RoundSummary, error) {
	data, err := s.client.Get(ctx, roundKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoundNotFound
		}
		return nil, err
	}

	var round model.RoundSummary
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Storage) ListRounds(ctx context.Context, room model.RoomID, limit int) ([]*model.RoundSummary, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	ids, err := s.client.ZRevRange(ctx, roomRoundsIndexKey(room), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.RoundSummary{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roundKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rounds := make([]*model.RoundSummary, 0, len(values))
	for _, val := range values {
		str, ok := val.(string)
		if !ok {
			continue // Summary may have expired
		}
		var round model.RoundSummary
		if err := json.Unmarshal([]byte(str), &round); err != nil {
			continue // Skip invalid data
		}
		rounds = append(rounds, &round)
	}
	return rounds, nil
}
