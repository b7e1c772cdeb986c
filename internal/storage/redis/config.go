package redis

import "time"

// Config holds Redis connection and retention settings for round history
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// RoundTTL is how long a round summary is kept
	RoundTTL time.Duration

	// MaxRoundsPerRoom caps the per-room index; older entries are trimmed
	MaxRoundsPerRoom int64
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:              "redis://localhost:6379",
		PoolSize:         10,
		MinIdleConns:     2,
		RoundTTL:         30 * 24 * time.Hour,
		MaxRoundsPerRoom: 100,
	}
}
