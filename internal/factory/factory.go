package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/clock"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/dependencies/random"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/command"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/deck"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/game"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/services/identity"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/memory"
	redisstorage "github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/redis"
	sqlitestorage "github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/sqlite"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/transport/sse"
)

// History store type constants
const (
	HistoryTypeMemory = "memory"
	HistoryTypeRedis  = "redis"
	HistoryTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	GameStore    storage.GameStore
	HistoryStore storage.HistoryStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DeckService    *deck.Service
	GameController *game.Controller
	Identity       *identity.Resolver
	CommandRouter  *command.Router

	// Transport
	HubManager *sse.HubManager
	Gateway    *sse.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// HistoryType selects the round history backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	HistoryType string
	// RedisConfig holds Redis connection settings (required if HistoryType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if HistoryType is "sqlite")
	SQLitePath string
	// BotID is the chat identity of the bot's own account (optional)
	BotID string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Live games are always held in memory
	games := memory.New()

	var history storage.HistoryStore
	historyType := cfg.HistoryType
	if historyType == "" {
		historyType = HistoryTypeMemory
	}

	switch historyType {
	case HistoryTypeMemory:
		history = games
	case HistoryTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when HistoryType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		history = redisStore
	case HistoryTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when HistoryType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		history = sqliteStore
	default:
		return nil, fmt.Errorf("invalid HistoryType %q: must be 'memory', 'redis' or 'sqlite'", historyType)
	}

	logger.Info("history store ready", slog.String("type", historyType))

	return newWithDependencies(games, history, clock.New(), random.New(), cfg.BotID, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	games storage.GameStore,
	history storage.HistoryStore,
	clk clock.Clock,
	rnd random.Random,
	botID string,
	logger *slog.Logger,
) *App {
	deckService := deck.New(rnd)
	gameController := game.NewController(games, history, deckService, clk, logger.With(slog.String("component", "game")))
	resolver := identity.New(botID)
	hubManager := sse.NewHubManager(logger)
	gateway := sse.NewGateway(hubManager, clk, logger)
	router := command.NewRouter(gameController, resolver, gateway, logger.With(slog.String("component", "command")))

	return &App{
		GameStore:      games,
		HistoryStore:   history,
		Clock:          clk,
		Random:         rnd,
		DeckService:    deckService,
		GameController: gameController,
		Identity:       resolver,
		CommandRouter:  router,
		HubManager:     hubManager,
		Gateway:        gateway,
	}
}

// Close disconnects every stream and releases the history store
func (a *App) Close() error {
	a.HubManager.Close()
	return a.HistoryStore.Close()
}
