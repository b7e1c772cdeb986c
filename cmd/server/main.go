package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/api"
	"github.com/Ameer-Tech-Sol/wa-anime-bot/internal/factory"
	redisstorage "github.com/Ameer-Tech-Sol/wa-anime-bot/internal/storage/redis"
)

const hubCleanupInterval = time.Minute

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		HistoryType: os.Getenv("HISTORY_STORE"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		BotID:       os.Getenv("BOT_JID"),
	}

	if cfg.HistoryType == factory.HistoryTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when HISTORY_STORE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}
	if cfg.HistoryType == factory.HistoryTypeSQLite && cfg.SQLitePath == "" {
		cfg.SQLitePath = "bhabhi.db"
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("failed to close application", slog.String("error", err.Error()))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Clock:          app.Clock,
		Messages:       app.CommandRouter,
		GameController: app.GameController,
		GameStore:      app.GameStore,
		HubManager:     app.HubManager,
	})

	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)
	// Open event streams would otherwise hold shutdown until the timeout
	server.OnShutdown(app.HubManager.Close)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanupHubs(ctx, app)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// cleanupHubs drops stream hubs nobody is listening to
func cleanupHubs(ctx context.Context, app *factory.App) {
	ticker := time.NewTicker(hubCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			app.HubManager.CleanupEmptyHubs()
		case <-ctx.Done():
			return
		}
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
