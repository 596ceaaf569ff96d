package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"clan-points-tracker/internal/config"
)

const (
	// startupTimeout covers the database ping, schema, rulebook and cache seed.
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so that deferred shutdown still runs when
// startup fails after the App was built.
func run() int {
	InitLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	app, err := NewApp(ctx, cfg)
	cancel()
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		return 1
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			slog.Error("Application shutdown error", "error", err)
		}
	}()

	if err := app.Run(); err != nil {
		slog.Error("Failed to start application", "error", err)
		return 1
	}

	slog.Info("Tracking clan points",
		"guild_id", cfg.DiscordGuildID,
		"leaderboard_cache", cfg.RedisAddr != "",
		"hiscores_fallback", cfg.UseHiscoresFallback,
		"refresh_interval", cfg.RefreshInterval,
	)

	WaitForShutdown()
	return 0
}
