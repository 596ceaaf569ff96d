package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	rediscache "clan-points-tracker/internal/adapters/cache/redis"
	"clan-points-tracker/internal/adapters/discord"
	"clan-points-tracker/internal/adapters/discord/commands"
	"clan-points-tracker/internal/adapters/storage/postgres"
	"clan-points-tracker/internal/adapters/wiseoldman"
	"clan-points-tracker/internal/adapters/wiseoldman/api"
	"clan-points-tracker/internal/config"
	"clan-points-tracker/internal/core/ports"
	"clan-points-tracker/internal/core/rulebook"
	"clan-points-tracker/internal/core/services/progress"
	"clan-points-tracker/internal/core/services/refresher"

	"github.com/bwmarrin/discordgo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// seedLimit bounds how many stored scores are copied into the cache on start.
const seedLimit = 10000

type App struct {
	config             *config.Config
	store              ports.PlayerStore
	cache              leaderboardCache
	discord            *discordgo.Session
	router             *commands.Router
	metricsServer      *http.Server
	refresher          *refresher.Service
	refresherCancel    context.CancelFunc
	registeredCommands []*discordgo.ApplicationCommand
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	rules, err := rulebook.Load(cfg.RulebookPath)
	if err != nil {
		return nil, fmt.Errorf("load rulebook: %w", err)
	}

	store, err := postgres.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to storage: %w", err)
	}
	if err := store.EnsureSchema(ctx); err != nil {
		store.Close()
		return nil, err
	}

	app := &App{config: cfg, store: store}

	var leaderboard ports.Leaderboard = store
	if cache := app.connectCache(ctx, store); cache != nil {
		app.cache = cache
		leaderboard = cache
	}

	session, err := discord.NewSession(cfg)
	if err != nil {
		_ = app.Shutdown(ctx)
		return nil, err
	}
	app.discord = session

	membership := discord.NewAdapter(session)
	client := api.NewClient(cfg.WiseOldManBaseURL, cfg.UserAgent, cfg.FetchTimeout)

	service := progress.NewService(progress.Dependencies{
		Rulebook:     rules,
		Store:        store,
		Fetcher:      wiseoldman.NewAdapter(client, cfg),
		Leaderboard:  leaderboard,
		Membership:   membership,
		Provisioner:  membership,
		FetchTimeout: cfg.FetchTimeout,
		Workers:      cfg.WorkerPoolSize,
	})

	if cfg.RefreshInterval > 0 {
		app.refresher = refresher.NewService(refresher.Dependencies{
			Refresher: service,
			GuildID:   cfg.DiscordGuildID,
			Interval:  cfg.RefreshInterval,
		})
	}

	app.router = commands.NewRouter()
	registerRoutes(app.router, &commands.BotHandler{Config: cfg, Service: service})

	session.AddHandler(commands.ReadyHandler)
	session.AddHandler(app.router.HandleFunc())

	return app, nil
}

// connectCache returns nil when Redis is not configured or unreachable; the
// database then serves the leaderboard directly.
func (a *App) connectCache(ctx context.Context, store *postgres.PostgresStore) leaderboardCache {
	if a.config.RedisAddr == "" {
		return nil
	}

	cache, err := rediscache.NewLeaderboard(ctx, a.config.RedisAddr, a.config.RedisPassword, a.config.RedisDB)
	if err != nil {
		slog.Warn("Redis unavailable, serving leaderboard from database", "addr", a.config.RedisAddr, "error", err)
		return nil
	}

	entries, err := store.Top(ctx, seedLimit)
	if err == nil {
		err = cache.Seed(ctx, entries)
	}
	if err != nil {
		slog.Warn("Failed to seed leaderboard cache, serving leaderboard from database", "error", err)
		_ = cache.Close()
		return nil
	}

	slog.Info("Leaderboard cache ready", "addr", a.config.RedisAddr, "entries", len(entries))
	return cache
}

func (a *App) Run() error {
	a.startMetricsServer()

	if err := a.discord.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}

	appID := a.discord.State.User.ID
	a.registeredCommands = commands.RegisterCommands(a.discord, commands.GetApplicationCommands(), appID, a.config.DiscordGuildID)

	if a.refresher != nil {
		var ctx context.Context
		ctx, a.refresherCancel = context.WithCancel(context.Background())
		go a.refresher.Start(ctx)
	}

	slog.Info("Clan points tracker started", "commands", len(a.registeredCommands))
	return nil
}

func (a *App) startMetricsServer() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	a.metricsServer = &http.Server{
		Addr:              a.config.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("Starting metrics server", "addr", a.config.MetricsAddr)
		if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}

func (a *App) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down...")

	var errs []error

	if a.refresherCancel != nil {
		a.refresherCancel()
	}

	if a.discord != nil {
		if a.discord.State != nil && a.discord.State.User != nil {
			commands.CleanupCommands(a.discord, a.registeredCommands, a.discord.State.User.ID, a.config.DiscordGuildID)
		}
		if err := a.discord.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close discord session: %w", err))
		}
	}

	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop metrics server: %w", err))
		}
	}

	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close leaderboard cache: %w", err))
		}
	}

	if a.store != nil {
		a.store.Close()
	}

	return errors.Join(errs...)
}
