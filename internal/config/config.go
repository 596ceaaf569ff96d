package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultWiseOldManURL = "https://api.wiseoldman.net/v2"

type Config struct {
	Token               string
	DatabaseURL         string
	DiscordGuildID      string
	WiseOldManBaseURL   string
	UserAgent           string
	FetchTimeout        time.Duration
	UseHiscoresFallback bool
	TrackOnUpdate       bool
	RulebookPath        string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	MetricsAddr         string
	WorkerPoolSize      int
	LeaderboardSize     int
	RefreshInterval     time.Duration // zero disables scheduled refresh
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	token := secretOrEnv("discord_token", "DISCORD_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is not set (via secret or env var)")
	}

	dbURL := secretOrEnv("database_url", "DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set (via secret or env var)")
	}

	cfg := &Config{
		Token:               token,
		DatabaseURL:         dbURL,
		DiscordGuildID:      envString("DISCORD_GUILD_ID", ""),
		WiseOldManBaseURL:   strings.TrimRight(envString("WISE_OLD_MAN_URL", DefaultWiseOldManURL), "/"),
		UserAgent:           envString("HTTP_USER_AGENT", "clan-points-tracker"),
		FetchTimeout:        envDuration("FETCH_TIMEOUT", 10*time.Second),
		UseHiscoresFallback: envBool("USE_HISCORES_FALLBACK", true),
		TrackOnUpdate:       envBool("WISE_OLD_MAN_TRACK_ON_UPDATE", false),
		RulebookPath:        envString("RULEBOOK_PATH", ""),
		RedisAddr:           envString("REDIS_ADDR", ""),
		RedisPassword:       secretOrEnv("redis_password", "REDIS_PASSWORD"),
		RedisDB:             envInt("REDIS_DB", 0),
		MetricsAddr:         envString("METRICS_ADDR", ":2112"),
		WorkerPoolSize:      envInt("WORKER_POOL_SIZE", 5),
		LeaderboardSize:     envInt("LEADERBOARD_SIZE", 10),
		RefreshInterval:     envDuration("REFRESH_INTERVAL", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var secretsDir = "/run/secrets/"

func readSecret(name string) string {
	data, err := os.ReadFile(secretsDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// secretOrEnv prefers a Docker secret over the environment variable.
func secretOrEnv(secret, key string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return os.Getenv(key)
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
