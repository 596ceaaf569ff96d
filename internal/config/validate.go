package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

const (
	// Discord tokens are typically 50+ characters
	minTokenLength = 50

	minFetchTimeout = 1 * time.Second
	maxFetchTimeout = 2 * time.Minute

	minWorkerPoolSize = 1
	maxWorkerPoolSize = 50 // Wise Old Man rate limits unauthenticated clients

	minLeaderboardSize = 1
	maxLeaderboardSize = 25 // fits a single Discord message

	minRefreshInterval = 15 * time.Minute
	maxRefreshInterval = 7 * 24 * time.Hour
)

// Validate checks every configuration value and returns all failures at once
// using errors.Join.
func (c *Config) Validate() error {
	var errs []error

	if err := c.validateToken(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateFetchTimeout(); err != nil {
		errs = append(errs, err)
	}

	if err := validateRange("WORKER_POOL_SIZE", c.WorkerPoolSize, minWorkerPoolSize, maxWorkerPoolSize); err != nil {
		errs = append(errs, err)
	}

	if err := validateRange("LEADERBOARD_SIZE", c.LeaderboardSize, minLeaderboardSize, maxLeaderboardSize); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateBaseURL(); err != nil {
		errs = append(errs, err)
	}

	if err := c.validateRefreshInterval(); err != nil {
		errs = append(errs, err)
	}

	if c.MetricsAddr == "" {
		errs = append(errs, fmt.Errorf("METRICS_ADDR cannot be empty"))
	}

	if c.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("REDIS_DB must not be negative, got %d", c.RedisDB))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %w", errors.Join(errs...))
	}

	return nil
}

func (c *Config) validateToken() error {
	if c.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required but not set")
	}

	if len(c.Token) < minTokenLength {
		return fmt.Errorf(
			"DISCORD_TOKEN appears invalid (too short: %d chars, expected %d+)",
			len(c.Token), minTokenLength,
		)
	}

	return nil
}

func (c *Config) validateFetchTimeout() error {
	if c.FetchTimeout < minFetchTimeout || c.FetchTimeout > maxFetchTimeout {
		return fmt.Errorf(
			"FETCH_TIMEOUT must be between %v and %v, got %v",
			minFetchTimeout, maxFetchTimeout, c.FetchTimeout,
		)
	}
	return nil
}

func (c *Config) validateRefreshInterval() error {
	if c.RefreshInterval == 0 {
		return nil
	}
	if c.RefreshInterval < minRefreshInterval || c.RefreshInterval > maxRefreshInterval {
		return fmt.Errorf(
			"REFRESH_INTERVAL must be 0 or between %v and %v, got %v",
			minRefreshInterval, maxRefreshInterval, c.RefreshInterval,
		)
	}
	if c.DiscordGuildID == "" {
		return fmt.Errorf("REFRESH_INTERVAL requires DISCORD_GUILD_ID")
	}
	return nil
}

func (c *Config) validateBaseURL() error {
	u, err := url.Parse(c.WiseOldManBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("WISE_OLD_MAN_URL must be an absolute URL, got %q", c.WiseOldManBaseURL)
	}
	return nil
}

func validateRange(field string, value, lo, hi int) error {
	if value < lo || value > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", field, lo, hi, value)
	}
	return nil
}
