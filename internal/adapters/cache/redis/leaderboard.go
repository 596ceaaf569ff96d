package redis

import (
	"context"
	"fmt"
	"log/slog"

	"clan-points-tracker/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

const (
	scoresKey = "clan:leaderboard:scores"
	namesKey  = "clan:leaderboard:names"
)

// sortedSetClient is the slice of the go-redis API the leaderboard needs.
type sortedSetClient interface {
	ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd
	ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
	Close() error
}

// Leaderboard keeps every player's score in a sorted set keyed by Discord ID,
// with display names in a companion hash.
type Leaderboard struct {
	client sortedSetClient
}

func NewLeaderboard(ctx context.Context, addr, password string, db int) (*Leaderboard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &Leaderboard{client: client}, nil
}

func (l *Leaderboard) Close() error {
	return l.client.Close()
}

// Record sets the player's score, replacing any previous value.
func (l *Leaderboard) Record(ctx context.Context, entry domain.LeaderboardEntry) error {
	err := l.client.ZAdd(ctx, scoresKey, redis.Z{
		Score:  float64(entry.Value),
		Member: entry.ExternalID,
	}).Err()
	if err != nil {
		return fmt.Errorf("setting score: %w", err)
	}

	if entry.DisplayName != "" {
		if err := l.client.HSet(ctx, namesKey, entry.ExternalID, entry.DisplayName).Err(); err != nil {
			return fmt.Errorf("setting display name: %w", err)
		}
	}
	return nil
}

// Top returns the highest scores first. Rank is left for the caller.
func (l *Leaderboard) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	results, err := l.client.ZRevRangeWithScores(ctx, scoresKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting top n: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	ids := make([]string, len(results))
	for i, result := range results {
		ids[i], _ = result.Member.(string)
	}

	names, err := l.client.HMGet(ctx, namesKey, ids...).Result()
	if err != nil {
		slog.Warn("Failed to load leaderboard display names", "error", err)
		names = nil
	}

	entries := make([]domain.LeaderboardEntry, len(results))
	for i, result := range results {
		entries[i] = domain.LeaderboardEntry{
			ExternalID:  ids[i],
			DisplayName: ids[i],
			Value:       int(result.Score),
		}
		if i < len(names) {
			if name, ok := names[i].(string); ok && name != "" {
				entries[i].DisplayName = name
			}
		}
	}
	return entries, nil
}

// Seed loads entries from the system of record, typically at startup when
// the sorted set may be empty or stale.
func (l *Leaderboard) Seed(ctx context.Context, entries []domain.LeaderboardEntry) error {
	for _, entry := range entries {
		if err := l.Record(ctx, entry); err != nil {
			return err
		}
	}
	slog.Info("Seeded leaderboard cache", "entries", len(entries))
	return nil
}
