package main

import (
	"context"

	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/ports"
)

// leaderboardCache is a Leaderboard kept outside the database that has to be
// primed from stored scores after a restart.
type leaderboardCache interface {
	ports.Leaderboard
	Seed(ctx context.Context, entries []domain.LeaderboardEntry) error
	Close() error
}
