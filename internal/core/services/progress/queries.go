package progress

import (
	"context"
	"errors"
	"fmt"

	"clan-points-tracker/internal/core/domain"
)

var errNoLeaderboard = errors.New("no leaderboard configured")

// Points returns the stored standing without fetching a new snapshot.
func (s *Service) Points(ctx context.Context, externalID string) (*Standing, error) {
	rec, err := s.requireRecord(ctx, externalID)
	if err != nil {
		return nil, err
	}

	standing := &Standing{
		Record: rec,
		Rank:   s.rules.Tiers.RankTier(rec.Score),
	}
	if d, ok := s.rules.Tiers.DonatorTier(rec.DonationTotal); ok {
		standing.Donator = &d
	}
	return standing, nil
}

func (s *Service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if s.leaderboard == nil {
		return nil, errNoLeaderboard
	}
	entries, err := s.leaderboard.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load leaderboard: %w", err)
	}
	return rank(entries), nil
}

func (s *Service) DonatorLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.store.TopDonators(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load donators: %w", err)
	}
	return rank(entries), nil
}

// rank numbers entries from 1 in the order given.
func rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
