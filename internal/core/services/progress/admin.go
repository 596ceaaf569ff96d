package progress

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"clan-points-tracker/internal/adapters/metrics"
	"clan-points-tracker/internal/core/domain"

	"golang.org/x/sync/errgroup"
)

// GrantPoints adds manually awarded points, e.g. for event participation.
func (s *Service) GrantPoints(ctx context.Context, guildID, externalID string, amount int) (*Result, error) {
	return s.adjust(ctx, guildID, externalID, amount, func(rec *domain.PlayerRecord) {
		rec.BonusPoints += amount
	})
}

// AddDonation raises the cumulative donation total and re-resolves the
// donator tier.
func (s *Service) AddDonation(ctx context.Context, guildID, externalID string, amount int) (*Result, error) {
	return s.adjust(ctx, guildID, externalID, amount, func(rec *domain.PlayerRecord) {
		rec.DonationTotal += amount
	})
}

func (s *Service) adjust(ctx context.Context, guildID, externalID string, amount int, apply func(*domain.PlayerRecord)) (*Result, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	unlock := s.locks.lock(externalID)
	defer unlock()

	rec, err := s.requireRecord(ctx, externalID)
	if err != nil {
		return nil, err
	}

	previous := rec.Score
	apply(rec)
	rec.Score = s.total(rec)
	rec.UpdatedAt = s.now()

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	result := &Result{Record: rec, Awarded: max(rec.Score-previous, 0)}
	if result.Awarded > 0 {
		metrics.PointsAwarded.Add(float64(result.Awarded))
	}
	s.syncMemberships(ctx, guildID, rec, nil, result)
	slog.Info("Adjusted player", "discord_id", externalID, "amount", amount, "score", rec.Score)
	return result, nil
}

// Rebaseline scores the latest progress against the old baseline, banks it
// into BonusPoints and starts measuring from a fresh snapshot.
func (s *Service) Rebaseline(ctx context.Context, guildID, externalID string) (*Result, error) {
	unlock := s.locks.lock(externalID)
	defer unlock()

	rec, err := s.requireRecord(ctx, externalID)
	if err != nil {
		return nil, err
	}

	snap, err := s.fetchSnapshot(ctx, rec.DisplayName)
	if err != nil {
		return nil, err
	}

	previous := rec.Score
	s.rescore(rec, snap)

	rec.BonusPoints += rec.ProgressPoints
	rec.ProgressPoints = 0
	rec.Baseline = snap.WithDonationTotal(0)
	rec.Score = s.total(rec)
	rec.UpdatedAt = s.now()

	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}

	result := &Result{Record: rec, Awarded: max(rec.Score-previous, 0)}
	s.syncMemberships(ctx, guildID, rec, &snap, result)
	slog.Info("Rebaselined player", "discord_id", externalID, "banked", rec.BonusPoints)
	return result, nil
}

type RefreshSummary struct {
	Total   int
	Updated int
	Failed  int
}

// RefreshAll re-scores every enrolled player on a bounded pool. A player that
// cannot be updated is counted and skipped.
func (s *Service) RefreshAll(ctx context.Context, guildID string) (RefreshSummary, error) {
	ids, err := s.store.ListExternalIDs(ctx)
	if err != nil {
		return RefreshSummary{}, fmt.Errorf("list players: %w", err)
	}

	var updated, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, id := range ids {
		g.Go(func() error {
			if gctx.Err() != nil {
				failed.Add(1)
				return nil
			}
			if _, err := s.Update(gctx, guildID, id, ""); err != nil {
				slog.Warn("Failed to refresh player", "discord_id", id, "error", err)
				failed.Add(1)
				return nil
			}
			updated.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	summary := RefreshSummary{
		Total:   len(ids),
		Updated: int(updated.Load()),
		Failed:  int(failed.Load()),
	}
	slog.Info("Refreshed players", "total", summary.Total, "updated", summary.Updated, "failed", summary.Failed)
	return summary, ctx.Err()
}

// EnsureRoles creates every tier and badge tag missing from the guild.
func (s *Service) EnsureRoles(ctx context.Context, guildID string) ([]string, error) {
	if s.provisioner == nil {
		return nil, nil
	}
	created, err := s.provisioner.EnsureTags(ctx, guildID, s.rules.Tiers.AllTags())
	if err != nil {
		return created, fmt.Errorf("ensure roles: %w", err)
	}
	if len(created) > 0 {
		slog.Info("Created missing roles", "guild_id", guildID, "roles", created)
	}
	return created, nil
}
