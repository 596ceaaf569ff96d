package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"clan-points-tracker/internal/adapters/metrics"
	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/tiers"
)

// Enroll links a player to a game account. A new record takes the current
// snapshot as its baseline; linking again only changes the display name.
func (s *Service) Enroll(ctx context.Context, guildID, externalID, displayName string) (*Result, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, domain.ErrInvalidDisplayName
	}

	unlock := s.locks.lock(externalID)
	defer unlock()

	rec, err := s.getRecord(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if rec != nil {
		rec.DisplayName = displayName
		rec.UpdatedAt = s.now()
		if err := s.save(ctx, rec); err != nil {
			return nil, err
		}
		slog.Info("Updated linked account", "discord_id", externalID, "rsn", displayName)
		return &Result{Record: rec}, nil
	}

	return s.enroll(ctx, guildID, externalID, displayName)
}

// Update re-scores a player against their baseline. When no record exists a
// non-empty displayName enrolls the player instead. For a linked player a
// non-empty displayName is scored in place of the stored one and replaces it
// once the fetch succeeds.
func (s *Service) Update(ctx context.Context, guildID, externalID, displayName string) (*Result, error) {
	displayName = strings.TrimSpace(displayName)

	unlock := s.locks.lock(externalID)
	defer unlock()

	rec, err := s.getRecord(ctx, externalID)
	if err != nil {
		return nil, err
	}

	if rec == nil {
		if displayName == "" {
			metrics.PointsUpdates.WithLabelValues("unenrolled").Inc()
			return nil, domain.ErrUnenrolledPlayer
		}
		return s.enroll(ctx, guildID, externalID, displayName)
	}

	target := rec.DisplayName
	if displayName != "" {
		target = displayName
	}

	snap, err := s.fetchSnapshot(ctx, target)
	if err != nil {
		slog.Warn("Failed to fetch snapshot", "discord_id", externalID, "rsn", target, "error", err)
		return nil, err
	}

	previous := rec.Score
	rec.DisplayName = target
	breakdown := s.rescore(rec, snap)
	rec.UpdatedAt = s.now()

	if err := s.save(ctx, rec); err != nil {
		metrics.PointsUpdates.WithLabelValues("store_failed").Inc()
		return nil, err
	}

	result := &Result{
		Record:    rec,
		Breakdown: breakdown,
		Awarded:   max(rec.Score-previous, 0),
	}
	if result.Awarded > 0 {
		metrics.PointsAwarded.Add(float64(result.Awarded))
	}
	metrics.PointsUpdates.WithLabelValues("success").Inc()

	s.syncMemberships(ctx, guildID, rec, &snap, result)
	slog.Info("Updated player score", "discord_id", externalID, "rsn", rec.DisplayName, "score", rec.Score, "awarded", result.Awarded)
	return result, nil
}

func (s *Service) enroll(ctx context.Context, guildID, externalID, displayName string) (*Result, error) {
	snap, err := s.fetchSnapshot(ctx, displayName)
	if err != nil {
		slog.Warn("Failed to fetch baseline", "discord_id", externalID, "rsn", displayName, "error", err)
		return nil, err
	}

	now := s.now()
	rec := &domain.PlayerRecord{
		ExternalID:  externalID,
		DisplayName: displayName,
		Baseline:    snap.WithDonationTotal(0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	breakdown := s.rescore(rec, snap)

	if err := s.save(ctx, rec); err != nil {
		metrics.PointsUpdates.WithLabelValues("store_failed").Inc()
		return nil, err
	}
	metrics.PointsUpdates.WithLabelValues("enrolled").Inc()

	result := &Result{Record: rec, Breakdown: breakdown, Enrolled: true}
	s.syncMemberships(ctx, guildID, rec, &snap, result)
	slog.Info("Enrolled player", "discord_id", externalID, "rsn", displayName)
	return result, nil
}

// save persists rec and then mirrors its score on the leaderboard. A
// leaderboard failure is logged and does not fail the update since the
// record is the source of truth.
func (s *Service) save(ctx context.Context, rec *domain.PlayerRecord) error {
	if err := s.store.Put(ctx, rec); err != nil {
		return fmt.Errorf("save player %s: %w", rec.ExternalID, err)
	}

	if s.leaderboard == nil {
		return nil
	}
	entry := domain.LeaderboardEntry{
		ExternalID:  rec.ExternalID,
		DisplayName: rec.DisplayName,
		Value:       rec.Score,
	}
	if err := s.leaderboard.Record(ctx, entry); err != nil {
		slog.Warn("Failed to record leaderboard entry", "discord_id", rec.ExternalID, "error", err)
	}
	return nil
}

// syncMemberships resolves tiers for rec and applies the difference to the
// member's roles. snap may be nil when no fresh snapshot is available; badges
// are then left untouched because reconciliation never removes them.
func (s *Service) syncMemberships(ctx context.Context, guildID string, rec *domain.PlayerRecord, snap *domain.StatsSnapshot, result *Result) {
	tables := s.rules.Tiers

	var c tiers.Classification
	if snap != nil {
		c = tables.Resolve(rec.Score, *snap, rec.DonationTotal)
	} else {
		c = tiers.Classification{Rank: tables.RankTier(rec.Score)}
		if d, ok := tables.DonatorTier(rec.DonationTotal); ok {
			c.Donator = &d
		}
	}
	result.Classification = c

	if s.membership == nil || guildID == "" {
		return
	}

	current, err := s.membership.CurrentTags(ctx, guildID, rec.ExternalID)
	if err != nil {
		slog.Warn("Failed to read member roles", "discord_id", rec.ExternalID, "error", err)
		result.SyncErr = err
		return
	}

	plan := tables.Reconcile(current, c)
	result.Plan = plan
	result.SyncErr = s.applyPlan(ctx, guildID, rec.ExternalID, plan)
}

// applyPlan removes before it adds so a member never holds two exclusive tags
// at once. Every change is attempted; failures are joined.
func (s *Service) applyPlan(ctx context.Context, guildID, externalID string, plan tiers.Plan) error {
	var errs []error

	for _, tag := range plan.Remove {
		if err := s.membership.Remove(ctx, guildID, externalID, tag); err != nil {
			metrics.MembershipChanges.WithLabelValues("remove", "failure").Inc()
			slog.Warn("Failed to remove role", "discord_id", externalID, "role", tag, "error", err)
			errs = append(errs, fmt.Errorf("remove %s: %w", tag, err))
			continue
		}
		metrics.MembershipChanges.WithLabelValues("remove", "success").Inc()
	}

	for _, tag := range plan.Add {
		if err := s.membership.Add(ctx, guildID, externalID, tag); err != nil {
			metrics.MembershipChanges.WithLabelValues("add", "failure").Inc()
			slog.Warn("Failed to add role", "discord_id", externalID, "role", tag, "error", err)
			errs = append(errs, fmt.Errorf("add %s: %w", tag, err))
			continue
		}
		metrics.MembershipChanges.WithLabelValues("add", "success").Inc()
	}

	return errors.Join(errs...)
}
