package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clan-points-tracker/internal/adapters/metrics"
	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/ports"
	"clan-points-tracker/internal/core/rulebook"
	"clan-points-tracker/internal/core/scoring"
	"clan-points-tracker/internal/core/snapshot"
	"clan-points-tracker/internal/core/tiers"
)

const (
	defaultFetchTimeout = 10 * time.Second
	defaultWorkers      = 5
)

type Dependencies struct {
	Rulebook    *rulebook.Rulebook
	Store       ports.PlayerStore
	Fetcher     ports.SnapshotFetcher
	Leaderboard ports.Leaderboard
	// Membership and Provisioner are optional; without them scores are kept
	// but no roles are touched.
	Membership   ports.MembershipPort
	Provisioner  ports.TagProvisioner
	FetchTimeout time.Duration
	Workers      int
	Now          func() time.Time
}

type Service struct {
	rules        *rulebook.Rulebook
	store        ports.PlayerStore
	fetcher      ports.SnapshotFetcher
	leaderboard  ports.Leaderboard
	membership   ports.MembershipPort
	provisioner  ports.TagProvisioner
	fetchTimeout time.Duration
	workers      int
	now          func() time.Time
	locks        *playerLocks
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		rules:        deps.Rulebook,
		store:        deps.Store,
		fetcher:      deps.Fetcher,
		leaderboard:  deps.Leaderboard,
		membership:   deps.Membership,
		provisioner:  deps.Provisioner,
		fetchTimeout: deps.FetchTimeout,
		workers:      deps.Workers,
		now:          deps.Now,
		locks:        newPlayerLocks(),
	}
	if s.rules == nil {
		s.rules = rulebook.Default()
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = defaultFetchTimeout
	}
	if s.workers <= 0 {
		s.workers = defaultWorkers
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Result describes the outcome of one scoring pass.
type Result struct {
	Record         *domain.PlayerRecord
	Breakdown      scoring.Breakdown
	Awarded        int
	Enrolled       bool
	Classification tiers.Classification
	Plan           tiers.Plan
	// SyncErr is set when the record was saved but some role changes failed.
	// Running the update again retries them.
	SyncErr error
}

// Standing is a player's stored score with the tiers it resolves to.
type Standing struct {
	Record  *domain.PlayerRecord
	Rank    tiers.RankTier
	Donator *tiers.DonatorTier
}

func (s *Service) fetchSnapshot(ctx context.Context, playerName string) (domain.StatsSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	raw, err := s.fetcher.FetchSnapshot(ctx, playerName)
	if err != nil {
		metrics.PointsUpdates.WithLabelValues("fetch_failed").Inc()
		if !errors.Is(err, domain.ErrSnapshotUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrSnapshotUnavailable, err)
		}
		return domain.StatsSnapshot{}, fmt.Errorf("fetch %s: %w", playerName, err)
	}
	return snapshot.Normalize(raw), nil
}

// rescore applies a fresh snapshot to rec. ProgressPoints only ever grows, so
// scoring the same progress twice leaves the record unchanged.
func (s *Service) rescore(rec *domain.PlayerRecord, snap domain.StatsSnapshot) scoring.Breakdown {
	snap = snap.WithDonationTotal(rec.DonationTotal)
	breakdown := scoring.Score(s.rules.Scoring, snap, &rec.Baseline)
	rec.ProgressPoints = max(rec.ProgressPoints, breakdown.Progress())
	rec.Score = s.total(rec)
	return breakdown
}

func (s *Service) total(rec *domain.PlayerRecord) int {
	return rec.ProgressPoints + rec.BonusPoints + scoring.DonationPoints(s.rules.Scoring.DonationBrackets, rec.DonationTotal)
}

func (s *Service) getRecord(ctx context.Context, externalID string) (*domain.PlayerRecord, error) {
	rec, err := s.store.Get(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("load player %s: %w", externalID, err)
	}
	return rec, nil
}

func (s *Service) requireRecord(ctx context.Context, externalID string) (*domain.PlayerRecord, error) {
	rec, err := s.getRecord(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrPlayerNotFound
	}
	return rec, nil
}
