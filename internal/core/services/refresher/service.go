// Package refresher re-scores every linked player on a fixed interval so
// ranks keep moving for members who never run /update themselves.
package refresher

import (
	"context"
	"log/slog"
	"time"

	"clan-points-tracker/internal/core/services/progress"
)

type Refresher interface {
	RefreshAll(ctx context.Context, guildID string) (progress.RefreshSummary, error)
}

type Dependencies struct {
	Refresher Refresher
	GuildID   string
	Interval  time.Duration
	// PassTimeout bounds one refresh pass. Zero uses the interval.
	PassTimeout time.Duration
}

type Service struct {
	refresher   Refresher
	guildID     string
	interval    time.Duration
	passTimeout time.Duration
}

func NewService(deps Dependencies) *Service {
	s := &Service{
		refresher:   deps.Refresher,
		guildID:     deps.GuildID,
		interval:    deps.Interval,
		passTimeout: deps.PassTimeout,
	}
	if s.passTimeout <= 0 {
		s.passTimeout = s.interval
	}
	return s
}

// Start blocks until ctx is done. The first pass runs one interval after
// start so a restart loop does not hammer the progress provider.
func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	slog.Info("Refresher started", "interval", s.interval, "guild_id", s.guildID)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Refresher stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.passTimeout)
	defer cancel()

	start := time.Now()
	summary, err := s.refresher.RefreshAll(ctx, s.guildID)
	if err != nil {
		slog.Error("Scheduled refresh failed", "guild_id", s.guildID, "error", err)
		return
	}

	slog.Info("Scheduled refresh finished",
		"guild_id", s.guildID,
		"total", summary.Total,
		"updated", summary.Updated,
		"failed", summary.Failed,
		"duration", time.Since(start),
	)
}
