package ports

import (
	"context"

	"clan-points-tracker/internal/core/domain"
)

// RawDocument is an unparsed progress document as returned by a provider.
type RawDocument []byte

type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, playerName string) (RawDocument, error)
}

// PlayerStore returns (nil, nil) from Get when no record exists.
type PlayerStore interface {
	Get(ctx context.Context, externalID string) (*domain.PlayerRecord, error)
	Put(ctx context.Context, record *domain.PlayerRecord) error
	ListExternalIDs(ctx context.Context) ([]string, error)
	TopDonators(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	Close()
}

// MembershipPort mutates tag membership on the host platform. Add and Remove
// are no-ops when the tag is already present or absent.
type MembershipPort interface {
	CurrentTags(ctx context.Context, scopeID, externalID string) ([]string, error)
	Add(ctx context.Context, scopeID, externalID, tag string) error
	Remove(ctx context.Context, scopeID, externalID, tag string) error
}

type Leaderboard interface {
	Record(ctx context.Context, entry domain.LeaderboardEntry) error
	Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

// TagProvisioner creates tags that do not exist yet in a scope and returns the
// ones it created.
type TagProvisioner interface {
	EnsureTags(ctx context.Context, scopeID string, tags []string) ([]string, error)
}
