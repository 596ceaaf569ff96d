package postgres

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clan-points-tracker/internal/adapters/storage/postgres/db"
	"clan-points-tracker/internal/core/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

type PostgresStore struct {
	pool *pgxpool.Pool
	conn db.DBTX
	q    *db.Queries
}

func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		conn: pool,
		q:    db.New(pool),
	}, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the players table and its indexes when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.conn.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// -- Player Records --

func (s *PostgresStore) Get(ctx context.Context, externalID string) (*domain.PlayerRecord, error) {
	row, err := s.q.GetPlayer(ctx, externalID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get player: %w", err)
	}

	record := &domain.PlayerRecord{
		ExternalID:     row.DiscordID,
		DisplayName:    row.DisplayName,
		ProgressPoints: int(row.ProgressPoints),
		BonusPoints:    int(row.BonusPoints),
		DonationTotal:  int(row.DonationTotal),
		Score:          int(row.Score),
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}

	if len(row.Baseline) > 0 {
		if err := json.Unmarshal(row.Baseline, &record.Baseline); err != nil {
			return nil, fmt.Errorf("decode baseline: %w", err)
		}
	}

	return record, nil
}

func (s *PostgresStore) Put(ctx context.Context, record *domain.PlayerRecord) error {
	baseline, err := json.Marshal(record.Baseline)
	if err != nil {
		return fmt.Errorf("encode baseline: %w", err)
	}

	now := time.Now()
	createdAt, updatedAt := record.CreatedAt, record.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = now
	}

	err = s.q.UpsertPlayer(ctx, db.UpsertPlayerParams{
		DiscordID:      record.ExternalID,
		DisplayName:    record.DisplayName,
		Baseline:       baseline,
		ProgressPoints: int64(record.ProgressPoints),
		BonusPoints:    int64(record.BonusPoints),
		DonationTotal:  int64(record.DonationTotal),
		Score:          int64(record.Score),
		CreatedAt:      timestamptz(createdAt),
		UpdatedAt:      timestamptz(updatedAt),
	})
	if err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListExternalIDs(ctx context.Context) ([]string, error) {
	ids, err := s.q.ListPlayerIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return ids, nil
}

// -- Leaderboards --

func (s *PostgresStore) TopDonators(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.q.TopDonators(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("top donators: %w", err)
	}

	result := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.LeaderboardEntry{
			ExternalID:  row.DiscordID,
			DisplayName: row.DisplayName,
			Value:       int(row.DonationTotal),
		})
	}
	return result, nil
}

// Record is a no-op: the score column written by Put already feeds Top.
func (s *PostgresStore) Record(ctx context.Context, entry domain.LeaderboardEntry) error {
	return nil
}

func (s *PostgresStore) Top(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	rows, err := s.q.TopPlayersByScore(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("top players: %w", err)
	}

	result := make([]domain.LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.LeaderboardEntry{
			ExternalID:  row.DiscordID,
			DisplayName: row.DisplayName,
			Value:       int(row.Score),
		})
	}
	return result, nil
}

func timestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
