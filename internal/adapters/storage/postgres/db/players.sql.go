// source: players.sql

package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getPlayer = `-- name: GetPlayer :one
SELECT discord_id, display_name, baseline, progress_points, bonus_points,
       donation_total, score, created_at, updated_at
FROM players
WHERE discord_id = $1
`

func (q *Queries) GetPlayer(ctx context.Context, discordID string) (Player, error) {
	row := q.db.QueryRow(ctx, getPlayer, discordID)
	var i Player
	err := row.Scan(
		&i.DiscordID,
		&i.DisplayName,
		&i.Baseline,
		&i.ProgressPoints,
		&i.BonusPoints,
		&i.DonationTotal,
		&i.Score,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listPlayerIDs = `-- name: ListPlayerIDs :many
SELECT discord_id FROM players ORDER BY discord_id
`

func (q *Queries) ListPlayerIDs(ctx context.Context) ([]string, error) {
	rows, err := q.db.Query(ctx, listPlayerIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var discord_id string
		if err := rows.Scan(&discord_id); err != nil {
			return nil, err
		}
		items = append(items, discord_id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const topDonators = `-- name: TopDonators :many
SELECT discord_id, display_name, donation_total
FROM players
WHERE donation_total > 0
ORDER BY donation_total DESC, discord_id
LIMIT $1
`

type TopDonatorsRow struct {
	DiscordID     string
	DisplayName   string
	DonationTotal int64
}

func (q *Queries) TopDonators(ctx context.Context, limit int32) ([]TopDonatorsRow, error) {
	rows, err := q.db.Query(ctx, topDonators, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TopDonatorsRow
	for rows.Next() {
		var i TopDonatorsRow
		if err := rows.Scan(&i.DiscordID, &i.DisplayName, &i.DonationTotal); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const topPlayersByScore = `-- name: TopPlayersByScore :many
SELECT discord_id, display_name, score
FROM players
ORDER BY score DESC, discord_id
LIMIT $1
`

type TopPlayersByScoreRow struct {
	DiscordID   string
	DisplayName string
	Score       int64
}

func (q *Queries) TopPlayersByScore(ctx context.Context, limit int32) ([]TopPlayersByScoreRow, error) {
	rows, err := q.db.Query(ctx, topPlayersByScore, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TopPlayersByScoreRow
	for rows.Next() {
		var i TopPlayersByScoreRow
		if err := rows.Scan(&i.DiscordID, &i.DisplayName, &i.Score); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertPlayer = `-- name: UpsertPlayer :exec
INSERT INTO players (
    discord_id, display_name, baseline, progress_points, bonus_points,
    donation_total, score, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (discord_id) DO UPDATE SET
    display_name    = EXCLUDED.display_name,
    baseline        = EXCLUDED.baseline,
    progress_points = EXCLUDED.progress_points,
    bonus_points    = EXCLUDED.bonus_points,
    donation_total  = EXCLUDED.donation_total,
    score           = EXCLUDED.score,
    updated_at      = EXCLUDED.updated_at
`

type UpsertPlayerParams struct {
	DiscordID      string
	DisplayName    string
	Baseline       []byte
	ProgressPoints int64
	BonusPoints    int64
	DonationTotal  int64
	Score          int64
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

func (q *Queries) UpsertPlayer(ctx context.Context, arg UpsertPlayerParams) error {
	_, err := q.db.Exec(ctx, upsertPlayer,
		arg.DiscordID,
		arg.DisplayName,
		arg.Baseline,
		arg.ProgressPoints,
		arg.BonusPoints,
		arg.DonationTotal,
		arg.Score,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}
