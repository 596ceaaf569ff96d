package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Player struct {
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
