package domain

import "time"

type PlayerRecord struct {
	ExternalID     string
	DisplayName    string
	Baseline       StatsSnapshot
	ProgressPoints int
	BonusPoints    int
	DonationTotal  int
	Score          int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type LeaderboardEntry struct {
	Rank        int
	ExternalID  string
	DisplayName string
	Value       int
}
