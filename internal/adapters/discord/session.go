package discord

import (
	"log/slog"

	"clan-points-tracker/internal/config"

	"github.com/bwmarrin/discordgo"
)

// restRetries bounds retries of a single role edit. A bulk refresh issues
// many edits in a row and regularly runs into the per-route rate limit.
const restRetries = 5

// NewSession builds the bot session used for slash commands and role
// management. It is not opened here.
func NewSession(cfg *config.Config) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		slog.Error("Failed to create discord session", "error", err)
		return nil, err
	}

	// Interactions and role edits need guild events only; member lookups
	// go through REST.
	session.Identify.Intents = discordgo.IntentsGuilds
	session.ShouldRetryOnRateLimit = true
	session.MaxRestRetries = restRetries

	return session, nil
}
