package commands

import (
	"context"

	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/services/progress"

	"github.com/bwmarrin/discordgo"
)

type DiscordSession interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type CommandSession interface {
	ApplicationCommandCreate(appID, guildID string, cmd *discordgo.ApplicationCommand, options ...discordgo.RequestOption) (*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
}

// ProgressService is the part of progress.Service the commands drive.
type ProgressService interface {
	Enroll(ctx context.Context, guildID, externalID, displayName string) (*progress.Result, error)
	Update(ctx context.Context, guildID, externalID, displayName string) (*progress.Result, error)
	Points(ctx context.Context, externalID string) (*progress.Standing, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	DonatorLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	GrantPoints(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error)
	AddDonation(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error)
	Rebaseline(ctx context.Context, guildID, externalID string) (*progress.Result, error)
	RefreshAll(ctx context.Context, guildID string) (progress.RefreshSummary, error)
	EnsureRoles(ctx context.Context, guildID string) ([]string, error)
}
