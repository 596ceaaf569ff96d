package commands

import (
	"context"

	"clan-points-tracker/internal/core/domain"
	"clan-points-tracker/internal/core/services/progress"

	"github.com/bwmarrin/discordgo"
)

type mockDiscordSession struct {
	interactionRespondFunc func(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	responseEditFunc       func(interaction *discordgo.Interaction, edit *discordgo.WebhookEdit) error

	lastInteractionResponse *discordgo.InteractionResponse
	lastEdit                *discordgo.WebhookEdit
}

func (m *mockDiscordSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, opts ...discordgo.RequestOption) error {
	m.lastInteractionResponse = resp
	if m.interactionRespondFunc != nil {
		return m.interactionRespondFunc(interaction, resp)
	}
	return nil
}

func (m *mockDiscordSession) InteractionResponseEdit(interaction *discordgo.Interaction, edit *discordgo.WebhookEdit, opts ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.lastEdit = edit
	if m.responseEditFunc != nil {
		if err := m.responseEditFunc(interaction, edit); err != nil {
			return nil, err
		}
	}
	return &discordgo.Message{}, nil
}

// editContent returns the text of the last deferred reply edit.
func (m *mockDiscordSession) editContent() string {
	if m.lastEdit == nil || m.lastEdit.Content == nil {
		return ""
	}
	return *m.lastEdit.Content
}

type mockProgressService struct {
	enrollFunc             func(ctx context.Context, guildID, externalID, displayName string) (*progress.Result, error)
	updateFunc             func(ctx context.Context, guildID, externalID, displayName string) (*progress.Result, error)
	pointsFunc             func(ctx context.Context, externalID string) (*progress.Standing, error)
	leaderboardFunc        func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	donatorLeaderboardFunc func(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	grantPointsFunc        func(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error)
	addDonationFunc        func(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error)
	rebaselineFunc         func(ctx context.Context, guildID, externalID string) (*progress.Result, error)
	refreshAllFunc         func(ctx context.Context, guildID string) (progress.RefreshSummary, error)
	ensureRolesFunc        func(ctx context.Context, guildID string) ([]string, error)
}

func (m *mockProgressService) Enroll(ctx context.Context, guildID, externalID, displayName string) (*progress.Result, error) {
	if m.enrollFunc != nil {
		return m.enrollFunc(ctx, guildID, externalID, displayName)
	}
	return nil, nil
}

func (m *mockProgressService) Update(ctx context.Context, guildID, externalID, displayName string) (*progress.Result, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, guildID, externalID, displayName)
	}
	return nil, nil
}

func (m *mockProgressService) Points(ctx context.Context, externalID string) (*progress.Standing, error) {
	if m.pointsFunc != nil {
		return m.pointsFunc(ctx, externalID)
	}
	return nil, nil
}

func (m *mockProgressService) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if m.leaderboardFunc != nil {
		return m.leaderboardFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockProgressService) DonatorLeaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	if m.donatorLeaderboardFunc != nil {
		return m.donatorLeaderboardFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockProgressService) GrantPoints(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error) {
	if m.grantPointsFunc != nil {
		return m.grantPointsFunc(ctx, guildID, externalID, amount)
	}
	return nil, nil
}

func (m *mockProgressService) AddDonation(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error) {
	if m.addDonationFunc != nil {
		return m.addDonationFunc(ctx, guildID, externalID, amount)
	}
	return nil, nil
}

func (m *mockProgressService) Rebaseline(ctx context.Context, guildID, externalID string) (*progress.Result, error) {
	if m.rebaselineFunc != nil {
		return m.rebaselineFunc(ctx, guildID, externalID)
	}
	return nil, nil
}

func (m *mockProgressService) RefreshAll(ctx context.Context, guildID string) (progress.RefreshSummary, error) {
	if m.refreshAllFunc != nil {
		return m.refreshAllFunc(ctx, guildID)
	}
	return progress.RefreshSummary{}, nil
}

func (m *mockProgressService) EnsureRoles(ctx context.Context, guildID string) ([]string, error) {
	if m.ensureRolesFunc != nil {
		return m.ensureRolesFunc(ctx, guildID)
	}
	return nil, nil
}

func makeCommandInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild-1",
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user-1", Username: "zezima"},
				Permissions: discordgo.PermissionAdministrator,
			},
			Data: discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func userOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionUser, Value: id}
}

// intOpt mirrors the float64 Discord's JSON payload decodes integers into.
func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}
