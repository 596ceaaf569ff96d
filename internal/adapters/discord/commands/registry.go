package commands

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

var adminPerms = int64(discordgo.PermissionAdministrator)

// Command names.
const (
	CmdLink        = "link"
	CmdUpdate      = "update"
	CmdPoints      = "points"
	CmdLeaderboard = "leaderboard"
	CmdDonators    = "donators"
	CmdGrantPoints = "grant-points"
	CmdAddDonation = "add-donation"
	CmdRebaseline  = "rebaseline"
	CmdRefreshAll  = "refresh-all"
	CmdSetupRoles  = "setup-roles"
)

func GetApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CmdLink,
			Description: "Link your RuneScape account and start earning clan points",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("rsn", "Your RuneScape name", true),
			},
		},
		{
			Name:        CmdUpdate,
			Description: "Fetch your latest progress and update your clan points",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("rsn", "RuneScape name to score, defaults to your linked name", false),
			},
		},
		{
			Name:        CmdPoints,
			Description: "Show clan points and rank",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("member", "Member to look up (defaults to you)", false),
			},
		},
		{
			Name:        CmdLeaderboard,
			Description: "Show the clan points leaderboard",
		},
		{
			Name:        CmdDonators,
			Description: "Show the top donators",
		},
		{
			Name:                     CmdGrantPoints,
			Description:              "Grant bonus points to a member",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("member", "Member receiving the points", true),
				integerOption("amount", "Points to grant", true),
			},
		},
		{
			Name:                     CmdAddDonation,
			Description:              "Record a donation from a member",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("member", "Member who donated", true),
				integerOption("amount", "Donated amount", true),
			},
		},
		{
			Name:                     CmdRebaseline,
			Description:              "Bank a member's progress and measure from a fresh snapshot",
			DefaultMemberPermissions: &adminPerms,
			Options: []*discordgo.ApplicationCommandOption{
				userOption("member", "Member to re-baseline", true),
			},
		},
		{
			Name:                     CmdRefreshAll,
			Description:              "Update every linked member",
			DefaultMemberPermissions: &adminPerms,
		},
		{
			Name:                     CmdSetupRoles,
			Description:              "Create any missing rank, donator and badge roles",
			DefaultMemberPermissions: &adminPerms,
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func integerOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	minValue := 1.0
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        name,
		Description: description,
		Required:    required,
		MinValue:    &minValue,
	}
}

func RegisterCommands(session CommandSession, commands []*discordgo.ApplicationCommand, appID, guildID string) []*discordgo.ApplicationCommand {
	registered := make([]*discordgo.ApplicationCommand, 0, len(commands))

	for _, cmd := range commands {
		result, err := session.ApplicationCommandCreate(appID, guildID, cmd)
		if err != nil {
			slog.Error("Cannot create command", "name", cmd.Name, "error", err)
			continue
		}
		registered = append(registered, result)
		slog.Info("Registered command", "name", cmd.Name, "guild", guildID)
	}

	return registered
}

func CleanupCommands(session CommandSession, commands []*discordgo.ApplicationCommand, appID, guildID string) {
	for _, cmd := range commands {
		if cmd == nil {
			continue
		}
		if err := session.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			slog.Error("Cannot delete command", "name", cmd.Name, "error", err)
		}
	}
}
