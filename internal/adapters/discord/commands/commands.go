package commands

import (
	"context"
	"log/slog"
	"time"

	"clan-points-tracker/internal/adapters/discord/formatting"
	"clan-points-tracker/internal/config"
	"clan-points-tracker/internal/core/services/progress"

	"github.com/bwmarrin/discordgo"
)

const (
	// Interaction tokens stay valid for 15 minutes after a deferred reply.
	commandTimeout = 2 * time.Minute
	bulkTimeout    = 14 * time.Minute
)

type BotHandler struct {
	Config  *config.Config
	Service ProgressService
}

func ReadyHandler(session *discordgo.Session, ready *discordgo.Ready) {
	slog.Info("Clan Points Tracker is online!", "user", ready.User.Username, "guilds", len(ready.Guilds))
}

func (h *BotHandler) Link(s DiscordSession, i *discordgo.InteractionCreate) {
	name := getStringOption(i.ApplicationCommandData().Options, "rsn")
	if name == "" {
		respond(s, i, formatting.MsgNameRequired, true)
		return
	}
	if deferResponse(s, i, false) != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	result, err := h.Service.Enroll(ctx, i.GuildID, invoker(i).ID, name)
	if err != nil {
		editResponse(s, i, userMessage(logError("link", err), true))
		return
	}

	if !result.Enrolled {
		editResponse(s, i, formatting.MsgRelinked(result.Record.DisplayName))
		return
	}
	msg := formatting.MsgLinked(result.Record.DisplayName, result.Record.Score, result.Classification.Rank.Tag)
	editResponse(s, i, withRoleNotes(msg, result))
}

func (h *BotHandler) Update(s DiscordSession, i *discordgo.InteractionCreate) {
	name := getStringOption(i.ApplicationCommandData().Options, "rsn")
	if deferResponse(s, i, false) != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	result, err := h.Service.Update(ctx, i.GuildID, invoker(i).ID, name)
	if err != nil {
		editResponse(s, i, userMessage(logError("update", err), true))
		return
	}

	var msg string
	if result.Enrolled {
		msg = formatting.MsgLinked(result.Record.DisplayName, result.Record.Score, result.Classification.Rank.Tag)
	} else {
		msg = formatting.MsgUpdated(result.Record.DisplayName, result.Awarded, result.Record.Score, result.Classification.Rank.Tag)
	}
	editResponse(s, i, withRoleNotes(msg, result))
}

func (h *BotHandler) Points(s DiscordSession, i *discordgo.InteractionCreate) {
	self := invoker(i).ID
	target := getUserOption(i.ApplicationCommandData().Options, "member")
	if target == "" {
		target = self
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	standing, err := h.Service.Points(ctx, target)
	if err != nil {
		respond(s, i, userMessage(logError("points", err), target == self), true)
		return
	}

	rec := standing.Record
	var donator string
	if standing.Donator != nil {
		donator = standing.Donator.Tag
	}
	respond(s, i, formatting.MsgPoints(rec.DisplayName, rec.Score, rec.ProgressPoints, rec.BonusPoints, rec.DonationTotal, standing.Rank.Tag, donator), false)
}

func (h *BotHandler) Leaderboard(s DiscordSession, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	entries, err := h.Service.Leaderboard(ctx, h.Config.LeaderboardSize)
	if err != nil {
		respond(s, i, userMessage(logError("leaderboard", err), true), true)
		return
	}
	if len(entries) == 0 {
		respond(s, i, formatting.MsgLeaderboardEmpty, false)
		return
	}
	respond(s, i, formatting.MsgLeaderboard("Clan Points Leaderboard", entries), false)
}

func (h *BotHandler) Donators(s DiscordSession, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	entries, err := h.Service.DonatorLeaderboard(ctx, h.Config.LeaderboardSize)
	if err != nil {
		respond(s, i, userMessage(logError("donators", err), true), true)
		return
	}
	if len(entries) == 0 {
		respond(s, i, formatting.MsgNoDonators, false)
		return
	}
	respond(s, i, formatting.MsgLeaderboard("Top Donators", entries), false)
}

func (h *BotHandler) GrantPoints(s DiscordSession, i *discordgo.InteractionCreate) {
	h.adjust(s, i, "grant-points", h.Service.GrantPoints, func(r *progress.Result, amount int) string {
		return formatting.MsgGranted(r.Record.DisplayName, amount, r.Record.Score)
	})
}

func (h *BotHandler) AddDonation(s DiscordSession, i *discordgo.InteractionCreate) {
	h.adjust(s, i, "add-donation", h.Service.AddDonation, func(r *progress.Result, amount int) string {
		return formatting.MsgDonationAdded(r.Record.DisplayName, amount, r.Record.DonationTotal, r.Record.Score)
	})
}

type adjustFunc func(ctx context.Context, guildID, externalID string, amount int) (*progress.Result, error)

func (h *BotHandler) adjust(s DiscordSession, i *discordgo.InteractionCreate, op string, apply adjustFunc, render func(*progress.Result, int) string) {
	opts := i.ApplicationCommandData().Options
	member := getUserOption(opts, "member")
	amount, ok := getIntOption(opts, "amount")
	if member == "" || !ok || amount <= 0 {
		respond(s, i, formatting.MsgInvalidAmount, true)
		return
	}
	if deferResponse(s, i, true) != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	result, err := apply(ctx, i.GuildID, member, amount)
	if err != nil {
		editResponse(s, i, userMessage(logError(op, err), false))
		return
	}

	slog.Info("Admin adjusted player", "op", op, "discord_id", member, "amount", amount, "by", invoker(i).ID)
	editResponse(s, i, withRoleNotes(render(result, amount), result))
}

func (h *BotHandler) Rebaseline(s DiscordSession, i *discordgo.InteractionCreate) {
	member := getUserOption(i.ApplicationCommandData().Options, "member")
	if member == "" {
		respond(s, i, formatting.MsgMemberNotLinked, true)
		return
	}
	if deferResponse(s, i, true) != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	result, err := h.Service.Rebaseline(ctx, i.GuildID, member)
	if err != nil {
		editResponse(s, i, userMessage(logError("rebaseline", err), false))
		return
	}
	editResponse(s, i, formatting.MsgRebaselined(result.Record.DisplayName, result.Record.Score))
}

func (h *BotHandler) RefreshAll(s DiscordSession, i *discordgo.InteractionCreate) {
	if deferResponse(s, i, true) != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), bulkTimeout)
	defer cancel()

	summary, err := h.Service.RefreshAll(ctx, i.GuildID)
	if err != nil {
		editResponse(s, i, userMessage(logError("refresh-all", err), false))
		return
	}
	editResponse(s, i, formatting.MsgRefreshSummary(summary.Total, summary.Updated, summary.Failed))
}

func (h *BotHandler) SetupRoles(s DiscordSession, i *discordgo.InteractionCreate) {
	if deferResponse(s, i, true) != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	created, err := h.Service.EnsureRoles(ctx, i.GuildID)
	switch {
	case err != nil && len(created) == 0:
		editResponse(s, i, userMessage(logError("setup-roles", err), false))
	case err != nil:
		logError("setup-roles", err)
		editResponse(s, i, formatting.MsgRolesCreated(created)+"\n"+formatting.MsgRoleSyncFailed)
	case len(created) == 0:
		editResponse(s, i, formatting.MsgRolesUpToDate)
	default:
		editResponse(s, i, formatting.MsgRolesCreated(created))
	}
}

func withRoleNotes(msg string, result *progress.Result) string {
	if changes := formatting.MsgRoleChanges(result.Plan.Add, result.Plan.Remove); changes != "" {
		msg += "\n" + changes
	}
	if result.SyncErr != nil {
		slog.Warn("Role sync incomplete", "discord_id", result.Record.ExternalID, "error", result.SyncErr)
		msg += "\n" + formatting.MsgRoleSyncFailed
	}
	return msg
}
