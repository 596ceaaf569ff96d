package commands

import (
	"errors"
	"log/slog"
	"strings"

	"clan-points-tracker/internal/adapters/discord/formatting"
	"clan-points-tracker/internal/adapters/metrics"
	"clan-points-tracker/internal/core/domain"

	"github.com/bwmarrin/discordgo"
)

func respond(s DiscordSession, i *discordgo.InteractionCreate, msg string, ephemeral bool) {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
	recordSent(err)
}

// deferResponse acknowledges the interaction so slow work can finish within
// the interaction token lifetime instead of Discord's three second window.
func deferResponse(s DiscordSession, i *discordgo.InteractionCreate, ephemeral bool) error {
	var flags discordgo.MessageFlags
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	})
	if err != nil {
		slog.Error("Failed to defer interaction", "error", err)
	}
	return err
}

func editResponse(s DiscordSession, i *discordgo.InteractionCreate, msg string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
	if err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
	recordSent(err)
}

func recordSent(err error) {
	if err != nil {
		metrics.DiscordMessagesSent.WithLabelValues("failure").Inc()
		return
	}
	metrics.DiscordMessagesSent.WithLabelValues("success").Inc()
}

// logError records failures that are not the member's fault and passes err
// through.
func logError(command string, err error) error {
	if domain.IsUserError(err) {
		slog.Info("Command rejected", "command", command, "reason", err)
		return err
	}
	slog.Error("Command failed", "command", command, "error", err)
	return err
}

// userMessage turns a service error into the text shown to the member.
// self reports whether the error is about the invoking member.
func userMessage(err error, self bool) string {
	switch {
	case errors.Is(err, domain.ErrUnenrolledPlayer):
		return formatting.MsgNotLinked
	case errors.Is(err, domain.ErrPlayerNotFound):
		if self {
			return formatting.MsgNotLinked
		}
		return formatting.MsgMemberNotLinked
	case errors.Is(err, domain.ErrSnapshotUnavailable):
		return formatting.MsgSnapshotUnavailable
	case errors.Is(err, domain.ErrInvalidAmount):
		return formatting.MsgInvalidAmount
	case errors.Is(err, domain.ErrInvalidDisplayName):
		return formatting.MsgNameRequired
	default:
		return formatting.MsgInternalError
	}
}

func invoker(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func getStringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return strings.TrimSpace(opt.StringValue())
		}
	}
	return ""
}

func getIntOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) (int, bool) {
	for _, opt := range opts {
		if opt.Name == name {
			return int(opt.IntValue()), true
		}
	}
	return 0, false
}

// getUserOption returns the ID of a user option. Resolved user data is not
// needed, so no session lookup happens.
func getUserOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			if id, ok := opt.Value.(string); ok {
				return id
			}
		}
	}
	return ""
}
