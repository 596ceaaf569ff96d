package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/bwmarrin/discordgo"
)

var ErrRoleNotFound = errors.New("role not found")

type DiscordSession interface {
	GuildRoles(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Role, error)
	GuildRoleCreate(guildID string, data *discordgo.RoleParams, options ...discordgo.RequestOption) (*discordgo.Role, error)
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
}

// Adapter maps tier tags onto guild roles of the same name.
type Adapter struct {
	session DiscordSession
	cache   *roleCache
}

func NewAdapter(session DiscordSession) *Adapter {
	return &Adapter{
		session: session,
		cache:   newRoleCache(),
	}
}

// CurrentTags returns the names of every role the member holds.
func (a *Adapter) CurrentTags(ctx context.Context, guildID, userID string) ([]string, error) {
	member, err := a.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("Failed to fetch guild member", "guild_id", guildID, "discord_id", userID, "error", err)
		return nil, fmt.Errorf("fetch member: %w", err)
	}

	roles, err := a.roles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(member.Roles))
	for _, id := range member.Roles {
		if name, ok := roles.byID[id]; ok {
			tags = append(tags, name)
		}
	}
	return tags, nil
}

func (a *Adapter) Add(ctx context.Context, guildID, userID, tag string) error {
	roleID, err := a.resolveRoleID(ctx, guildID, tag)
	if err != nil {
		return err
	}

	if err := a.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		a.cache.Invalidate(guildID)
		return fmt.Errorf("add role %q: %w", tag, err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, guildID, userID, tag string) error {
	roleID, err := a.resolveRoleID(ctx, guildID, tag)
	if errors.Is(err, ErrRoleNotFound) {
		// A role that does not exist cannot be held.
		return nil
	}
	if err != nil {
		return err
	}

	if err := a.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		a.cache.Invalidate(guildID)
		return fmt.Errorf("remove role %q: %w", tag, err)
	}
	return nil
}

// EnsureTags creates a role for every tag the guild does not have yet and
// returns the names it created.
func (a *Adapter) EnsureTags(ctx context.Context, guildID string, tags []string) ([]string, error) {
	a.cache.Invalidate(guildID)
	roles, err := a.roles(ctx, guildID)
	if err != nil {
		return nil, err
	}

	var created []string
	var errs []error
	for _, tag := range tags {
		if _, ok := roles.byName[tag]; ok || slices.Contains(created, tag) {
			continue
		}

		mentionable := false
		_, err := a.session.GuildRoleCreate(guildID, &discordgo.RoleParams{
			Name:        tag,
			Mentionable: &mentionable,
		}, discordgo.WithContext(ctx))
		if err != nil {
			slog.Error("Failed to create role", "guild_id", guildID, "role", tag, "error", err)
			errs = append(errs, fmt.Errorf("create role %q: %w", tag, err))
			continue
		}

		slog.Info("Created role", "guild_id", guildID, "role", tag)
		created = append(created, tag)
	}

	if len(created) > 0 {
		a.cache.Invalidate(guildID)
	}
	return created, errors.Join(errs...)
}

func (a *Adapter) resolveRoleID(ctx context.Context, guildID, tag string) (string, error) {
	roles, err := a.roles(ctx, guildID)
	if err != nil {
		return "", err
	}
	if id, ok := roles.byName[tag]; ok {
		return id, nil
	}

	// The role may have been created since the cache was filled.
	a.cache.Invalidate(guildID)
	roles, err = a.roles(ctx, guildID)
	if err != nil {
		return "", err
	}
	if id, ok := roles.byName[tag]; ok {
		return id, nil
	}

	return "", fmt.Errorf("%w: %s", ErrRoleNotFound, tag)
}

func (a *Adapter) roles(ctx context.Context, guildID string) (*guildRoles, error) {
	if roles, ok := a.cache.Get(guildID); ok {
		return roles, nil
	}

	list, err := a.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		slog.Error("Failed to fetch guild roles", "guild_id", guildID, "error", err)
		return nil, fmt.Errorf("fetch roles: %w", err)
	}

	return a.cache.Set(guildID, list), nil
}
