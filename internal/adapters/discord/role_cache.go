package discord

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// guildRoles indexes one guild's roles by name and by ID.
type guildRoles struct {
	byName map[string]string
	byID   map[string]string
}

func newGuildRoles(roles []*discordgo.Role) *guildRoles {
	g := &guildRoles{
		byName: make(map[string]string, len(roles)),
		byID:   make(map[string]string, len(roles)),
	}
	for _, role := range roles {
		// First role wins when a guild has duplicate names.
		if _, dup := g.byName[role.Name]; !dup {
			g.byName[role.Name] = role.ID
		}
		g.byID[role.ID] = role.Name
	}
	return g
}

type roleCache struct {
	mu    sync.RWMutex
	items map[string]*guildRoles
}

func newRoleCache() *roleCache {
	return &roleCache{
		items: make(map[string]*guildRoles),
	}
}

func (c *roleCache) Get(guildID string) (*guildRoles, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	roles, ok := c.items[guildID]
	return roles, ok
}

func (c *roleCache) Set(guildID string, roles []*discordgo.Role) *guildRoles {
	indexed := newGuildRoles(roles)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[guildID] = indexed
	return indexed
}

func (c *roleCache) Invalidate(guildID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, guildID)
}
