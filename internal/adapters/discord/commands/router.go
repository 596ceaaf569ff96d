package commands

import (
	"log/slog"

	"clan-points-tracker/internal/adapters/discord/formatting"
	"clan-points-tracker/internal/adapters/metrics"

	"github.com/bwmarrin/discordgo"
)

type CommandHandler func(s DiscordSession, i *discordgo.InteractionCreate)

// Router dispatches slash command interactions to the handler registered
// under the command name. Other interaction types are ignored.
type Router struct {
	routes map[string]CommandHandler
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[string]CommandHandler),
	}
}

// Register wraps handler so that the first middleware listed runs outermost.
func (r *Router) Register(name string, handler CommandHandler, middleware ...Middleware) {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	r.routes[name] = handler
}

func (r *Router) Handle(s DiscordSession, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	handler, ok := r.routes[name]
	if !ok {
		slog.Warn("No handler found for command", "name", name, "guild_id", i.GuildID)
		metrics.CommandsHandled.WithLabelValues(name, "unknown").Inc()
		return
	}

	slog.Debug("Dispatching command", "name", name, "guild_id", i.GuildID)
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("Command handler panicked", "name", name, "panic", rec)
			metrics.CommandsHandled.WithLabelValues(name, "panic").Inc()
			respond(s, i, formatting.MsgInternalError, true)
		}
	}()

	handler(s, i)
	metrics.CommandsHandled.WithLabelValues(name, "handled").Inc()
}

// HandleFunc adapts the router to a discordgo event handler.
func (r *Router) HandleFunc() func(*discordgo.Session, *discordgo.InteractionCreate) {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		r.Handle(s, i)
	}
}
