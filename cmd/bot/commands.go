package main

import (
	"clan-points-tracker/internal/adapters/discord/commands"
)

func registerRoutes(router *commands.Router, h *commands.BotHandler) {
	router.Register(commands.CmdLink, h.Link)
	router.Register(commands.CmdUpdate, h.Update)
	router.Register(commands.CmdPoints, h.Points)
	router.Register(commands.CmdLeaderboard, h.Leaderboard)
	router.Register(commands.CmdDonators, h.Donators)

	router.Register(commands.CmdGrantPoints, h.GrantPoints, commands.WithAdmin)
	router.Register(commands.CmdAddDonation, h.AddDonation, commands.WithAdmin)
	router.Register(commands.CmdRebaseline, h.Rebaseline, commands.WithAdmin)
	router.Register(commands.CmdRefreshAll, h.RefreshAll, commands.WithAdmin)
	router.Register(commands.CmdSetupRoles, h.SetupRoles, commands.WithAdmin)
}
