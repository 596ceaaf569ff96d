package formatting

import (
	"strings"

	"clan-points-tracker/internal/core/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	MsgAdminRequired       = "You need Administrator permissions to use this command."
	MsgNameRequired        = "RuneScape name is required."
	MsgInvalidAmount       = "Amount must be a positive whole number."
	MsgNotLinked           = "You are not linked yet. Use `/link` with your RuneScape name first."
	MsgMemberNotLinked     = "That member is not linked yet."
	MsgSnapshotUnavailable = "Could not fetch your progress right now. Please try again in a few minutes."
	MsgInternalError       = "Something went wrong. Please try again later."
	MsgLeaderboardEmpty    = "Nobody has any points yet."
	MsgNoDonators          = "No donations have been recorded yet."
	MsgRolesUpToDate       = "All rank and badge roles already exist."
	MsgRoleSyncFailed      = "Some roles could not be updated. Running `/update` again will retry."
)

var printer = message.NewPrinter(language.English)

// Number renders n with thousands separators.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

func MsgLinked(name string, score int, rank string) string {
	return printer.Sprintf("Linked **%s**. Your progress from today on earns points. Score: **%d**, rank **%s**.", name, score, rank)
}

func MsgRelinked(name string) string {
	return printer.Sprintf("Display name updated to **%s**.", name)
}

func MsgUpdated(name string, awarded, score int, rank string) string {
	if awarded <= 0 {
		return printer.Sprintf("No new progress for **%s**. Score: **%d**, rank **%s**.", name, score, rank)
	}
	return printer.Sprintf("**%s** earned **%d** points! Score: **%d**, rank **%s**.", name, awarded, score, rank)
}

func MsgRoleChanges(added, removed []string) string {
	var parts []string
	if len(added) > 0 {
		parts = append(parts, "Added: "+strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		parts = append(parts, "Removed: "+strings.Join(removed, ", "))
	}
	return strings.Join(parts, "\n")
}

func MsgPoints(name string, score, progress, bonus, donations int, rank, donator string) string {
	msg := printer.Sprintf("**%s**: **%d** points (progress %d, bonus %d), rank **%s**", name, score, progress, bonus, rank)
	if donator != "" {
		msg += printer.Sprintf("\nDonated %d, **%s**", donations, donator)
	}
	return msg
}

func MsgLeaderboard(title string, entries []domain.LeaderboardEntry) string {
	var b strings.Builder
	b.WriteString("**" + title + "**\n")
	for _, e := range entries {
		b.WriteString(printer.Sprintf("%d. %s: %d\n", e.Rank, e.DisplayName, e.Value))
	}
	return b.String()
}

func MsgGranted(name string, amount, score int) string {
	return printer.Sprintf("Granted **%d** points to **%s**. New score: **%d**.", amount, name, score)
}

func MsgDonationAdded(name string, amount, total, score int) string {
	return printer.Sprintf("Recorded a donation of **%d** from **%s** (total %d). New score: **%d**.", amount, name, total, score)
}

func MsgRebaselined(name string, score int) string {
	return printer.Sprintf("Re-baselined **%s**. Progress is measured from today and the score stays at **%d**.", name, score)
}

func MsgRefreshSummary(total, updated, failed int) string {
	return printer.Sprintf("Refreshed %d of %d players (%d failed).", updated, total, failed)
}

func MsgRolesCreated(created []string) string {
	return "Created roles: " + strings.Join(created, ", ")
}
