package commands

import (
	"testing"

	"clan-points-tracker/internal/adapters/discord/formatting"

	"github.com/bwmarrin/discordgo"
)

func TestWithAdmin(t *testing.T) {
	tests := []struct {
		name       string
		member     *discordgo.Member
		wantCalled bool
	}{
		{"admin", &discordgo.Member{Permissions: discordgo.PermissionAdministrator}, true},
		{"admin with other permissions", &discordgo.Member{Permissions: discordgo.PermissionAdministrator | discordgo.PermissionManageServer}, true},
		{"no permissions", &discordgo.Member{}, false},
		{"manage server only", &discordgo.Member{Permissions: discordgo.PermissionManageServer}, false},
		{"kick and ban", &discordgo.Member{Permissions: discordgo.PermissionKickMembers | discordgo.PermissionBanMembers}, false},
		{"direct message", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := &mockDiscordSession{}
			called := false

			handler := WithAdmin(func(s DiscordSession, i *discordgo.InteractionCreate) {
				called = true
			})
			handler(session, &discordgo.InteractionCreate{
				Interaction: &discordgo.Interaction{
					Type:   discordgo.InteractionApplicationCommand,
					Member: tt.member,
				},
			})

			if called != tt.wantCalled {
				t.Fatalf("called = %v, want %v", called, tt.wantCalled)
			}
			if tt.wantCalled {
				if session.lastInteractionResponse != nil {
					t.Error("no response should be sent for admins")
				}
				return
			}
			assertAdminRequiredResponse(t, session)
		})
	}
}

func TestWithAdmin_PassesSessionAndInteraction(t *testing.T) {
	session := &mockDiscordSession{}
	interaction := makeCommandInteraction(CmdRefreshAll)

	var gotSession DiscordSession
	var gotInteraction *discordgo.InteractionCreate

	WithAdmin(func(s DiscordSession, i *discordgo.InteractionCreate) {
		gotSession = s
		gotInteraction = i
	})(session, interaction)

	if gotSession != session {
		t.Error("handler should receive the session")
	}
	if gotInteraction != interaction {
		t.Error("handler should receive the interaction")
	}
}

func TestMiddleware_TypeSignature(t *testing.T) {
	var _ Middleware = WithAdmin
}

func assertAdminRequiredResponse(t *testing.T, session *mockDiscordSession) {
	t.Helper()
	if session.lastInteractionResponse == nil {
		t.Fatal("expected error response to be sent")
	}
	if session.lastInteractionResponse.Data.Content != formatting.MsgAdminRequired {
		t.Errorf("expected message %q, got %q", formatting.MsgAdminRequired, session.lastInteractionResponse.Data.Content)
	}
	if session.lastInteractionResponse.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Error("error response should be ephemeral")
	}
}
