package discord

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
)

type stubScrimService struct {
	application.ScrimService
	rec *models.Recruitment
}

func (s *stubScrimService) GetRecruitment(id int64) (*models.Recruitment, error) {
	if s.rec == nil || s.rec.ID != id {
		return nil, fmt.Errorf("recruitment not found")
	}
	return s.rec, nil
}

func memberInteraction(userID string, permissions int64) *discordgo.Interaction {
	return &discordgo.Interaction{
		GuildID: "g1",
		Member: &discordgo.Member{
			User:        &discordgo.User{ID: userID},
			Permissions: permissions,
		},
	}
}

func TestCanManageRecruitment(t *testing.T) {
	bot := &Bot{
		adminIDs: map[string]struct{}{"admin1": {}},
		services: &application.Service{
			Scrim: &stubScrimService{rec: &models.Recruitment{ID: 7, GuildID: "g1", CreatorID: "organizer"}},
		},
	}

	cases := []struct {
		name string
		i    *discordgo.Interaction
		want bool
	}{
		{"creator", memberInteraction("organizer", 0), true},
		{"stranger", memberInteraction("bystander", 0), false},
		{"manage server permission", memberInteraction("mod", discordgo.PermissionManageServer), true},
		{"configured admin", memberInteraction("admin1", 0), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := bot.canManageRecruitment(tc.i, 7); got != tc.want {
				t.Errorf("canManageRecruitment = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCanManageRecruitmentMissingRecruitment(t *testing.T) {
	bot := &Bot{
		adminIDs: map[string]struct{}{},
		services: &application.Service{Scrim: &stubScrimService{}},
	}

	if bot.canManageRecruitment(memberInteraction("anyone", 0), 99) {
		t.Error("unknown recruitment must not be manageable by non-admins")
	}
}
