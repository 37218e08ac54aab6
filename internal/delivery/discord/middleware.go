package discord

import (
	"github.com/bwmarrin/discordgo"
)

// isAdmin accepts explicitly configured admin IDs and anyone holding the
// Manage Server permission in the interaction's guild.
func (b *Bot) isAdmin(i *discordgo.Interaction) bool {
	user := interactionUser(i)
	if user == nil {
		return false
	}
	if _, ok := b.adminIDs[user.ID]; ok {
		return true
	}
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionManageServer != 0
}

func (b *Bot) ensureAdmin(s *discordgo.Session, i *discordgo.Interaction, handler func(*discordgo.Session, *discordgo.Interaction)) {
	if !b.isAdmin(i) {
		b.respondMessage(s, i, "관리자만 사용할 수 있는 명령어입니다.", true)
		return
	}
	handler(s, i)
}

// canManageRecruitment admits admins and the recruitment's creator.
func (b *Bot) canManageRecruitment(i *discordgo.Interaction, recruitmentID int64) bool {
	if b.isAdmin(i) {
		return true
	}
	rec, err := b.services.Scrim.GetRecruitment(recruitmentID)
	if err != nil {
		return false
	}
	user := interactionUser(i)
	return user != nil && rec.CreatorID == user.ID
}

func (b *Bot) ensureRecruitmentManager(s *discordgo.Session, i *discordgo.Interaction, recruitmentID int64, handler func(*discordgo.Session, *discordgo.Interaction)) {
	if !b.canManageRecruitment(i, recruitmentID) {
		b.respondMessage(s, i, "모집을 등록한 사람이나 관리자만 조작할 수 있습니다.", true)
		return
	}
	handler(s, i)
}

// ensureRegistered gates member-facing flows on prior /register.
func (b *Bot) ensureRegistered(s *discordgo.Session, i *discordgo.Interaction, handler func(*discordgo.Session, *discordgo.Interaction)) {
	user := interactionUser(i)
	registered, err := b.services.Member.IsRegistered(i.GuildID, user.ID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	if !registered {
		b.respondMessage(s, i, "먼저 /register 로 멤버 등록을 해주세요.", true)
		return
	}
	handler(s, i)
}
