package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/models"
)

func (b *Bot) handleRegister(s *discordgo.Session, i *discordgo.Interaction) {
	options := i.ApplicationCommandData().Options
	battleTag := strings.TrimSpace(options[0].StringValue())
	tier, ok := models.ParseTier(options[1].StringValue())
	if !ok {
		b.respondMessage(s, i, "알 수 없는 티어입니다.", true)
		return
	}

	user := interactionUser(i)
	if err := b.services.Member.Register(i.GuildID, user.ID, battleTag, tier); err != nil {
		b.respondMessage(s, i, "등록 실패: "+err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("%s 님 등록 완료! (%s / %s)", mention(user.ID), battleTag, tier.DisplayName()), false)
}

func (b *Bot) handleTier(s *discordgo.Session, i *discordgo.Interaction) {
	tier, ok := models.ParseTier(i.ApplicationCommandData().Options[0].StringValue())
	if !ok {
		b.respondMessage(s, i, "알 수 없는 티어입니다.", true)
		return
	}

	user := interactionUser(i)
	if err := b.services.Member.SetTier(i.GuildID, user.ID, tier); err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("티어가 **%s** 로 갱신되었습니다.", tier.DisplayName()), true)
}

func (b *Bot) handleMembers(s *discordgo.Session, i *discordgo.Interaction) {
	members, err := b.services.Member.Members(i.GuildID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	if len(members) == 0 {
		b.respondMessage(s, i, "등록된 멤버가 없습니다. /register 로 등록해주세요.", false)
		return
	}

	var sb strings.Builder
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("%s — **%s** (%s)\n", mention(m.UserID), m.BattleTag, m.Tier.DisplayName()))
	}
	msg := sb.String()
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageTruncation] + "...\n(목록 잘림)"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("클랜 멤버 (%d명)", len(members)),
		Description: msg,
		Color:       colorBlue,
	}
	b.respondEmbed(s, i, embed, nil, false)
}

func (b *Bot) handleClan(s *discordgo.Session, i *discordgo.Interaction) {
	sub := i.ApplicationCommandData().Options[0]
	switch sub.Name {
	case "set":
		b.ensureAdmin(s, i, func(s *discordgo.Session, i *discordgo.Interaction) {
			name := strings.TrimSpace(sub.Options[0].StringValue())
			if err := b.services.Member.SetClanName(i.GuildID, name); err != nil {
				b.respondMessage(s, i, err.Error(), true)
				return
			}
			b.respondMessage(s, i, fmt.Sprintf("클랜 이름이 **%s** 로 설정되었습니다.", name), false)
		})
	case "list":
		clans, err := b.services.Member.KnownClans(i.GuildID)
		if err != nil {
			b.respondMessage(s, i, "오류: "+err.Error(), true)
			return
		}
		if len(clans) == 0 {
			b.respondMessage(s, i, "아직 상대했던 클랜 기록이 없습니다.", true)
			return
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "상대했던 클랜",
			Description: "• " + strings.Join(clans, "\n• "),
			Color:       colorBlue,
		}, nil, false)
	}
}
