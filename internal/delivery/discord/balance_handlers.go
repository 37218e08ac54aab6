package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
)

// handleBalance splits the members of a voice channel into two teams by
// tier. Defaults to the invoker's current voice channel.
func (b *Bot) handleBalance(s *discordgo.Session, i *discordgo.Interaction) {
	user := interactionUser(i)

	channelID := ""
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		ch := options[0].ChannelValue(s)
		if ch == nil || ch.Type != discordgo.ChannelTypeGuildVoice {
			b.respondMessage(s, i, "음성 채널을 선택해주세요.", true)
			return
		}
		channelID = ch.ID
	}

	guild, err := s.State.Guild(i.GuildID)
	if err != nil {
		b.respondMessage(s, i, "서버 정보를 가져오지 못했습니다.", true)
		return
	}

	if channelID == "" {
		for _, vs := range guild.VoiceStates {
			if vs.UserID == user.ID {
				channelID = vs.ChannelID
				break
			}
		}
		if channelID == "" {
			b.respondMessage(s, i, "음성 채널에 접속해 있거나 채널을 지정해주세요.", true)
			return
		}
	}

	var userIDs []string
	for _, vs := range guild.VoiceStates {
		if vs.ChannelID == channelID {
			userIDs = append(userIDs, vs.UserID)
		}
	}

	members, err := b.services.Member.MembersByID(i.GuildID, userIDs)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	if len(members) != len(userIDs) {
		b.respondMessage(s, i, fmt.Sprintf("채널의 %d명 중 %d명만 등록되어 있습니다. 전원 /register 가 필요합니다.", len(userIDs), len(members)), true)
		return
	}

	split, err := application.BalanceTeams(members)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "팀 분배 결과",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("A팀 (점수 %d)", split.ScoreA), Value: teamMemberLines(split.TeamA), Inline: true},
			{Name: fmt.Sprintf("B팀 (점수 %d)", split.ScoreB), Value: teamMemberLines(split.TeamB), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "티어 점수 기준 그리디 분배"},
	}
	b.respondEmbed(s, i, embed, nil, false)
}

func teamMemberLines(members []models.Member) string {
	var sb strings.Builder
	for _, m := range members {
		sb.WriteString(fmt.Sprintf("%s (%s)\n", mention(m.UserID), m.Tier.DisplayName()))
	}
	return sb.String()
}
