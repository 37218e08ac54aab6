package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
)

func (b *Bot) handleVoice(s *discordgo.Session, i *discordgo.Interaction) {
	user := interactionUser(i)
	targetID := user.ID
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		targetID = options[0].UserValue(s).ID
	}

	seconds, err := b.services.Voice.TotalSeconds(i.GuildID, targetID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("%s 의 음성 채널 이용 시간: **%s**", mention(targetID), application.FormatDuration(seconds)), false)
}

func (b *Bot) handleVoiceTop(s *discordgo.Session, i *discordgo.Interaction) {
	stats, err := b.services.Voice.Top(i.GuildID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	if len(stats) == 0 {
		b.respondMessage(s, i, "아직 기록된 이용 시간이 없습니다.", false)
		return
	}

	var sb strings.Builder
	for idx, st := range stats {
		sb.WriteString(fmt.Sprintf("%s %s — %s\n",
			getMedalEmoji(idx), mention(st.UserID), application.FormatDuration(st.TotalSeconds)))
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       "음성 채널 이용 시간 순위",
		Description: sb.String(),
		Color:       colorGold,
	}, nil, false)
}
