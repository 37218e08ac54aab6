package discord

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func calculateWinRate(wins, games int) float64 {
	if games == 0 {
		return 0.0
	}
	return (float64(wins) / float64(games)) * 100
}

func (b *Bot) handleProfile(s *discordgo.Session, i *discordgo.Interaction) {
	user := interactionUser(i)
	targetID := user.ID
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		targetID = options[0].UserValue(s).ID
	}

	member, err := b.services.Member.Get(i.GuildID, targetID)
	if err != nil {
		b.respondMessage(s, i, "등록되지 않은 멤버입니다.", true)
		return
	}

	st, err := b.services.Stats.Profile(i.GuildID, targetID)
	if err != nil {
		b.respondMessage(s, i, "전적 조회에 실패했습니다: "+err.Error(), true)
		return
	}

	wr := calculateWinRate(st.TotalWins, st.TotalGames)
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("전적 — %s", member.BattleTag),
		Color: getColorByWinRate(wr),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "티어", Value: member.Tier.DisplayName(), Inline: true},
			{Name: "전체", Value: fmt.Sprintf("%d전 %d승 (%.1f%%)", st.TotalGames, st.TotalWins, wr), Inline: true},
			{Name: "🛡️ 탱커", Value: fmt.Sprintf("%d전 %d승 (%.1f%%)", st.TankGames, st.TankWins, calculateWinRate(st.TankWins, st.TankGames)), Inline: false},
			{Name: "⚔️ 딜러", Value: fmt.Sprintf("%d전 %d승 (%.1f%%)", st.DPSGames, st.DPSWins, calculateWinRate(st.DPSWins, st.DPSGames)), Inline: false},
			{Name: "💉 힐러", Value: fmt.Sprintf("%d전 %d승 (%.1f%%)", st.SupportGames, st.SupportWins, calculateWinRate(st.SupportWins, st.SupportGames)), Inline: false},
		},
	}
	b.respondEmbed(s, i, embed, nil, false)
}

func (b *Bot) handleLeaderboard(s *discordgo.Session, i *discordgo.Interaction) {
	sortBy := "games"
	if options := i.ApplicationCommandData().Options; len(options) > 0 {
		sortBy = options[0].StringValue()
	}

	stats, err := b.services.Stats.Leaderboard(i.GuildID, sortBy)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	if len(stats) == 0 {
		b.respondMessage(s, i, "아직 기록된 전적이 없습니다.", false)
		return
	}

	var sb strings.Builder
	for idx, st := range stats {
		sb.WriteString(fmt.Sprintf("%s %s — `%.0f%%` (%d전 %d승)\n",
			getMedalEmoji(idx), mention(st.UserID),
			calculateWinRate(st.TotalWins, st.TotalGames), st.TotalGames, st.TotalWins))
	}

	title := "순위표 (판수순)"
	if sortBy == "winrate" {
		title = "순위표 (승률순, 5판 이상)"
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       title,
		Description: sb.String(),
		Color:       colorGold,
	}, nil, false)
}

func (b *Bot) handleExport(s *discordgo.Session, i *discordgo.Interaction) {
	b.deferResponse(s, i, false)

	data, err := b.services.Stats.ExcelReport(i.GuildID)
	if err != nil {
		b.logger.Error("Export error: %v", err)
		b.editResponse(s, i, "내보내기 실패: "+err.Error())
		return
	}

	msg := "전적 파일이 준비되었습니다!"
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &msg,
		Files: []*discordgo.File{
			{Name: "전적.xlsx", Reader: bytes.NewReader(data)},
		},
	})
}
