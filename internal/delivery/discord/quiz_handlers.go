package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleQuiz(s *discordgo.Session, i *discordgo.Interaction) {
	if b.quizChannelID != "" && i.ChannelID != b.quizChannelID {
		b.respondMessage(s, i, fmt.Sprintf("퀴즈는 <#%s> 채널에서만 할 수 있습니다.", b.quizChannelID), true)
		return
	}

	user := interactionUser(i)
	switch i.ApplicationCommandData().Options[0].Name {
	case "start":
		round, err := b.services.Quiz.Start(i.GuildID, i.ChannelID, user.ID)
		if err != nil {
			b.respondMessage(s, i, err.Error(), true)
			return
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "단어 맞추기 시작!",
			Description: fmt.Sprintf("초성 힌트: **%s**\n채팅으로 정답을 입력해주세요.", round.Hint),
			Color:       colorPurple,
		}, nil, false)

	case "stop":
		round, err := b.services.Quiz.Stop(i.GuildID, i.ChannelID)
		if err != nil {
			b.respondMessage(s, i, err.Error(), true)
			return
		}
		b.respondMessage(s, i, fmt.Sprintf("게임 종료! 정답은 **%s** 였습니다.", round.Word), false)

	case "rank":
		scores, err := b.services.Quiz.Ranking(i.GuildID)
		if err != nil {
			b.respondMessage(s, i, "오류: "+err.Error(), true)
			return
		}
		if len(scores) == 0 {
			b.respondMessage(s, i, "아직 점수 기록이 없습니다.", false)
			return
		}
		var sb strings.Builder
		for idx, score := range scores {
			sb.WriteString(fmt.Sprintf("%s %s — %d점\n", getMedalEmoji(idx), mention(score.UserID), score.Points))
		}
		b.respondEmbed(s, i, &discordgo.MessageEmbed{
			Title:       "단어 맞추기 순위",
			Description: sb.String(),
			Color:       colorGold,
		}, nil, false)
	}
}

func (b *Bot) handleQuizGuess(s *discordgo.Session, m *discordgo.MessageCreate) {
	result, err := b.services.Quiz.Guess(m.GuildID, m.ChannelID, m.Author.ID, m.Content)
	if err != nil {
		b.logger.Error("Quiz guess failed: %v", err)
		return
	}
	if result == nil || !result.Correct {
		return
	}

	desc := fmt.Sprintf("%s 정답! **%s** (+%d점)", mention(m.Author.ID), result.Word, result.Points)
	if result.Streak > 1 {
		desc += fmt.Sprintf("\n🔥 %d연속 정답!", result.Streak)
	}
	desc += fmt.Sprintf("\n\n다음 문제 — 초성 힌트: **%s**", result.NextRound.Hint)

	s.ChannelMessageSendEmbed(m.ChannelID, &discordgo.MessageEmbed{
		Description: desc,
		Color:       colorGreen,
	})
}
