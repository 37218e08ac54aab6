package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleTicketCreate(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: cidTicketModal,
			Title:    "운영진 문의",
			Components: []discordgo.MessageComponent{
				actionsRow(discordgo.TextInput{
					CustomID: "title",
					Label:    "제목",
					Style:    discordgo.TextInputShort,
					Required: true,
				}),
				actionsRow(discordgo.TextInput{
					CustomID: "body",
					Label:    "내용",
					Style:    discordgo.TextInputParagraph,
					Required: true,
				}),
			},
		},
	})
}

func (b *Bot) handleTicketModal(s *discordgo.Session, i *discordgo.Interaction, data discordgo.ModalSubmitInteractionData) {
	user := interactionUser(i)
	ticket, err := b.services.Ticket.Create(i.GuildID, user.ID, modalInput(data, "title"), modalInput(data, "body"))
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("문의가 접수되었습니다. 문의 번호: `%s`\n답변은 DM으로 전달됩니다.", ticket.Ref), true)
	b.logger.Info("Ticket created: guild=%s ref=%s", i.GuildID, ticket.Ref)
}

func (b *Bot) handleTicketList(s *discordgo.Session, i *discordgo.Interaction) {
	tickets, err := b.services.Ticket.ListOpen(i.GuildID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	if len(tickets) == 0 {
		b.respondMessage(s, i, "열린 문의가 없습니다.", true)
		return
	}

	var sb strings.Builder
	for _, t := range tickets {
		sb.WriteString(fmt.Sprintf("`%s` %s — %s (%s)\n", t.Ref, t.Title, mention(t.UserID), t.CreatedAt.Format("01/02 15:04")))
	}
	msg := sb.String()
	if len(msg) > maxMessageLength {
		msg = msg[:maxMessageTruncation] + "...\n(목록 잘림)"
	}
	b.respondEmbed(s, i, &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("열린 문의 (%d건)", len(tickets)),
		Description: msg,
		Color:       colorBlue,
	}, nil, true)
}

func (b *Bot) handleTicketAnswer(s *discordgo.Session, i *discordgo.Interaction) {
	options := i.ApplicationCommandData().Options
	ref := strings.TrimSpace(options[0].StringValue())
	text := options[1].StringValue()

	ticket, err := b.services.Ticket.Answer(ref, text)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	dm := fmt.Sprintf("문의 `%s` (%s) 에 답변이 달렸습니다.\n\n%s", ticket.Ref, ticket.Title, ticket.Answer)
	if err := b.sendDM(s, ticket.UserID, dm); err != nil {
		b.respondMessage(s, i, fmt.Sprintf("답변은 저장되었지만 DM 발송에 실패했습니다: %v", err), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("문의 `%s` 답변 완료, 작성자에게 DM을 보냈습니다.", ticket.Ref), true)
}

func (b *Bot) handleTicketClose(s *discordgo.Session, i *discordgo.Interaction) {
	ref := strings.TrimSpace(i.ApplicationCommandData().Options[0].StringValue())
	ticket, err := b.services.Ticket.Close(ref)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("문의 `%s` 이(가) 종료되었습니다.", ticket.Ref), true)
}
