package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/models"
)

func getColorByWinRate(winRate float64) int {
	switch {
	case winRate >= winRateExcellent:
		return colorPurple
	case winRate >= winRateGood:
		return colorGreen
	case winRate < winRatePoor:
		return colorRed
	default:
		return colorGray
	}
}

func getMedalEmoji(position int) string {
	switch position {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return "▪️"
	}
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func mentionList(userIDs []string) string {
	parts := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		parts = append(parts, mention(id))
	}
	return strings.Join(parts, ", ")
}

// customIDParts splits "prefix:arg1:arg2" into its prefix and arguments.
func customIDParts(customID string) (string, []string) {
	parts := strings.Split(customID, ":")
	return parts[0], parts[1:]
}

func customID(prefix string, args ...string) string {
	if len(args) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(args, ":")
}

func parseID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}

func (b *Bot) respondEmbed(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
			Flags:      flags,
		},
	})
}

// updateMessage swaps the component interaction's own message in place.
func (b *Bot) updateMessage(s *discordgo.Session, i *discordgo.Interaction, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

func (b *Bot) deferResponse(s *discordgo.Session, i *discordgo.Interaction, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: flags},
	})
}

func (b *Bot) editResponse(s *discordgo.Session, i *discordgo.Interaction, msg string) {
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &msg})
}

// modalInput pulls the value of one text input out of a modal submission.
func modalInput(data discordgo.ModalSubmitInteractionData, inputID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range actionsRow.Components {
			if input, ok := c.(*discordgo.TextInput); ok && input.CustomID == inputID {
				return input.Value
			}
		}
	}
	return ""
}

func actionsRow(components ...discordgo.MessageComponent) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: components}
}

func roleButtons(recruitmentID int64) discordgo.ActionsRow {
	rec := strconv.FormatInt(recruitmentID, 10)
	return actionsRow(
		discordgo.Button{Label: "탱커", Emoji: &discordgo.ComponentEmoji{Name: "🛡️"}, Style: discordgo.PrimaryButton, CustomID: customID(cidSignupRole, rec, string(models.RoleTank))},
		discordgo.Button{Label: "딜러", Emoji: &discordgo.ComponentEmoji{Name: "⚔️"}, Style: discordgo.PrimaryButton, CustomID: customID(cidSignupRole, rec, string(models.RoleDPS))},
		discordgo.Button{Label: "힐러", Emoji: &discordgo.ComponentEmoji{Name: "💉"}, Style: discordgo.PrimaryButton, CustomID: customID(cidSignupRole, rec, string(models.RoleSupport))},
		discordgo.Button{Label: "플렉스", Emoji: &discordgo.ComponentEmoji{Name: "🔄"}, Style: discordgo.SecondaryButton, CustomID: customID(cidSignupRole, rec, string(models.RoleFlex))},
	)
}

func (b *Bot) sendDM(s *discordgo.Session, userID, content string) error {
	ch, err := s.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open dm: %w", err)
	}
	if _, err := s.ChannelMessageSend(ch.ID, content); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}
