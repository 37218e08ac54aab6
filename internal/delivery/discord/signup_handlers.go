package discord

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
)

func (b *Bot) handleSignupRole(s *discordgo.Session, i *discordgo.Interaction, args []string) {
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

	recID := parseID(args[0])
	role, ok := models.ParseRole(args[1])
	if !ok {
		b.respondMessage(s, i, "잘못된 포지션입니다.", true)
		return
	}

	embed, menu, err := b.slotPicker(recID, user.ID, role)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.respondEmbed(s, i, embed, []discordgo.MessageComponent{actionsRow(*menu)}, true)
}

// slotPicker builds the per-user slot toggle select for one role. Held
// slots are marked; picking one toggles it.
func (b *Bot) slotPicker(recruitmentID int64, userID string, role models.Role) (*discordgo.MessageEmbed, *discordgo.SelectMenu, error) {
	infos, err := b.services.Scrim.SlotOverview(recruitmentID)
	if err != nil {
		return nil, nil, err
	}
	held, err := b.services.Scrim.UserSlotIDs(recruitmentID, userID, role)
	if err != nil {
		return nil, nil, err
	}

	var options []discordgo.SelectMenuOption
	for _, info := range infos {
		if info.Slot.Finalized {
			continue
		}
		label := info.Slot.Label()
		desc := fmt.Sprintf("%d명 신청", info.Headcount)
		if held[info.Slot.ID] {
			desc += " · 신청함 ✅"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       label,
			Value:       strconv.FormatInt(info.Slot.ID, 10),
			Description: desc,
		})
		if len(options) >= maxSelectOptions {
			break
		}
	}
	if len(options) == 0 {
		return nil, nil, fmt.Errorf("신청 가능한 시간대가 없습니다")
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%s 포지션 신청", role.DisplayName()),
		Description: "시간대를 선택하면 신청/취소가 전환됩니다.",
		Color:       colorBlue,
	}
	menu := &discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customID(cidSignupSlots, strconv.FormatInt(recruitmentID, 10), string(role)),
		Placeholder: "시간대 선택",
		Options:     options,
	}
	return embed, menu, nil
}

func (b *Bot) handleSignupSlots(s *discordgo.Session, i *discordgo.Interaction, args []string) {
	user := interactionUser(i)
	recID := parseID(args[0])
	role, ok := models.ParseRole(args[1])
	if !ok {
		b.respondMessage(s, i, "잘못된 포지션입니다.", true)
		return
	}
	slotID := parseID(i.MessageComponentData().Values[0])

	result, err := b.services.Scrim.ToggleSignup(recID, slotID, user.ID, role)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	embed, menu, pickerErr := b.slotPicker(recID, user.ID, role)
	if pickerErr != nil {
		b.respondMessage(s, i, pickerErr.Error(), true)
		return
	}
	verb := "취소"
	if result.Added {
		verb = "신청"
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%s — %s %s 완료", result.Slot.Label(), role.DisplayName(), verb),
	}
	b.updateMessage(s, i, embed, []discordgo.MessageComponent{actionsRow(*menu)})

	b.refreshRecruitmentMessage(s, recID)
}

func (b *Bot) handleFinalizeOpen(s *discordgo.Session, i *discordgo.Interaction, args []string) {
	recID := parseID(args[0])
	infos, err := b.services.Scrim.SlotOverview(recID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}

	var options []discordgo.SelectMenuOption
	for _, info := range infos {
		if info.Slot.Finalized {
			continue
		}
		options = append(options, discordgo.SelectMenuOption{
			Label:       info.Slot.Label(),
			Value:       strconv.FormatInt(info.Slot.ID, 10),
			Description: fmt.Sprintf("%d명 신청", info.Headcount),
		})
		if len(options) >= maxSelectOptions {
			break
		}
	}
	if len(options) == 0 {
		b.respondMessage(s, i, "확정할 수 있는 시간대가 없습니다.", true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       "시간 확정",
		Description: "확정할 시간대를 선택해주세요. **확정은 되돌릴 수 없습니다.**",
		Color:       colorOrange,
	}
	menu := discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    customID(cidFinalizePick, strconv.FormatInt(recID, 10)),
		Placeholder: "시간대 선택",
		Options:     options,
	}
	b.respondEmbed(s, i, embed, []discordgo.MessageComponent{actionsRow(menu)}, true)
}

func (b *Bot) handleFinalizePick(s *discordgo.Session, i *discordgo.Interaction, args []string) {
	recID := parseID(args[0])
	slotID := parseID(i.MessageComponentData().Values[0])

	slot, users, err := b.services.Scrim.FinalizeSlot(recID, slotID)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	content := fmt.Sprintf("스크림 시간이 확정되었습니다!\n**%s** — 공고 #%d\n늦지 않게 참여해주세요.", slot.Label(), recID)
	delivered, failed := application.Broadcast(users, func(userID string) error {
		return b.sendDM(s, userID, content)
	})
	if len(failed) > 0 {
		b.logger.Warn("Finalize DM failed for %d users", len(failed))
	}

	b.updateMessage(s, i, &discordgo.MessageEmbed{
		Title:       "시간 확정 완료",
		Description: fmt.Sprintf("**%s** 확정. 신청자 %d명 중 %d명에게 DM 발송.", slot.Label(), len(users), delivered),
		Color:       colorGreen,
	}, []discordgo.MessageComponent{})

	if len(users) > 0 {
		s.ChannelMessageSend(i.ChannelID, fmt.Sprintf("📢 공고 #%d **%s** 시간 확정! %s", recID, slot.Label(), mentionList(users)))
	}

	b.refreshRecruitmentMessage(s, recID)
}
