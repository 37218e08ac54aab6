package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
)

const customOptionValue = "__custom__"

func (b *Bot) handleScrimStart(s *discordgo.Session, i *discordgo.Interaction) {
	user := interactionUser(i)
	draft := b.services.Scrim.StartDraft(i.GuildID, user.ID, i.ChannelID)

	embed := b.draftEmbed(draft)
	components, err := b.draftComponents(i.GuildID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	b.respondEmbed(s, i, embed, components, true)
}

func (b *Bot) draftEmbed(draft *application.RecruitDraft) *discordgo.MessageEmbed {
	tierRange := "-"
	if draft.TierMin != "" {
		tierRange = draft.TierMin.DisplayName() + " ~ " + draft.TierMax.DisplayName()
	}
	times := strings.Join(draft.Times, ", ")
	if draft.CustomTime != "" {
		if times != "" {
			times += ", "
		}
		times += draft.CustomTime
	}
	deadline := "첫 날짜 전날 23:59 (자동)"
	if draft.ExplicitDeadline != nil {
		deadline = draft.ExplicitDeadline.Format("2006-01-02 15:04")
	}

	return &discordgo.MessageEmbed{
		Title:       "스크림 모집 작성",
		Description: "아래 항목을 모두 채운 뒤 **등록**을 눌러주세요.",
		Color:       colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "상대 클랜", Value: valueOrDefault(draft.OpponentClan, "-"), Inline: true},
			{Name: "티어 범위", Value: tierRange, Inline: true},
			{Name: "날짜", Value: valueOrDefault(strings.Join(draft.Dates, ", "), "-"), Inline: false},
			{Name: "시간", Value: valueOrDefault(times, "-"), Inline: false},
			{Name: "신청 마감", Value: deadline, Inline: true},
			{Name: "설명", Value: valueOrDefault(draft.Description, "-"), Inline: false},
		},
	}
}

func (b *Bot) draftComponents(guildID string) ([]discordgo.MessageComponent, error) {
	known, err := b.services.Member.KnownClans(guildID)
	if err != nil {
		return nil, err
	}

	opponentOptions := []discordgo.SelectMenuOption{
		{Label: "직접 입력", Value: customOptionValue, Emoji: &discordgo.ComponentEmoji{Name: "✏️"}},
	}
	for _, clan := range known {
		if len(opponentOptions) >= maxSelectOptions {
			break
		}
		opponentOptions = append(opponentOptions, discordgo.SelectMenuOption{Label: clan, Value: clan})
	}

	var dateOptions []discordgo.SelectMenuOption
	today := time.Now()
	weekdays := []string{"일", "월", "화", "수", "목", "금", "토"}
	for d := 1; d <= 14; d++ {
		day := today.AddDate(0, 0, d)
		value := day.Format("2006-01-02")
		label := fmt.Sprintf("%s (%s)", day.Format("01/02"), weekdays[day.Weekday()])
		dateOptions = append(dateOptions, discordgo.SelectMenuOption{Label: label, Value: value})
	}

	timeOptions := []discordgo.SelectMenuOption{
		{Label: "직접 입력", Value: customOptionValue, Emoji: &discordgo.ComponentEmoji{Name: "✏️"}},
	}
	for _, tr := range application.PresetTimeRanges {
		timeOptions = append(timeOptions, discordgo.SelectMenuOption{Label: tr, Value: tr})
	}

	var tierOptions []discordgo.SelectMenuOption
	for _, t := range models.TierOrder {
		tierOptions = append(tierOptions, discordgo.SelectMenuOption{Label: t.DisplayName(), Value: string(t)})
	}

	one := 1
	return []discordgo.MessageComponent{
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    cidScrimOpponentSelect,
			Placeholder: "상대 클랜 선택",
			Options:     opponentOptions,
		}),
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    cidScrimDates,
			Placeholder: "날짜 선택 (복수 가능)",
			MinValues:   &one,
			MaxValues:   len(dateOptions),
			Options:     dateOptions,
		}),
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    cidScrimTimes,
			Placeholder: "시간대 선택 (복수 가능)",
			MinValues:   &one,
			MaxValues:   len(timeOptions),
			Options:     timeOptions,
		}),
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    cidScrimTier,
			Placeholder: "티어 범위 (1~2개 선택)",
			MinValues:   &one,
			MaxValues:   2,
			Options:     tierOptions,
		}),
		actionsRow(
			discordgo.Button{Label: "설명", Style: discordgo.SecondaryButton, CustomID: cidScrimDescButton},
			discordgo.Button{Label: "마감 시간", Style: discordgo.SecondaryButton, CustomID: cidScrimDeadlineButton},
			discordgo.Button{Label: "등록", Style: discordgo.SuccessButton, CustomID: cidScrimPublish},
			discordgo.Button{Label: "취소", Style: discordgo.DangerButton, CustomID: cidScrimDiscard},
		),
	}, nil
}

func (b *Bot) handleScrimComponent(s *discordgo.Session, i *discordgo.Interaction, prefix string, args []string) {
	user := interactionUser(i)
	draft, ok := b.services.Scrim.GetDraft(i.GuildID, user.ID)
	if !ok {
		b.respondMessage(s, i, "작성 중인 모집이 없습니다. /scrim 으로 새로 시작해주세요.", true)
		return
	}

	switch prefix {
	case cidScrimOpponentSelect:
		values := i.MessageComponentData().Values
		if len(values) == 1 && values[0] == customOptionValue {
			b.openTextModal(s, i, cidScrimOpponentModal, "상대 클랜", "opponent", "클랜 이름", false)
			return
		}
		if err := b.services.Scrim.SetOpponent(draft, values[0]); err != nil {
			b.respondMessage(s, i, err.Error(), true)
			return
		}

	case cidScrimDates:
		draft.SetDates(i.MessageComponentData().Values)

	case cidScrimTimes:
		values := i.MessageComponentData().Values
		var preset []string
		custom := false
		for _, v := range values {
			if v == customOptionValue {
				custom = true
				continue
			}
			preset = append(preset, v)
		}
		draft.SetTimes(preset)
		if custom {
			b.openTextModal(s, i, cidScrimTimeModal, "시간대 직접 입력", "time_range", "예: 20:00-22:00", false)
			return
		}

	case cidScrimTier:
		values := i.MessageComponentData().Values
		min, _ := models.ParseTier(values[0])
		max := min
		if len(values) == 2 {
			max, _ = models.ParseTier(values[1])
		}
		draft.SetTierRange(min, max)

	case cidScrimDescButton:
		b.openTextModal(s, i, cidScrimDescModal, "모집 설명", "description", "추가 안내 사항", true)
		return

	case cidScrimDeadlineButton:
		b.openTextModal(s, i, cidScrimDeadlineModal, "신청 마감 시간", "deadline", "YYYY-MM-DD HH:MM", false)
		return

	case cidScrimDiscard:
		b.services.Scrim.DiscardDraft(i.GuildID, user.ID)
		b.updateMessage(s, i, &discordgo.MessageEmbed{
			Title: "모집 작성이 취소되었습니다",
			Color: colorGray,
		}, []discordgo.MessageComponent{})
		return

	case cidScrimPublish:
		b.publishDraft(s, i, draft)
		return
	}

	components, err := b.draftComponents(i.GuildID)
	if err != nil {
		b.respondMessage(s, i, "오류: "+err.Error(), true)
		return
	}
	b.updateMessage(s, i, b.draftEmbed(draft), components)
}

func (b *Bot) openTextModal(s *discordgo.Session, i *discordgo.Interaction, modalID, title, inputID, placeholder string, paragraph bool) {
	style := discordgo.TextInputShort
	if paragraph {
		style = discordgo.TextInputParagraph
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalID,
			Title:    title,
			Components: []discordgo.MessageComponent{
				actionsRow(discordgo.TextInput{
					CustomID:    inputID,
					Label:       title,
					Style:       style,
					Placeholder: placeholder,
					Required:    true,
				}),
			},
		},
	})
}

func (b *Bot) handleScrimModal(s *discordgo.Session, i *discordgo.Interaction, prefix string, data discordgo.ModalSubmitInteractionData) {
	user := interactionUser(i)
	draft, ok := b.services.Scrim.GetDraft(i.GuildID, user.ID)
	if !ok {
		b.respondMessage(s, i, "작성 중인 모집이 없습니다. /scrim 으로 새로 시작해주세요.", true)
		return
	}

	switch prefix {
	case cidScrimOpponentModal:
		if err := b.services.Scrim.SetOpponent(draft, modalInput(data, "opponent")); err != nil {
			b.respondMessage(s, i, err.Error(), true)
			return
		}
		b.respondMessage(s, i, fmt.Sprintf("상대 클랜: **%s**", draft.OpponentClan), true)

	case cidScrimTimeModal:
		draft.SetCustomTime(strings.TrimSpace(modalInput(data, "time_range")))
		b.respondMessage(s, i, fmt.Sprintf("시간대 추가: **%s**", draft.CustomTime), true)

	case cidScrimDeadlineModal:
		raw := strings.TrimSpace(modalInput(data, "deadline"))
		deadline, err := time.ParseInLocation("2006-01-02 15:04", raw, time.Local)
		if err != nil {
			b.respondMessage(s, i, "형식이 잘못되었습니다. YYYY-MM-DD HH:MM 으로 입력해주세요.", true)
			return
		}
		if err := b.services.Scrim.SetDeadline(draft, deadline); err != nil {
			b.respondMessage(s, i, err.Error(), true)
			return
		}
		b.respondMessage(s, i, fmt.Sprintf("신청 마감: **%s**", deadline.Format("2006-01-02 15:04")), true)

	case cidScrimDescModal:
		draft.Description = strings.TrimSpace(modalInput(data, "description"))
		b.respondMessage(s, i, "설명이 저장되었습니다.", true)
	}
}

func (b *Bot) publishDraft(s *discordgo.Session, i *discordgo.Interaction, draft *application.RecruitDraft) {
	rec, slots, err := b.services.Scrim.Publish(draft)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	embed := b.recruitmentEmbed(rec, slots, nil)
	recID := strconv.FormatInt(rec.ID, 10)
	components := []discordgo.MessageComponent{
		roleButtons(rec.ID),
		actionsRow(
			discordgo.Button{Label: "시간 확정", Style: discordgo.SuccessButton, CustomID: customID(cidFinalize, recID)},
			discordgo.Button{Label: "모집 취소", Style: discordgo.DangerButton, CustomID: customID(cidRecCancel, recID)},
		),
	}

	msg, err := s.ChannelMessageSendComplex(rec.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
	})
	if err != nil {
		b.respondMessage(s, i, "공고 게시에 실패했습니다: "+err.Error(), true)
		return
	}
	if err := b.services.Scrim.AttachMessage(rec.ID, msg.ChannelID, msg.ID); err != nil {
		b.logger.Error("Failed to attach recruitment message: %v", err)
	}

	delivered, failedCount := b.notifyTierTargets(s, rec)

	if b.notifier != nil {
		if err := b.notifier.AnnounceRecruitment(rec, slots); err != nil {
			b.logger.Warn("Telegram mirror failed: %v", err)
		}
	}

	b.updateMessage(s, i, &discordgo.MessageEmbed{
		Title:       "모집 공고가 등록되었습니다",
		Description: fmt.Sprintf("공고 #%d | DM 알림 %d명 발송, %d명 실패", rec.ID, delivered, failedCount),
		Color:       colorGreen,
	}, []discordgo.MessageComponent{})
}

// notifyTierTargets DMs every registered member inside the tier range.
// Closed DMs are skipped without retry.
func (b *Bot) notifyTierTargets(s *discordgo.Session, rec *models.Recruitment) (int, int) {
	targets, err := b.services.Member.TierTargets(rec.GuildID, rec.TierMin, rec.TierMax)
	if err != nil {
		b.logger.Error("Failed to resolve notification targets: %v", err)
		return 0, 0
	}

	content := fmt.Sprintf("**%s** 모집이 올라왔습니다!\n티어: %s ~ %s | 마감: %s\n서버에서 포지션을 신청해주세요.",
		rec.Title, rec.TierMin.DisplayName(), rec.TierMax.DisplayName(),
		rec.Deadline.Format("2006-01-02 15:04"))

	delivered, failed := application.Broadcast(targets, func(userID string) error {
		return b.sendDM(s, userID, content)
	})
	if len(failed) > 0 {
		b.logger.Warn("Recruitment DM failed for %d users", len(failed))
	}
	return delivered, len(failed)
}

func (b *Bot) recruitmentEmbed(rec *models.Recruitment, slots []models.TimeSlot, counts map[int64]int) *discordgo.MessageEmbed {
	var sb strings.Builder
	for _, slot := range slots {
		mark := ""
		if slot.Finalized {
			mark = " ✅ 확정"
		}
		if counts != nil {
			sb.WriteString(fmt.Sprintf("`[%d]` %s — %d명 신청%s\n", slot.ID, slot.Label(), counts[slot.ID], mark))
		} else {
			sb.WriteString(fmt.Sprintf("`[%d]` %s%s\n", slot.ID, slot.Label(), mark))
		}
	}

	color := colorOrange
	statusLine := application.FormatRemaining(rec.Deadline, time.Now())
	switch rec.Status {
	case models.RecruitmentClosed:
		color = colorGray
		statusLine = "마감됨"
	case models.RecruitmentCancelled:
		color = colorRed
		statusLine = "취소됨"
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "티어 범위", Value: rec.TierMin.DisplayName() + " ~ " + rec.TierMax.DisplayName(), Inline: true},
		{Name: "신청 마감", Value: fmt.Sprintf("%s (%s)", rec.Deadline.Format("01/02 15:04"), statusLine), Inline: true},
		{Name: "시간대", Value: valueOrDefault(sb.String(), "-"), Inline: false},
	}
	if rec.Description != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "설명", Value: rec.Description, Inline: false})
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("#%d %s", rec.ID, rec.Title),
		Description: "원하는 포지션 버튼을 눌러 신청해주세요. 같은 버튼을 다시 누르면 취소됩니다.",
		Color:       color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: "모집: " + rec.OpponentClan},
	}
}

// refreshRecruitmentMessage re-renders the public recruitment message after
// a signup or status change.
func (b *Bot) refreshRecruitmentMessage(s *discordgo.Session, recruitmentID int64) {
	rec, err := b.services.Scrim.GetRecruitment(recruitmentID)
	if err != nil || rec.MessageID == "" {
		return
	}
	infos, err := b.services.Scrim.SlotOverview(recruitmentID)
	if err != nil {
		return
	}
	slots := make([]models.TimeSlot, 0, len(infos))
	counts := make(map[int64]int, len(infos))
	for _, info := range infos {
		slots = append(slots, info.Slot)
		counts[info.Slot.ID] = info.Headcount
	}

	embed := b.recruitmentEmbed(rec, slots, counts)
	edit := discordgo.NewMessageEdit(rec.ChannelID, rec.MessageID)
	edit.Embeds = &[]*discordgo.MessageEmbed{embed}
	if rec.Status.Terminal() {
		edit.Components = &[]discordgo.MessageComponent{}
	}
	if _, err := s.ChannelMessageEditComplex(edit); err != nil {
		b.logger.Warn("Failed to refresh recruitment message: %v", err)
	}
}

func (b *Bot) handleRecruitmentCancel(s *discordgo.Session, i *discordgo.Interaction, args []string) {
	recID := parseID(args[0])
	if err := b.services.Scrim.CancelRecruitment(recID); err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("모집 #%d 이(가) 취소되었습니다.", recID), false)
	b.refreshRecruitmentMessage(s, recID)
}
