package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
)

func (b *Bot) handleRecordStart(s *discordgo.Session, i *discordgo.Interaction) {
	recID := i.ApplicationCommandData().Options[0].IntValue()
	user := interactionUser(i)

	sess, err := b.services.Recording.StartSession(i.GuildID, i.ChannelID, recID, user.ID)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	embed, components := b.sessionView(sess)
	b.respondEmbed(s, i, embed, components, false)
}

func (b *Bot) handleRecordingComponent(s *discordgo.Session, i *discordgo.Interaction, prefix string, args []string) {
	sess, ok := b.services.Recording.ActiveSession(i.GuildID)
	if !ok {
		b.respondMessage(s, i, "진행 중인 기록 세션이 없습니다.", true)
		return
	}

	user := interactionUser(i)
	if user.ID != sess.CreatorID && !b.isAdmin(i) {
		b.respondMessage(s, i, "세션을 시작한 사람이나 관리자만 조작할 수 있습니다.", true)
		return
	}

	var err error
	switch prefix {
	case cidRosterAdd:
		err = b.services.Recording.AddRosterMember(sess, i.MessageComponentData().Values[0])
	case cidRosterRemove:
		err = sess.RemoveRosterMember(i.MessageComponentData().Values[0])
	case cidRosterConfirm:
		err = sess.ConfirmRoster()
	case cidTeamA:
		err = sess.SelectTeamA(i.MessageComponentData().Values)
	case cidTeamB:
		err = sess.SelectTeamB(i.MessageComponentData().Values)
	case cidTeamBack:
		err = sess.ResetTeamA()
	case cidWinner:
		err = sess.SelectWinner(models.TeamSide(args[0]))
	case cidWinnerOK:
		err = sess.ConfirmWinner()
	case cidWinnerRedo:
		err = sess.ReselectWinner()
	case cidRole:
		err = sess.AssignRole(models.Role(args[0]))
	case cidRoleBack:
		err = sess.UndoRole()
	case cidRoleRedo:
		err = sess.RedoSide()
	case cidSideOK:
		err = sess.ConfirmSide()
	case cidFinalOK:
		err = sess.ConfirmFinal()
	case cidRedoWinner:
		err = sess.RedoWinner()
	case cidRedoRoles:
		err = sess.RedoRoles(models.TeamSide(args[0]))
	case cidMapType:
		err = sess.SetMapType(i.MessageComponentData().Values[0])
	case cidMapPick:
		if err = sess.SetMap(i.MessageComponentData().Values[0]); err == nil {
			b.saveMatch(s, i, sess)
			return
		}
	case cidMapSkip:
		if err = sess.SkipMap(); err == nil {
			b.saveMatch(s, i, sess)
			return
		}
	case cidNextMatch:
		err = sess.StartNextMatch()
	case cidSessionStatus:
		b.handleSessionStatus(s, i, sess)
		return
	case cidSessionDone:
		b.completeSession(s, i, sess)
		return
	case cidSessionCancel:
		b.services.Recording.CancelSession(i.GuildID)
		b.updateMessage(s, i, &discordgo.MessageEmbed{
			Title:       "기록 세션이 취소되었습니다",
			Description: fmt.Sprintf("이미 저장된 %d개 경기는 유지됩니다.", sess.CompletedCount()),
			Color:       colorGray,
		}, []discordgo.MessageComponent{})
		return
	default:
		return
	}

	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}

	embed, components := b.sessionView(sess)
	b.updateMessage(s, i, embed, components)
}

func (b *Bot) saveMatch(s *discordgo.Session, i *discordgo.Interaction, sess *application.RecordingSession) {
	matchID, err := b.services.Recording.SaveMatch(sess)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.logger.Info("Match saved: guild=%s match=%d", sess.GuildID, matchID)
	embed, components := b.sessionView(sess)
	b.updateMessage(s, i, embed, components)
}

func (b *Bot) completeSession(s *discordgo.Session, i *discordgo.Interaction, sess *application.RecordingSession) {
	summary, err := b.services.Recording.CompleteSession(sess)
	if err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	desc := fmt.Sprintf("경기 %d개 기록, 통계 반영 %d건", summary.Matches, summary.Credited)
	if summary.SkippedUnlisted > 0 {
		desc += fmt.Sprintf("\n미등록 참가 %d건은 통계에서 제외되었습니다.", summary.SkippedUnlisted)
	}
	if summary.SkippedCancelled > 0 {
		desc += fmt.Sprintf("\n취소된 경기 %d개는 집계되지 않았습니다.", summary.SkippedCancelled)
	}
	b.updateMessage(s, i, &discordgo.MessageEmbed{
		Title:       "기록 세션 완료",
		Description: desc,
		Color:       colorGreen,
	}, []discordgo.MessageComponent{})
}

func (b *Bot) handleSessionStatus(s *discordgo.Session, i *discordgo.Interaction, sess *application.RecordingSession) {
	embed := &discordgo.MessageEmbed{
		Title: "세션 현황",
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "저장된 경기", Value: fmt.Sprintf("%d개", sess.CompletedCount()), Inline: true},
			{Name: "다음 경기 번호", Value: fmt.Sprintf("%d경기", sess.NextNumber), Inline: true},
			{Name: "명단", Value: mentionList(sess.Roster), Inline: false},
		},
	}
	b.respondEmbed(s, i, embed, nil, true)
}

// sessionView renders the embed and components for the session's current
// step. Every transition re-renders the single session message.
func (b *Bot) sessionView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	switch sess.Step {
	case application.StepRosterConfirm:
		return b.rosterView(sess)
	case application.StepTeamASelection:
		return b.teamSelectView(sess, models.TeamA)
	case application.StepTeamBSelection:
		return b.teamSelectView(sess, models.TeamB)
	case application.StepWinnerSelection:
		return b.winnerView(sess)
	case application.StepWinnerConfirm:
		return b.winnerConfirmView(sess)
	case application.StepPositionTeamA, application.StepPositionTeamB:
		return b.positionView(sess)
	case application.StepFinalReview:
		return b.finalReviewView(sess)
	case application.StepMapType:
		return b.mapTypeView(sess)
	case application.StepMapPick:
		return b.mapPickView(sess)
	default:
		return b.dashboardView(sess)
	}
}

func (b *Bot) rosterView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("경기 기록 — 공고 #%d", sess.RecruitmentID),
		Description: "참가자 명단을 확인해주세요. 신청하지 않았던 멤버도 추가할 수 있습니다.",
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("명단 (%d명)", len(sess.Roster)), Value: valueOrDefault(mentionList(sess.Roster), "-"), Inline: false},
		},
	}
	one := 1
	components := []discordgo.MessageComponent{
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.UserSelectMenu,
			CustomID:    cidRosterAdd,
			Placeholder: "멤버 추가",
			MinValues:   &one,
			MaxValues:   1,
		}),
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.UserSelectMenu,
			CustomID:    cidRosterRemove,
			Placeholder: "멤버 제외",
			MinValues:   &one,
			MaxValues:   1,
		}),
		actionsRow(
			discordgo.Button{Label: "명단 확정", Style: discordgo.SuccessButton, CustomID: cidRosterConfirm},
			discordgo.Button{Label: "세션 취소", Style: discordgo.DangerButton, CustomID: cidSessionCancel},
		),
	}
	return embed, components
}

func (b *Bot) teamSelectView(sess *application.RecordingSession, side models.TeamSide) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	pool := sess.Roster
	selectID := cidTeamA
	if side == models.TeamB {
		pool = sess.RemainingPool()
		selectID = cidTeamB
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d경기 — %s 선택", sess.NextNumber, side.DisplayName()),
		Description: fmt.Sprintf("아래에서 **5명**을 선택해주세요.\n선택 가능: %s", mentionList(pool)),
		Color:       colorBlue,
	}
	if side == models.TeamB {
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: "A팀", Value: mentionList(sess.TeamA), Inline: false},
		}
	}

	five := 5
	components := []discordgo.MessageComponent{
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.UserSelectMenu,
			CustomID:    selectID,
			Placeholder: side.DisplayName() + " 5명 선택",
			MinValues:   &five,
			MaxValues:   5,
		}),
	}
	buttons := []discordgo.MessageComponent{
		discordgo.Button{Label: "세션 취소", Style: discordgo.DangerButton, CustomID: cidSessionCancel},
	}
	if side == models.TeamB {
		buttons = append([]discordgo.MessageComponent{
			discordgo.Button{Label: "A팀 다시 선택", Style: discordgo.SecondaryButton, CustomID: cidTeamBack},
		}, buttons...)
	}
	components = append(components, actionsRow(buttons...))
	return embed, components
}

func (b *Bot) winnerView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%d경기 — 승리 팀 선택", sess.NextNumber),
		Color: colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "A팀", Value: mentionList(sess.TeamA), Inline: true},
			{Name: "B팀", Value: mentionList(sess.TeamB), Inline: true},
		},
	}
	components := []discordgo.MessageComponent{
		actionsRow(
			discordgo.Button{Label: "A팀 승리", Style: discordgo.PrimaryButton, CustomID: customID(cidWinner, string(models.TeamA))},
			discordgo.Button{Label: "B팀 승리", Style: discordgo.PrimaryButton, CustomID: customID(cidWinner, string(models.TeamB))},
			discordgo.Button{Label: "세션 취소", Style: discordgo.DangerButton, CustomID: cidSessionCancel},
		),
	}
	return embed, components
}

func (b *Bot) winnerConfirmView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d경기 — 승리 팀 확인", sess.NextNumber),
		Description: fmt.Sprintf("**%s 승리**가 맞습니까?", sess.Winner.DisplayName()),
		Color:       colorOrange,
	}
	components := []discordgo.MessageComponent{
		actionsRow(
			discordgo.Button{Label: "확인", Style: discordgo.SuccessButton, CustomID: cidWinnerOK},
			discordgo.Button{Label: "다시 선택", Style: discordgo.SecondaryButton, CustomID: cidWinnerRedo},
		),
	}
	return embed, components
}

func (b *Bot) positionView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	side := models.TeamA
	team, roles := sess.TeamA, sess.RolesA
	if sess.Step == application.StepPositionTeamB {
		side = models.TeamB
		team, roles = sess.TeamB, sess.RolesB
	}

	var sb strings.Builder
	for idx, userID := range team {
		if idx < len(roles) {
			sb.WriteString(fmt.Sprintf("%s — %s\n", mention(userID), roles[idx].DisplayName()))
		} else {
			sb.WriteString(fmt.Sprintf("%s — ❔\n", mention(userID)))
		}
	}

	if pending, ok := sess.PendingPlayer(); ok {
		embed := &discordgo.MessageEmbed{
			Title:       fmt.Sprintf("%d경기 — %s 포지션", sess.NextNumber, side.DisplayName()),
			Description: fmt.Sprintf("%s 의 포지션을 선택해주세요.", mention(pending)),
			Color:       colorBlue,
			Fields:      []*discordgo.MessageEmbedField{{Name: "진행", Value: sb.String(), Inline: false}},
		}
		components := []discordgo.MessageComponent{
			actionsRow(
				discordgo.Button{Label: "탱커", Emoji: &discordgo.ComponentEmoji{Name: "🛡️"}, Style: discordgo.PrimaryButton, CustomID: customID(cidRole, string(models.RoleTank))},
				discordgo.Button{Label: "딜러", Emoji: &discordgo.ComponentEmoji{Name: "⚔️"}, Style: discordgo.PrimaryButton, CustomID: customID(cidRole, string(models.RoleDPS))},
				discordgo.Button{Label: "힐러", Emoji: &discordgo.ComponentEmoji{Name: "💉"}, Style: discordgo.PrimaryButton, CustomID: customID(cidRole, string(models.RoleSupport))},
			),
			actionsRow(
				discordgo.Button{Label: "이전으로", Style: discordgo.SecondaryButton, CustomID: cidRoleBack},
				discordgo.Button{Label: "처음부터", Style: discordgo.SecondaryButton, CustomID: cidRoleRedo},
			),
		}
		return embed, components
	}

	// Side complete: review before moving on.
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d경기 — %s 포지션 확인", sess.NextNumber, side.DisplayName()),
		Description: sb.String(),
		Color:       colorOrange,
	}
	if !application.StandardComposition(roles) {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "⚠️ 1탱 2딜 2힐 조합이 아닙니다"}
	}
	components := []discordgo.MessageComponent{
		actionsRow(
			discordgo.Button{Label: "확인", Style: discordgo.SuccessButton, CustomID: cidSideOK},
			discordgo.Button{Label: "이전으로", Style: discordgo.SecondaryButton, CustomID: cidRoleBack},
			discordgo.Button{Label: "처음부터", Style: discordgo.SecondaryButton, CustomID: cidRoleRedo},
		),
	}
	return embed, components
}

func teamLines(team []string, roles []models.Role) string {
	var sb strings.Builder
	for idx, userID := range team {
		sb.WriteString(fmt.Sprintf("%s — %s\n", mention(userID), roles[idx].DisplayName()))
	}
	return sb.String()
}

func (b *Bot) finalReviewView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	noteA := ""
	if !application.StandardComposition(sess.RolesA) {
		noteA = " ⚠️"
	}
	noteB := ""
	if !application.StandardComposition(sess.RolesB) {
		noteB = " ⚠️"
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d경기 — 최종 확인", sess.NextNumber),
		Description: fmt.Sprintf("승리: **%s**", sess.Winner.DisplayName()),
		Color:       colorOrange,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "A팀" + noteA, Value: teamLines(sess.TeamA, sess.RolesA), Inline: true},
			{Name: "B팀" + noteB, Value: teamLines(sess.TeamB, sess.RolesB), Inline: true},
		},
	}
	components := []discordgo.MessageComponent{
		actionsRow(
			discordgo.Button{Label: "확정", Style: discordgo.SuccessButton, CustomID: cidFinalOK},
			discordgo.Button{Label: "승리 팀부터 다시", Style: discordgo.SecondaryButton, CustomID: cidRedoWinner},
		),
		actionsRow(
			discordgo.Button{Label: "A팀 포지션 다시", Style: discordgo.SecondaryButton, CustomID: customID(cidRedoRoles, string(models.TeamA))},
			discordgo.Button{Label: "B팀 포지션 다시", Style: discordgo.SecondaryButton, CustomID: customID(cidRedoRoles, string(models.TeamB))},
		),
	}
	return embed, components
}

func (b *Bot) mapTypeView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	var options []discordgo.SelectMenuOption
	for _, mt := range application.MapTypes {
		options = append(options, discordgo.SelectMenuOption{Label: mt, Value: mt})
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d경기 — 전장 유형 (선택 사항)", sess.NextNumber),
		Description: "전장 정보를 남기려면 유형을 선택하고, 건너뛰려면 **건너뛰기**를 눌러주세요.",
		Color:       colorBlue,
	}
	components := []discordgo.MessageComponent{
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    cidMapType,
			Placeholder: "전장 유형",
			Options:     options,
		}),
		actionsRow(
			discordgo.Button{Label: "건너뛰기", Style: discordgo.SecondaryButton, CustomID: cidMapSkip},
		),
	}
	return embed, components
}

func (b *Bot) mapPickView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	var options []discordgo.SelectMenuOption
	for _, name := range application.MapPools[sess.MapType] {
		options = append(options, discordgo.SelectMenuOption{Label: name, Value: name})
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("%d경기 — 전장 선택 (%s)", sess.NextNumber, sess.MapType),
		Description: "전장을 선택하면 경기가 저장됩니다.",
		Color:       colorBlue,
	}
	components := []discordgo.MessageComponent{
		actionsRow(discordgo.SelectMenu{
			MenuType:    discordgo.StringSelectMenu,
			CustomID:    cidMapPick,
			Placeholder: "전장",
			Options:     options,
		}),
		actionsRow(
			discordgo.Button{Label: "건너뛰기", Style: discordgo.SecondaryButton, CustomID: cidMapSkip},
		),
	}
	return embed, components
}

func (b *Bot) dashboardView(sess *application.RecordingSession) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("기록 세션 — 공고 #%d", sess.RecruitmentID),
		Description: fmt.Sprintf("지금까지 **%d개** 경기를 저장했습니다.\n**세션 완료**를 눌러야 통계에 반영됩니다.", sess.CompletedCount()),
		Color:       colorGreen,
	}
	components := []discordgo.MessageComponent{
		actionsRow(
			discordgo.Button{Label: "경기 추가", Style: discordgo.PrimaryButton, CustomID: cidNextMatch},
			discordgo.Button{Label: "현황", Style: discordgo.SecondaryButton, CustomID: cidSessionStatus},
		),
		actionsRow(
			discordgo.Button{Label: "세션 완료", Style: discordgo.SuccessButton, CustomID: cidSessionDone},
			discordgo.Button{Label: "세션 취소", Style: discordgo.DangerButton, CustomID: cidSessionCancel},
		),
	}
	return embed, components
}

func (b *Bot) handleCancelMatch(s *discordgo.Session, i *discordgo.Interaction) {
	matchID := i.ApplicationCommandData().Options[0].IntValue()
	if err := b.services.Recording.CancelMatch(matchID); err != nil {
		b.respondMessage(s, i, err.Error(), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("경기 #%d 이(가) 취소되었습니다. 반영되었던 통계는 되돌렸습니다.", matchID), false)
}
