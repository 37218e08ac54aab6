package discord

import (
	"github.com/bwmarrin/discordgo"

	"watchpoint/internal/models"
)

func (b *Bot) addCommands(commands ...*discordgo.ApplicationCommand) {
	b.commands = append(b.commands, commands...)
}

func tierChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.TierOrder))
	for _, t := range models.TierOrder {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  t.DisplayName(),
			Value: string(t),
		})
	}
	return choices
}

func (b *Bot) newRegisterCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "register",
		Description: "클랜 멤버로 등록합니다",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "battletag", Description: "배틀태그 (예: 이름#1234)", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "tier", Description: "경쟁전 티어", Required: true, Choices: tierChoices()},
		},
	}
}

func (b *Bot) newTierCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "tier",
		Description: "내 티어를 갱신합니다",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "tier", Description: "경쟁전 티어", Required: true, Choices: tierChoices()},
		},
	}
}

func (b *Bot) newMembersCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "members",
		Description: "등록된 멤버 목록",
	}
}

func (b *Bot) newClanCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "clan",
		Description: "클랜 설정",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "우리 클랜 이름 설정 (관리자)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "클랜 이름", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "상대했던 클랜 목록",
			},
		},
	}
}

func (b *Bot) newScrimCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "scrim",
		Description: "스크림 모집 공고 작성을 시작합니다",
	}
}

func (b *Bot) newRecordCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "record",
		Description: "스크림 결과 기록 세션을 시작합니다",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "모집 공고 ID", Required: true},
		},
	}
}

func (b *Bot) newCancelMatchCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "cancel_match",
		Description: "기록된 경기를 취소합니다 (관리자)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "id", Description: "경기 ID", Required: true},
		},
	}
}

func (b *Bot) newProfileCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "멤버의 전적을 봅니다",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "대상 멤버 (생략 시 본인)", Required: false},
		},
	}
}

func (b *Bot) newLeaderboardCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "전적 순위표",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "sort",
				Description: "정렬 기준",
				Required:    false,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "판수", Value: "games"},
					{Name: "승률", Value: "winrate"},
				},
			},
		},
	}
}

func (b *Bot) newExportCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "export",
		Description: "전적을 Excel로 내보냅니다 (관리자)",
	}
}

func (b *Bot) newBalanceCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "balance",
		Description: "음성 채널의 10명을 티어 기준으로 두 팀으로 나눕니다",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionChannel, Name: "channel", Description: "음성 채널 (생략 시 현재 접속 채널)", Required: false},
		},
	}
}

func (b *Bot) newQuizCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "quiz",
		Description: "단어 맞추기 게임",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "start", Description: "이 채널에서 게임 시작"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "stop", Description: "게임 종료"},
			{Type: discordgo.ApplicationCommandOptionSubCommand, Name: "rank", Description: "점수 순위"},
		},
	}
}

func (b *Bot) newVoiceCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "voice",
		Description: "음성 채널 이용 시간",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "대상 멤버 (생략 시 본인)", Required: false},
		},
	}
}

func (b *Bot) newVoiceTopCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "voice_top",
		Description: "음성 채널 이용 시간 순위",
	}
}

func (b *Bot) newTicketCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ticket",
		Description: "운영진에게 문의를 남깁니다",
	}
}

func (b *Bot) newTicketsCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "tickets",
		Description: "열린 문의 목록 (관리자)",
	}
}

func (b *Bot) newTicketAnswerCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ticket_answer",
		Description: "문의에 답변합니다 (관리자)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "ref", Description: "문의 번호", Required: true},
			{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "답변 내용", Required: true},
		},
	}
}

func (b *Bot) newTicketCloseCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ticket_close",
		Description: "문의를 종료합니다 (관리자)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "ref", Description: "문의 번호", Required: true},
		},
	}
}
