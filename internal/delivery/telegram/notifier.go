package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"watchpoint/internal/application"
	"watchpoint/internal/models"
)

// Notifier mirrors recruitment announcements into a single Telegram chat.
// It is send-only; no updates are consumed.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger application.Logger
}

func NewNotifier(token string, chatID int64, logger application.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram notifier authorized on account %s", bot.Self.UserName)

	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (n *Notifier) AnnounceRecruitment(rec *models.Recruitment, slots []models.TimeSlot) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📢 %s\n", rec.Title))
	sb.WriteString(fmt.Sprintf("티어: %s ~ %s\n", rec.TierMin.DisplayName(), rec.TierMax.DisplayName()))
	sb.WriteString(fmt.Sprintf("신청 마감: %s\n\n", rec.Deadline.Format("2006-01-02 15:04")))
	for _, slot := range slots {
		sb.WriteString("• " + slot.Label() + "\n")
	}
	if rec.Description != "" {
		sb.WriteString("\n" + rec.Description + "\n")
	}
	sb.WriteString("\n디스코드 서버에서 포지션을 신청해주세요.")

	msg := tgbotapi.NewMessage(n.chatID, sb.String())
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
