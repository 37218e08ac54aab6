package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"
)

type TicketServiceImpl struct {
	repo   repository.Ticket
	logger Logger
}

func NewTicketServiceImpl(repo repository.Ticket, logger Logger) *TicketServiceImpl {
	return &TicketServiceImpl{repo: repo, logger: logger}
}

func (s *TicketServiceImpl) Create(guildID, userID, title, body string) (*models.Ticket, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		return nil, fmt.Errorf("문의 제목을 입력해 주세요")
	}

	now := time.Now().UTC()
	ticket := &models.Ticket{
		Ref:       uuid.NewString()[:8],
		GuildID:   guildID,
		UserID:    userID,
		Title:     title,
		Body:      body,
		Status:    models.TicketOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.repo.Create(*ticket)
	if err != nil {
		return nil, fmt.Errorf("문의 등록에 실패했습니다: %w", err)
	}
	ticket.ID = id
	s.logger.Info("ticket created: guild=%s ref=%s", guildID, ticket.Ref)
	return ticket, nil
}

func (s *TicketServiceImpl) ListOpen(guildID string) ([]models.Ticket, error) {
	return s.repo.ListOpen(guildID)
}

func (s *TicketServiceImpl) Answer(ref, text string) (*models.Ticket, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("답변 내용을 입력해 주세요")
	}
	ticket, err := s.repo.GetByRef(ref)
	if err != nil {
		return nil, fmt.Errorf("문의(%s)를 찾을 수 없습니다", ref)
	}
	if ticket.Status == models.TicketClosed {
		return nil, fmt.Errorf("이미 종료된 문의입니다")
	}
	if err := s.repo.SetAnswer(ticket.Ref, text); err != nil {
		return nil, fmt.Errorf("답변 저장에 실패했습니다: %w", err)
	}
	ticket.Answer = text
	ticket.Status = models.TicketAnswered
	return ticket, nil
}

func (s *TicketServiceImpl) Close(ref string) (*models.Ticket, error) {
	ticket, err := s.repo.GetByRef(ref)
	if err != nil {
		return nil, fmt.Errorf("문의(%s)를 찾을 수 없습니다", ref)
	}
	if ticket.Status == models.TicketClosed {
		return nil, fmt.Errorf("이미 종료된 문의입니다")
	}
	if err := s.repo.SetStatus(ticket.Ref, models.TicketClosed); err != nil {
		return nil, fmt.Errorf("문의 종료에 실패했습니다: %w", err)
	}
	ticket.Status = models.TicketClosed
	return ticket, nil
}
