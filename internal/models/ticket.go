package models

import "time"

type TicketStatus string

const (
	TicketOpen     TicketStatus = "open"
	TicketAnswered TicketStatus = "answered"
	TicketClosed   TicketStatus = "closed"
)

type Ticket struct {
	ID        int64        `json:"id" db:"id"`
	Ref       string       `json:"ref" db:"ref"`
	GuildID   string       `json:"guild_id" db:"guild_id"`
	UserID    string       `json:"user_id" db:"user_id"`
	Title     string       `json:"title" db:"title"`
	Body      string       `json:"body" db:"body"`
	Answer    string       `json:"answer" db:"answer"`
	Status    TicketStatus `json:"status" db:"status"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
