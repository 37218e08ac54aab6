package repository

import (
	"database/sql"
	"fmt"
	"time"

	"watchpoint/internal/models"
)

type TicketSQLite struct {
	db *sql.DB
}

func NewTicketSQLite(db *sql.DB) *TicketSQLite {
	return &TicketSQLite{db: db}
}

func (r *TicketSQLite) Create(t models.Ticket) (int64, error) {
	now := formatTimestamp(time.Now())
	res, err := r.db.Exec(`
		INSERT INTO tickets (ref, guild_id, user_id, title, body, answer, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, '', ?, ?, ?)
	`, t.Ref, t.GuildID, t.UserID, t.Title, t.Body, string(models.TicketOpen), now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to create ticket: %w", err)
	}
	return res.LastInsertId()
}

func (r *TicketSQLite) GetByRef(ref string) (*models.Ticket, error) {
	var t models.Ticket
	var status, createdAt, updatedAt string
	err := r.db.QueryRow(`
		SELECT id, ref, guild_id, user_id, title, body, answer, status, created_at, updated_at
		FROM tickets WHERE ref = ?
	`, ref).Scan(&t.ID, &t.Ref, &t.GuildID, &t.UserID, &t.Title, &t.Body, &t.Answer,
		&status, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("ticket %s not found: %w", ref, err)
	}
	t.Status = models.TicketStatus(status)
	t.CreatedAt = parseTimestamp(createdAt)
	t.UpdatedAt = parseTimestamp(updatedAt)
	return &t, nil
}

func (r *TicketSQLite) ListOpen(guildID string) ([]models.Ticket, error) {
	rows, err := r.db.Query(`
		SELECT id, ref, guild_id, user_id, title, body, answer, status, created_at, updated_at
		FROM tickets WHERE guild_id = ? AND status != ?
		ORDER BY created_at
	`, guildID, string(models.TicketClosed))
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		var status, createdAt, updatedAt string
		if err := rows.Scan(&t.ID, &t.Ref, &t.GuildID, &t.UserID, &t.Title, &t.Body,
			&t.Answer, &status, &createdAt, &updatedAt); err != nil {
			continue
		}
		t.Status = models.TicketStatus(status)
		t.CreatedAt = parseTimestamp(createdAt)
		t.UpdatedAt = parseTimestamp(updatedAt)
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *TicketSQLite) SetAnswer(ref, answer string) error {
	res, err := r.db.Exec(`
		UPDATE tickets SET answer = ?, status = ?, updated_at = ? WHERE ref = ?
	`, answer, string(models.TicketAnswered), formatTimestamp(time.Now()), ref)
	if err != nil {
		return fmt.Errorf("failed to answer ticket: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *TicketSQLite) SetStatus(ref string, status models.TicketStatus) error {
	res, err := r.db.Exec(`
		UPDATE tickets SET status = ?, updated_at = ? WHERE ref = ?
	`, string(status), formatTimestamp(time.Now()), ref)
	if err != nil {
		return fmt.Errorf("failed to set ticket status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
