package repository

import (
	"database/sql"
	"fmt"

	"watchpoint/internal/models"
)

type QuizSQLite struct {
	db *sql.DB
}

func NewQuizSQLite(db *sql.DB) *QuizSQLite {
	return &QuizSQLite{db: db}
}

func (r *QuizSQLite) AddPoints(guildID, userID string, points int) error {
	_, err := r.db.Exec(`
		INSERT INTO word_scores (guild_id, user_id, points) VALUES (?, ?, ?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET points = points + excluded.points
	`, guildID, userID, points)
	if err != nil {
		return fmt.Errorf("failed to add quiz points: %w", err)
	}
	return nil
}

func (r *QuizSQLite) Top(guildID string, limit int) ([]models.WordScore, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, points FROM word_scores
		WHERE guild_id = ? ORDER BY points DESC LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz ranking: %w", err)
	}
	defer rows.Close()

	var scores []models.WordScore
	for rows.Next() {
		var s models.WordScore
		if err := rows.Scan(&s.GuildID, &s.UserID, &s.Points); err == nil {
			scores = append(scores, s)
		}
	}
	return scores, rows.Err()
}
