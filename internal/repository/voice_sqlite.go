package repository

import (
	"database/sql"
	"fmt"

	"watchpoint/internal/models"
)

type VoiceSQLite struct {
	db *sql.DB
}

func NewVoiceSQLite(db *sql.DB) *VoiceSQLite {
	return &VoiceSQLite{db: db}
}

func (r *VoiceSQLite) AddSeconds(guildID, userID string, seconds int64) error {
	_, err := r.db.Exec(`
		INSERT INTO voice_stats (guild_id, user_id, total_seconds) VALUES (?, ?, ?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET total_seconds = total_seconds + excluded.total_seconds
	`, guildID, userID, seconds)
	if err != nil {
		return fmt.Errorf("failed to add voice seconds: %w", err)
	}
	return nil
}

func (r *VoiceSQLite) Get(guildID, userID string) (int64, error) {
	var seconds int64
	err := r.db.QueryRow(
		"SELECT total_seconds FROM voice_stats WHERE guild_id = ? AND user_id = ?",
		guildID, userID,
	).Scan(&seconds)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get voice seconds: %w", err)
	}
	return seconds, nil
}

func (r *VoiceSQLite) Top(guildID string, limit int) ([]models.VoiceStat, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, total_seconds FROM voice_stats
		WHERE guild_id = ? ORDER BY total_seconds DESC LIMIT ?
	`, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get voice ranking: %w", err)
	}
	defer rows.Close()

	var stats []models.VoiceStat
	for rows.Next() {
		var s models.VoiceStat
		if err := rows.Scan(&s.GuildID, &s.UserID, &s.TotalSeconds); err == nil {
			stats = append(stats, s)
		}
	}
	return stats, rows.Err()
}
