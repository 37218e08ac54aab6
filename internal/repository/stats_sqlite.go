package repository

import (
	"database/sql"
	"fmt"

	"watchpoint/internal/models"
)

type StatsSQLite struct {
	db *sql.DB
}

func NewStatsSQLite(db *sql.DB) *StatsSQLite {
	return &StatsSQLite{db: db}
}

func roleColumns(role models.Role) (gamesCol, winsCol string, ok bool) {
	switch role {
	case models.RoleTank:
		return "tank_games", "tank_wins", true
	case models.RoleDPS:
		return "dps_games", "dps_wins", true
	case models.RoleSupport:
		return "support_games", "support_wins", true
	}
	return "", "", false
}

// ApplyMatch credits one game (and a win where earned) to every given
// participant and flips the match's stats_applied flag, all in one
// transaction. A mid-batch failure rolls everything back, so retrying a
// failed session completion can never double-credit.
func (r *StatsSQLite) ApplyMatch(guildID string, matchID int64, participants []models.MatchParticipant) error {
	return r.adjustMatch(guildID, matchID, participants, 1)
}

// RevertMatch undoes one prior ApplyMatch with the same participants and
// clears the flag. Used by the admin match cancellation path.
func (r *StatsSQLite) RevertMatch(guildID string, matchID int64, participants []models.MatchParticipant) error {
	return r.adjustMatch(guildID, matchID, participants, -1)
}

func (r *StatsSQLite) adjustMatch(guildID string, matchID int64, participants []models.MatchParticipant, delta int) error {
	return withTx(r.db, func(tx *sql.Tx) error {
		for _, p := range participants {
			if err := adjustUser(tx, guildID, p.UserID, p.Role, p.Won, delta); err != nil {
				return err
			}
		}

		applied := 0
		if delta > 0 {
			applied = 1
		}
		res, err := tx.Exec(
			"UPDATE matches SET stats_applied = ? WHERE id = ? AND stats_applied = ?",
			applied, matchID, 1-applied,
		)
		if err != nil {
			return fmt.Errorf("failed to flag match statistics: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

func adjustUser(tx *sql.Tx, guildID, userID string, role models.Role, won bool, delta int) error {
	win := 0
	if won {
		win = delta
	}

	_, err := tx.Exec(`
		INSERT INTO user_statistics (guild_id, user_id) VALUES (?, ?)
		ON CONFLICT (guild_id, user_id) DO NOTHING
	`, guildID, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure statistics row: %w", err)
	}

	query := `UPDATE user_statistics
		SET total_games = total_games + ?, total_wins = total_wins + ?`
	args := []interface{}{delta, win}
	if gamesCol, winsCol, hasRole := roleColumns(role); hasRole {
		query += fmt.Sprintf(", %s = %s + ?, %s = %s + ?", gamesCol, gamesCol, winsCol, winsCol)
		args = append(args, delta, win)
	}
	query += " WHERE guild_id = ? AND user_id = ?"
	args = append(args, guildID, userID)

	if _, err := tx.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to update statistics: %w", err)
	}
	return nil
}

func (r *StatsSQLite) Get(guildID, userID string) (*models.UserStatistic, error) {
	var st models.UserStatistic
	err := r.db.QueryRow(`
		SELECT guild_id, user_id, total_games, total_wins, tank_games, tank_wins,
		       dps_games, dps_wins, support_games, support_wins
		FROM user_statistics WHERE guild_id = ? AND user_id = ?
	`, guildID, userID).Scan(&st.GuildID, &st.UserID, &st.TotalGames, &st.TotalWins,
		&st.TankGames, &st.TankWins, &st.DPSGames, &st.DPSWins, &st.SupportGames, &st.SupportWins)
	if err == sql.ErrNoRows {
		return &models.UserStatistic{GuildID: guildID, UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}
	return &st, nil
}

func (r *StatsSQLite) GetAll(guildID string) ([]models.UserStatistic, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, total_games, total_wins, tank_games, tank_wins,
		       dps_games, dps_wins, support_games, support_wins
		FROM user_statistics WHERE guild_id = ?
		ORDER BY total_games DESC, total_wins DESC
	`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get all statistics: %w", err)
	}
	defer rows.Close()

	var stats []models.UserStatistic
	for rows.Next() {
		var st models.UserStatistic
		if err := rows.Scan(&st.GuildID, &st.UserID, &st.TotalGames, &st.TotalWins,
			&st.TankGames, &st.TankWins, &st.DPSGames, &st.DPSWins,
			&st.SupportGames, &st.SupportWins); err != nil {
			continue
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
