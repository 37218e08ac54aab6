package repository

import (
	"database/sql"
	"fmt"
	"time"

	"watchpoint/internal/models"
)

type MatchSQLite struct {
	db *sql.DB
}

func NewMatchSQLite(db *sql.DB) *MatchSQLite {
	return &MatchSQLite{db: db}
}

// Create persists the match and all of its participants in one transaction.
// The match number is assigned inside the transaction so concurrent commits
// for the same recruitment cannot collide.
func (r *MatchSQLite) Create(match models.Match) (int64, error) {
	var matchID int64
	err := withTx(r.db, func(tx *sql.Tx) error {
		number := match.Number
		if number == 0 {
			if err := tx.QueryRow(
				"SELECT COALESCE(MAX(number), 0) + 1 FROM matches WHERE recruitment_id = ?",
				match.RecruitmentID,
			).Scan(&number); err != nil {
				return fmt.Errorf("failed to compute match number: %w", err)
			}
		}

		res, err := tx.Exec(`
			INSERT INTO matches (recruitment_id, number, winner, map_type, map_name, creator_id, cancelled, created_at)
			VALUES (?, ?, ?, ?, ?, ?, 0, ?)
		`, match.RecruitmentID, number, string(match.Winner), match.MapType, match.MapName,
			match.CreatorID, formatTimestamp(time.Now()))
		if err != nil {
			return fmt.Errorf("failed to insert match: %w", err)
		}

		matchID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get match id: %w", err)
		}

		for _, p := range match.Participants {
			_, err := tx.Exec(`
				INSERT INTO match_participants (match_id, user_id, side, role, won)
				VALUES (?, ?, ?, ?, ?)
			`, matchID, p.UserID, string(p.Side), string(p.Role), p.Won)
			if err != nil {
				return fmt.Errorf("failed to insert match participant: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return matchID, nil
}

func (r *MatchSQLite) Get(id int64) (*models.Match, error) {
	var m models.Match
	var winner, createdAt string
	err := r.db.QueryRow(`
		SELECT id, recruitment_id, number, winner, map_type, map_name, creator_id, cancelled, stats_applied, created_at
		FROM matches WHERE id = ?
	`, id).Scan(&m.ID, &m.RecruitmentID, &m.Number, &winner, &m.MapType, &m.MapName,
		&m.CreatorID, &m.Cancelled, &m.StatsApplied, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("match %d not found: %w", id, err)
	}
	m.Winner = models.TeamSide(winner)
	m.CreatedAt = parseTimestamp(createdAt)

	rows, err := r.db.Query(`
		SELECT id, match_id, user_id, side, role, won
		FROM match_participants WHERE match_id = ? ORDER BY side, id
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get match participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.MatchParticipant
		var side, role string
		if err := rows.Scan(&p.ID, &p.MatchID, &p.UserID, &side, &role, &p.Won); err != nil {
			continue
		}
		p.Side = models.TeamSide(side)
		p.Role = models.Role(role)
		m.Participants = append(m.Participants, p)
	}
	return &m, rows.Err()
}

func (r *MatchSQLite) NextNumber(recruitmentID int64) (int, error) {
	var next int
	err := r.db.QueryRow(
		"SELECT COALESCE(MAX(number), 0) + 1 FROM matches WHERE recruitment_id = ?",
		recruitmentID,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to get next match number: %w", err)
	}
	return next, nil
}

func (r *MatchSQLite) CountByRecruitment(recruitmentID int64) (int, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM matches WHERE recruitment_id = ? AND cancelled = 0",
		recruitmentID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

func (r *MatchSQLite) Cancel(id int64) error {
	res, err := r.db.Exec(
		"UPDATE matches SET cancelled = 1 WHERE id = ? AND cancelled = 0", id,
	)
	if err != nil {
		return fmt.Errorf("failed to cancel match: %w", err)
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
