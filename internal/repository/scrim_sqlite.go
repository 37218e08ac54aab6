package repository

import (
	"database/sql"
	"fmt"
	"time"

	"watchpoint/internal/models"
)

type ScrimSQLite struct {
	db *sql.DB
}

func NewScrimSQLite(db *sql.DB) *ScrimSQLite {
	return &ScrimSQLite{db: db}
}

// CreateRecruitment persists the recruitment and all of its time slots in
// one transaction.
func (r *ScrimSQLite) CreateRecruitment(rec models.Recruitment, slots []models.TimeSlot) (int64, error) {
	var recruitmentID int64
	err := withTx(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO recruitments
				(guild_id, title, opponent_clan, tier_min, tier_max, description,
				 deadline, status, creator_id, channel_id, message_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rec.GuildID, rec.Title, rec.OpponentClan, string(rec.TierMin), string(rec.TierMax),
			rec.Description, formatTimestamp(rec.Deadline), string(models.RecruitmentActive),
			rec.CreatorID, rec.ChannelID, rec.MessageID, formatTimestamp(time.Now()))
		if err != nil {
			return fmt.Errorf("failed to insert recruitment: %w", err)
		}

		recruitmentID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get recruitment id: %w", err)
		}

		for _, slot := range slots {
			_, err := tx.Exec(`
				INSERT INTO time_slots (recruitment_id, date, time_range, finalized)
				VALUES (?, ?, ?, 0)
			`, recruitmentID, slot.Date, slot.TimeRange)
			if err != nil {
				return fmt.Errorf("failed to insert time slot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return recruitmentID, nil
}

func (r *ScrimSQLite) GetRecruitment(id int64) (*models.Recruitment, error) {
	var rec models.Recruitment
	var tierMin, tierMax, deadline, status, createdAt string
	err := r.db.QueryRow(`
		SELECT id, guild_id, title, opponent_clan, tier_min, tier_max, description,
		       deadline, status, creator_id, channel_id, message_id, created_at
		FROM recruitments WHERE id = ?
	`, id).Scan(&rec.ID, &rec.GuildID, &rec.Title, &rec.OpponentClan, &tierMin, &tierMax,
		&rec.Description, &deadline, &status, &rec.CreatorID, &rec.ChannelID, &rec.MessageID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("recruitment %d not found: %w", id, err)
	}
	rec.TierMin = models.Tier(tierMin)
	rec.TierMax = models.Tier(tierMax)
	rec.Deadline = parseTimestamp(deadline)
	rec.Status = models.RecruitmentStatus(status)
	rec.CreatedAt = parseTimestamp(createdAt)
	return &rec, nil
}

func (r *ScrimSQLite) SetRecruitmentMessage(id int64, channelID, messageID string) error {
	_, err := r.db.Exec(
		"UPDATE recruitments SET channel_id = ?, message_id = ? WHERE id = ?",
		channelID, messageID, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set recruitment message: %w", err)
	}
	return nil
}

func (r *ScrimSQLite) UpdateRecruitmentStatus(id int64, status models.RecruitmentStatus) error {
	res, err := r.db.Exec(
		"UPDATE recruitments SET status = ? WHERE id = ?",
		string(status), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update recruitment status: %w", err)
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

// CloseExpired flips every non-terminal recruitment past its deadline to
// closed and returns how many rows changed. Cancelled recruitments stay
// cancelled.
func (r *ScrimSQLite) CloseExpired(now time.Time) (int64, error) {
	res, err := r.db.Exec(`
		UPDATE recruitments SET status = ?
		WHERE status IN (?, ?) AND deadline < ?
	`, string(models.RecruitmentClosed),
		string(models.RecruitmentActive), string(models.RecruitmentPartiallyClosed),
		formatTimestamp(now))
	if err != nil {
		return 0, fmt.Errorf("failed to close expired recruitments: %w", err)
	}
	return res.RowsAffected()
}

func (r *ScrimSQLite) GetSlots(recruitmentID int64) ([]models.TimeSlot, error) {
	rows, err := r.db.Query(`
		SELECT id, recruitment_id, date, time_range, finalized
		FROM time_slots WHERE recruitment_id = ?
		ORDER BY date, time_range
	`, recruitmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get time slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var s models.TimeSlot
		if err := rows.Scan(&s.ID, &s.RecruitmentID, &s.Date, &s.TimeRange, &s.Finalized); err != nil {
			continue
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func (r *ScrimSQLite) GetSlot(slotID int64) (*models.TimeSlot, error) {
	var s models.TimeSlot
	err := r.db.QueryRow(`
		SELECT id, recruitment_id, date, time_range, finalized
		FROM time_slots WHERE id = ?
	`, slotID).Scan(&s.ID, &s.RecruitmentID, &s.Date, &s.TimeRange, &s.Finalized)
	if err != nil {
		return nil, fmt.Errorf("time slot %d not found: %w", slotID, err)
	}
	return &s, nil
}

// FinalizeSlot is one-way: finalized never goes back to 0.
func (r *ScrimSQLite) FinalizeSlot(slotID int64) error {
	res, err := r.db.Exec(
		"UPDATE time_slots SET finalized = 1 WHERE id = ? AND finalized = 0",
		slotID,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize slot: %w", err)
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

// ToggleSignup inserts the (slot, user, role) triple if absent, deletes it
// if present. Returns true when the signup was added.
func (r *ScrimSQLite) ToggleSignup(slotID int64, userID string, role models.Role) (bool, error) {
	added := false
	err := withTx(r.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(
			"DELETE FROM position_signups WHERE slot_id = ? AND user_id = ? AND role = ?",
			slotID, userID, string(role),
		)
		if err != nil {
			return fmt.Errorf("failed to delete signup: %w", err)
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if deleted > 0 {
			return nil
		}

		_, err = tx.Exec(`
			INSERT INTO position_signups (slot_id, user_id, role, created_at)
			VALUES (?, ?, ?, ?)
		`, slotID, userID, string(role), formatTimestamp(time.Now()))
		if err != nil {
			return fmt.Errorf("failed to insert signup: %w", err)
		}
		added = true
		return nil
	})
	return added, err
}

func (r *ScrimSQLite) GetSignups(slotID int64) ([]models.PositionSignup, error) {
	rows, err := r.db.Query(`
		SELECT id, slot_id, user_id, role, created_at
		FROM position_signups WHERE slot_id = ? ORDER BY created_at
	`, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get signups: %w", err)
	}
	defer rows.Close()

	var signups []models.PositionSignup
	for rows.Next() {
		var s models.PositionSignup
		var role, createdAt string
		if err := rows.Scan(&s.ID, &s.SlotID, &s.UserID, &role, &createdAt); err != nil {
			continue
		}
		s.Role = models.Role(role)
		s.CreatedAt = parseTimestamp(createdAt)
		signups = append(signups, s)
	}
	return signups, rows.Err()
}

func (r *ScrimSQLite) GetSignupCounts(recruitmentID int64) (map[int64]int, error) {
	rows, err := r.db.Query(`
		SELECT ts.id, COUNT(ps.id)
		FROM time_slots ts
		LEFT JOIN position_signups ps ON ps.slot_id = ts.id
		WHERE ts.recruitment_id = ?
		GROUP BY ts.id
	`, recruitmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get signup counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var slotID int64
		var count int
		if err := rows.Scan(&slotID, &count); err == nil {
			counts[slotID] = count
		}
	}
	return counts, rows.Err()
}

func (r *ScrimSQLite) SlotsWithUserRole(recruitmentID int64, userID string, role models.Role) ([]int64, error) {
	rows, err := r.db.Query(`
		SELECT ps.slot_id
		FROM position_signups ps
		JOIN time_slots ts ON ts.id = ps.slot_id
		WHERE ts.recruitment_id = ? AND ps.user_id = ? AND ps.role = ?
	`, recruitmentID, userID, string(role))
	if err != nil {
		return nil, fmt.Errorf("failed to get user slot signups: %w", err)
	}
	defer rows.Close()

	var slotIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err == nil {
			slotIDs = append(slotIDs, id)
		}
	}
	return slotIDs, rows.Err()
}

// GetParticipants returns the distinct users signed up anywhere under the
// recruitment, in first-signup order.
func (r *ScrimSQLite) GetParticipants(recruitmentID int64) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT ps.user_id
		FROM position_signups ps
		JOIN time_slots ts ON ts.id = ps.slot_id
		WHERE ts.recruitment_id = ?
		GROUP BY ps.user_id
		ORDER BY MIN(ps.created_at)
	`, recruitmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err == nil {
			users = append(users, id)
		}
	}
	return users, rows.Err()
}
