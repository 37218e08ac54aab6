package repository

import (
	"database/sql"
	"fmt"

	"watchpoint/internal/models"
)

type MemberSQLite struct {
	db *sql.DB
}

func NewMemberSQLite(db *sql.DB) *MemberSQLite {
	return &MemberSQLite{db: db}
}

func (r *MemberSQLite) Upsert(m models.Member) error {
	_, err := r.db.Exec(`
		INSERT INTO members (guild_id, user_id, battle_tag, tier, joined_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (guild_id, user_id) DO UPDATE SET
			battle_tag = excluded.battle_tag,
			tier = excluded.tier
	`, m.GuildID, m.UserID, m.BattleTag, string(m.Tier), formatTimestamp(m.JoinedAt))
	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}
	return nil
}

func (r *MemberSQLite) Get(guildID, userID string) (*models.Member, error) {
	var m models.Member
	var tier, joinedAt string
	err := r.db.QueryRow(`
		SELECT guild_id, user_id, battle_tag, tier, joined_at
		FROM members WHERE guild_id = ? AND user_id = ?
	`, guildID, userID).Scan(&m.GuildID, &m.UserID, &m.BattleTag, &tier, &joinedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	m.Tier = models.Tier(tier)
	m.JoinedAt = parseTimestamp(joinedAt)
	return &m, nil
}

func (r *MemberSQLite) GetAll(guildID string) ([]models.Member, error) {
	rows, err := r.db.Query(`
		SELECT guild_id, user_id, battle_tag, tier, joined_at
		FROM members WHERE guild_id = ? ORDER BY joined_at
	`, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		var tier, joinedAt string
		if err := rows.Scan(&m.GuildID, &m.UserID, &m.BattleTag, &tier, &joinedAt); err != nil {
			continue
		}
		m.Tier = models.Tier(tier)
		m.JoinedAt = parseTimestamp(joinedAt)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *MemberSQLite) Exists(guildID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM members WHERE guild_id = ? AND user_id = ?)",
		guildID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check member existence: %w", err)
	}
	return exists, nil
}

func (r *MemberSQLite) SetTier(guildID, userID string, tier models.Tier) error {
	res, err := r.db.Exec(
		"UPDATE members SET tier = ? WHERE guild_id = ? AND user_id = ?",
		string(tier), guildID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set tier: %w", err)
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

func (r *MemberSQLite) GetClanName(guildID string) (string, error) {
	var name string
	err := r.db.QueryRow(
		"SELECT clan_name FROM guild_settings WHERE guild_id = ?", guildID,
	).Scan(&name)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get clan name: %w", err)
	}
	return name, nil
}

func (r *MemberSQLite) SetClanName(guildID, name string) error {
	_, err := r.db.Exec(`
		INSERT INTO guild_settings (guild_id, clan_name) VALUES (?, ?)
		ON CONFLICT (guild_id) DO UPDATE SET clan_name = excluded.clan_name
	`, guildID, name)
	if err != nil {
		return fmt.Errorf("failed to set clan name: %w", err)
	}
	return nil
}

func (r *MemberSQLite) GetKnownClans(guildID string) ([]string, error) {
	rows, err := r.db.Query(
		"SELECT name FROM known_clans WHERE guild_id = ? ORDER BY name", guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get known clans: %w", err)
	}
	defer rows.Close()

	var clans []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err == nil {
			clans = append(clans, name)
		}
	}
	return clans, rows.Err()
}

func (r *MemberSQLite) RememberClan(guildID, name string) error {
	_, err := r.db.Exec(`
		INSERT INTO known_clans (guild_id, name) VALUES (?, ?)
		ON CONFLICT (guild_id, name) DO NOTHING
	`, guildID, name)
	if err != nil {
		return fmt.Errorf("failed to remember clan: %w", err)
	}
	return nil
}
