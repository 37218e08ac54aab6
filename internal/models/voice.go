package models

type VoiceStat struct {
	GuildID      string `json:"guild_id" db:"guild_id"`
	UserID       string `json:"user_id" db:"user_id"`
	TotalSeconds int64  `json:"total_seconds" db:"total_seconds"`
}
