package models

type WordScore struct {
	GuildID string `json:"guild_id" db:"guild_id"`
	UserID  string `json:"user_id" db:"user_id"`
	Points  int    `json:"points" db:"points"`
}
