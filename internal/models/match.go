package models

import "time"

type TeamSide string

const (
	TeamA TeamSide = "team_a"
	TeamB TeamSide = "team_b"
)

func (s TeamSide) DisplayName() string {
	if s == TeamA {
		return "A팀"
	}
	return "B팀"
}

type Match struct {
	ID            int64     `json:"id" db:"id"`
	RecruitmentID int64     `json:"recruitment_id" db:"recruitment_id"`
	Number        int       `json:"number" db:"number"`
	Winner        TeamSide  `json:"winner" db:"winner"`
	MapType       string    `json:"map_type" db:"map_type"`
	MapName       string    `json:"map_name" db:"map_name"`
	CreatorID     string    `json:"creator_id" db:"creator_id"`
	Cancelled     bool      `json:"cancelled" db:"cancelled"`
	StatsApplied  bool      `json:"stats_applied" db:"stats_applied"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Participants []MatchParticipant `json:"participants"`
}

// MatchParticipant records one player's appearance in one match. Won is
// derived from side and winner at persist time and never recomputed.
type MatchParticipant struct {
	ID      int64    `json:"id" db:"id"`
	MatchID int64    `json:"match_id" db:"match_id"`
	UserID  string   `json:"user_id" db:"user_id"`
	Side    TeamSide `json:"side" db:"side"`
	Role    Role     `json:"role" db:"role"`
	Won     bool     `json:"won" db:"won"`
}

type UserStatistic struct {
	GuildID      string `json:"guild_id" db:"guild_id"`
	UserID       string `json:"user_id" db:"user_id"`
	TotalGames   int    `json:"total_games" db:"total_games"`
	TotalWins    int    `json:"total_wins" db:"total_wins"`
	TankGames    int    `json:"tank_games" db:"tank_games"`
	TankWins     int    `json:"tank_wins" db:"tank_wins"`
	DPSGames     int    `json:"dps_games" db:"dps_games"`
	DPSWins      int    `json:"dps_wins" db:"dps_wins"`
	SupportGames int    `json:"support_games" db:"support_games"`
	SupportWins  int    `json:"support_wins" db:"support_wins"`
}
