package models

import "time"

type Role string

const (
	RoleTank    Role = "tank"
	RoleDPS     Role = "dps"
	RoleSupport Role = "support"
	RoleFlex    Role = "flex"
)

var roleNames = map[Role]string{
	RoleTank:    "탱커",
	RoleDPS:     "딜러",
	RoleSupport: "힐러",
	RoleFlex:    "플렉스",
}

func (r Role) DisplayName() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return string(r)
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	if _, ok := roleNames[r]; ok {
		return r, true
	}
	for role, name := range roleNames {
		if name == s {
			return role, true
		}
	}
	return "", false
}

type RecruitmentStatus string

const (
	RecruitmentActive          RecruitmentStatus = "active"
	RecruitmentPartiallyClosed RecruitmentStatus = "partially_closed"
	RecruitmentClosed          RecruitmentStatus = "closed"
	RecruitmentCancelled       RecruitmentStatus = "cancelled"
)

// Terminal reports whether no further signups or edits are possible.
func (s RecruitmentStatus) Terminal() bool {
	return s == RecruitmentClosed || s == RecruitmentCancelled
}

type Recruitment struct {
	ID           int64             `json:"id" db:"id"`
	GuildID      string            `json:"guild_id" db:"guild_id"`
	Title        string            `json:"title" db:"title"`
	OpponentClan string            `json:"opponent_clan" db:"opponent_clan"`
	TierMin      Tier              `json:"tier_min" db:"tier_min"`
	TierMax      Tier              `json:"tier_max" db:"tier_max"`
	Description  string            `json:"description" db:"description"`
	Deadline     time.Time         `json:"deadline" db:"deadline"`
	Status       RecruitmentStatus `json:"status" db:"status"`
	CreatorID    string            `json:"creator_id" db:"creator_id"`
	ChannelID    string            `json:"channel_id" db:"channel_id"`
	MessageID    string            `json:"message_id" db:"message_id"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
}

// TimeSlot is one concrete (date, time range) offering under a recruitment.
// Date uses the "2006-01-02" layout.
type TimeSlot struct {
	ID            int64  `json:"id" db:"id"`
	RecruitmentID int64  `json:"recruitment_id" db:"recruitment_id"`
	Date          string `json:"date" db:"date"`
	TimeRange     string `json:"time_range" db:"time_range"`
	Finalized     bool   `json:"finalized" db:"finalized"`
}

func (s TimeSlot) Label() string {
	return s.Date + " " + s.TimeRange
}

type PositionSignup struct {
	ID        int64     `json:"id" db:"id"`
	SlotID    int64     `json:"slot_id" db:"slot_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
