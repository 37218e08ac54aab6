package repository

import (
	"database/sql"
	"time"

	"watchpoint/internal/models"
)

type Member interface {
	Upsert(m models.Member) error
	Get(guildID, userID string) (*models.Member, error)
	GetAll(guildID string) ([]models.Member, error)
	Exists(guildID, userID string) (bool, error)
	SetTier(guildID, userID string, tier models.Tier) error

	GetClanName(guildID string) (string, error)
	SetClanName(guildID, name string) error
	GetKnownClans(guildID string) ([]string, error)
	RememberClan(guildID, name string) error
}

type Scrim interface {
	CreateRecruitment(rec models.Recruitment, slots []models.TimeSlot) (int64, error)
	GetRecruitment(id int64) (*models.Recruitment, error)
	SetRecruitmentMessage(id int64, channelID, messageID string) error
	UpdateRecruitmentStatus(id int64, status models.RecruitmentStatus) error
	CloseExpired(now time.Time) (int64, error)

	GetSlots(recruitmentID int64) ([]models.TimeSlot, error)
	GetSlot(slotID int64) (*models.TimeSlot, error)
	FinalizeSlot(slotID int64) error

	ToggleSignup(slotID int64, userID string, role models.Role) (bool, error)
	GetSignups(slotID int64) ([]models.PositionSignup, error)
	GetSignupCounts(recruitmentID int64) (map[int64]int, error)
	SlotsWithUserRole(recruitmentID int64, userID string, role models.Role) ([]int64, error)
	GetParticipants(recruitmentID int64) ([]string, error)
}

type Match interface {
	Create(match models.Match) (int64, error)
	Get(id int64) (*models.Match, error)
	NextNumber(recruitmentID int64) (int, error)
	CountByRecruitment(recruitmentID int64) (int, error)
	Cancel(id int64) error
}

type Stats interface {
	ApplyMatch(guildID string, matchID int64, participants []models.MatchParticipant) error
	RevertMatch(guildID string, matchID int64, participants []models.MatchParticipant) error
	Get(guildID, userID string) (*models.UserStatistic, error)
	GetAll(guildID string) ([]models.UserStatistic, error)
}

type Quiz interface {
	AddPoints(guildID, userID string, points int) error
	Top(guildID string, limit int) ([]models.WordScore, error)
}

type Voice interface {
	AddSeconds(guildID, userID string, seconds int64) error
	Get(guildID, userID string) (int64, error)
	Top(guildID string, limit int) ([]models.VoiceStat, error)
}

type Ticket interface {
	Create(t models.Ticket) (int64, error)
	GetByRef(ref string) (*models.Ticket, error)
	ListOpen(guildID string) ([]models.Ticket, error)
	SetAnswer(ref, answer string) error
	SetStatus(ref string, status models.TicketStatus) error
}

type Repository struct {
	Member Member
	Scrim  Scrim
	Match  Match
	Stats  Stats
	Quiz   Quiz
	Voice  Voice
	Ticket Ticket

	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Member: NewMemberSQLite(db),
		Scrim:  NewScrimSQLite(db),
		Match:  NewMatchSQLite(db),
		Stats:  NewStatsSQLite(db),
		Quiz:   NewQuizSQLite(db),
		Voice:  NewVoiceSQLite(db),
		Ticket: NewTicketSQLite(db),
		db:     db,
	}
}
