package application

import (
	"time"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

type MemberService interface {
	Register(guildID, userID, battleTag string, tier models.Tier) error
	SetTier(guildID, userID string, tier models.Tier) error
	Get(guildID, userID string) (*models.Member, error)
	IsRegistered(guildID, userID string) (bool, error)
	Members(guildID string) ([]models.Member, error)
	MembersByID(guildID string, userIDs []string) ([]models.Member, error)
	TierTargets(guildID string, min, max models.Tier) ([]string, error)

	ClanName(guildID string) (string, error)
	SetClanName(guildID, name string) error
	KnownClans(guildID string) ([]string, error)
}

type ScrimService interface {
	StartDraft(guildID, userID, channelID string) *RecruitDraft
	GetDraft(guildID, userID string) (*RecruitDraft, bool)
	DiscardDraft(guildID, userID string)
	SetOpponent(draft *RecruitDraft, name string) error
	SetDeadline(draft *RecruitDraft, deadline time.Time) error
	Publish(draft *RecruitDraft) (*models.Recruitment, []models.TimeSlot, error)
	AttachMessage(recruitmentID int64, channelID, messageID string) error

	GetRecruitment(id int64) (*models.Recruitment, error)
	SlotOverview(recruitmentID int64) ([]SlotInfo, error)
	ToggleSignup(recruitmentID, slotID int64, userID string, role models.Role) (*SignupResult, error)
	UserSlotIDs(recruitmentID int64, userID string, role models.Role) (map[int64]bool, error)
	FinalizeSlot(recruitmentID, slotID int64) (*models.TimeSlot, []string, error)
	CancelRecruitment(recruitmentID int64) error
}

type RecordingService interface {
	StartSession(guildID, channelID string, recruitmentID int64, userID string) (*RecordingSession, error)
	ActiveSession(guildID string) (*RecordingSession, bool)
	AddRosterMember(sess *RecordingSession, userID string) error
	SaveMatch(sess *RecordingSession) (int64, error)
	CompleteSession(sess *RecordingSession) (*SessionSummary, error)
	CancelSession(guildID string)
	CancelMatch(matchID int64) error
}

type StatsService interface {
	Profile(guildID, userID string) (*models.UserStatistic, error)
	Leaderboard(guildID, sortBy string) ([]models.UserStatistic, error)
	ExcelReport(guildID string) ([]byte, error)
}

type QuizService interface {
	Start(guildID, channelID, userID string) (*QuizRound, error)
	Guess(guildID, channelID, userID, text string) (*GuessResult, error)
	Stop(guildID, channelID string) (*QuizRound, error)
	Ranking(guildID string) ([]models.WordScore, error)
}

type VoiceService interface {
	HandleVoiceState(guildID, userID, channelID string) error
	FlushOpenSessions() error
	TotalSeconds(guildID, userID string) (int64, error)
	Top(guildID string) ([]models.VoiceStat, error)
}

type TicketService interface {
	Create(guildID, userID, title, body string) (*models.Ticket, error)
	ListOpen(guildID string) ([]models.Ticket, error)
	Answer(ref, text string) (*models.Ticket, error)
	Close(ref string) (*models.Ticket, error)
}

type Service struct {
	Member    MemberService
	Scrim     ScrimService
	Recording RecordingService
	Stats     StatsService
	Quiz      QuizService
	Voice     VoiceService
	Ticket    TicketService
}

func NewService(repos *repository.Repository, logger Logger) *Service {
	member := NewMemberServiceImpl(repos.Member, logger)
	return &Service{
		Member:    member,
		Scrim:     NewScrimServiceImpl(repos.Scrim, repos.Member, logger),
		Recording: NewRecordingServiceImpl(repos.Match, repos.Scrim, repos.Member, repos.Stats, logger),
		Stats:     NewStatsServiceImpl(repos.Stats, logger),
		Quiz:      NewQuizServiceImpl(repos.Quiz, logger),
		Voice:     NewVoiceServiceImpl(repos.Voice, logger),
		Ticket:    NewTicketServiceImpl(repos.Ticket, logger),
	}
}
