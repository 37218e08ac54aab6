package application

import (
	"fmt"
	"sync"
	"time"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"

	"github.com/google/uuid"
)

type SessionSummary struct {
	Matches          int
	Credited         int
	SkippedUnlisted  int
	SkippedCancelled int
}

// RecordingServiceImpl owns the per-guild session registry. Create and
// release are the only mutation surface; at most one session per guild is
// allowed. The registry is memory-only, so a restart drops in-flight
// sessions instead of recovering them.
type RecordingServiceImpl struct {
	matches repository.Match
	scrims  repository.Scrim
	members repository.Member
	stats   repository.Stats
	logger  Logger

	mu       sync.RWMutex
	sessions map[string]*RecordingSession // keyed by guild id
}

func NewRecordingServiceImpl(matches repository.Match, scrims repository.Scrim, members repository.Member, stats repository.Stats, logger Logger) *RecordingServiceImpl {
	return &RecordingServiceImpl{
		matches:  matches,
		scrims:   scrims,
		members:  members,
		stats:    stats,
		logger:   logger,
		sessions: make(map[string]*RecordingSession),
	}
}

func (s *RecordingServiceImpl) StartSession(guildID, channelID string, recruitmentID int64, userID string) (*RecordingSession, error) {
	s.mu.RLock()
	existing, busy := s.sessions[guildID]
	s.mu.RUnlock()
	if busy {
		return nil, fmt.Errorf("이미 진행 중인 기록 세션이 있습니다 (세션 %s)", existing.ID)
	}

	rec, err := s.scrims.GetRecruitment(recruitmentID)
	if err != nil {
		return nil, err
	}
	if rec.GuildID != guildID {
		return nil, fmt.Errorf("이 서버의 모집이 아닙니다")
	}
	if rec.Status == models.RecruitmentCancelled {
		return nil, fmt.Errorf("취소된 모집은 기록할 수 없습니다")
	}
	if rec.Status != models.RecruitmentClosed && time.Now().Before(rec.Deadline) {
		return nil, fmt.Errorf("아직 마감되지 않은 모집입니다 (마감: %s)", rec.Deadline.Format("2006-01-02 15:04"))
	}

	roster, err := s.scrims.GetParticipants(recruitmentID)
	if err != nil {
		return nil, err
	}

	next, err := s.matches.NextNumber(recruitmentID)
	if err != nil {
		return nil, err
	}

	sess := NewRecordingSession(uuid.NewString(), guildID, channelID, recruitmentID, userID, roster, next)

	s.mu.Lock()
	defer s.mu.Unlock()
	if other, busy := s.sessions[guildID]; busy {
		return nil, fmt.Errorf("이미 진행 중인 기록 세션이 있습니다 (세션 %s)", other.ID)
	}
	s.sessions[guildID] = sess
	return sess, nil
}

func (s *RecordingServiceImpl) ActiveSession(guildID string) (*RecordingSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[guildID]
	return sess, ok
}

func (s *RecordingServiceImpl) release(guildID string) {
	s.mu.Lock()
	delete(s.sessions, guildID)
	s.mu.Unlock()
}

// AddRosterMember only admits registered members; that keeps the later
// statistics gate from silently eating an organizer's manual addition.
func (s *RecordingServiceImpl) AddRosterMember(sess *RecordingSession, userID string) error {
	registered, err := s.members.Exists(sess.GuildID, userID)
	if err != nil {
		return err
	}
	if !registered {
		return fmt.Errorf("등록된 멤버만 추가할 수 있습니다 (/register)")
	}
	return sess.AddRosterMember(userID)
}

// SaveMatch persists the session's finished match draft and returns the
// session to the dashboard.
func (s *RecordingServiceImpl) SaveMatch(sess *RecordingSession) (int64, error) {
	match, err := sess.BuildMatch()
	if err != nil {
		return 0, err
	}
	matchID, err := s.matches.Create(match)
	if err != nil {
		return 0, fmt.Errorf("경기 저장에 실패했습니다: %w", err)
	}
	sess.CompleteMatch(matchID)
	return matchID, nil
}

// CompleteSession credits user statistics exactly once per persisted
// participant, skipping players who are not currently registered members of
// the guild. Their participant rows remain; they simply never earn
// aggregate credit, including retroactively. Each match's credits commit
// atomically together with its stats_applied flag, so a failure leaves the
// match fully uncredited and the retry picks it up cleanly. The session is
// released afterwards.
func (s *RecordingServiceImpl) CompleteSession(sess *RecordingSession) (*SessionSummary, error) {
	sess.mu.Lock()
	err := sess.requireStep(StepDashboard)
	saved := append([]int64(nil), sess.SavedMatches...)
	sess.mu.Unlock()
	if err != nil {
		return nil, err
	}

	summary := &SessionSummary{Matches: len(saved)}
	for _, matchID := range saved {
		match, err := s.matches.Get(matchID)
		if err != nil {
			return nil, err
		}
		if match.Cancelled {
			summary.SkippedCancelled++
			continue
		}
		if match.StatsApplied {
			continue
		}

		credited, skipped, err := s.registeredParticipants(sess.GuildID, match.Participants)
		if err != nil {
			return nil, err
		}
		if err := s.stats.ApplyMatch(sess.GuildID, matchID, credited); err != nil {
			return nil, fmt.Errorf("통계 반영에 실패했습니다: %w", err)
		}
		summary.Credited += len(credited)
		summary.SkippedUnlisted += skipped
	}

	s.release(sess.GuildID)
	return summary, nil
}

// registeredParticipants splits a match's participants into those who may
// receive aggregate credit and a count of those skipped for not being
// current guild members.
func (s *RecordingServiceImpl) registeredParticipants(guildID string, participants []models.MatchParticipant) ([]models.MatchParticipant, int, error) {
	var credited []models.MatchParticipant
	skipped := 0
	for _, p := range participants {
		registered, err := s.members.Exists(guildID, p.UserID)
		if err != nil {
			return nil, 0, err
		}
		if !registered {
			skipped++
			continue
		}
		credited = append(credited, p)
	}
	return credited, skipped, nil
}

// CancelSession drops the in-memory draft without touching statistics.
// Matches already persisted this session stay in the store.
func (s *RecordingServiceImpl) CancelSession(guildID string) {
	s.release(guildID)
}

// CancelMatch is the post-hoc administrative path: it marks the match
// cancelled and, when its statistics were already committed, reverses
// exactly the increments it contributed.
func (s *RecordingServiceImpl) CancelMatch(matchID int64) error {
	match, err := s.matches.Get(matchID)
	if err != nil {
		return err
	}
	if match.Cancelled {
		return fmt.Errorf("이미 취소된 경기입니다")
	}

	rec, err := s.scrims.GetRecruitment(match.RecruitmentID)
	if err != nil {
		return err
	}

	if err := s.matches.Cancel(matchID); err != nil {
		return fmt.Errorf("경기 취소에 실패했습니다: %w", err)
	}

	if !match.StatsApplied {
		return nil
	}
	credited, _, err := s.registeredParticipants(rec.GuildID, match.Participants)
	if err != nil {
		return err
	}
	if err := s.stats.RevertMatch(rec.GuildID, matchID, credited); err != nil {
		return fmt.Errorf("통계 되돌리기에 실패했습니다: %w", err)
	}
	return nil
}
