package application

import (
	"sync"
	"time"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"
)

type voiceSession struct {
	guildID   string
	userID    string
	channelID string
	joinedAt  time.Time
}

type VoiceServiceImpl struct {
	repo   repository.Voice
	logger Logger

	mu   sync.Mutex
	open map[string]*voiceSession // keyed guildID:userID
	now  func() time.Time
}

func NewVoiceServiceImpl(repo repository.Voice, logger Logger) *VoiceServiceImpl {
	return &VoiceServiceImpl{
		repo:   repo,
		logger: logger,
		open:   make(map[string]*voiceSession),
		now:    time.Now,
	}
}

// HandleVoiceState processes a voice state update. An empty channelID means
// the user left voice entirely; a channel switch closes the old session and
// opens a new one so the accumulated time never double counts.
func (s *VoiceServiceImpl) HandleVoiceState(guildID, userID, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := guildID + ":" + userID
	sess, ok := s.open[key]

	if channelID == "" {
		if !ok {
			return nil
		}
		delete(s.open, key)
		return s.credit(sess)
	}

	if ok {
		if sess.channelID == channelID {
			return nil
		}
		if err := s.credit(sess); err != nil {
			return err
		}
	}
	s.open[key] = &voiceSession{
		guildID:   guildID,
		userID:    userID,
		channelID: channelID,
		joinedAt:  s.now(),
	}
	return nil
}

func (s *VoiceServiceImpl) credit(sess *voiceSession) error {
	seconds := int64(s.now().Sub(sess.joinedAt).Seconds())
	if seconds <= 0 {
		return nil
	}
	if err := s.repo.AddSeconds(sess.guildID, sess.userID, seconds); err != nil {
		s.logger.Error("voice time save failed: guild=%s user=%s: %v", sess.guildID, sess.userID, err)
		return err
	}
	return nil
}

// FlushOpenSessions persists time accrued so far for everyone still in voice
// and restarts their sessions from now. Run periodically so a crash loses at
// most one interval.
func (s *VoiceServiceImpl) FlushOpenSessions() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, sess := range s.open {
		if err := s.credit(sess); err != nil && firstErr == nil {
			firstErr = err
		}
		sess.joinedAt = s.now()
	}
	return firstErr
}

func (s *VoiceServiceImpl) TotalSeconds(guildID, userID string) (int64, error) {
	return s.repo.Get(guildID, userID)
}

func (s *VoiceServiceImpl) Top(guildID string) ([]models.VoiceStat, error) {
	return s.repo.Top(guildID, leaderboardLimit)
}
