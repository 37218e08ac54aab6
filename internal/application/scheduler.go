package application

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs the periodic housekeeping jobs: closing recruitments whose
// deadline passed and flushing open voice sessions to the database.
type Scheduler struct {
	sched   gocron.Scheduler
	svc     *Service
	closeFn func(now time.Time) (int64, error)
	logger  Logger
}

func NewScheduler(svc *Service, closeExpired func(now time.Time) (int64, error), logger Logger) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{sched: sched, svc: svc, closeFn: closeExpired, logger: logger}, nil
}

func (s *Scheduler) Start() error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(time.Minute),
		gocron.NewTask(s.closeExpiredRecruitments),
	)
	if err != nil {
		return fmt.Errorf("schedule recruitment close job: %w", err)
	}

	_, err = s.sched.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(s.flushVoiceSessions),
	)
	if err != nil {
		return fmt.Errorf("schedule voice flush job: %w", err)
	}

	s.sched.Start()
	s.logger.Info("scheduler started")
	return nil
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) closeExpiredRecruitments() {
	closed, err := s.closeFn(time.Now())
	if err != nil {
		s.logger.Error("close expired recruitments: %v", err)
		return
	}
	if closed > 0 {
		s.logger.Info("closed %d expired recruitments", closed)
	}
}

func (s *Scheduler) flushVoiceSessions() {
	if err := s.svc.Voice.FlushOpenSessions(); err != nil {
		s.logger.Error("flush voice sessions: %v", err)
	}
}
