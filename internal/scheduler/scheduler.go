// Package scheduler runs the periodic housekeeping jobs of the server
// process. The course core itself has no background tasks; this only keeps
// the session table tidy.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// SessionPurger removes expired sessions and reports how many were removed.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  SessionPurger
	logger    *zap.Logger
}

// New creates a new scheduler instance
func New(sessions SessionPurger, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		logger:    logger,
	}
}

// Start begins running all scheduled tasks in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.purgeSessions)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		s.logger.Warn("session purge failed", zap.Error(err))
		return
	}
	if purged > 0 {
		s.logger.Info("purged expired sessions", zap.Int64("count", purged))
	}
}
