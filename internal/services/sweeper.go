package services

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// sweepInterval is how often expired sessions are collected.
const sweepInterval = 60 * time.Second

// Sweeper periodically removes sessions that have been idle longer than the
// configured timeout, cascading into their conversations.
type Sweeper struct {
	scheduler gocron.Scheduler
	sessions  *SessionStore
	timeout   time.Duration
}

// NewSweeper creates a sweeper over the given session store.
func NewSweeper(sessions *SessionStore, timeout time.Duration) (*Sweeper, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		scheduler: scheduler,
		sessions:  sessions,
		timeout:   timeout,
	}, nil
}

// Start schedules the recurring sweep and begins running it.
func (s *Sweeper) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(sweepInterval),
		gocron.NewTask(func() {
			s.sessions.SweepExpired(time.Now(), s.timeout)
		}),
		gocron.WithName("session-sweep"),
	)
	if err != nil {
		return err
	}
	s.scheduler.Start()
	log.Printf("🕐 Session sweep scheduled every %s (idle timeout %s)", sweepInterval, s.timeout)
	return nil
}

// Stop shuts the scheduler down, waiting for a running sweep to finish.
func (s *Sweeper) Stop() error {
	return s.scheduler.Shutdown()
}
