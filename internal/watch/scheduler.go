package watch

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Scheduler runs full rebuilds on a fixed interval, independent of
// filesystem events.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a scheduler invoking rebuild every interval.
func NewScheduler(interval time.Duration, rebuild func()) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	if _, err := s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(rebuild),
		gocron.WithName("periodic-rebuild"),
	); err != nil {
		return nil, fmt.Errorf("create periodic rebuild job: %w", err)
	}

	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() { s.scheduler.Start() }

// Stop gracefully shuts the scheduler down.
func (s *Scheduler) Stop() error { return s.scheduler.Shutdown() }
