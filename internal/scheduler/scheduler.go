package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/bike-weather-regression/internal/logger"
)

// Reloader re-reads the datasets and swaps in a new snapshot.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Scheduler periodically refreshes the datasets.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables refreshing.
func New(interval time.Duration, reloader Reloader) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		reloader:  reloader,
		interval:  interval,
		timeout:   2 * time.Minute,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// The first run happens one interval after start; the initial load is the caller's.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		logger.Infof("scheduler: refresh disabled; datasets stay as loaded at startup")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	logger.Infof("scheduler: refreshing datasets every %s", s.interval)
	return nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.reloader.Reload(ctx); err != nil {
		logger.Errorf("scheduler: refresh failed, keeping previous snapshot: %v", err)
		return
	}
	logger.Debugf("scheduler: refresh completed")
}

// Running reports whether a refresh job is scheduled.
func (s *Scheduler) Running() bool {
	return s.scheduler.IsRunning()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
