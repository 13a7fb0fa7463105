// workers/schedule.go
package workers

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
)

// Handle identifies one scheduled repeating job. The zero Handle is never active.
type Handle struct {
	id uuid.UUID
}

func (h Handle) String() string { return h.id.String() }

func (h Handle) IsZero() bool { return h.id == uuid.Nil }

// Schedule runs repeating jobs on a gocron scheduler and cancels them by handle.
type Schedule struct {
	sched gocron.Scheduler
}

func NewSchedule() (*Schedule, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	sched.Start()
	return &Schedule{sched: sched}, nil
}

// Every runs fn each period, first after one period. A run that is still going when
// the next one is due makes that tick skip rather than queue up.
func (s *Schedule) Every(period time.Duration, fn func()) (Handle, error) {
	if period <= 0 {
		return Handle{}, fmt.Errorf("period must be positive, got %s", period)
	}
	job, err := s.sched.NewJob(
		gocron.DurationJob(period),
		gocron.NewTask(fn),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return Handle{}, fmt.Errorf("failed to schedule job: %w", err)
	}
	return Handle{id: job.ID()}, nil
}

// Cancel stops future runs of the job. A run already in progress is not interrupted.
func (s *Schedule) Cancel(h Handle) error {
	if h.IsZero() {
		return nil
	}
	if err := s.sched.RemoveJob(h.id); err != nil {
		return fmt.Errorf("failed to cancel job %s: %w", h, err)
	}
	return nil
}

// Active is the number of scheduled jobs.
func (s *Schedule) Active() int {
	return len(s.sched.Jobs())
}

func (s *Schedule) Shutdown() error {
	return s.sched.Shutdown()
}
