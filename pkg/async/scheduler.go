package async

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs named jobs on cron schedules. Each run gets the SafeGo
// treatment: a timeout, panic recovery and error logging.
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	log  logrus.FieldLogger
}

// NewScheduler creates a scheduler whose job contexts derive from ctx.
// Overlapping runs of the same job are skipped.
func NewScheduler(ctx context.Context, log logrus.FieldLogger) *Scheduler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Scheduler{
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:  ctx,
		log:  log,
	}
}

// AddJob registers fn under spec, a five-field cron expression or a
// descriptor such as "@every 5m".
func (s *Scheduler) AddJob(spec, name string, timeout time.Duration, fn func(context.Context) error) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		err := run(s.ctx, s.log, timeout, name, fn)
		entry := s.log.WithFields(logrus.Fields{
			"job":         name,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if err == nil {
			entry.Debug("Scheduled job completed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.log.WithFields(logrus.Fields{"job": name, "schedule": spec}).Info("Scheduled job")
	return nil
}

// RunNow executes fn once, synchronously, as a scheduled run would
func (s *Scheduler) RunNow(name string, timeout time.Duration, fn func(context.Context) error) error {
	return run(s.ctx, s.log, timeout, name, fn)
}

// Jobs returns the number of registered jobs
func (s *Scheduler) Jobs() int {
	return len(s.cron.Entries())
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs until ctx is done
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}
