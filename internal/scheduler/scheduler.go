package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-monitor/internal/weather"
)

// Jobs is the work the scheduler drives. *weather.Service satisfies it.
type Jobs interface {
	Poll(ctx context.Context) (succeeded, failed int)
	Summarize(ctx context.Context, at time.Time) []weather.DailySummary
}

// Scheduler runs the poll job on a fixed interval and the summary job on a
// cron expression. Each job is in singleton mode, so a slow run is never
// overlapped by the next tick of the same job; the two jobs do not block each other.
type Scheduler struct {
	scheduler    *gocron.Scheduler
	jobs         Jobs
	pollInterval time.Duration
	summaryCron  string
	log          *zap.SugaredLogger

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Scheduler. loc is the time zone the cron expression is read in.
func New(jobs Jobs, pollInterval time.Duration, summaryCron string, loc *time.Location, log *zap.SugaredLogger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler:    gocron.NewScheduler(loc),
		jobs:         jobs,
		pollInterval: pollInterval,
		summaryCron:  summaryCron,
		log:          log,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start registers both jobs and starts the underlying scheduler. The first
// poll runs immediately.
func (s *Scheduler) Start() error {
	if s.pollInterval <= 0 {
		return fmt.Errorf("scheduler: poll interval must be positive, got %s", s.pollInterval)
	}

	if _, err := s.scheduler.Every(s.pollInterval).SingletonMode().Do(s.runPoll); err != nil {
		return fmt.Errorf("scheduler: register poll job: %w", err)
	}
	if _, err := s.scheduler.Cron(s.summaryCron).SingletonMode().Do(s.runSummary); err != nil {
		return fmt.Errorf("scheduler: register summary job %q: %w", s.summaryCron, err)
	}

	s.scheduler.StartAsync()
	s.log.Infow("scheduler started", "pollInterval", s.pollInterval.String(), "summaryCron", s.summaryCron)
	return nil
}

func (s *Scheduler) runPoll() {
	s.log.Debug("scheduler: running weather fetch job")
	ok, failed := s.jobs.Poll(s.ctx)
	s.log.Infow("scheduler: completed weather fetch job", "succeeded", ok, "failed", failed)
}

func (s *Scheduler) runSummary() {
	s.log.Info("scheduler: generating daily weather summary")
	summaries := s.jobs.Summarize(s.ctx, time.Now().UTC())
	s.log.Infow("scheduler: daily summary complete", "summaries", len(summaries))
}

// Stop stops the scheduler and cancels in-flight jobs.
func (s *Scheduler) Stop() {
	s.cancel()
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
