// Package scheduler owns the process-wide background job table. It is an
// explicit service object handed to whoever needs manual triggers, not a
// package-level singleton; jobs live only for the process lifetime.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/civiclens/civitas-backend/internal/logger"
)

var ErrUnknownJob = fmt.Errorf("unknown job")

// Handler is one job body. Recomputation handlers are idempotent, so a
// skipped run is cheap: the next tick retries.
type Handler func(ctx context.Context) error

type JobStatus struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval"`
	LastRun   *time.Time    `json:"last_run,omitempty"`
	IsRunning bool          `json:"is_running"`
}

type job struct {
	name     string
	interval time.Duration
	handler  Handler

	mu        sync.Mutex
	lastRun   *time.Time
	isRunning bool
}

type Scheduler struct {
	log  *logger.Logger
	cron *cron.Cron

	mu   sync.Mutex
	jobs map[string]*job
	ctx  context.Context
}

func New(baseLog *logger.Logger) *Scheduler {
	return &Scheduler{
		log:  baseLog.With("service", "Scheduler"),
		cron: cron.New(),
		jobs: make(map[string]*job),
	}
}

func (s *Scheduler) Register(name string, interval time.Duration, handler Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	s.jobs[name] = &job{name: name, interval: interval, handler: handler}
	return nil
}

// Start fires every registered job once immediately, then arms a recurring
// timer per job at its configured interval.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	jobs := make([]*job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	s.mu.Unlock()

	for _, j := range jobs {
		j := j
		go s.runJob(ctx, j)
		if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
			s.runJob(ctx, j)
		}); err != nil {
			return fmt.Errorf("failed to schedule job %q: %w", j.name, err)
		}
		s.log.Info("Scheduled job", "job", j.name, "interval", j.interval.String())
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
}

// RunJob triggers one job by name and waits for it to finish. A job already
// in flight is skipped, not queued: skip-if-busy is a normal, logged no-op
// outcome.
func (s *Scheduler) RunJob(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	ctx := s.ctx
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.runJob(ctx, j)
	return nil
}

// Trigger validates the job name and fires it in the background, for callers
// that must not block on a full run (the manual HTTP trigger).
func (s *Scheduler) Trigger(name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	ctx := s.ctx
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJob, name)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	go s.runJob(ctx, j)
	return nil
}

func (s *Scheduler) runJob(ctx context.Context, j *job) {
	j.mu.Lock()
	if j.isRunning {
		j.mu.Unlock()
		s.log.Info("Job already running, skipping", "job", j.name)
		return
	}
	j.isRunning = true
	j.mu.Unlock()

	// The guard always releases, even when the handler panics, so a bad run
	// cannot permanently wedge the job.
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Job panicked", "job", j.name, "panic", r)
		}
		j.mu.Lock()
		j.isRunning = false
		j.mu.Unlock()
	}()

	start := time.Now()
	s.log.Info("Job starting", "job", j.name)
	if err := j.handler(ctx); err != nil {
		s.log.Error("Job failed", "job", j.name, "error", err, "duration", time.Since(start).String())
		return
	}

	now := time.Now()
	j.mu.Lock()
	j.lastRun = &now
	j.mu.Unlock()
	s.log.Info("Job finished", "job", j.name, "duration", time.Since(start).String())
}

func (s *Scheduler) Status() []JobStatus {
	s.mu.Lock()
	jobs := make([]*job, 0, len(s.jobs))
	for _, j := range s.jobs {
		jobs = append(jobs, j)
	}
	s.mu.Unlock()

	out := make([]JobStatus, 0, len(jobs))
	for _, j := range jobs {
		j.mu.Lock()
		status := JobStatus{
			Name:      j.name,
			Interval:  j.interval,
			IsRunning: j.isRunning,
		}
		if j.lastRun != nil {
			t := *j.lastRun
			status.LastRun = &t
		}
		j.mu.Unlock()
		out = append(out, status)
	}
	return out
}
