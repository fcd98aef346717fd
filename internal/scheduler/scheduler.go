package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/travel-checker/internal/planner"
)

// Evaluator produces one best-day run.
type Evaluator interface {
	Evaluate(ctx context.Context, w planner.Weights) (planner.Run, error)
}

// Scheduler periodically evaluates the best departure day and records the run.
type Scheduler struct {
	scheduler *gocron.Scheduler
	evaluator Evaluator
	store     planner.RunStore
	weights   planner.Weights
	interval  time.Duration
	timeout   time.Duration
	threshold float64
}

// Options configure the periodic job.
type Options struct {
	Interval       time.Duration
	Timeout        time.Duration
	AlertThreshold float64
	Weights        planner.Weights
}

// New creates a new Scheduler.
func New(evaluator Evaluator, store planner.RunStore, opts Options) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Scheduler{
		scheduler: s,
		evaluator: evaluator,
		store:     store,
		weights:   opts.Weights,
		interval:  opts.Interval,
		timeout:   timeout,
		threshold: opts.AlertThreshold,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// A non-positive interval disables the job.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: interval not set; periodic evaluation disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce evaluates the window, stores the run and logs an alert when the
// best day clears the threshold.
func (s *Scheduler) RunOnce() {
	log.Println("scheduler: running best-day evaluation")

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	run, err := s.evaluator.Evaluate(ctx, s.weights)
	if err != nil {
		log.Printf("scheduler: evaluation failed: %v", err)
		return
	}
	s.store.SaveRun(run)

	best := run.Result.BestDay
	if s.threshold > 0 && best.Score >= s.threshold {
		log.Printf("ALERT: %s scores %.2f (threshold %.0f), fare %s",
			best.Date.Format("2006-01-02"), best.Score, s.threshold, best.FlightPrice)
	}
	log.Printf("scheduler: completed evaluation %s in %dms", run.ID, run.DurationMs)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
