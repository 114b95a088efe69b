// Package scheduler fires each event stream on its own cadence. A
// single polling loop checks which streams are due; the actual
// build+deliver work runs on one worker goroutine per stream, so a slow
// or hung sink stalls only its own stream, never the loop or the other
// streams.
package scheduler

import (
	"context"
	"sync"
	"time"

	"commercegen/internal/util"

	"go.uber.org/zap"
)

// DefaultPollInterval is the coarse wall-clock poll driving due checks.
const DefaultPollInterval = 500 * time.Millisecond

// Stream is one independently-timed event stream. Fire runs the
// build+deliver sequence for a single event and must handle its own
// errors; the scheduler only cares about timing.
type Stream struct {
	Name     string
	Interval time.Duration
	Fire     func(ctx context.Context)
}

type streamState struct {
	Stream

	mu          sync.Mutex
	lastFiredAt time.Time

	// work has capacity one: the worker drains it sequentially, and a
	// due firing while the previous one is still in flight is skipped.
	work chan time.Time
}

// Scheduler drives the configured streams until its context is
// cancelled. It has no terminal state of its own.
type Scheduler struct {
	streams []*streamState
	poll    time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithPollInterval overrides the due-check poll interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *Scheduler) { s.poll = d }
}

func New(streams []Stream, opts ...Option) *Scheduler {
	s := &Scheduler{
		poll:   DefaultPollInterval,
		now:    time.Now,
		logger: util.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, st := range streams {
		s.streams = append(s.streams, &streamState{
			Stream: st,
			work:   make(chan time.Time, 1),
		})
	}
	return s
}

// Run starts the per-stream workers and polls until ctx is cancelled.
// Every stream starts with a zero lastFiredAt, so each fires on its
// first tick.
func (s *Scheduler) Run(ctx context.Context) error {
	s.startWorkers(ctx)

	s.logger.Info("Scheduler started",
		zap.Int("streams", len(s.streams)),
		zap.Duration("poll", s.poll))

	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.tick(s.now())
		}
	}
}

func (s *Scheduler) startWorkers(ctx context.Context) {
	for _, st := range s.streams {
		go s.worker(ctx, st)
	}
}

func (s *Scheduler) worker(ctx context.Context, st *streamState) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-st.work:
			st.Fire(ctx)
		}
	}
}

// tick marks every due stream as fired and dispatches its work. The
// timer resets whether or not the delivery will succeed; a failing sink
// must not tighten the cadence. Dispatch never blocks: if the stream's
// worker is still busy the firing is skipped and counted.
func (s *Scheduler) tick(now time.Time) {
	for _, st := range s.streams {
		st.mu.Lock()
		due := now.Sub(st.lastFiredAt) >= st.Interval
		if due {
			st.lastFiredAt = now
		}
		st.mu.Unlock()

		if !due {
			continue
		}

		select {
		case st.work <- now:
		default:
			util.FiringsSkippedTotal.WithLabelValues(st.Name).Inc()
			s.logger.Warn("Stream busy, skipping firing",
				zap.String("stream", st.Name))
		}
	}
}
