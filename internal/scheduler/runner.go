package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

type Job func(ctx context.Context) error

// Locker grants a key to one holder for ttl.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Runner fires a job on a fixed interval. A tick that arrives while the
// previous run is still executing is skipped.
type Runner struct {
	name     string
	interval time.Duration
	job      Job
	log      *logrus.Logger

	locker  Locker
	lockTTL time.Duration

	running atomic.Bool
	wg      sync.WaitGroup
	now     func() time.Time
}

func NewRunner(name string, interval time.Duration, job Job, log *logrus.Logger) *Runner {
	return &Runner{
		name:     name,
		interval: interval,
		job:      job,
		log:      log,
		now:      time.Now,
	}
}

// WithLock makes the runner take a lock before each run so that only one
// process runs the job per interval window. The lock is held for at least one
// interval, so a ttl shorter than that is raised to it.
func (r *Runner) WithLock(locker Locker, ttl time.Duration) *Runner {
	if ttl < r.interval {
		ttl = r.interval
	}
	r.locker = locker
	r.lockTTL = ttl
	return r
}

// lockKey names the interval window containing now. Instances whose tickers
// started at different times still agree on the window, so each window is
// run once however the ticks are staggered.
func (r *Runner) lockKey(now time.Time) string {
	return fmt.Sprintf("scheduler:%s:%d", r.name, now.Truncate(r.interval).Unix())
}

// Run blocks until ctx is done, then waits for an in-flight run to return.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	defer r.wg.Wait()

	r.log.WithFields(logrus.Fields{"job": r.name, "interval": r.interval.String()}).Info("scheduler started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		r.start(ctx)
	}
}

func (r *Runner) start(ctx context.Context) bool {
	if !r.running.CompareAndSwap(false, true) {
		r.log.WithField("job", r.name).Warn("previous run still executing, skipping tick")
		return false
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.running.Store(false)
		r.runOnce(ctx)
	}()
	return true
}

func (r *Runner) runOnce(ctx context.Context) {
	entry := r.log.WithField("job", r.name)

	if r.locker != nil {
		acquired, err := r.locker.Acquire(ctx, r.lockKey(r.now()), r.lockTTL)
		if err != nil {
			entry.WithError(err).Warn("failed to acquire job lock")
			return
		}
		if !acquired {
			entry.Debug("job lock held elsewhere, skipping")
			return
		}
	}

	started := time.Now()
	if err := r.job(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		entry.WithError(err).Error("job failed")
		return
	}
	entry.WithField("elapsed", time.Since(started).String()).Debug("job finished")
}
