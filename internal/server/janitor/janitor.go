// Package janitor runs periodic housekeeping on a cron schedule: purging
// expired bearer tokens and dropping idle login rate-limit buckets.
package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/robfig/cron/v3"
)

const sweepTimeout = time.Minute

type TokenPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type Pruner interface {
	Prune() int
}

type Janitor struct {
	cron    *cron.Cron
	tokens  TokenPurger
	limiter Pruner
	logger  logging.Logger
}

// New registers the sweep under schedule, a standard cron spec or a
// descriptor such as "@every 10m". limiter may be nil.
func New(schedule string, tokens TokenPurger, limiter Pruner, l logging.Logger) (*Janitor, error) {
	j := &Janitor{
		cron:    cron.New(),
		tokens:  tokens,
		limiter: limiter,
		logger:  l.With("module", "janitor"),
	}

	if _, err := j.cron.AddFunc(schedule, j.scheduled); err != nil {
		return nil, fmt.Errorf("janitor schedule %q: %w", schedule, err)
	}
	return j, nil
}

func (j *Janitor) scheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	j.Sweep(ctx)
}

// Sweep runs one housekeeping pass. Failures are logged and retried on the
// next tick.
func (j *Janitor) Sweep(ctx context.Context) {
	purged, err := j.tokens.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error(ctx, "purge expired tokens", "error", err)
	} else if purged > 0 {
		j.logger.Info(ctx, "Purged expired tokens", "count", purged)
	}

	if j.limiter != nil {
		if n := j.limiter.Prune(); n > 0 {
			j.logger.Debug(ctx, "Pruned idle rate limiters", "count", n)
		}
	}
}

// Run starts the scheduler and blocks until ctx is cancelled, then waits
// for a running sweep to finish.
func (j *Janitor) Run(ctx context.Context) error {
	j.logger.Info(ctx, "Starting janitor")
	j.cron.Start()
	<-ctx.Done()

	j.logger.Info(ctx, "Stopping janitor...")
	<-j.cron.Stop().Done()
	return nil
}
