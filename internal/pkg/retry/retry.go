package retry

import (
	"context"
	"time"

	"github.com/chll-hr/leave-backend/internal/pkg/database"
	goretry "github.com/sethvargo/go-retry"
)

const (
	defaultAttempts  = 3
	defaultBaseDelay = 50 * time.Millisecond
	defaultMaxDelay  = time.Second
)

// Policy bounds the exponential backoff applied to transient failures.
type Policy struct {
	Attempts  uint64
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

var DefaultPolicy = Policy{
	Attempts:  defaultAttempts,
	BaseDelay: defaultBaseDelay,
	MaxDelay:  defaultMaxDelay,
}

func (p Policy) backoff() goretry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	b := goretry.NewExponential(base)
	if p.MaxDelay > 0 {
		b = goretry.WithCappedDuration(p.MaxDelay, b)
	}
	b = goretry.WithJitterPercent(10, b)
	// Attempts counts the first try.
	retries := uint64(0)
	if p.Attempts > 1 {
		retries = p.Attempts - 1
	}
	return goretry.WithMaxRetries(retries, b)
}

// Do runs fn until it succeeds, fails with a non-transient error, the
// attempts run out or ctx ends. Only database.IsTransient errors are retried.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return goretry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		err := fn(ctx)
		if database.IsTransient(err) {
			return goretry.RetryableError(err)
		}
		return err
	})
}

// Do applies DefaultPolicy.
func Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return DefaultPolicy.Do(ctx, fn)
}
