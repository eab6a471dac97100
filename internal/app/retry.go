package app

import (
	"context"
	crand "crypto/rand"
	"errors"
	"time"

	"lakeshore_hotel/internal/domain"
)

// RetryPolicy decides what a page does when a fetch fails: transient
// failures are retried MaxRetries times, everything else fails at once.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	// MaxDelay caps both our own backoff and the store's Retry-After hint.
	MaxDelay time.Duration
}

// DefaultRetryPolicy retries once.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 1, BaseDelay: 200 * time.Millisecond, MaxDelay: 2 * time.Second}
}

func retryable(err error) bool { return errors.Is(err, domain.ErrTransient) }

// Do runs op until it succeeds, fails permanently, or retries run out.
func (p RetryPolicy) Do(ctx context.Context, op func(context.Context) error) error {
	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	var err error
	for i := 0; i <= retries; i++ {
		if err = op(ctx); err == nil || !retryable(err) {
			return err
		}
		if i == retries {
			break
		}
		if !sleepCtx(ctx, p.delay(i, err)) {
			return err
		}
	}
	return err
}

// Wrap applies the policy to a join task.
func (p RetryPolicy) Wrap(t Task) Task {
	return func(ctx context.Context) (func(), error) {
		var commit func()
		err := p.Do(ctx, func(ctx context.Context) error {
			c, err := t(ctx)
			commit = c
			return err
		})
		if err != nil {
			return nil, err
		}
		return commit, nil
	}
}

// delay prefers the store's Retry-After hint, else exponential backoff.
func (p RetryPolicy) delay(i int, err error) time.Duration {
	var fe *domain.FetchError
	d := time.Duration(0)
	if errors.As(err, &fe) && fe.RetryAfter > 0 {
		d = fe.RetryAfter
	} else {
		d = backoff(i, p.BaseDelay)
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// backoff doubles base each attempt and adds up to +50% jitter.
func backoff(i int, base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	d := time.Duration(1<<i) * base
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return d
	}
	f := float64(b[0]) / 255.0
	return d + time.Duration(0.5*f*float64(d))
}
