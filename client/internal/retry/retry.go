// Package retry re-issues a failed request with exponential backoff. The zero
// Policy performs exactly one attempt.
package retry

import (
	"context"
	"errors"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	apierrors "github.com/youhong316/harbor/client/internal/errors"
)

// Policy configures how many times and how fast a request is re-issued.
type Policy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxInterval time.Duration
}

// Enabled reports whether more than one attempt is allowed.
func (p Policy) Enabled() bool { return p.MaxAttempts > 1 }

func (p Policy) withDefaults() Policy {
	if p.BaseBackoff <= 0 {
		p.BaseBackoff = 100 * time.Millisecond
	}
	if p.MaxInterval <= 0 {
		p.MaxInterval = 5 * time.Second
	}
	return p
}

// Do runs fn until it succeeds, returns a permanent error, or the attempts
// are exhausted. The error of the last attempt is returned as is.
func Do(ctx context.Context, p Policy, fn func(context.Context) error) error {
	if !p.Enabled() {
		return fn(ctx)
	}
	p = p.withDefaults()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.BaseBackoff
	exp.Multiplier = 2
	exp.MaxInterval = p.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(p.MaxAttempts-1)), ctx)

	var last error
	err := backoff.Retry(func() error {
		last = fn(ctx)
		if last == nil {
			return nil
		}
		if !Retryable(ctx, last) {
			return backoff.Permanent(last)
		}
		return last
	}, b)
	if err == nil {
		return nil
	}
	// backoff reports ctx.Err() when the context ends between attempts; the
	// caller still gets the last request error if there was one.
	if last != nil {
		return last
	}
	return err
}

// Retryable reports whether err is worth another attempt: classified
// recoverable statuses and transport failures, but never a cancelled context.
func Retryable(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return !apierrors.IsIrrecoverable(err)
}
