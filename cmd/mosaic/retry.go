package main

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/robby/mosaic/internal/gh"
)

// retryInterval is the first wait between attempts.
var retryInterval = 500 * time.Millisecond

// withRetry runs op, retrying transport failures up to a.retries times with
// exponential backoff. Answers from GitHub, including errors, are final.
func withRetry[T any](ctx context.Context, a *app, op func() (T, error)) (T, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = retryInterval
	b := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(a.retries)), ctx)

	return backoff.RetryNotifyWithData(func() (T, error) {
		v, err := op()
		if err != nil && (gh.KindOf(err) != gh.KindTransport || errors.Is(err, context.Canceled)) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, b, func(err error, wait time.Duration) {
		a.logger.Warn("Request failed, retrying", "err", err, "wait", wait)
	})
}
