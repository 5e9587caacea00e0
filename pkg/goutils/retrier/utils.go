/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package retrier

import (
	"context"
	"time"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

// Retry executes op until it succeeds and returns its result.
func Retry[T any](ctx context.Context, cfg Config, clock timeu.ITime, op func() (T, error)) (T, error) {
	var zero T
	r, err := New(cfg, clock)
	if err != nil {
		return zero, err
	}
	var result T
	err = r.Run(ctx, func() error {
		var opErr error
		result, opErr = op()
		return opErr
	})
	if err != nil {
		return zero, err
	}
	return result, nil
}

// RetryErr executes op until it succeeds.
func RetryErr(ctx context.Context, cfg Config, clock timeu.ITime, op func() error) error {
	r, err := New(cfg, clock)
	if err != nil {
		return err
	}
	return r.Run(ctx, op)
}

// RetryFor executes op until it succeeds or maxElapsed passes on the clock.
// See Retrier.RunFor for the returned values.
func RetryFor(ctx context.Context, cfg Config, clock timeu.ITime, maxElapsed time.Duration, op func() error) (ok bool, err error) {
	r, err := New(cfg, clock)
	if err != nil {
		return false, err
	}
	return r.RunFor(ctx, maxElapsed, op)
}
