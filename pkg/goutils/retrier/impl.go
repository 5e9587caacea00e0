/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package retrier

import (
	"context"
	"math/rand"
	"time"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

// NewDefaultConfig returns a backoff config with default multiplier and jitter.
func NewDefaultConfig(initialDelay, maxDelay time.Duration) Config {
	return Config{
		InitialDelay: initialDelay,
		MaxDelay:     maxDelay,
		Multiplier:   DefaultMultiplier,
		JitterFactor: DefaultJitterFactor,
	}
}

// NewFixedDelayConfig returns a config that retries at a constant interval.
func NewFixedDelayConfig(delay time.Duration) Config {
	return Config{
		InitialDelay: delay,
		Multiplier:   1,
	}
}

// New creates a Retrier with the provided Config, validating parameters.
func New(cfg Config, clock timeu.ITime) (*Retrier, error) {
	if cfg.InitialDelay <= 0 ||
		cfg.Multiplier < 1 || cfg.JitterFactor < 0 || cfg.JitterFactor > 1 ||
		cfg.ResetAfter < 0 {
		return nil, ErrInvalidConfig
	}
	if cfg.MaxDelay <= 0 && cfg.Multiplier != 1 {
		return nil, ErrInvalidConfig
	}
	return &Retrier{
		cfg:          cfg,
		clock:        clock,
		currentDelay: cfg.InitialDelay,
		lastReset:    clock.Now(),
	}, nil
}

// NextDelay computes the next delay, applying exponential backoff,
// jitter and reset logic.
func (r *Retrier) NextDelay() time.Duration {
	now := r.clock.Now()
	if r.cfg.ResetAfter > 0 && now.Sub(r.lastReset) >= r.cfg.ResetAfter {
		r.currentDelay = r.cfg.InitialDelay
		r.lastReset = now
	}
	base := r.currentDelay

	next := time.Duration(float64(base) * r.cfg.Multiplier)
	if r.cfg.MaxDelay > 0 && next > r.cfg.MaxDelay {
		next = r.cfg.MaxDelay
	}
	r.currentDelay = next

	// offset in [-JitterFactor*base, +JitterFactor*base]
	offset := (rand.Float64()*2 - 1) * r.cfg.JitterFactor * float64(base)
	delay := base + time.Duration(offset)
	if delay < 0 {
		delay = 0
	}
	return delay
}

// Run retries operation until success or context cancellation.
func (r *Retrier) Run(ctx context.Context, operation func() error) error {
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := operation()
		if err == nil {
			return nil
		}
		attempt++
		d := r.NextDelay()
		if r.cfg.OnError != nil {
			r.cfg.OnError(attempt, d, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.NewTimerChan(d):
		}
	}
}

// RunFor retries operation until success, context cancellation or until the
// next attempt would start past maxElapsed. Deadline expiry is not an error:
// ok == false with a nil error means the operation never succeeded in time.
func (r *Retrier) RunFor(ctx context.Context, maxElapsed time.Duration, operation func() error) (ok bool, err error) {
	deadline := r.clock.Now().Add(maxElapsed)
	attempt := 0
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		opErr := operation()
		if opErr == nil {
			return true, nil
		}
		attempt++
		d := r.NextDelay()
		if r.cfg.OnError != nil {
			r.cfg.OnError(attempt, d, opErr)
		}
		if r.clock.Now().Add(d).After(deadline) {
			return false, nil
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-r.clock.NewTimerChan(d):
		}
	}
}
