/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package retrier

import (
	"time"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

// Config holds parameters for retry behavior.
type Config struct {
	// Backoff settings
	InitialDelay time.Duration
	MaxDelay     time.Duration // 0 only allowed if Multiplier == 1
	Multiplier   float64
	JitterFactor float64 // between 0 and 1
	ResetAfter   time.Duration

	// OnError is called after each failed attempt, before the delay
	OnError func(attempt int, delay time.Duration, err error)
}

// Retrier executes operations with backoff, jitter and reset logic.
// All waiting goes through the provided clock.
type Retrier struct {
	cfg          Config
	clock        timeu.ITime
	currentDelay time.Duration
	lastReset    time.Time
}
