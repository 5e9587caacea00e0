/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package timeu

import (
	"time"
)

// ITime is the clock every waiting or lease-computing component works
// against. Production code uses NewITime, tests substitute a mock so that
// join polling and lease arithmetic never touch the wall clock.
type ITime interface {
	Now() time.Time
	NewTimerChan(d time.Duration) <-chan time.Time
	Sleep(d time.Duration)
}

func NewITime() ITime {
	return &realTime{}
}

type realTime struct{}

func (t *realTime) Now() time.Time {
	return time.Now()
}

func (t *realTime) NewTimerChan(d time.Duration) <-chan time.Time {
	return time.NewTimer(d).C
}

func (t *realTime) Sleep(d time.Duration) {
	time.Sleep(d)
}
