/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package testingu

import (
	"sync"
	"time"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

// MockTime is a global var so that all packages of a test binary share one clock.
var MockTime = NewMockTime()

type IMockTime interface {
	timeu.ITime

	// Add advances the clock and fires every timer whose expiration has come.
	Add(d time.Duration)

	// FireNextTimerImmediately makes the next timer obtained via NewTimerChan
	// arrive already fired. Useful when the test can not tell the instant the
	// code under test will create its timer.
	FireNextTimerImmediately()

	SetOnNextNewTimerChan(f func())
}

func NewMockTime() IMockTime {
	return &mockedTime{
		now:    time.Now(),
		timers: map[mockTimer]struct{}{},
	}
}

type mockedTime struct {
	sync.RWMutex
	now                      time.Time
	timers                   map[mockTimer]struct{}
	fireNextTimerImmediately bool
	onNextNewTimerChan       func()
}

type mockTimer struct {
	c          chan time.Time
	expiration time.Time
}

func (t *mockedTime) Now() time.Time {
	t.RLock()
	defer t.RUnlock()
	return t.now
}

func (t *mockedTime) NewTimerChan(d time.Duration) <-chan time.Time {
	t.Lock()
	defer t.Unlock()
	if t.onNextNewTimerChan != nil {
		t.onNextNewTimerChan()
	}
	mt := mockTimer{
		c:          make(chan time.Time, 1),
		expiration: t.now.Add(d),
	}
	t.timers[mt] = struct{}{}
	if t.fireNextTimerImmediately {
		mt.c <- t.now
		t.fireNextTimerImmediately = false
	}
	return mt.c
}

func (t *mockedTime) Sleep(d time.Duration) {
	t.Add(d)
}

func (t *mockedTime) Add(d time.Duration) {
	t.Lock()
	defer t.Unlock()
	t.now = t.now.Add(d)
	t.checkTimers()
}

func (t *mockedTime) FireNextTimerImmediately() {
	t.Lock()
	t.fireNextTimerImmediately = true
	t.Unlock()
}

func (t *mockedTime) SetOnNextNewTimerChan(f func()) {
	t.Lock()
	t.onNextNewTimerChan = func() {
		f()
		t.onNextNewTimerChan = nil
	}
	t.Unlock()
}

func (t *mockedTime) checkTimers() {
	for timer := range t.timers {
		if !t.now.Before(timer.expiration) {
			timer.c <- t.now
			delete(t.timers, timer)
		}
	}
}
