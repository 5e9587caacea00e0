/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package mem

import (
	"context"
	"errors"
	"sync"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

// LockRecords is a thread-safe in-memory ilockrec.ILockRecords.
// Error triggers and hooks let tests force failures and interleavings
// at exact points of the conditional-write protocol.
type LockRecords struct {
	mu              sync.Mutex
	data            map[string]ilockrec.ClusterLock
	readErrTrigger  map[string]bool
	writeErrTrigger map[string]bool
	onBeforeInsert  func()
	onBeforeReplace func()
}

var errForced = errors.New("forced storage error for test")

func (m *LockRecords) Get(ctx context.Context, clusterName string) (rec ilockrec.ClusterLock, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return rec, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErrTrigger[clusterName] {
		return rec, false, errForced
	}
	rec, ok = m.data[clusterName]
	return rec, ok, nil
}

func (m *LockRecords) Insert(ctx context.Context, rec ilockrec.ClusterLock) (bool, error) {
	if m.onBeforeInsert != nil {
		m.onBeforeInsert()
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErrTrigger[rec.ClusterName] {
		return false, errForced
	}
	if _, exists := m.data[rec.ClusterName]; exists {
		return false, nil
	}
	m.data[rec.ClusterName] = rec
	return true, nil
}

func (m *LockRecords) Replace(ctx context.Context, rec ilockrec.ClusterLock, prevLease string) (bool, error) {
	if m.onBeforeReplace != nil {
		m.onBeforeReplace()
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErrTrigger[rec.ClusterName] {
		return false, errForced
	}
	stored, exists := m.data[rec.ClusterName]
	if !exists || stored.LeaseExpiresAt != prevLease {
		return false, nil
	}
	m.data[rec.ClusterName] = rec
	return true, nil
}

// TriggerReadError makes every following Get for clusterName fail.
func (m *LockRecords) TriggerReadError(clusterName string) {
	m.mu.Lock()
	m.readErrTrigger[clusterName] = true
	m.mu.Unlock()
}

// TriggerWriteError makes every following Insert and Replace for clusterName fail.
func (m *LockRecords) TriggerWriteError(clusterName string) {
	m.mu.Lock()
	m.writeErrTrigger[clusterName] = true
	m.mu.Unlock()
}

// ClearErrors removes all error triggers.
func (m *LockRecords) ClearErrors() {
	m.mu.Lock()
	m.readErrTrigger = map[string]bool{}
	m.writeErrTrigger = map[string]bool{}
	m.mu.Unlock()
}

// SetOnBeforeInsert is called right before each Insert takes the store lock.
func (m *LockRecords) SetOnBeforeInsert(f func()) {
	m.onBeforeInsert = f
}

// SetOnBeforeReplace is called right before each Replace takes the store lock.
func (m *LockRecords) SetOnBeforeReplace(f func()) {
	m.onBeforeReplace = f
}
