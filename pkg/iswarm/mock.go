/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package iswarm

import (
	"context"
	"sync"
)

// MockOrchestrator is a thread-safe scripted IOrchestrator for tests.
// A set error field makes every matching call fail until cleared, hooks
// let tests interleave with the coordinator at exact points.
type MockOrchestrator struct {
	mu       sync.Mutex
	role     Role
	tokens   JoinTokens
	networks map[string]int

	joinedToken string
	joinedAddr  string

	initCalls  int
	joinCalls  int
	leaveCalls int

	RoleErr    error
	InitErr    error
	TokensErr  error
	JoinErr    error
	LeaveErr   error
	NetworkErr error

	// OnBeforeJoin is called right before each JoinCluster attempt
	OnBeforeJoin func()
}

func NewMockOrchestrator(role Role) *MockOrchestrator {
	return &MockOrchestrator{
		role:     role,
		networks: map[string]int{},
	}
}

func (m *MockOrchestrator) LocalRole(ctx context.Context) (Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RoleErr != nil {
		return RoleNotInCluster, m.RoleErr
	}
	return m.role, nil
}

func (m *MockOrchestrator) InitCluster(ctx context.Context, advertiseAddr string) (JoinTokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.initCalls++
	if m.InitErr != nil {
		return JoinTokens{}, m.InitErr
	}
	m.role = RoleLeader
	m.tokens = JoinTokens{
		Manager: "SWMTKN-1-manager-" + advertiseAddr,
		Worker:  "SWMTKN-1-worker-" + advertiseAddr,
	}
	return m.tokens, nil
}

func (m *MockOrchestrator) JoinTokens(ctx context.Context) (JoinTokens, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TokensErr != nil {
		return JoinTokens{}, m.TokensErr
	}
	return m.tokens, nil
}

func (m *MockOrchestrator) JoinCluster(ctx context.Context, token string, leaderAddr string) error {
	if m.OnBeforeJoin != nil {
		m.OnBeforeJoin()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.joinCalls++
	if m.JoinErr != nil {
		return m.JoinErr
	}
	m.role = RoleFollower
	m.joinedToken = token
	m.joinedAddr = leaderAddr
	return nil
}

func (m *MockOrchestrator) LeaveCluster(ctx context.Context, force bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaveCalls++
	if m.LeaveErr != nil {
		return m.LeaveErr
	}
	m.role = RoleNotInCluster
	return nil
}

func (m *MockOrchestrator) EnsureOverlayNetwork(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NetworkErr != nil {
		return m.NetworkErr
	}
	m.networks[name]++
	return nil
}

// SetRole overrides the scripted role.
func (m *MockOrchestrator) SetRole(role Role) {
	m.mu.Lock()
	m.role = role
	m.mu.Unlock()
}

// SetTokens seeds the tokens an already initialized engine would return.
func (m *MockOrchestrator) SetTokens(tokens JoinTokens) {
	m.mu.Lock()
	m.tokens = tokens
	m.mu.Unlock()
}

func (m *MockOrchestrator) InitCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initCalls
}

func (m *MockOrchestrator) JoinCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinCalls
}

func (m *MockOrchestrator) LeaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaveCalls
}

// JoinedWith reports the credentials of the last successful join.
func (m *MockOrchestrator) JoinedWith() (token, leaderAddr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.joinedToken, m.joinedAddr
}

// NetworkEnsured reports how many times the named network was ensured.
func (m *MockOrchestrator) NetworkEnsured(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.networks[name]
}
