/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package iswarm

import "context"

// IOrchestrator adapts the local container-orchestration engine.
// Every call talks to the engine on this node only: the coordinator never
// reaches another node directly, all cross-node knowledge travels through
// the lock record.
type IOrchestrator interface {
	// LocalRole reports how the local engine participates in a cluster right now
	LocalRole(ctx context.Context) (Role, error)

	// InitCluster makes this node the first manager of a brand new cluster
	// and returns its fresh join tokens
	InitCluster(ctx context.Context, advertiseAddr string) (JoinTokens, error)

	// JoinTokens returns the current join tokens; manager-only call
	JoinTokens(ctx context.Context) (JoinTokens, error)

	// JoinCluster joins the cluster behind leaderAddr as a worker
	JoinCluster(ctx context.Context, token string, leaderAddr string) error

	// LeaveCluster takes the engine out of its current cluster
	LeaveCluster(ctx context.Context, force bool) error

	// EnsureOverlayNetwork creates the attachable overlay network if it
	// does not exist yet; creating an existing network is not an error
	EnsureOverlayNetwork(ctx context.Context, name string) error
}
