/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package coordinator

import (
	"time"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
	"github.com/untillpro/swarmlead/pkg/ilockrec"
	"github.com/untillpro/swarmlead/pkg/inodeid"
	"github.com/untillpro/swarmlead/pkg/iswarm"
)

// Config is built once at process start and passed by value into New.
// Zero fields other than ClusterName take their defaults from consts.go.
type Config struct {
	// ClusterName keys the shared lock row. Required.
	ClusterName string

	// JoinWait bounds the final join loop of a node that could not claim
	// leadership.
	JoinWait time.Duration

	// LeaseDuration is how far in the future every published lease expiry
	// lies. The expiry is advisory: no reader compares it with the clock, it
	// only serves as the guard value of the conditional writes.
	LeaseDuration time.Duration

	// JoinPollInterval is the fixed delay between join attempts.
	JoinPollInterval time.Duration

	// OverlayNetwork is the virtual network every workload container
	// attaches to.
	OverlayNetwork string

	// AdvertiseAddr overrides the address a freshly initialized cluster
	// advertises. Empty means the node's private IPv4.
	AdvertiseAddr string
}

// JoinMode selects between the two join loop flavors.
// Construct it with UnboundedJoin or BoundedJoin only.
type JoinMode struct {
	bounded bool
	timeout time.Duration
}

// UnboundedJoin polls until joined or the pass is cancelled.
func UnboundedJoin() JoinMode { return JoinMode{} }

// BoundedJoin polls until joined or timeout passes on the clock.
func BoundedJoin(timeout time.Duration) JoinMode {
	return JoinMode{bounded: true, timeout: timeout}
}

// Coordinator runs one pass of the leadership protocol per Reconcile call.
// It keeps no state between passes, the lock row is the only shared state.
type Coordinator struct {
	cfg   Config
	recs  ilockrec.ILockRecords
	eng   iswarm.IOrchestrator
	ident inodeid.INodeIdentity
	clock timeu.ITime
}
