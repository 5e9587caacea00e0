/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package coordinator

import (
	"context"
	"fmt"
	"time"

	"github.com/untillpro/goutils/logger"

	"github.com/untillpro/swarmlead/pkg/goutils/retrier"
	"github.com/untillpro/swarmlead/pkg/ilockrec"
	"github.com/untillpro/swarmlead/pkg/inodeid"
	"github.com/untillpro/swarmlead/pkg/iswarm"
)

// Reconcile runs one pass of the leadership protocol: depending on the
// engine-reported local role the node renews its lease, claims leadership or
// follows the published leader. A pass performs one consistent read and at
// most one conditional write against the lock row, except the claim-win path
// which additionally publishes the freshly issued tokens.
func (c *Coordinator) Reconcile(ctx context.Context) error {
	ident, err := c.ident.Identity(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIdentityUnavailable, err)
	}

	role, err := c.eng.LocalRole(ctx)
	if err != nil {
		return err
	}
	logger.Verbose(fmt.Sprintf("cluster %s: node %s local role is %s", c.cfg.ClusterName, ident.InstanceID, role))

	switch role {
	case iswarm.RoleLeader:
		return c.renewLeadership(ctx, ident)
	case iswarm.RoleFollower:
		// nothing to reconcile, the leader maintains the row
		return nil
	case iswarm.RolePending:
		// a half-joined node can neither init nor join, force it out first
		logger.Warning(fmt.Sprintf("cluster %s: node %s is stuck joining, leaving forcibly", c.cfg.ClusterName, ident.InstanceID))
		if err := c.eng.LeaveCluster(ctx, true); err != nil {
			return err
		}
	}
	return c.acquireOrFollow(ctx, ident)
}

// renewLeadership is the leader's pass: freshen the advisory lease and
// republish the engine-issued tokens, guarded by the lease value just read.
func (c *Coordinator) renewLeadership(ctx context.Context, ident inodeid.NodeIdentity) error {
	if err := c.eng.EnsureOverlayNetwork(ctx, c.cfg.OverlayNetwork); err != nil {
		// the cluster keeps working without it until an operator intervenes
		logger.Warning(fmt.Sprintf("cluster %s: overlay network %q not ensured: %v", c.cfg.ClusterName, c.cfg.OverlayNetwork, err))
	}

	rec, found, err := c.recs.Get(ctx, c.cfg.ClusterName)
	if err != nil {
		return err
	}

	tokens, err := c.eng.JoinTokens(ctx)
	if err != nil {
		return err
	}
	next := c.leaderRecord(ident, tokens)

	if !found {
		// the row is gone while this node still leads locally, recreate it
		inserted, err := c.recs.Insert(ctx, next)
		if err != nil {
			return err
		}
		if !inserted {
			logger.Info(fmt.Sprintf("cluster %s: lock row recreation lost a race, reassessing next pass", c.cfg.ClusterName))
			return nil
		}
		logger.Info(fmt.Sprintf("cluster %s: lock row recreated by leader %s", c.cfg.ClusterName, ident.InstanceID))
		return nil
	}

	renewed, err := c.recs.Replace(ctx, next, rec.LeaseExpiresAt)
	if err != nil {
		return err
	}
	if !renewed {
		// lost the write race, not fatal: reassessed on the next pass
		logger.Info(fmt.Sprintf("cluster %s: lease renewal by %s lost a race", c.cfg.ClusterName, ident.InstanceID))
		return nil
	}
	logger.Verbose(fmt.Sprintf("cluster %s: lease renewed until %s", c.cfg.ClusterName, next.LeaseExpiresAt))
	return nil
}

// acquireOrFollow drives an unaffiliated node: claim the row if nobody
// published a leadership yet, otherwise follow whoever did. An interrupted
// indefinite wait degrades into an endgame on a detached context: one
// takeover attempt against the row as it stands, then a bounded follow
// attempt, so the pass always ends with a definitive outcome. A takeover
// wins only against a holder that stopped renewing, an alive leader keeps
// the row by advancing the lease value.
func (c *Coordinator) acquireOrFollow(ctx context.Context, ident inodeid.NodeIdentity) error {
	lease, won, err := c.claim(ctx, ident, false)
	if err != nil {
		return err
	}
	if won {
		return c.bootstrapCluster(ctx, ident, lease)
	}

	logger.Info(fmt.Sprintf("cluster %s: leadership is taken, following", c.cfg.ClusterName))
	joined, err := c.joinLoop(ctx, UnboundedJoin())
	if err != nil {
		return err
	}
	if joined {
		return nil
	}

	// the indefinite wait was interrupted, the observed leader may be long gone
	ctx = context.WithoutCancel(ctx)
	lease, won, err = c.claim(ctx, ident, true)
	if err != nil {
		return err
	}
	if won {
		return c.bootstrapCluster(ctx, ident, lease)
	}

	joined, err = c.joinLoop(ctx, BoundedJoin(c.cfg.JoinWait))
	if err != nil {
		return err
	}
	if !joined {
		return fmt.Errorf("%w after %s", ErrJoinTimeout, c.cfg.JoinWait)
	}
	return nil
}

// claim races for the lock row. A row absent is claimed by a conditional
// insert. A present row is left alone unless takeover is set: then it is
// replaced guarded by the lease value just read, which succeeds exactly when
// no other writer advanced the lease since the read. Losing either write is
// not an error. The returned lease is the one written on a win, the publish
// step uses it as its own guard.
func (c *Coordinator) claim(ctx context.Context, ident inodeid.NodeIdentity, takeover bool) (lease string, won bool, err error) {
	rec, found, err := c.recs.Get(ctx, c.cfg.ClusterName)
	if err != nil {
		return "", false, err
	}

	if found && !takeover {
		logger.Verbose(fmt.Sprintf("cluster %s: lock row is held by %s", c.cfg.ClusterName, rec.ManagerInstanceID))
		return "", false, nil
	}

	// tokens stay empty until the engine issues them: a crash between claim
	// and publish leaves a row joiners keep treating as not joinable
	next := ilockrec.ClusterLock{
		ClusterName:       c.cfg.ClusterName,
		LeaseExpiresAt:    ilockrec.FormatLease(c.clock.Now().Add(c.cfg.LeaseDuration)),
		ManagerInstanceID: ident.InstanceID,
		ManagerPrivateIP:  ident.PrivateIPv4,
		OverlayNetwork:    c.cfg.OverlayNetwork,
	}

	if found {
		won, err = c.recs.Replace(ctx, next, rec.LeaseExpiresAt)
	} else {
		won, err = c.recs.Insert(ctx, next)
	}
	if err != nil {
		return "", false, err
	}
	if !won {
		logger.Verbose(fmt.Sprintf("cluster %s: claim lost to a concurrent writer", c.cfg.ClusterName))
		return "", false, nil
	}
	logger.Info(fmt.Sprintf("cluster %s: leadership claimed by %s", c.cfg.ClusterName, ident.InstanceID))
	return next.LeaseExpiresAt, true, nil
}

// bootstrapCluster turns a won claim into a published leadership: initialize
// the engine, ensure the overlay network and replace the claim row with the
// full record guarded by the claim lease.
func (c *Coordinator) bootstrapCluster(ctx context.Context, ident inodeid.NodeIdentity, claimLease string) error {
	advertiseAddr := c.cfg.AdvertiseAddr
	if advertiseAddr == "" {
		advertiseAddr = ident.PrivateIPv4
	}

	tokens, err := c.eng.InitCluster(ctx, advertiseAddr)
	if err != nil {
		return err
	}

	if err := c.eng.EnsureOverlayNetwork(ctx, c.cfg.OverlayNetwork); err != nil {
		logger.Warning(fmt.Sprintf("cluster %s: overlay network %q not ensured: %v", c.cfg.ClusterName, c.cfg.OverlayNetwork, err))
	}

	published, err := c.recs.Replace(ctx, c.leaderRecord(ident, tokens), claimLease)
	if err != nil {
		return err
	}
	if !published {
		// overtaken between claim and publish, the row belongs to the winner now
		logger.Warning(fmt.Sprintf("cluster %s: claim by %s was overtaken before tokens were published", c.cfg.ClusterName, ident.InstanceID))
		return nil
	}
	logger.Info(fmt.Sprintf("cluster %s: leader %s published join tokens and network %q", c.cfg.ClusterName, ident.InstanceID, c.cfg.OverlayNetwork))
	return nil
}

// joinLoop follows the published leader at the poll cadence. The unbounded
// mode leaves the loop only on success or cancellation, the bounded mode also
// gives up once its timeout passes on the clock. joined == false with a nil
// error means the loop ended without joining.
func (c *Coordinator) joinLoop(ctx context.Context, mode JoinMode) (joined bool, err error) {
	cfg := retrier.NewFixedDelayConfig(c.cfg.JoinPollInterval)
	cfg.OnError = func(attempt int, _ time.Duration, err error) {
		logger.Verbose(fmt.Sprintf("cluster %s: join attempt %d: %v", c.cfg.ClusterName, attempt, err))
	}
	op := func() error { return c.tryJoin(ctx) }

	if mode.bounded {
		return retrier.RetryFor(ctx, cfg, c.clock, mode.timeout, op)
	}

	if err := retrier.RetryErr(ctx, cfg, c.clock, op); err != nil {
		// cancellation is the only way out of the unbounded loop short of
		// joining, treat it as abandonment rather than a failure
		return false, nil
	}
	return true, nil
}

// tryJoin is a single join attempt against the row as currently published.
func (c *Coordinator) tryJoin(ctx context.Context) error {
	rec, found, err := c.recs.Get(ctx, c.cfg.ClusterName)
	if err != nil {
		return err
	}
	if !found || !rec.Joinable() {
		return ErrLeaderNotPublished
	}
	if err := c.eng.JoinCluster(ctx, rec.WorkerJoinToken, rec.ManagerPrivateIP); err != nil {
		return err
	}
	logger.Info(fmt.Sprintf("cluster %s: joined leader %s at %s", c.cfg.ClusterName, rec.ManagerInstanceID, rec.ManagerPrivateIP))
	return nil
}

func (c *Coordinator) leaderRecord(ident inodeid.NodeIdentity, tokens iswarm.JoinTokens) ilockrec.ClusterLock {
	return ilockrec.ClusterLock{
		ClusterName:       c.cfg.ClusterName,
		LeaseExpiresAt:    ilockrec.FormatLease(c.clock.Now().Add(c.cfg.LeaseDuration)),
		ManagerInstanceID: ident.InstanceID,
		ManagerPrivateIP:  ident.PrivateIPv4,
		ManagerJoinToken:  tokens.Manager,
		WorkerJoinToken:   tokens.Worker,
		OverlayNetwork:    c.cfg.OverlayNetwork,
	}
}
