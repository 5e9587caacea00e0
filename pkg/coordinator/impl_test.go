/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package coordinator

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/untillpro/swarmlead/pkg/goutils/testingu"
	"github.com/untillpro/swarmlead/pkg/ilockrec"
	"github.com/untillpro/swarmlead/pkg/ilockrec/mem"
	"github.com/untillpro/swarmlead/pkg/inodeid"
	"github.com/untillpro/swarmlead/pkg/inodeid/static"
	"github.com/untillpro/swarmlead/pkg/iswarm"
)

func testConfig() Config {
	return Config{
		ClusterName:      "alpha",
		JoinWait:         25 * time.Second,
		LeaseDuration:    300 * time.Second,
		JoinPollInterval: 10 * time.Second,
		OverlayNetwork:   "app-network",
	}
}

func newNode(t *testing.T, recs *mem.LockRecords, eng *iswarm.MockOrchestrator, id, ip string) *Coordinator {
	t.Helper()
	node, err := New(testConfig(), recs, eng, static.Provide(id, ip), testingu.MockTime)
	require.NoError(t, err)
	return node
}

func TestNew(t *testing.T) {
	recs := mem.Provide()
	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	ident := static.Provide("i-1", "10.0.0.1")

	t.Run("defaults are filled", func(t *testing.T) {
		require := require.New(t)
		node, err := New(Config{ClusterName: "alpha"}, recs, eng, ident, testingu.MockTime)
		require.NoError(err)
		require.Equal(DefaultJoinWait, node.cfg.JoinWait)
		require.Equal(DefaultLeaseDuration, node.cfg.LeaseDuration)
		require.Equal(DefaultJoinPollInterval, node.cfg.JoinPollInterval)
		require.Equal(DefaultOverlayNetwork, node.cfg.OverlayNetwork)
	})

	t.Run("cluster name is required", func(t *testing.T) {
		_, err := New(Config{}, recs, eng, ident, testingu.MockTime)
		require.ErrorIs(t, err, ErrClusterNameRequired)
	})

	t.Run("negative durations are rejected", func(t *testing.T) {
		for _, cfg := range []Config{
			{ClusterName: "alpha", JoinWait: -time.Second},
			{ClusterName: "alpha", LeaseDuration: -time.Second},
			{ClusterName: "alpha", JoinPollInterval: -time.Second},
		} {
			_, err := New(cfg, recs, eng, ident, testingu.MockTime)
			require.ErrorIs(t, err, ErrInvalidConfig)
		}
	})
}

func TestJoinModeConstructors(t *testing.T) {
	require := require.New(t)
	require.False(UnboundedJoin().bounded)
	bounded := BoundedJoin(5 * time.Second)
	require.True(bounded.bounded)
	require.Equal(5*time.Second, bounded.timeout)
}

func TestReconcile_FirstNodeBootstrapsCluster(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	node := newNode(t, recs, eng, "i-leader", "10.0.0.1")
	ctx := context.Background()

	require.NoError(node.Reconcile(ctx))

	rec, found, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.True(found)
	require.Equal("i-leader", rec.ManagerInstanceID)
	require.Equal("10.0.0.1", rec.ManagerPrivateIP)
	require.Equal("app-network", rec.OverlayNetwork)
	require.True(rec.Joinable())
	require.Equal("SWMTKN-1-worker-10.0.0.1", rec.WorkerJoinToken)
	require.Equal(ilockrec.FormatLease(testingu.MockTime.Now().Add(300*time.Second)), rec.LeaseExpiresAt)

	require.Equal(1, eng.InitCalls())
	require.Equal(1, eng.NetworkEnsured("app-network"))
	// the claim winner never enters the join branch
	require.Zero(eng.JoinCalls())

	role, err := eng.LocalRole(ctx)
	require.NoError(err)
	require.Equal(iswarm.RoleLeader, role)
}

// TestReconcile_ConcurrentClaims races N first-time claimants against an
// empty row: exactly one node may end up as the stored manager.
func TestReconcile_ConcurrentClaims(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	const nodes = 8
	coords := make([]*Coordinator, nodes)
	for i := 0; i < nodes; i++ {
		eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
		coords[i] = newNode(t, recs, eng, "i-"+strconv.Itoa(i), "10.0.0."+strconv.Itoa(i))
	}

	type outcome struct {
		id  string
		won bool
	}
	results := make(chan outcome, nodes)
	errs := make(chan error, nodes)
	wg := sync.WaitGroup{}
	for _, node := range coords {
		wg.Add(1)
		go func(c *Coordinator) {
			defer wg.Done()
			ident, err := c.ident.Identity(ctx)
			if err != nil {
				errs <- err
				return
			}
			_, won, err := c.claim(ctx, ident, false)
			if err != nil {
				errs <- err
				return
			}
			results <- outcome{id: ident.InstanceID, won: won}
		}(node)
	}
	wg.Wait()
	close(results)
	close(errs)
	for err := range errs {
		require.NoError(err)
	}

	winners := []string{}
	for res := range results {
		if res.won {
			winners = append(winners, res.id)
		}
	}
	require.Len(winners, 1)

	rec, found, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.True(found)
	require.Equal(winners[0], rec.ManagerInstanceID)
	require.False(rec.Joinable(), "tokens appear only after the engine is initialized")
}

func TestReconcile_SecondNodeJoinsLeader(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	engX := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	nodeX := newNode(t, recs, engX, "i-x", "10.0.0.1")
	require.NoError(nodeX.Reconcile(ctx))

	engY := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	nodeY := newNode(t, recs, engY, "i-y", "10.0.0.2")
	require.NoError(nodeY.Reconcile(ctx))

	require.Zero(engY.InitCalls())
	require.Equal(1, engY.JoinCalls())
	token, addr := engY.JoinedWith()
	require.Equal("SWMTKN-1-worker-10.0.0.1", token)
	require.Equal("10.0.0.1", addr)

	role, err := engY.LocalRole(ctx)
	require.NoError(err)
	require.Equal(iswarm.RoleFollower, role)

	rec, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.Equal("i-x", rec.ManagerInstanceID)
}

func TestReconcile_LeaderRenewsLease(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()
	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	node := newNode(t, recs, eng, "i-leader", "10.0.0.1")
	require.NoError(node.Reconcile(ctx))

	before, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)

	testingu.MockTime.Add(250 * time.Second)
	require.NoError(node.Reconcile(ctx))

	after, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.Equal("i-leader", after.ManagerInstanceID)
	require.NotEqual(before.LeaseExpiresAt, after.LeaseExpiresAt)
	require.Equal(ilockrec.FormatLease(testingu.MockTime.Now().Add(300*time.Second)), after.LeaseExpiresAt)
	require.True(after.Joinable())

	// one init at bootstrap, the network re-ensured on every leader pass
	require.Equal(1, eng.InitCalls())
	require.Equal(2, eng.NetworkEnsured("app-network"))
}

// TestReconcile_RenewalLostIsBenign races the leader's renewal against a
// writer that sneaks in between the leader's read and its conditional write:
// exactly one of the two writes lands and the leader treats the loss as a
// non-event.
func TestReconcile_RenewalLostIsBenign(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()
	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	node := newNode(t, recs, eng, "i-leader", "10.0.0.1")
	require.NoError(node.Reconcile(ctx))

	before, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)

	testingu.MockTime.Add(250 * time.Second)
	recs.SetOnBeforeReplace(func() {
		recs.SetOnBeforeReplace(nil)
		stolen := ilockrec.ClusterLock{
			ClusterName:       "alpha",
			LeaseExpiresAt:    ilockrec.FormatLease(testingu.MockTime.Now().Add(999 * time.Second)),
			ManagerInstanceID: "i-intruder",
			ManagerPrivateIP:  "10.0.0.9",
			ManagerJoinToken:  "SWMTKN-1-manager-steal",
			WorkerJoinToken:   "SWMTKN-1-worker-steal",
			OverlayNetwork:    "app-network",
		}
		ok, err := recs.Replace(ctx, stolen, before.LeaseExpiresAt)
		require.NoError(err)
		require.True(ok)
	})

	require.NoError(node.Reconcile(ctx), "a lost renewal is benign")

	after, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.Equal("i-intruder", after.ManagerInstanceID)
}

func TestReconcile_FollowerIsNoop(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	seed := ilockrec.ClusterLock{
		ClusterName:       "alpha",
		LeaseExpiresAt:    ilockrec.FormatLease(testingu.MockTime.Now().Add(300 * time.Second)),
		ManagerInstanceID: "i-boss",
		ManagerPrivateIP:  "10.0.0.7",
		ManagerJoinToken:  "SWMTKN-1-manager-boss",
		WorkerJoinToken:   "SWMTKN-1-worker-boss",
		OverlayNetwork:    "app-network",
	}
	ok, err := recs.Insert(ctx, seed)
	require.NoError(err)
	require.True(ok)

	eng := iswarm.NewMockOrchestrator(iswarm.RoleFollower)
	node := newNode(t, recs, eng, "i-f", "10.0.0.3")
	require.NoError(node.Reconcile(ctx))

	after, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.Equal(seed, after, "a follower pass writes nothing")
	require.Zero(eng.InitCalls())
	require.Zero(eng.JoinCalls())
	require.Zero(eng.LeaveCalls())
	require.Zero(eng.NetworkEnsured("app-network"))
}

func TestReconcile_LeaderRecreatesMissingRow(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	eng := iswarm.NewMockOrchestrator(iswarm.RoleLeader)
	eng.SetTokens(iswarm.JoinTokens{
		Manager: "SWMTKN-1-manager-m",
		Worker:  "SWMTKN-1-worker-w",
	})
	node := newNode(t, recs, eng, "i-leader", "10.0.0.1")

	require.NoError(node.Reconcile(ctx))

	rec, found, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.True(found)
	require.Equal("i-leader", rec.ManagerInstanceID)
	require.Equal("SWMTKN-1-worker-w", rec.WorkerJoinToken)
	require.True(rec.Joinable())
}

// TestReconcile_NetworkFailureIsNonFatal covers both places the overlay
// network is ensured: a failed create is a warning, the pass goes on and
// the row is still written.
func TestReconcile_NetworkFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()

	t.Run("bootstrap", func(t *testing.T) {
		require := require.New(t)
		recs := mem.Provide()
		eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
		eng.NetworkErr = errors.New("overlay driver unavailable")
		node := newNode(t, recs, eng, "i-first", "10.0.0.1")

		require.NoError(node.Reconcile(ctx))

		rec, found, err := recs.Get(ctx, "alpha")
		require.NoError(err)
		require.True(found)
		require.True(rec.Joinable())
		require.Equal(1, eng.InitCalls())
		require.Zero(eng.NetworkEnsured("app-network"))
	})

	t.Run("renewal", func(t *testing.T) {
		require := require.New(t)
		recs := mem.Provide()
		eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
		node := newNode(t, recs, eng, "i-leader", "10.0.0.1")
		require.NoError(node.Reconcile(ctx))

		before, _, err := recs.Get(ctx, "alpha")
		require.NoError(err)

		eng.NetworkErr = errors.New("overlay driver unavailable")
		testingu.MockTime.Add(250 * time.Second)
		require.NoError(node.Reconcile(ctx))

		after, _, err := recs.Get(ctx, "alpha")
		require.NoError(err)
		require.Equal("i-leader", after.ManagerInstanceID)
		require.NotEqual(before.LeaseExpiresAt, after.LeaseExpiresAt)
		require.Equal(1, eng.NetworkEnsured("app-network"))
	})
}

func TestReconcile_PendingNodeIsForcedOutThenJoins(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	seed := ilockrec.ClusterLock{
		ClusterName:       "alpha",
		LeaseExpiresAt:    ilockrec.FormatLease(testingu.MockTime.Now().Add(300 * time.Second)),
		ManagerInstanceID: "i-boss",
		ManagerPrivateIP:  "10.0.0.7",
		ManagerJoinToken:  "SWMTKN-1-manager-boss",
		WorkerJoinToken:   "SWMTKN-1-worker-boss",
		OverlayNetwork:    "app-network",
	}
	ok, err := recs.Insert(ctx, seed)
	require.NoError(err)
	require.True(ok)

	eng := iswarm.NewMockOrchestrator(iswarm.RolePending)
	node := newNode(t, recs, eng, "i-stuck", "10.0.0.4")
	require.NoError(node.Reconcile(ctx))

	require.Equal(1, eng.LeaveCalls())
	require.Equal(1, eng.JoinCalls())
	token, addr := eng.JoinedWith()
	require.Equal("SWMTKN-1-worker-boss", token)
	require.Equal("10.0.0.7", addr)

	role, err := eng.LocalRole(ctx)
	require.NoError(err)
	require.Equal(iswarm.RoleFollower, role)
}

// TestReconcile_JoinWaitsUntilPublished drives the poll loop of a node that
// arrives while a claim is still in flight: the first attempt sees an
// unpublished row, the next poll after the leader publishes succeeds.
func TestReconcile_JoinWaitsUntilPublished(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	claimLease := ilockrec.FormatLease(testingu.MockTime.Now().Add(300 * time.Second))
	ok, err := recs.Insert(ctx, ilockrec.ClusterLock{
		ClusterName:       "alpha",
		LeaseExpiresAt:    claimLease,
		ManagerInstanceID: "i-boss",
		ManagerPrivateIP:  "10.0.0.7",
		OverlayNetwork:    "app-network",
	})
	require.NoError(err)
	require.True(ok)

	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	node := newNode(t, recs, eng, "i-late", "10.0.0.8")

	parked := make(chan struct{}, 1)
	testingu.MockTime.SetOnNextNewTimerChan(func() { parked <- struct{}{} })

	done := make(chan error, 1)
	go func() { done <- node.Reconcile(ctx) }()

	// first attempt saw the unpublished row, the loop waits for the next poll
	<-parked

	published := ilockrec.ClusterLock{
		ClusterName:       "alpha",
		LeaseExpiresAt:    ilockrec.FormatLease(testingu.MockTime.Now().Add(300 * time.Second)),
		ManagerInstanceID: "i-boss",
		ManagerPrivateIP:  "10.0.0.7",
		ManagerJoinToken:  "SWMTKN-1-manager-boss",
		WorkerJoinToken:   "SWMTKN-1-worker-boss",
		OverlayNetwork:    "app-network",
	}
	ok, err = recs.Replace(ctx, published, claimLease)
	require.NoError(err)
	require.True(ok)

	testingu.MockTime.Add(10 * time.Second)

	require.NoError(<-done)
	require.Equal(1, eng.JoinCalls())
	token, addr := eng.JoinedWith()
	require.Equal("SWMTKN-1-worker-boss", token)
	require.Equal("10.0.0.7", addr)
}

// TestReconcile_InterruptedWaitEndsInTakeover interrupts an indefinite wait
// on a row whose claimant died before publishing: the endgame replaces the
// stale row, guarded by its lease value, and bootstraps the cluster here.
func TestReconcile_InterruptedWaitEndsInTakeover(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()

	staleLease := ilockrec.FormatLease(testingu.MockTime.Now().Add(300 * time.Second))
	ok, err := recs.Insert(context.Background(), ilockrec.ClusterLock{
		ClusterName:       "alpha",
		LeaseExpiresAt:    staleLease,
		ManagerInstanceID: "i-dead",
		ManagerPrivateIP:  "10.0.0.66",
		OverlayNetwork:    "app-network",
	})
	require.NoError(err)
	require.True(ok)

	// keep the endgame's lease value distinguishable from the stale one
	testingu.MockTime.Add(60 * time.Second)

	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	node := newNode(t, recs, eng, "i-heir", "10.0.0.2")

	parked := make(chan struct{}, 1)
	testingu.MockTime.SetOnNextNewTimerChan(func() { parked <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- node.Reconcile(ctx) }()

	<-parked
	cancel()

	require.NoError(<-done)
	require.Equal(1, eng.InitCalls())

	rec, _, err := recs.Get(context.Background(), "alpha")
	require.NoError(err)
	require.Equal("i-heir", rec.ManagerInstanceID)
	require.True(rec.Joinable())
}

// TestReconcile_BoundedJoinTimesOut plays a partitioned fleet: the published
// leader keeps renewing the row but the engine cannot reach it. The endgame
// takeover loses to the renewal, the bounded loop exhausts its deadline and
// the pass reports the timeout.
func TestReconcile_BoundedJoinTimesOut(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()

	seedLease := ilockrec.FormatLease(testingu.MockTime.Now().Add(300 * time.Second))
	seed := ilockrec.ClusterLock{
		ClusterName:       "alpha",
		LeaseExpiresAt:    seedLease,
		ManagerInstanceID: "i-boss",
		ManagerPrivateIP:  "10.0.0.7",
		ManagerJoinToken:  "SWMTKN-1-manager-boss",
		WorkerJoinToken:   "SWMTKN-1-worker-boss",
		OverlayNetwork:    "app-network",
	}
	ok, err := recs.Insert(context.Background(), seed)
	require.NoError(err)
	require.True(ok)

	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	eng.JoinErr = errors.New("connect: connection refused")
	node := newNode(t, recs, eng, "i-cut", "10.0.0.5")

	// the leader is alive: its renewal lands right before the takeover write.
	// The hook runs on the Reconcile goroutine, the final row assertion below
	// catches a renewal that did not land.
	recs.SetOnBeforeReplace(func() {
		recs.SetOnBeforeReplace(nil)
		renewed := seed
		renewed.LeaseExpiresAt = ilockrec.FormatLease(testingu.MockTime.Now().Add(999 * time.Second))
		_, _ = recs.Replace(context.Background(), renewed, seedLease)
	})

	parked := make(chan struct{}, 1)
	testingu.MockTime.SetOnNextNewTimerChan(func() { parked <- struct{}{} })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- node.Reconcile(ctx) }()

	// one unreachable join attempt, then the loop parks on its poll timer
	<-parked
	testingu.MockTime.SetOnNextNewTimerChan(func() { parked <- struct{}{} })
	cancel()

	// bounded endgame: attempts at +0s, +10s and +20s of the 25s window
	<-parked
	testingu.MockTime.SetOnNextNewTimerChan(func() { parked <- struct{}{} })
	testingu.MockTime.Add(10 * time.Second)
	<-parked
	testingu.MockTime.Add(10 * time.Second)

	err = <-done
	require.ErrorIs(err, ErrJoinTimeout)
	require.Equal(4, eng.JoinCalls(), "one attempt before the interrupt, three bounded ones")
	require.Zero(eng.InitCalls())

	rec, _, err := recs.Get(context.Background(), "alpha")
	require.NoError(err)
	require.Equal("i-boss", rec.ManagerInstanceID, "the takeover must lose to the live renewal")
}

// TestReconcile_PublishOvertakenIsBenign loses the publish race after a won
// claim: the engine got initialized but the row belongs to the winner, which
// the pass reports as a non-event.
func TestReconcile_PublishOvertakenIsBenign(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	recs.SetOnBeforeReplace(func() {
		recs.SetOnBeforeReplace(nil)
		cur, found, err := recs.Get(ctx, "alpha")
		require.NoError(err)
		require.True(found)
		stolen := ilockrec.ClusterLock{
			ClusterName:       "alpha",
			LeaseExpiresAt:    ilockrec.FormatLease(testingu.MockTime.Now().Add(999 * time.Second)),
			ManagerInstanceID: "i-intruder",
			ManagerPrivateIP:  "10.0.0.9",
			ManagerJoinToken:  "SWMTKN-1-manager-steal",
			WorkerJoinToken:   "SWMTKN-1-worker-steal",
			OverlayNetwork:    "app-network",
		}
		ok, err := recs.Replace(ctx, stolen, cur.LeaseExpiresAt)
		require.NoError(err)
		require.True(ok)
	})

	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	node := newNode(t, recs, eng, "i-first", "10.0.0.1")
	require.NoError(node.Reconcile(ctx))

	require.Equal(1, eng.InitCalls())
	require.Zero(eng.JoinCalls())

	rec, _, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.Equal("i-intruder", rec.ManagerInstanceID)
}

type failingIdentity struct {
	err error
}

func (f failingIdentity) Identity(context.Context) (inodeid.NodeIdentity, error) {
	return inodeid.NodeIdentity{}, f.err
}

func TestReconcile_IdentityFailureIsFatal(t *testing.T) {
	require := require.New(t)
	recs := mem.Provide()
	ctx := context.Background()

	eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
	eng.RoleErr = errors.New("must not be consulted")
	node, err := New(testConfig(), recs, eng, failingIdentity{err: errors.New("metadata endpoint unreachable")}, testingu.MockTime)
	require.NoError(err)

	err = node.Reconcile(ctx)
	require.ErrorIs(err, ErrIdentityUnavailable)

	_, found, err := recs.Get(ctx, "alpha")
	require.NoError(err)
	require.False(found, "no store access without an identity")
}

func TestReconcile_StoreFailuresPropagate(t *testing.T) {
	ctx := context.Background()

	t.Run("read failure", func(t *testing.T) {
		require := require.New(t)
		recs := mem.Provide()
		recs.TriggerReadError("alpha")
		eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
		node := newNode(t, recs, eng, "i-1", "10.0.0.1")

		err := node.Reconcile(ctx)
		require.Error(err)
		require.ErrorContains(err, "forced storage error")
	})

	t.Run("write failure", func(t *testing.T) {
		require := require.New(t)
		recs := mem.Provide()
		recs.TriggerWriteError("alpha")
		eng := iswarm.NewMockOrchestrator(iswarm.RoleNotInCluster)
		node := newNode(t, recs, eng, "i-1", "10.0.0.1")

		err := node.Reconcile(ctx)
		require.Error(err)
		require.ErrorContains(err, "forced storage error")
	})

	t.Run("renewal read failure", func(t *testing.T) {
		require := require.New(t)
		recs := mem.Provide()
		recs.TriggerReadError("alpha")
		eng := iswarm.NewMockOrchestrator(iswarm.RoleLeader)
		eng.SetTokens(iswarm.JoinTokens{Manager: "m", Worker: "w"})
		node := newNode(t, recs, eng, "i-1", "10.0.0.1")

		err := node.Reconcile(ctx)
		require.Error(err)
		require.ErrorContains(err, "forced storage error")
	})
}
