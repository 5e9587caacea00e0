/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package ilockrec

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// TechnologyCompatibilityKit test suit
// Every driver test calls it against a ready-to-use ILockRecords.
// Cluster names are salted so the suite can run against a shared endpoint.
func TechnologyCompatibilityKit(t *testing.T, recs ILockRecords) {
	t.Run("TestLockRecords_GetNotExisting", func(t *testing.T) { testLockRecords_GetNotExisting(t, recs) })
	t.Run("TestLockRecords_InsertThenGet", func(t *testing.T) { testLockRecords_InsertThenGet(t, recs) })
	t.Run("TestLockRecords_InsertExisting", func(t *testing.T) { testLockRecords_InsertExisting(t, recs) })
	t.Run("TestLockRecords_InsertMutualExclusion", func(t *testing.T) { testLockRecords_InsertMutualExclusion(t, recs) })
	t.Run("TestLockRecords_ReplaceMatchingLease", func(t *testing.T) { testLockRecords_ReplaceMatchingLease(t, recs) })
	t.Run("TestLockRecords_ReplaceStaleLease", func(t *testing.T) { testLockRecords_ReplaceStaleLease(t, recs) })
	t.Run("TestLockRecords_ReplaceNotExisting", func(t *testing.T) { testLockRecords_ReplaceNotExisting(t, recs) })
	t.Run("TestLockRecords_ReplaceRace", func(t *testing.T) { testLockRecords_ReplaceRace(t, recs) })
	t.Run("TestLockRecords_FullRowRewritten", func(t *testing.T) { testLockRecords_FullRowRewritten(t, recs) })
}

func newTCKLock(clusterName string) ClusterLock {
	return ClusterLock{
		ClusterName:       clusterName,
		LeaseExpiresAt:    FormatLease(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		ManagerInstanceID: "i-0000000000000001",
		ManagerPrivateIP:  "10.0.0.1",
		ManagerJoinToken:  "SWMTKN-1-manager",
		WorkerJoinToken:   "SWMTKN-1-worker",
		OverlayNetwork:    "app-network",
	}
}

func testLockRecords_GetNotExisting(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec, ok, err := recs.Get(ctx, "tck-"+uuid.NewString())
	require.NoError(err)
	require.False(ok)
	require.Empty(rec.ManagerInstanceID)
}

func testLockRecords_InsertThenGet(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec := newTCKLock("tck-" + uuid.NewString())
	ok, err := recs.Insert(ctx, rec)
	require.NoError(err)
	require.True(ok)

	stored, ok, err := recs.Get(ctx, rec.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.Equal(rec, stored)
}

func testLockRecords_InsertExisting(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec := newTCKLock("tck-" + uuid.NewString())
	ok, err := recs.Insert(ctx, rec)
	require.NoError(err)
	require.True(ok)

	loser := rec
	loser.ManagerInstanceID = "i-0000000000000002"
	ok, err = recs.Insert(ctx, loser)
	require.NoError(err)
	require.False(ok)

	stored, ok, err := recs.Get(ctx, rec.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.Equal(rec.ManagerInstanceID, stored.ManagerInstanceID)
}

func testLockRecords_InsertMutualExclusion(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	const contenders = 8
	clusterName := "tck-" + uuid.NewString()

	var wg sync.WaitGroup
	winners := make(chan string, contenders)
	errs := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := newTCKLock(clusterName)
			rec.ManagerInstanceID = "i-" + uuid.NewString()
			ok, err := recs.Insert(ctx, rec)
			if err != nil {
				errs <- err
				return
			}
			if ok {
				winners <- rec.ManagerInstanceID
			}
		}()
	}
	wg.Wait()
	close(winners)
	close(errs)

	for err := range errs {
		require.NoError(err)
	}
	require.Len(winners, 1)
	winner := <-winners

	stored, ok, err := recs.Get(ctx, clusterName)
	require.NoError(err)
	require.True(ok)
	require.Equal(winner, stored.ManagerInstanceID)
}

func testLockRecords_ReplaceMatchingLease(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec := newTCKLock("tck-" + uuid.NewString())
	ok, err := recs.Insert(ctx, rec)
	require.NoError(err)
	require.True(ok)

	renewed := rec
	renewed.LeaseExpiresAt = FormatLease(time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC))
	renewed.ManagerJoinToken = "SWMTKN-1-manager-rotated"
	renewed.WorkerJoinToken = "SWMTKN-1-worker-rotated"
	ok, err = recs.Replace(ctx, renewed, rec.LeaseExpiresAt)
	require.NoError(err)
	require.True(ok)

	stored, ok, err := recs.Get(ctx, rec.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.Equal(renewed, stored)
}

func testLockRecords_ReplaceStaleLease(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec := newTCKLock("tck-" + uuid.NewString())
	ok, err := recs.Insert(ctx, rec)
	require.NoError(err)
	require.True(ok)

	takeover := rec
	takeover.ManagerInstanceID = "i-0000000000000002"
	ok, err = recs.Replace(ctx, takeover, FormatLease(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)))
	require.NoError(err)
	require.False(ok)

	stored, ok, err := recs.Get(ctx, rec.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.Equal(rec.ManagerInstanceID, stored.ManagerInstanceID)
}

func testLockRecords_ReplaceNotExisting(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec := newTCKLock("tck-" + uuid.NewString())
	ok, err := recs.Replace(ctx, rec, rec.LeaseExpiresAt)
	require.NoError(err)
	require.False(ok)
}

func testLockRecords_ReplaceRace(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	rec := newTCKLock("tck-" + uuid.NewString())
	ok, err := recs.Insert(ctx, rec)
	require.NoError(err)
	require.True(ok)

	const contenders = 8
	var wg sync.WaitGroup
	winners := make(chan string, contenders)
	errs := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			takeover := newTCKLock(rec.ClusterName)
			takeover.ManagerInstanceID = "i-" + uuid.NewString()
			takeover.LeaseExpiresAt = FormatLease(time.Date(2024, 1, 1, 0, 5, 0, n, time.UTC))
			ok, err := recs.Replace(ctx, takeover, rec.LeaseExpiresAt)
			if err != nil {
				errs <- err
				return
			}
			if ok {
				winners <- takeover.ManagerInstanceID
			}
		}(i)
	}
	wg.Wait()
	close(winners)
	close(errs)

	for err := range errs {
		require.NoError(err)
	}
	require.Len(winners, 1)
	winner := <-winners

	stored, ok, err := recs.Get(ctx, rec.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.Equal(winner, stored.ManagerInstanceID)
}

// Replace must write the whole row: a renewal that would drop tokens or the
// network name would break joiners until the next pass.
func testLockRecords_FullRowRewritten(t *testing.T, recs ILockRecords) {
	require := require.New(t)
	ctx := context.Background()

	claim := ClusterLock{
		ClusterName:       "tck-" + uuid.NewString(),
		LeaseExpiresAt:    FormatLease(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		ManagerInstanceID: "i-0000000000000001",
	}
	ok, err := recs.Insert(ctx, claim)
	require.NoError(err)
	require.True(ok)

	stored, ok, err := recs.Get(ctx, claim.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.False(stored.Joinable())

	published := newTCKLock(claim.ClusterName)
	published.LeaseExpiresAt = FormatLease(time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC))
	ok, err = recs.Replace(ctx, published, claim.LeaseExpiresAt)
	require.NoError(err)
	require.True(ok)

	stored, ok, err = recs.Get(ctx, claim.ClusterName)
	require.NoError(err)
	require.True(ok)
	require.True(stored.Joinable())
	require.Equal(published, stored)
}
