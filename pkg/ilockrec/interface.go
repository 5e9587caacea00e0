/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package ilockrec

import "context"

// ILockRecords is the contract every lock-record driver implements.
// One row per cluster, written only through conditional expressions:
// this is the sole cross-node ordering mechanism of the whole system.
type ILockRecords interface {
	// Get reads the cluster row with strong consistency
	// ok == false means the row does not exist yet
	// @ConcurrentAccess
	Get(ctx context.Context, clusterName string) (rec ClusterLock, ok bool, err error)

	// Insert writes the row only if no row for rec.ClusterName exists
	// ok == false means another writer created the row first, rec is not written
	// @ConcurrentAccess
	Insert(ctx context.Context, rec ClusterLock) (ok bool, err error)

	// Replace overwrites the whole row only if the stored lease equals prevLease exactly
	// ok == false means the stored lease changed since it was read, rec is not written
	// The full field set is written each time, join tokens included
	// @ConcurrentAccess
	Replace(ctx context.Context, rec ClusterLock, prevLease string) (ok bool, err error)
}
