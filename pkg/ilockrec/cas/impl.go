/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

// LockRecords implements ilockrec.ILockRecords over one Cassandra table.
// Conditional writes are lightweight transactions, reads go at quorum.
type LockRecords struct {
	session  *gocql.Session
	keyspace string
	casPar   CassandraParamsType
}

func (r *LockRecords) Get(ctx context.Context, clusterName string) (rec ilockrec.ClusterLock, ok bool, err error) {
	q := r.session.Query(fmt.Sprintf(`
		select cluster_name, lease_expires_at, manager_instance_id, manager_private_ip,
		       swarm_join_token_manager, swarm_join_token_worker, swarm_overlay_network_name
		from %s.%s where cluster_name = ?`, r.keyspace, lockTableName), clusterName).
		WithContext(ctx).
		Consistency(gocql.Quorum)
	err = q.Scan(&rec.ClusterName, &rec.LeaseExpiresAt, &rec.ManagerInstanceID, &rec.ManagerPrivateIP,
		&rec.ManagerJoinToken, &rec.WorkerJoinToken, &rec.OverlayNetwork)
	if err == gocql.ErrNotFound {
		return ilockrec.ClusterLock{}, false, nil
	}
	if err != nil {
		return ilockrec.ClusterLock{}, false, err
	}
	return rec, true, nil
}

func (r *LockRecords) Insert(ctx context.Context, rec ilockrec.ClusterLock) (bool, error) {
	applied, err := r.session.Query(fmt.Sprintf(`
		insert into %s.%s (cluster_name, lease_expires_at, manager_instance_id, manager_private_ip,
		                   swarm_join_token_manager, swarm_join_token_worker, swarm_overlay_network_name)
		values (?, ?, ?, ?, ?, ?, ?) if not exists`, r.keyspace, lockTableName),
		rec.ClusterName, rec.LeaseExpiresAt, rec.ManagerInstanceID, rec.ManagerPrivateIP,
		rec.ManagerJoinToken, rec.WorkerJoinToken, rec.OverlayNetwork).
		WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func (r *LockRecords) Replace(ctx context.Context, rec ilockrec.ClusterLock, prevLease string) (bool, error) {
	applied, err := r.session.Query(fmt.Sprintf(`
		update %s.%s
		set lease_expires_at = ?, manager_instance_id = ?, manager_private_ip = ?,
		    swarm_join_token_manager = ?, swarm_join_token_worker = ?, swarm_overlay_network_name = ?
		where cluster_name = ? if lease_expires_at = ?`, r.keyspace, lockTableName),
		rec.LeaseExpiresAt, rec.ManagerInstanceID, rec.ManagerPrivateIP,
		rec.ManagerJoinToken, rec.WorkerJoinToken, rec.OverlayNetwork,
		rec.ClusterName, prevLease).
		WithContext(ctx).
		MapScanCAS(map[string]interface{}{})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// InitSchema creates the keyspace and the lock table if they do not exist.
// Meant for test and single-DC dev endpoints; production schemas are
// provisioned out of band.
func (r *LockRecords) InitSchema(ctx context.Context) error {
	if len(r.casPar.KeyspaceWithReplication) == 0 {
		return fmt.Errorf("casPar.KeyspaceWithReplication can not be empty")
	}
	err := r.session.Query(fmt.Sprintf(
		"create keyspace if not exists %s with replication = %s", r.keyspace, r.casPar.KeyspaceWithReplication)).
		WithContext(ctx).
		Exec()
	if err != nil {
		return fmt.Errorf("can't create keyspace %s: %w", r.keyspace, err)
	}
	return r.session.Query(fmt.Sprintf(`
		create table if not exists %s.%s (
			cluster_name text primary key,
			lease_expires_at text,
			manager_instance_id text,
			manager_private_ip text,
			swarm_join_token_manager text,
			swarm_join_token_worker text,
			swarm_overlay_network_name text
		)`, r.keyspace, lockTableName)).
		WithContext(ctx).
		Exec()
}

// Close releases the underlying session.
func (r *LockRecords) Close() {
	r.session.Close()
}
