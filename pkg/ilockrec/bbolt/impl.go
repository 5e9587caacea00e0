/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Dmitry Molchanovsky
 */

package bbolt

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

// LockRecords implements ilockrec.ILockRecords over a bbolt bucket.
// Rows are stored as JSON keyed by cluster name.
type LockRecords struct {
	db *bolt.DB
}

func (r *LockRecords) Get(ctx context.Context, clusterName string) (rec ilockrec.ClusterLock, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return rec, false, err
	}
	err = r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(lockBucketName))
		if bucket == nil {
			return ErrLockBucketNotFound
		}
		data := bucket.Get([]byte(clusterName))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return ilockrec.ClusterLock{}, false, err
	}
	return rec, ok, nil
}

func (r *LockRecords) Insert(ctx context.Context, rec ilockrec.ClusterLock) (ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(lockBucketName))
		if bucket == nil {
			return ErrLockBucketNotFound
		}
		if bucket.Get([]byte(rec.ClusterName)) != nil {
			return nil
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(rec.ClusterName), data); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

func (r *LockRecords) Replace(ctx context.Context, rec ilockrec.ClusterLock, prevLease string) (ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	err = r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(lockBucketName))
		if bucket == nil {
			return ErrLockBucketNotFound
		}
		data := bucket.Get([]byte(rec.ClusterName))
		if data == nil {
			return nil
		}
		stored := ilockrec.ClusterLock{}
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		if stored.LeaseExpiresAt != prevLease {
			return nil
		}
		newData, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(rec.ClusterName), newData); err != nil {
			return err
		}
		ok = true
		return nil
	})
	return ok, err
}

// Close releases the underlying database file.
func (r *LockRecords) Close() error {
	return r.db.Close()
}
