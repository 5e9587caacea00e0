/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Dmitry Molchanovsky
 */

package bbolt

import (
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

// Provide returns a lock-record store backed by a local bbolt file.
// Single-node development clusters only: the conditional writes are
// serialized by the database write transaction, not by a remote quorum.
func Provide(params ParamsType) (*LockRecords, error) {
	if err := os.MkdirAll(params.DBDir, 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(filepath.Join(params.DBDir, dbFileName), 0o600, bolt.DefaultOptions)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(lockBucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &LockRecords{db: db}, nil
}
