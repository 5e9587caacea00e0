/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gocql/gocql"
)

// Provide returns a lock-record store backed by a Cassandra/Scylla table.
// Lightweight transactions carry the conditional-write semantics.
func Provide(casPar CassandraParamsType) (*LockRecords, error) {
	if len(casPar.Keyspace) == 0 {
		return nil, errors.New("casPar.Keyspace can not be empty")
	}
	cluster := newCluster(casPar)
	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("can't create session: %w", err)
	}
	return &LockRecords{
		session:  session,
		keyspace: casPar.Keyspace,
		casPar:   casPar,
	}, nil
}

func newCluster(casPar CassandraParamsType) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(strings.Split(casPar.Hosts, ",")...)
	if casPar.Port > 0 {
		cluster.Port = casPar.Port
	}
	cluster.Consistency = gocql.Quorum
	cluster.ProtoVersion = casPar.ProtoVersion
	cluster.CQLVersion = casPar.cqlVersion()
	if casPar.NumRetries > 0 {
		cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: casPar.NumRetries}
	}
	if casPar.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: casPar.Username,
			Password: casPar.Pwd,
		}
	}
	if casPar.DC != "" {
		cluster.PoolConfig.HostSelectionPolicy = gocql.DCAwareRoundRobinPolicy(casPar.DC)
	}
	return cluster
}
