/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

const (
	retryAttempt = 3

	lockTableName = "cluster_lock"
)

const SimpleWithReplication = "{ 'class' : 'SimpleStrategy', 'replication_factor' : 1 }"
