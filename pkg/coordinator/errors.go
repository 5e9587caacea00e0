/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package coordinator

import "errors"

var (
	// configuration problems abort the pass before any store access
	ErrClusterNameRequired = errors.New("cluster name must be specified")
	ErrInvalidConfig       = errors.New("invalid coordinator configuration")

	// ErrIdentityUnavailable reports that this node's instance id or
	// private address could not be resolved, fatal for the pass
	ErrIdentityUnavailable = errors.New("node identity is unavailable")

	// ErrLeaderNotPublished makes a join attempt retryable: the lock row is
	// missing or its token set is not complete yet
	ErrLeaderNotPublished = errors.New("leader is not published in the lock record yet")

	// ErrJoinTimeout reports an exhausted bounded join loop
	ErrJoinTimeout = errors.New("could not join the cluster within the join-wait deadline")
)
