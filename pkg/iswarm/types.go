/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package iswarm

import "fmt"

// Role is the local engine's view of its cluster membership.
type Role uint8

const (
	RoleNotInCluster Role = iota

	// RolePending means a join is stuck half-way; the node must be forced
	// out before it can join again
	RolePending

	RoleFollower
	RoleLeader
)

func (r Role) String() string {
	switch r {
	case RoleNotInCluster:
		return "not-in-cluster"
	case RolePending:
		return "pending"
	case RoleFollower:
		return "follower"
	case RoleLeader:
		return "leader"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// JoinTokens is the pair of secrets that admit new members to the cluster.
type JoinTokens struct {
	Manager string
	Worker  string
}
