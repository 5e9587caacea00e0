/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package ilockrec

import "time"

// ClusterLock is the single coordination row of a cluster.
// LeaseExpiresAt is advisory: it is only ever compared to a previously read
// value in a conditional write, never to the wall clock.
type ClusterLock struct {
	ClusterName       string
	LeaseExpiresAt    string
	ManagerInstanceID string
	ManagerPrivateIP  string
	ManagerJoinToken  string
	WorkerJoinToken   string
	OverlayNetwork    string
}

// Joinable reports whether the row carries everything a node needs to join:
// join tokens are valid only once the manager address is published.
func (r ClusterLock) Joinable() bool {
	return r.ManagerPrivateIP != "" && r.WorkerJoinToken != ""
}

// FormatLease renders a lease expiration instant. Nanosecond precision keeps
// two consecutive renewals distinguishable by value.
func FormatLease(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
