/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

const (
	defaultWatchSchedule = "@every 1m"

	envLockDSN          = "SWARMLEAD_LOCK_DSN"
	envCluster          = "SWARMLEAD_CLUSTER"
	envNodeID           = "SWARMLEAD_NODE_ID"
	envNodeIP           = "SWARMLEAD_NODE_IP"
	envJoinWait         = "SWARMLEAD_JOIN_WAIT"
	envLeaseDuration    = "SWARMLEAD_LEASE_DURATION"
	envJoinPollInterval = "SWARMLEAD_JOIN_POLL_INTERVAL"
	envOverlayNetwork   = "SWARMLEAD_OVERLAY_NETWORK"
	envSchedule         = "SWARMLEAD_SCHEDULE"
	envManifestTemplate = "SWARMLEAD_MANIFEST_TEMPLATE"
	envStack            = "SWARMLEAD_STACK"
	envService          = "SWARMLEAD_SERVICE"
	envImageVersion     = "SWARMLEAD_IMAGE_VERSION"
	envEnvironment      = "SWARMLEAD_ENVIRONMENT"
)
