/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package main

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/cobrau"
	"github.com/untillpro/goutils/logger"

	"github.com/untillpro/swarmlead/pkg/coordinator"
)

//go:embed version
var version string

// lock store dsn (flag --lock-dsn)
var lockDSN string

// cluster name, the key of the lock row (flag --cluster)
var clusterName string

// static identity overrides; empty means the EC2 metadata service
var nodeID string
var nodeIP string

var joinWait time.Duration
var leaseDuration time.Duration
var joinPollInterval time.Duration
var overlayNetwork string
var advertiseAddr string

func main() {
	err := execRootCmd(os.Args, version)
	if err != nil {
		os.Exit(1)
	}
}

var rootCmd *cobra.Command

func execRootCmd(args []string, ver string) error {
	version = ver
	rootCmd = cobrau.PrepareRootCmd(
		"swarmlead",
		"Cluster leadership and bootstrap coordinator",
		args,
		version,
		newElectCmd(),
		newWatchCmd(),
		newStatusCmd(),
		newDeployCmd(),
	)

	rootCmd.PersistentFlags().StringVar(&lockDSN, "lock-dsn", envOr(envLockDSN, ""), "Lock store dsn, e.g. a DynamoDB table name or bbolt:///var/lib/swarmlead")
	rootCmd.PersistentFlags().StringVar(&clusterName, "cluster", envOr(envCluster, ""), "Cluster name, the key of the lock row")
	rootCmd.PersistentFlags().StringVar(&nodeID, "node-id", envOr(envNodeID, ""), "Node instance id; empty resolves via the EC2 metadata service")
	rootCmd.PersistentFlags().StringVar(&nodeIP, "node-ip", envOr(envNodeIP, ""), "Node private IPv4; empty resolves via the EC2 metadata service")
	rootCmd.PersistentFlags().DurationVar(&joinWait, "join-wait", envOrDuration(envJoinWait, coordinator.DefaultJoinWait), "Deadline of the bounded join endgame")
	rootCmd.PersistentFlags().DurationVar(&leaseDuration, "lease-duration", envOrDuration(envLeaseDuration, coordinator.DefaultLeaseDuration), "Advisory leadership lease written on claim and renewal")
	rootCmd.PersistentFlags().DurationVar(&joinPollInterval, "join-poll-interval", envOrDuration(envJoinPollInterval, coordinator.DefaultJoinPollInterval), "Delay between join attempts")
	rootCmd.PersistentFlags().StringVar(&overlayNetwork, "overlay-network", envOr(envOverlayNetwork, coordinator.DefaultOverlayNetwork), "Overlay network the leader ensures and publishes")
	rootCmd.PersistentFlags().StringVar(&advertiseAddr, "advertise-addr", "", "Address the cluster manager advertises; empty falls back to the node private IPv4")

	return cobrau.ExecCommandAndCatchInterrupt(rootCmd)
}

func envOr(name string, def string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return def
}

func envOrDuration(name string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger.Warning(fmt.Sprintf("%s ignored: %v", name, err))
		return def
	}
	return d
}
