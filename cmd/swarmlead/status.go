/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/untillpro/swarmlead/pkg/coordinator"
)

func newStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Prints the lock row of the cluster",
		RunE:  status,
	}
	return statusCmd
}

func status(cmd *cobra.Command, _ []string) error {
	if clusterName == "" {
		return coordinator.ErrClusterNameRequired
	}
	recs, err := buildLockRecords()
	if err != nil {
		return err
	}

	rec, ok, err := recs.Get(cmd.Context(), clusterName)
	if err != nil {
		return err
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	if !ok {
		fmt.Printf("cluster %s: %s\n", clusterName, yellow("no leader elected yet"))
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	joinable := red("not joinable, tokens pending")
	if rec.Joinable() {
		joinable = green("joinable")
	}

	fmt.Printf("cluster:  %s\n", rec.ClusterName)
	fmt.Printf("manager:  %s (%s)\n", rec.ManagerInstanceID, rec.ManagerPrivateIP)
	fmt.Printf("network:  %s\n", rec.OverlayNetwork)
	fmt.Printf("lease:    %s%s\n", rec.LeaseExpiresAt, leaseNote(rec.LeaseExpiresAt))
	fmt.Printf("state:    %s\n", joinable)
	return nil
}

// leaseNote compares the lease to the local clock for the operator's eye
// only. The protocol itself never does this: the lease value is just a
// conditional-write guard.
func leaseNote(lease string) string {
	at, err := time.Parse(time.RFC3339Nano, lease)
	if err != nil {
		return ""
	}
	if time.Now().After(at) {
		return " (advisory; appears expired on the local clock)"
	}
	return ""
}
