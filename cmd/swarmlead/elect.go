/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

import (
	"github.com/spf13/cobra"
)

func newElectCmd() *cobra.Command {
	electCmd := &cobra.Command{
		Use:   "elect",
		Short: "Runs one leadership pass: claim the cluster, bootstrap it or join the leader",
		RunE:  elect,
	}
	return electCmd
}

// elect exits zero on every benign outcome: a renewed lease, a confirmed
// follower, a completed join. The scheduler that invokes it reacts to the
// exit status only.
func elect(cmd *cobra.Command, _ []string) error {
	node, err := buildCoordinator()
	if err != nil {
		return err
	}
	return node.Reconcile(cmd.Context())
}
