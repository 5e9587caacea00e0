/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

import (
	"github.com/juju/errors"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"
)

var watchSchedule string

func newWatchCmd() *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Repeats the leadership pass on a cron schedule until interrupted",
		RunE:  watch,
	}
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", envOr(envSchedule, defaultWatchSchedule), "Pass cadence, standard cron spec or @every syntax")
	return watchCmd
}

// watch is the in-process counterpart of a system cron entry: the same pass
// on a cadence, serialized so that a slow join never overlaps the next tick.
// A failed pass is logged and the schedule goes on, the next tick heals it.
func watch(cmd *cobra.Command, _ []string) error {
	node, err := buildCoordinator()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	pass := func() {
		if err := node.Reconcile(ctx); err != nil {
			logger.Error(err.Error())
		}
	}

	sched := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := sched.AddFunc(watchSchedule, pass); err != nil {
		return errors.Annotatef(err, "invalid schedule %q", watchSchedule)
	}

	pass()
	sched.Start()
	<-ctx.Done()
	<-sched.Stop().Done()
	return nil
}
