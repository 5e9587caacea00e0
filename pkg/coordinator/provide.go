/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package coordinator

import (
	"fmt"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
	"github.com/untillpro/swarmlead/pkg/ilockrec"
	"github.com/untillpro/swarmlead/pkg/inodeid"
	"github.com/untillpro/swarmlead/pkg/iswarm"
)

// New validates cfg, fills defaults and builds a Coordinator.
// Configuration failures are reported here, before any store access.
func New(cfg Config, recs ilockrec.ILockRecords, eng iswarm.IOrchestrator,
	ident inodeid.INodeIdentity, clock timeu.ITime) (*Coordinator, error) {
	if cfg.ClusterName == "" {
		return nil, ErrClusterNameRequired
	}
	if cfg.JoinWait == 0 {
		cfg.JoinWait = DefaultJoinWait
	}
	if cfg.LeaseDuration == 0 {
		cfg.LeaseDuration = DefaultLeaseDuration
	}
	if cfg.JoinPollInterval == 0 {
		cfg.JoinPollInterval = DefaultJoinPollInterval
	}
	if cfg.OverlayNetwork == "" {
		cfg.OverlayNetwork = DefaultOverlayNetwork
	}
	if cfg.JoinWait < 0 || cfg.LeaseDuration < 0 || cfg.JoinPollInterval < 0 {
		return nil, fmt.Errorf("%w: durations must not be negative", ErrInvalidConfig)
	}
	return &Coordinator{
		cfg:   cfg,
		recs:  recs,
		eng:   eng,
		ident: ident,
		clock: clock,
	}, nil
}
