/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

import (
	"github.com/untillpro/swarmlead/pkg/coordinator"
	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
	"github.com/untillpro/swarmlead/pkg/ilockrec"
	"github.com/untillpro/swarmlead/pkg/ilockrec/provider"
	"github.com/untillpro/swarmlead/pkg/inodeid"
	"github.com/untillpro/swarmlead/pkg/inodeid/ec2"
	"github.com/untillpro/swarmlead/pkg/inodeid/static"
	"github.com/untillpro/swarmlead/pkg/iswarm/dockereng"
)

func buildLockRecords() (ilockrec.ILockRecords, error) {
	return provider.Provide(lockDSN)
}

// buildIdentity picks the identity driver: explicit overrides make a static
// identity, otherwise the node asks the EC2 metadata service about itself.
func buildIdentity() (inodeid.INodeIdentity, error) {
	if nodeID != "" || nodeIP != "" {
		return static.Provide(nodeID, nodeIP), nil
	}
	return ec2.Provide()
}

func buildCoordinator() (*coordinator.Coordinator, error) {
	recs, err := buildLockRecords()
	if err != nil {
		return nil, err
	}
	eng, err := dockereng.Provide()
	if err != nil {
		// notest
		return nil, err
	}
	ident, err := buildIdentity()
	if err != nil {
		// notest
		return nil, err
	}
	return coordinator.New(coordinator.Config{
		ClusterName:      clusterName,
		JoinWait:         joinWait,
		LeaseDuration:    leaseDuration,
		JoinPollInterval: joinPollInterval,
		OverlayNetwork:   overlayNetwork,
		AdvertiseAddr:    advertiseAddr,
	}, recs, eng, ident, timeu.NewITime())
}
