/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package dockereng

import (
	"context"
	"net"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/swarm"
	"github.com/docker/docker/client"

	"github.com/untillpro/swarmlead/pkg/iswarm"
)

type orchestrator struct {
	cli *client.Client
}

func (o *orchestrator) LocalRole(ctx context.Context) (iswarm.Role, error) {
	info, err := o.cli.Info(ctx)
	if err != nil {
		return iswarm.RoleNotInCluster, err
	}
	return roleFromSwarmInfo(info.Swarm), nil
}

func roleFromSwarmInfo(info swarm.Info) iswarm.Role {
	switch info.LocalNodeState {
	case swarm.LocalNodeStateActive:
		if info.ControlAvailable {
			return iswarm.RoleLeader
		}
		return iswarm.RoleFollower
	case swarm.LocalNodeStatePending, swarm.LocalNodeStateError, swarm.LocalNodeStateLocked:
		return iswarm.RolePending
	}
	return iswarm.RoleNotInCluster
}

func (o *orchestrator) InitCluster(ctx context.Context, advertiseAddr string) (iswarm.JoinTokens, error) {
	_, err := o.cli.SwarmInit(ctx, swarm.InitRequest{
		ListenAddr:    defaultListenAddr,
		AdvertiseAddr: advertiseAddr,
	})
	if err != nil {
		return iswarm.JoinTokens{}, err
	}
	return o.JoinTokens(ctx)
}

func (o *orchestrator) JoinTokens(ctx context.Context) (iswarm.JoinTokens, error) {
	sw, err := o.cli.SwarmInspect(ctx)
	if err != nil {
		return iswarm.JoinTokens{}, err
	}
	return iswarm.JoinTokens{
		Manager: sw.JoinTokens.Manager,
		Worker:  sw.JoinTokens.Worker,
	}, nil
}

func (o *orchestrator) JoinCluster(ctx context.Context, token string, leaderAddr string) error {
	return o.cli.SwarmJoin(ctx, swarm.JoinRequest{
		ListenAddr:  defaultListenAddr,
		JoinToken:   token,
		RemoteAddrs: []string{net.JoinHostPort(leaderAddr, swarmPort)},
	})
}

func (o *orchestrator) LeaveCluster(ctx context.Context, force bool) error {
	return o.cli.SwarmLeave(ctx, force)
}

func (o *orchestrator) EnsureOverlayNetwork(ctx context.Context, name string) error {
	// the name filter matches substrings, hence the exact-match loop
	networks, err := o.cli.NetworkList(ctx, types.NetworkListOptions{
		Filters: filters.NewArgs(
			filters.Arg("name", name),
			filters.Arg("driver", overlayDriver),
		),
	})
	if err != nil {
		return err
	}
	for _, nw := range networks {
		if nw.Name == name {
			return nil
		}
	}
	_, err = o.cli.NetworkCreate(ctx, name, types.NetworkCreate{
		CheckDuplicate: true,
		Driver:         overlayDriver,
		Attachable:     true,
	})
	if err != nil && strings.Contains(err.Error(), "already exists") {
		// lost a creation race, the network is there
		return nil
	}
	return err
}
