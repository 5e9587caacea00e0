/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */
package deployhook

import (
	"github.com/docker/docker/client"
	"github.com/juju/errors"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

// Provide builds a deployment hook over the local engine socket.
func Provide(clock timeu.ITime) (*Hook, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		// notest
		return nil, errors.Trace(err)
	}
	return &Hook{cli: cli, clock: clock}, nil
}
