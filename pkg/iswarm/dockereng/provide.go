/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package dockereng

import (
	"github.com/docker/docker/client"

	"github.com/untillpro/swarmlead/pkg/iswarm"
)

// Provide returns an orchestrator adapter over the local Docker engine.
// The connection honors the usual DOCKER_HOST family of variables.
func Provide() (iswarm.IOrchestrator, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, err
	}
	return &orchestrator{cli: cli}, nil
}
