/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */
package deployhook

import (
	"time"

	"github.com/docker/docker/client"

	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

// ManifestData is substituted into the deployment manifest template.
type ManifestData struct {
	Network      string
	ImageVersion string
	CertBundle   string
	Environment  string
	ServiceName  string
}

// RolloutOptions parameterizes the bounded rollout watch.
type RolloutOptions struct {
	// StackName is the stack the manifest deploys into.
	StackName string

	// ServiceName is the service whose convergence is watched, qualified
	// the engine way: "<stack>_<service>".
	ServiceName string

	// Timeout bounds the convergence wait.
	Timeout time.Duration

	// PollInterval is the delay between convergence checks.
	PollInterval time.Duration
}

// Hook drives deployment rollouts against the local engine. It only ever
// reads cluster metadata, all lock record writes stay with the leadership
// protocol.
type Hook struct {
	cli   *client.Client
	clock timeu.ITime
}
