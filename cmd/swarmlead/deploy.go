/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */

package main

import (
	"os"
	"time"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/untillpro/goutils/logger"

	"github.com/untillpro/swarmlead/pkg/coordinator"
	"github.com/untillpro/swarmlead/pkg/deployhook"
	"github.com/untillpro/swarmlead/pkg/goutils/timeu"
)

var manifestTemplate string
var stackName string
var serviceName string
var imageVersion string
var environment string
var certKinds []string
var rolloutTimeout time.Duration
var rolloutPollInterval time.Duration

func newDeployCmd() *cobra.Command {
	deployCmd := &cobra.Command{
		Use:   "deploy",
		Short: "Renders the stack manifest from the published cluster metadata and rolls it out",
		RunE:  deploy,
	}

	deployCmd.Flags().StringVar(&manifestTemplate, "manifest-template", envOr(envManifestTemplate, ""), "Path to the stack manifest template")
	deployCmd.Flags().StringVar(&stackName, "stack", envOr(envStack, ""), "Stack the manifest deploys into")
	deployCmd.Flags().StringVar(&serviceName, "service", envOr(envService, ""), "Service whose rollout convergence is watched")
	deployCmd.Flags().StringVar(&imageVersion, "image-version", envOr(envImageVersion, "latest"), "Image version substituted into the manifest")
	deployCmd.Flags().StringVar(&environment, "environment", envOr(envEnvironment, ""), "Environment name substituted into the manifest")
	deployCmd.Flags().StringSliceVar(&certKinds, "cert-kinds", nil, "Secret kinds a certificate bundle must cover, e.g. wildcard-cert,wildcard-key")
	deployCmd.Flags().DurationVar(&rolloutTimeout, "rollout-timeout", deployhook.DefaultRolloutTimeout, "Deadline of the rollout convergence wait")
	deployCmd.Flags().DurationVar(&rolloutPollInterval, "rollout-poll-interval", deployhook.DefaultRolloutPollInterval, "Delay between rollout convergence checks")

	return deployCmd
}

func deploy(cmd *cobra.Command, _ []string) error {
	switch {
	case clusterName == "":
		return coordinator.ErrClusterNameRequired
	case manifestTemplate == "":
		return ErrManifestTemplateRequired
	case stackName == "":
		return ErrStackRequired
	case serviceName == "":
		return ErrServiceRequired
	}
	ctx := cmd.Context()

	recs, err := buildLockRecords()
	if err != nil {
		return err
	}
	rec, err := deployhook.ReadClusterLock(ctx, recs, clusterName)
	if err != nil {
		if errors.IsNotFound(err) {
			return errors.Annotatef(err, "nothing to deploy to")
		}
		return err
	}

	hook, err := deployhook.Provide(timeu.NewITime())
	if err != nil {
		// notest
		return err
	}

	certBundle := ""
	if len(certKinds) > 0 {
		certBundle, err = hook.NewestCertBundle(ctx, certKinds)
		if err != nil {
			return err
		}
	}

	manifestPath, err := deployhook.RenderManifest(manifestTemplate, deployhook.ManifestData{
		Network:      rec.OverlayNetwork,
		ImageVersion: imageVersion,
		CertBundle:   certBundle,
		Environment:  environment,
		ServiceName:  serviceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(manifestPath); err != nil {
			logger.Warning(err.Error())
		}
	}()

	return hook.Rollout(ctx, manifestPath, deployhook.RolloutOptions{
		StackName:    stackName,
		ServiceName:  stackName + "_" + serviceName,
		Timeout:      rolloutTimeout,
		PollInterval: rolloutPollInterval,
	})
}
