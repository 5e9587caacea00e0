/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */
package deployhook

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/swarm"
	"github.com/juju/errors"
	"github.com/untillpro/goutils/exec"
	"github.com/untillpro/goutils/logger"

	"github.com/untillpro/swarmlead/pkg/goutils/retrier"
	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

// ReadClusterLock resolves the published cluster metadata for deployment
// consumers. NotFound means no leader has claimed the cluster yet.
func ReadClusterLock(ctx context.Context, recs ilockrec.ILockRecords, clusterName string) (ilockrec.ClusterLock, error) {
	rec, ok, err := recs.Get(ctx, clusterName)
	if err != nil {
		return ilockrec.ClusterLock{}, errors.Trace(err)
	}
	if !ok {
		return ilockrec.ClusterLock{}, errors.NotFoundf("cluster lock for %q", clusterName)
	}
	return rec, nil
}

// NewestCompleteBundle picks the newest timestamp for which every expected
// secret kind exists. Secret names follow "<kind>-<timestamp>"; timestamps
// sort lexicographically, so the maximum is the newest. A timestamp missing
// any kind is skipped entirely.
func NewestCompleteBundle(secretNames []string, expectedKinds []string) (string, bool) {
	if len(expectedKinds) == 0 {
		return "", false
	}
	kindsByStamp := map[string]map[string]bool{}
	for _, name := range secretNames {
		for _, kind := range expectedKinds {
			prefix := kind + "-"
			if !strings.HasPrefix(name, prefix) {
				continue
			}
			stamp := name[len(prefix):]
			if kindsByStamp[stamp] == nil {
				kindsByStamp[stamp] = map[string]bool{}
			}
			kindsByStamp[stamp][kind] = true
		}
	}
	newest := ""
	for stamp, kinds := range kindsByStamp {
		if len(kinds) == len(expectedKinds) && stamp > newest {
			newest = stamp
		}
	}
	return newest, newest != ""
}

// RenderManifest substitutes data into the text/template manifest at
// templatePath and writes the result to a temporary file, returning its
// path. The caller removes the file when the rollout is over.
func RenderManifest(templatePath string, data ManifestData) (string, error) {
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", errors.Trace(err)
	}

	out, err := os.CreateTemp("", "manifest-*.yml")
	if err != nil {
		// notest
		return "", errors.Trace(err)
	}
	defer out.Close()

	if err := tmpl.Execute(out, data); err != nil {
		_ = os.Remove(out.Name())
		return "", errors.Trace(err)
	}
	return out.Name(), nil
}

// NewestCertBundle resolves the newest certificate bundle timestamp for
// which every expected secret kind is present in the engine's secret store.
func (h *Hook) NewestCertBundle(ctx context.Context, expectedKinds []string) (string, error) {
	secrets, err := h.cli.SecretList(ctx, types.SecretListOptions{})
	if err != nil {
		return "", errors.Trace(err)
	}
	names := make([]string, len(secrets))
	for i, s := range secrets {
		names[i] = s.Spec.Name
	}
	stamp, ok := NewestCompleteBundle(names, expectedKinds)
	if !ok {
		return "", errors.NotFoundf("complete certificate bundle among %d secrets", len(secrets))
	}
	return stamp, nil
}

// Rollout deploys the rendered manifest and waits until the watched service
// converges: expected replica count running and containers passing their
// health checks. Rollout outcomes are reported to the caller only, they
// never feed back into the leadership protocol.
func (h *Hook) Rollout(ctx context.Context, manifestPath string, opts RolloutOptions) error {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultRolloutTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = DefaultRolloutPollInterval
	}

	stdout, stderr, err := new(exec.PipedExec).
		Command("docker", "stack", "deploy", "--compose-file", manifestPath, opts.StackName).
		RunToStrings()
	if err != nil {
		return errors.Annotatef(err, "stack deploy: %s", strings.TrimSpace(stderr))
	}
	if logger.IsVerbose() {
		logger.Verbose(stdout)
	}

	cfg := retrier.NewFixedDelayConfig(opts.PollInterval)
	cfg.OnError = func(attempt int, delay time.Duration, err error) {
		logger.Verbose(fmt.Sprintf("rollout of %s, attempt %d: %v", opts.ServiceName, attempt, err))
	}
	converged, err := retrier.RetryFor(ctx, cfg, h.clock, opts.Timeout, func() error {
		return h.serviceConverged(ctx, opts.ServiceName)
	})
	if err != nil {
		return errors.Trace(err)
	}
	if !converged {
		return errors.Timeoutf("service %s did not converge within %s", opts.ServiceName, opts.Timeout)
	}
	return errors.Trace(h.validateHealth(ctx, opts.ServiceName))
}

func (h *Hook) serviceConverged(ctx context.Context, serviceName string) error {
	services, err := h.cli.ServiceList(ctx, types.ServiceListOptions{
		Filters: filters.NewArgs(filters.Arg("name", serviceName)),
	})
	if err != nil {
		return errors.Trace(err)
	}
	// the name filter matches substrings, hence the exact-match loop
	var service *swarm.Service
	for i := range services {
		if services[i].Spec.Name == serviceName {
			service = &services[i]
			break
		}
	}
	if service == nil {
		return errors.NotFoundf("service %s", serviceName)
	}

	tasks, err := h.cli.TaskList(ctx, types.TaskListOptions{
		Filters: filters.NewArgs(
			filters.Arg("service", serviceName),
			filters.Arg("desired-state", string(swarm.TaskStateRunning)),
		),
	})
	if err != nil {
		return errors.Trace(err)
	}
	expected := expectedReplicas(service.Spec.Mode)
	if running := runningCount(tasks); running < expected {
		return errors.Errorf("%d of %d replicas running", running, expected)
	}
	return nil
}

// validateHealth inspects the containers behind the service's running
// tasks once. A container without a healthcheck passes by definition; one
// still in the starting grace period does not, the next deployment pass
// picks it up again.
func (h *Hook) validateHealth(ctx context.Context, serviceName string) error {
	tasks, err := h.cli.TaskList(ctx, types.TaskListOptions{
		Filters: filters.NewArgs(filters.Arg("service", serviceName)),
	})
	if err != nil {
		return errors.Trace(err)
	}
	for _, task := range tasks {
		if task.Status.State != swarm.TaskStateRunning || task.Status.ContainerStatus == nil {
			continue
		}
		info, err := h.cli.ContainerInspect(ctx, task.Status.ContainerStatus.ContainerID)
		if err != nil {
			return errors.Trace(err)
		}
		if reason := unhealthyReason(info.State); reason != "" {
			return errors.Errorf("container %s of service %s is %s", task.Status.ContainerStatus.ContainerID, serviceName, reason)
		}
	}
	return nil
}

// expectedReplicas reads the replica target out of the service mode.
// Global services schedule one task per node and the filtered task list
// already reflects that, so a single running task is the floor there.
func expectedReplicas(mode swarm.ServiceMode) int {
	if mode.Replicated != nil && mode.Replicated.Replicas != nil {
		return int(*mode.Replicated.Replicas)
	}
	return 1
}

func runningCount(tasks []swarm.Task) int {
	n := 0
	for _, task := range tasks {
		if task.Status.State == swarm.TaskStateRunning {
			n++
		}
	}
	return n
}

// unhealthyReason reports why a container state fails health validation,
// empty for a passing one.
func unhealthyReason(state *types.ContainerState) string {
	if state == nil || state.Health == nil {
		return ""
	}
	switch state.Health.Status {
	case types.Healthy, types.NoHealthcheck:
		return ""
	}
	return state.Health.Status
}
