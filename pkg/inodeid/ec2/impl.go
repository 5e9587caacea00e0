/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package ec2

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws/ec2metadata"

	"github.com/untillpro/swarmlead/pkg/inodeid"
)

const (
	metadataTimeout = 2 * time.Second

	instanceIDPath = "instance-id"
	localIPv4Path  = "local-ipv4"
)

type nodeIdentity struct {
	svc *ec2metadata.EC2Metadata

	mu     sync.Mutex
	cached inodeid.NodeIdentity
}

// Identity reads instance-id and local-ipv4 from the metadata service.
// Both values are immutable for the instance lifetime, so the first
// successful read is cached.
func (n *nodeIdentity) Identity(ctx context.Context) (inodeid.NodeIdentity, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cached.InstanceID != "" {
		return n.cached, nil
	}

	instanceID, err := n.svc.GetMetadataWithContext(ctx, instanceIDPath)
	if err != nil {
		return inodeid.NodeIdentity{}, fmt.Errorf("can't read %s from instance metadata: %w", instanceIDPath, err)
	}
	privateIP, err := n.svc.GetMetadataWithContext(ctx, localIPv4Path)
	if err != nil {
		return inodeid.NodeIdentity{}, fmt.Errorf("can't read %s from instance metadata: %w", localIPv4Path, err)
	}

	n.cached = inodeid.NodeIdentity{
		InstanceID:  instanceID,
		PrivateIPv4: privateIP,
	}
	return n.cached, nil
}
