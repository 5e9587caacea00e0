/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package static

import (
	"context"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/untillpro/swarmlead/pkg/inodeid"
)

type nodeIdentity struct {
	instanceID string
	privateIP  string

	mu       sync.Mutex
	resolved inodeid.NodeIdentity
}

func (n *nodeIdentity) Identity(ctx context.Context) (inodeid.NodeIdentity, error) {
	if err := ctx.Err(); err != nil {
		return inodeid.NodeIdentity{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.resolved.InstanceID != "" {
		return n.resolved, nil
	}

	instanceID := n.instanceID
	if instanceID == "" {
		hostname, err := os.Hostname()
		if err != nil {
			return inodeid.NodeIdentity{}, err
		}
		instanceID = hostname + "-" + uuid.NewString()[:8]
	}

	privateIP := n.privateIP
	if privateIP == "" {
		ip, err := firstUnicastIPv4()
		if err != nil {
			return inodeid.NodeIdentity{}, err
		}
		privateIP = ip
	}

	n.resolved = inodeid.NodeIdentity{
		InstanceID:  instanceID,
		PrivateIPv4: privateIP,
	}
	return n.resolved, nil
}

func firstUnicastIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	return pickUnicastIPv4(addrs), nil
}

// pickUnicastIPv4 returns the host's first global unicast IPv4. Loopback
// and link-local addresses are not joinable from another node; the
// loopback fallback keeps single-node dev setups working.
func pickUnicastIPv4(addrs []net.Addr) string {
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To4()
		if ip == nil || !ip.IsGlobalUnicast() {
			continue
		}
		return ip.String()
	}
	return "127.0.0.1"
}
