/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package static

import (
	"github.com/untillpro/swarmlead/pkg/inodeid"
)

// Provide returns a fixed node identity for clusters outside EC2.
// Empty instanceID falls back to the hostname with a random suffix,
// empty privateIP falls back to the first global unicast IPv4 address.
func Provide(instanceID, privateIP string) inodeid.INodeIdentity {
	return &nodeIdentity{
		instanceID: instanceID,
		privateIP:  privateIP,
	}
}
