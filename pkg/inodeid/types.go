/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package inodeid

// NodeIdentity is the stable identity of the node inside one fleet.
type NodeIdentity struct {
	InstanceID  string
	PrivateIPv4 string
}
