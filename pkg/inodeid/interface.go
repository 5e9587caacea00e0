/*
* Copyright (c) 2023-present unTill Pro, Ltd.
* @author Maxim Geraskin
 */

package inodeid

import "context"

// INodeIdentity resolves who this node is.
// The coordinator resolves identity once per pass and treats a failure as
// fatal for that pass: without an address there is nothing to advertise.
type INodeIdentity interface {
	Identity(ctx context.Context) (NodeIdentity, error)
}
