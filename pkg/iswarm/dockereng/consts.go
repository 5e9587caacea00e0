/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package dockereng

const (
	// the engine listens for cluster management traffic on all interfaces
	defaultListenAddr = "0.0.0.0:2377"
	swarmPort         = "2377"

	overlayDriver = "overlay"
)
