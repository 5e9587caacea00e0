/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package coordinator

import "time"

const (
	DefaultJoinWait         = 300 * time.Second
	DefaultLeaseDuration    = 300 * time.Second
	DefaultJoinPollInterval = 10 * time.Second
	DefaultOverlayNetwork   = "app-network"
)
