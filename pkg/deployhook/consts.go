/*
* Copyright (c) 2023-present Sigma-Soft, Ltd.
* @author Dmitry Molchanovsky
 */
package deployhook

import "time"

const (
	DefaultRolloutTimeout      = 300 * time.Second
	DefaultRolloutPollInterval = 5 * time.Second
)
