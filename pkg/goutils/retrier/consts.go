/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package retrier

const (
	DefaultJitterFactor = 0.5
	DefaultMultiplier   = 2
)
