/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Denis Gribanov
 */

package provider

import "errors"

var (
	ErrEmptyDSN      = errors.New("lock store dsn is empty")
	ErrUnknownDriver = errors.New("unknown lock store driver")
)
