/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Dmitry Molchanovsky
 */

package bbolt

import "errors"

var ErrLockBucketNotFound = errors.New("lock bucket not found")
