/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package retrier

import "errors"

// ErrInvalidConfig is returned when Config has invalid values.
var ErrInvalidConfig = errors.New("invalid retry config")
