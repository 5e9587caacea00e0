/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package amazondb

import "errors"

var ErrTableNameEmpty = errors.New("table name is empty")
