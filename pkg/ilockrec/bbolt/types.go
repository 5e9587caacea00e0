/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Dmitry Molchanovsky
 */

package bbolt

// ParamsType describes where the database file lives.
type ParamsType struct {
	DBDir string
}
