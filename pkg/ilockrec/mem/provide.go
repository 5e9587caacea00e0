/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Maxim Geraskin
 */

package mem

import "github.com/untillpro/swarmlead/pkg/ilockrec"

// Provide returns an in-memory lock-record store.
// Used by tests and by single-process experiments, never in production.
func Provide() *LockRecords {
	return &LockRecords{
		data:            map[string]ilockrec.ClusterLock{},
		readErrTrigger:  map[string]bool{},
		writeErrTrigger: map[string]bool{},
	}
}
