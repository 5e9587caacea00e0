/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Dmitry Molchanovsky
 */

package bbolt

const (
	dbFileName     = "swarmlead.db"
	lockBucketName = "clusterLock"
)
