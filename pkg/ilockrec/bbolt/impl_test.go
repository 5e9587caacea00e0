/*
 * Copyright (c) 2023-present Sigma-Soft, Ltd.
 * @author: Dmitry Molchanovsky
 */

package bbolt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

func TestTCK(t *testing.T) {
	require := require.New(t)

	recs, err := Provide(ParamsType{DBDir: t.TempDir()})
	require.NoError(err)
	defer func() { require.NoError(recs.Close()) }()

	ilockrec.TechnologyCompatibilityKit(t, recs)
}

func TestReopenKeepsRows(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	recs, err := Provide(ParamsType{DBDir: dir})
	require.NoError(err)

	rec := ilockrec.ClusterLock{
		ClusterName:    "prod",
		LeaseExpiresAt: "2024-01-01T00:00:00Z",
	}
	ok, err := recs.Insert(context.Background(), rec)
	require.NoError(err)
	require.True(ok)
	require.NoError(recs.Close())

	recs, err = Provide(ParamsType{DBDir: dir})
	require.NoError(err)
	defer func() { require.NoError(recs.Close()) }()

	stored, ok, err := recs.Get(context.Background(), "prod")
	require.NoError(err)
	require.True(ok)
	require.Equal(rec, stored)
}
