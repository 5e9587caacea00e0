/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 */

package cas

import (
	"context"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

const casDefaultPort = 9042
const casDefaultHost = "127.0.0.1"

func TestTCK(t *testing.T) {
	if os.Getenv("SWARMLEAD_TEST_CASSANDRA") == "" {
		t.Skip()
	}
	require := require.New(t)

	casPar := CassandraParamsType{
		Hosts:                   hosts(),
		Port:                    port(),
		NumRetries:              retryAttempt,
		Keyspace:                testKeyspace(),
		KeyspaceWithReplication: SimpleWithReplication,
	}
	recs, err := Provide(casPar)
	require.NoError(err)
	defer recs.Close()
	require.NoError(recs.InitSchema(context.Background()))

	ilockrec.TechnologyCompatibilityKit(t, recs)
}

func TestProvideValidation(t *testing.T) {
	require := require.New(t)

	_, err := Provide(CassandraParamsType{Hosts: casDefaultHost})
	require.Error(err)
}

func TestCassandraParamsType_cqlVersion(t *testing.T) {
	tests := []struct {
		name           string
		cqlVersion     string
		wantCqlVersion string
	}{
		{
			name:           "Should get default",
			cqlVersion:     "",
			wantCqlVersion: "3.0.0",
		},
		{
			name:           "Should get custom",
			cqlVersion:     "1.2.3",
			wantCqlVersion: "1.2.3",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.wantCqlVersion, CassandraParamsType{CQLVersion: test.cqlVersion}.cqlVersion())
		})
	}
}

func TestDCAwareRoundRobinPolicy(t *testing.T) {
	cluster := newCluster(CassandraParamsType{
		Hosts:    casDefaultHost,
		Keyspace: "swarmlead",
		DC:       "dc1",
	})
	require.NotNil(t, cluster.PoolConfig.HostSelectionPolicy)
}

func testKeyspace() string {
	return "swarmlead_tck_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func hosts() string {
	value, ok := os.LookupEnv("SWARMLEAD_TEST_CASSANDRA_HOSTS")
	if !ok {
		return casDefaultHost
	}
	return value
}

func port() int {
	value, ok := os.LookupEnv("SWARMLEAD_TEST_CASSANDRA_PORT")
	if !ok {
		return casDefaultPort
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}
	return result
}
