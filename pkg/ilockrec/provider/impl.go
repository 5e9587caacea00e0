/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Denis Gribanov
 */

package provider

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
	"github.com/untillpro/swarmlead/pkg/ilockrec/amazondb"
	"github.com/untillpro/swarmlead/pkg/ilockrec/bbolt"
	"github.com/untillpro/swarmlead/pkg/ilockrec/cas"
	"github.com/untillpro/swarmlead/pkg/ilockrec/mem"
)

func parseDSN(dsn string) (ilockrec.ILockRecords, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}
	if !strings.Contains(dsn, "://") {
		return amazondb.Provide(amazondb.DynamoDBParams{TableName: dsn})
	}
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, fmt.Errorf("can't parse lock store dsn: %w", err)
	}
	switch u.Scheme {
	case "dynamodb":
		return provideDynamoDB(u)
	case "cassandra":
		return provideCassandra(u)
	case "bbolt":
		return bbolt.Provide(bbolt.ParamsType{DBDir: u.Path})
	case "mem":
		return mem.Provide(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, u.Scheme)
}

func provideDynamoDB(u *url.URL) (ilockrec.ILockRecords, error) {
	q := u.Query()
	return amazondb.Provide(amazondb.DynamoDBParams{
		TableName:       u.Host,
		Region:          q.Get("region"),
		EndpointURL:     q.Get("endpoint"),
		AccessKeyID:     q.Get("access_key"),
		SecretAccessKey: q.Get("secret_key"),
		SessionToken:    q.Get("session_token"),
	})
}

func provideCassandra(u *url.URL) (ilockrec.ILockRecords, error) {
	q := u.Query()
	casPar := cas.CassandraParamsType{
		Hosts:                   u.Hostname(),
		Keyspace:                strings.TrimPrefix(u.Path, "/"),
		DC:                      q.Get("dc"),
		KeyspaceWithReplication: cas.SimpleWithReplication,
	}
	if hosts := q.Get("hosts"); hosts != "" {
		casPar.Hosts = hosts
	}
	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("can't parse cassandra port: %w", err)
		}
		casPar.Port = p
	}
	if u.User != nil {
		casPar.Username = u.User.Username()
		casPar.Pwd, _ = u.User.Password()
	}
	if retries := q.Get("retries"); retries != "" {
		n, err := strconv.Atoi(retries)
		if err != nil {
			return nil, fmt.Errorf("can't parse cassandra retries: %w", err)
		}
		casPar.NumRetries = n
	}
	return cas.Provide(casPar)
}
