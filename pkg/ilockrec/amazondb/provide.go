/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package amazondb

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// Provide returns a lock-record store backed by a DynamoDB table.
// The table itself is provisioned by the operator, not by this driver;
// see (*LockRecords).InitTable for local test endpoints.
func Provide(params DynamoDBParams) (*LockRecords, error) {
	if params.TableName == "" {
		return nil, ErrTableNameEmpty
	}
	cfg := aws.NewConfig()
	if params.Region != "" {
		cfg = cfg.WithRegion(params.Region)
	}
	if params.EndpointURL != "" {
		cfg = cfg.WithEndpoint(params.EndpointURL)
	}
	if params.AccessKeyID != "" {
		cfg = cfg.WithCredentials(credentials.NewStaticCredentials(
			params.AccessKeyID, params.SecretAccessKey, params.SessionToken))
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &LockRecords{
		client:    dynamodb.New(sess),
		tableName: params.TableName,
	}, nil
}
