/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package amazondb

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"

	"github.com/untillpro/swarmlead/pkg/ilockrec"
)

// LockRecords implements ilockrec.ILockRecords over one DynamoDB table
// keyed by cluster_name. Both writes are PutItem with a condition
// expression, so losing a race is a ConditionalCheckFailed, never an error.
type LockRecords struct {
	client    *dynamodb.DynamoDB
	tableName string
}

func (r *LockRecords) Get(ctx context.Context, clusterName string) (rec ilockrec.ClusterLock, ok bool, err error) {
	out, err := r.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]*dynamodb.AttributeValue{
			clusterNameAttr: {S: aws.String(clusterName)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return rec, false, err
	}
	if len(out.Item) == 0 {
		return rec, false, nil
	}
	stored := dynamoLock{}
	if err := dynamodbattribute.UnmarshalMap(out.Item, &stored); err != nil {
		return rec, false, err
	}
	return fromDynamo(stored), true, nil
}

func (r *LockRecords) Insert(ctx context.Context, rec ilockrec.ClusterLock) (bool, error) {
	expr, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(clusterNameAttr))).
		Build()
	if err != nil {
		return false, err
	}
	return r.conditionalPut(ctx, rec, expr)
}

func (r *LockRecords) Replace(ctx context.Context, rec ilockrec.ClusterLock, prevLease string) (bool, error) {
	expr, err := expression.NewBuilder().
		WithCondition(expression.Name(leaseAttr).Equal(expression.Value(prevLease))).
		Build()
	if err != nil {
		return false, err
	}
	return r.conditionalPut(ctx, rec, expr)
}

func (r *LockRecords) conditionalPut(ctx context.Context, rec ilockrec.ClusterLock, expr expression.Expression) (bool, error) {
	item, err := dynamodbattribute.MarshalMap(toDynamo(rec))
	if err != nil {
		return false, err
	}
	_, err = r.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(r.tableName),
		Item:                      item,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// InitTable creates the lock table and waits until it is active.
// An already existing table is fine. Meant for dynamodb-local test
// endpoints; production tables are provisioned out of band.
func (r *LockRecords) InitTable(ctx context.Context) error {
	_, err := r.client.CreateTableWithContext(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(r.tableName),
		AttributeDefinitions: []*dynamodb.AttributeDefinition{
			{
				AttributeName: aws.String(clusterNameAttr),
				AttributeType: aws.String(dynamodb.ScalarAttributeTypeS),
			},
		},
		KeySchema: []*dynamodb.KeySchemaElement{
			{
				AttributeName: aws.String(clusterNameAttr),
				KeyType:       aws.String(dynamodb.KeyTypeHash),
			},
		},
		ProvisionedThroughput: &dynamodb.ProvisionedThroughput{
			ReadCapacityUnits:  aws.Int64(defaultRCU),
			WriteCapacityUnits: aws.Int64(defaultWCU),
		},
	})
	if err != nil {
		aerr, ok := err.(awserr.Error)
		if !ok || aerr.Code() != dynamodb.ErrCodeResourceInUseException {
			return err
		}
	}
	return r.client.WaitUntilTableExistsWithContext(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(r.tableName),
	})
}

func isConditionalCheckFailed(err error) bool {
	aerr, ok := err.(awserr.Error)
	return ok && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException
}

func toDynamo(rec ilockrec.ClusterLock) dynamoLock {
	return dynamoLock{
		ClusterName:       rec.ClusterName,
		LeaseExpiresAt:    rec.LeaseExpiresAt,
		ManagerInstanceID: rec.ManagerInstanceID,
		ManagerPrivateIP:  rec.ManagerPrivateIP,
		ManagerJoinToken:  rec.ManagerJoinToken,
		WorkerJoinToken:   rec.WorkerJoinToken,
		OverlayNetwork:    rec.OverlayNetwork,
	}
}

func fromDynamo(stored dynamoLock) ilockrec.ClusterLock {
	return ilockrec.ClusterLock{
		ClusterName:       stored.ClusterName,
		LeaseExpiresAt:    stored.LeaseExpiresAt,
		ManagerInstanceID: stored.ManagerInstanceID,
		ManagerPrivateIP:  stored.ManagerPrivateIP,
		ManagerJoinToken:  stored.ManagerJoinToken,
		WorkerJoinToken:   stored.WorkerJoinToken,
		OverlayNetwork:    stored.OverlayNetwork,
	}
}
