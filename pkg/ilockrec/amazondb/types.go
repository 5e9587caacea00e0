/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package amazondb

// DynamoDBParams describes the endpoint and the table the lock rows live in.
// Empty AccessKeyID means the default credential chain, i.e. the instance role.
type DynamoDBParams struct {
	EndpointURL     string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	TableName       string
}

// dynamoLock is the wire shape of ilockrec.ClusterLock.
// Attribute names are part of the cross-fleet contract and never change.
type dynamoLock struct {
	ClusterName       string `dynamodbav:"cluster_name"`
	LeaseExpiresAt    string `dynamodbav:"lease_expires_at"`
	ManagerInstanceID string `dynamodbav:"manager_instance_id"`
	ManagerPrivateIP  string `dynamodbav:"manager_private_ip"`
	ManagerJoinToken  string `dynamodbav:"swarm_join_token_manager"`
	WorkerJoinToken   string `dynamodbav:"swarm_join_token_worker"`
	OverlayNetwork    string `dynamodbav:"swarm_overlay_network_name"`
}
