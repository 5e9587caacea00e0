/*
 * Copyright (c) 2023-present unTill Pro, Ltd.
 * @author Alisher Nurmanov
 */

package ec2

import (
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/ec2metadata"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/untillpro/swarmlead/pkg/inodeid"
)

// Provide returns a node identity resolved from the EC2 instance metadata
// service. The metadata endpoint is link-local, so the client timeout is
// short: either we run on EC2 and it answers at once, or we do not.
func Provide() (inodeid.INodeIdentity, error) {
	sess, err := session.NewSession()
	if err != nil {
		return nil, err
	}
	return &nodeIdentity{
		svc: ec2metadata.New(sess, aws.NewConfig().
			WithHTTPClient(&http.Client{Timeout: metadataTimeout})),
	}, nil
}
