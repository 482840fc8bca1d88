package iam

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/iam/iamiface"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/provider"
	log "github.com/sirupsen/logrus"
)

const roleDescription = "Allows Redshift clusters to call AWS services on your behalf."

// Client manages the trust role the cluster assumes to read the source buckets.
type Client struct {
	api       iamiface.IAMAPI
	policyArn string
}

func New(session *session.Session) *Client {
	return NewWithAPI(iam.New(session))
}

func NewWithAPI(api iamiface.IAMAPI) *Client {
	return &Client{api: api, policyArn: warehouse.S3ReadOnlyPolicyArn}
}

func (client *Client) Create(ctx context.Context, name string) (*warehouse.AccessRole, error) {

	trustPolicy, err := RedshiftTrustPolicy()
	if err != nil {
		return nil, err
	}

	response, err := client.api.CreateRoleWithContext(ctx, &iam.CreateRoleInput{
		Path:                     aws.String("/"),
		RoleName:                 aws.String(name),
		Description:              aws.String(roleDescription),
		AssumeRolePolicyDocument: aws.String(trustPolicy),
	})

	if err != nil {
		err = provider.Classify(err, "role", name)
		if !warehouse.IsAlreadyExists(err) {
			return nil, err
		}
		log.Infof("role %s already exists, reusing it", name)
	} else {
		log.Debug(response.String())
	}

	_, err = client.api.AttachRolePolicyWithContext(ctx, &iam.AttachRolePolicyInput{
		RoleName:  aws.String(name),
		PolicyArn: aws.String(client.policyArn),
	})

	if err != nil {
		return nil, fmt.Errorf("unable to attach policy %s to role %s: %w", client.policyArn, name, provider.Classify(err, "role", name))
	}

	role, err := client.api.GetRoleWithContext(ctx, &iam.GetRoleInput{RoleName: aws.String(name)})

	if err != nil {
		return nil, provider.Classify(err, "role", name)
	}

	log.Debug(role.String())

	return &warehouse.AccessRole{
		Name:               name,
		Arn:                aws.StringValue(role.Role.Arn),
		TrustPolicy:        trustPolicy,
		AttachedPolicyArns: []string{client.policyArn},
	}, nil
}

func (client *Client) Delete(ctx context.Context, name string) error {

	_, err := client.api.DetachRolePolicyWithContext(ctx, &iam.DetachRolePolicyInput{
		RoleName:  aws.String(name),
		PolicyArn: aws.String(client.policyArn),
	})

	if err != nil {
		err = provider.Classify(err, "role", name)
		if !warehouse.IsNotFound(err) {
			return fmt.Errorf("unable to detach policy %s from role %s: %w", client.policyArn, name, err)
		}
	}

	response, err := client.api.DeleteRoleWithContext(ctx, &iam.DeleteRoleInput{RoleName: aws.String(name)})

	if err != nil {
		err = provider.Classify(err, "role", name)
		if warehouse.IsNotFound(err) {
			log.Infof("role %s does not exist, nothing to delete", name)
			return nil
		}
		return err
	}

	log.Debug(response.String())

	return nil
}
