package redshift

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/redshift"
	"github.com/aws/aws-sdk-go/service/redshift/redshiftiface"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/provider"
	log "github.com/sirupsen/logrus"
)

// ClusterClient talks to the Redshift control plane. None of its calls wait for
// the cluster to change state.
type ClusterClient struct {
	api redshiftiface.RedshiftAPI
}

func NewClusterClient(session *session.Session) *ClusterClient {
	return NewClusterClientWithAPI(redshift.New(session))
}

func NewClusterClientWithAPI(api redshiftiface.RedshiftAPI) *ClusterClient {
	return &ClusterClient{api: api}
}

func (c *ClusterClient) Create(ctx context.Context, descriptor warehouse.ClusterDescriptor) error {

	input := &redshift.CreateClusterInput{
		ClusterIdentifier:  aws.String(descriptor.Identifier),
		NodeType:           aws.String(descriptor.NodeType),
		DBName:             aws.String(descriptor.DatabaseName),
		MasterUsername:     aws.String(descriptor.MasterUsername),
		MasterUserPassword: aws.String(descriptor.MasterPassword),
		Port:               aws.Int64(int64(descriptor.Port)),
	}

	if descriptor.IsSingleNode() {
		input.ClusterType = aws.String("single-node")
	} else {
		input.ClusterType = aws.String("multi-node")
		input.NumberOfNodes = aws.Int64(int64(descriptor.NodeCount))
	}

	if descriptor.NetworkRule != nil {
		input.VpcSecurityGroupIds = []*string{aws.String(descriptor.NetworkRule.GroupID)}
	}
	if descriptor.RoleArn != "" {
		input.IamRoles = []*string{aws.String(descriptor.RoleArn)}
	}

	response, err := c.api.CreateClusterWithContext(ctx, input)

	if err != nil {
		return provider.Classify(err, "cluster", descriptor.Identifier)
	}

	log.Debug(response.String())

	return nil
}

func (c *ClusterClient) Status(ctx context.Context, identifier string) (warehouse.ClusterStatus, error) {

	response, err := c.api.DescribeClustersWithContext(ctx, &redshift.DescribeClustersInput{
		ClusterIdentifier: aws.String(identifier),
	})

	if err != nil {
		err = provider.Classify(err, "cluster", identifier)
		if warehouse.IsNotFound(err) {
			return warehouse.ClusterStatus{State: warehouse.ClusterAbsent}, nil
		}
		return warehouse.ClusterStatus{}, err
	}

	if len(response.Clusters) == 0 {
		return warehouse.ClusterStatus{State: warehouse.ClusterAbsent}, nil
	}

	cluster := response.Clusters[0]
	status := warehouse.ClusterStatus{
		State: warehouse.ClusterState(strings.ToLower(aws.StringValue(cluster.ClusterStatus))),
	}

	if status.IsAvailable() {
		if cluster.Endpoint == nil || aws.StringValue(cluster.Endpoint.Address) == "" {
			return warehouse.ClusterStatus{}, warehouse.NewResourceError(warehouse.TransientFailure, "cluster", identifier, errors.New("cluster is available but has no endpoint yet"))
		}
		status.Endpoint = aws.StringValue(cluster.Endpoint.Address)
	}

	return status, nil
}

func (c *ClusterClient) Delete(ctx context.Context, identifier string) error {

	response, err := c.api.DeleteClusterWithContext(ctx, &redshift.DeleteClusterInput{
		ClusterIdentifier:        aws.String(identifier),
		SkipFinalClusterSnapshot: aws.Bool(true),
	})

	if err != nil {
		err = provider.Classify(err, "cluster", identifier)
		if warehouse.IsNotFound(err) {
			log.Infof("cluster %s does not exist, nothing to delete", identifier)
			return nil
		}
		return err
	}

	log.Debug(response.String())

	return nil
}
