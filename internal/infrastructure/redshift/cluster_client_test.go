package redshift

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/redshift"
	"github.com/aws/aws-sdk-go/service/redshift/redshiftiface"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
	"github.com/stretchr/testify/assert"
)

type fakeRedshift struct {
	redshiftiface.RedshiftAPI
	created  *redshift.CreateClusterInput
	clusters map[string]*redshift.Cluster
	deleted  *redshift.DeleteClusterInput
}

func newFakeRedshift() *fakeRedshift {
	return &fakeRedshift{clusters: map[string]*redshift.Cluster{}}
}

func (f *fakeRedshift) CreateClusterWithContext(ctx aws.Context, in *redshift.CreateClusterInput, opts ...request.Option) (*redshift.CreateClusterOutput, error) {
	if _, ok := f.clusters[aws.StringValue(in.ClusterIdentifier)]; ok {
		return nil, awserr.New(redshift.ErrCodeClusterAlreadyExistsFault, "Cluster already exists", nil)
	}
	f.created = in
	cluster := &redshift.Cluster{ClusterIdentifier: in.ClusterIdentifier, ClusterStatus: aws.String("creating")}
	f.clusters[aws.StringValue(in.ClusterIdentifier)] = cluster
	return &redshift.CreateClusterOutput{Cluster: cluster}, nil
}

func (f *fakeRedshift) DescribeClustersWithContext(ctx aws.Context, in *redshift.DescribeClustersInput, opts ...request.Option) (*redshift.DescribeClustersOutput, error) {
	cluster, ok := f.clusters[aws.StringValue(in.ClusterIdentifier)]
	if !ok {
		return nil, awserr.New(redshift.ErrCodeClusterNotFoundFault, "Cluster dwhCluster not found.", nil)
	}
	return &redshift.DescribeClustersOutput{Clusters: []*redshift.Cluster{cluster}}, nil
}

func (f *fakeRedshift) DeleteClusterWithContext(ctx aws.Context, in *redshift.DeleteClusterInput, opts ...request.Option) (*redshift.DeleteClusterOutput, error) {
	cluster, ok := f.clusters[aws.StringValue(in.ClusterIdentifier)]
	if !ok {
		return nil, awserr.New(redshift.ErrCodeClusterNotFoundFault, "Cluster dwhCluster not found.", nil)
	}
	f.deleted = in
	cluster.ClusterStatus = aws.String("deleting")
	cluster.Endpoint = nil
	return &redshift.DeleteClusterOutput{Cluster: cluster}, nil
}

func descriptor() warehouse.ClusterDescriptor {
	return warehouse.ClusterDescriptor{
		Identifier:     "dwhCluster",
		ClusterType:    "multi-node",
		NodeType:       "dc2.large",
		NodeCount:      2,
		DatabaseName:   "dwh",
		MasterUsername: "dwhuser",
		MasterPassword: "Passw0rd",
		Port:           5439,
		NetworkRule:    &warehouse.NetworkRule{GroupID: "sg-0123"},
		RoleArn:        "arn:aws:iam::123456789012:role/dwh_iam_role",
	}
}

func TestClusterClient_Create(t *testing.T) {
	assert := assert.New(t)

	api := newFakeRedshift()
	client := NewClusterClientWithAPI(api)

	assert.NoError(client.Create(context.Background(), descriptor()))
	assert.Equal("multi-node", aws.StringValue(api.created.ClusterType))
	assert.Equal(int64(2), aws.Int64Value(api.created.NumberOfNodes))
	assert.Equal([]string{"sg-0123"}, aws.StringValueSlice(api.created.VpcSecurityGroupIds))
	assert.Equal([]string{"arn:aws:iam::123456789012:role/dwh_iam_role"}, aws.StringValueSlice(api.created.IamRoles))
	assert.Equal(int64(5439), aws.Int64Value(api.created.Port))

	err := client.Create(context.Background(), descriptor())
	assert.True(warehouse.IsAlreadyExists(err))
}

func TestClusterClient_CreateSingleNode(t *testing.T) {
	api := newFakeRedshift()
	single := descriptor()
	single.NodeCount = 1

	assert.NoError(t, NewClusterClientWithAPI(api).Create(context.Background(), single))
	assert.Equal(t, "single-node", aws.StringValue(api.created.ClusterType))
	assert.Nil(t, api.created.NumberOfNodes)
}

func TestClusterClient_Status(t *testing.T) {
	assert := assert.New(t)

	api := newFakeRedshift()
	client := NewClusterClientWithAPI(api)
	ctx := context.Background()

	status, err := client.Status(ctx, "dwhCluster")
	assert.NoError(err)
	assert.Equal(warehouse.ClusterAbsent, status.State)
	assert.Empty(status.Endpoint)

	assert.NoError(client.Create(ctx, descriptor()))
	status, err = client.Status(ctx, "dwhCluster")
	assert.NoError(err)
	assert.Equal(warehouse.ClusterCreating, status.State)
	assert.Empty(status.Endpoint)

	api.clusters["dwhCluster"].ClusterStatus = aws.String("available")
	api.clusters["dwhCluster"].Endpoint = &redshift.Endpoint{Address: aws.String("dwhcluster.abc.us-west-2.redshift.amazonaws.com"), Port: aws.Int64(5439)}
	status, err = client.Status(ctx, "dwhCluster")
	assert.NoError(err)
	assert.Equal(warehouse.ClusterAvailable, status.State)
	assert.Equal("dwhcluster.abc.us-west-2.redshift.amazonaws.com", status.Endpoint)

	api.clusters["dwhCluster"].Endpoint = nil
	_, err = client.Status(ctx, "dwhCluster")
	assert.True(warehouse.IsTransient(err))
}

func TestClusterClient_Delete(t *testing.T) {
	assert := assert.New(t)

	api := newFakeRedshift()
	client := NewClusterClientWithAPI(api)
	ctx := context.Background()

	assert.NoError(client.Delete(ctx, "dwhCluster"), "deleting a missing cluster is not an error")

	assert.NoError(client.Create(ctx, descriptor()))
	assert.NoError(client.Delete(ctx, "dwhCluster"))
	assert.True(aws.BoolValue(api.deleted.SkipFinalClusterSnapshot))

	status, err := client.Status(ctx, "dwhCluster")
	assert.NoError(err)
	assert.Equal(warehouse.ClusterDeleting, status.State)
	assert.Empty(status.Endpoint)
}
