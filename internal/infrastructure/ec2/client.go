package ec2

import (
	"context"
	"fmt"
	"net"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/aws/aws-sdk-go/service/ec2/ec2iface"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/provider"
	log "github.com/sirupsen/logrus"
)

const groupDescription = "Authorise redshift cluster access"

// Client manages the security group that lets the operator reach the cluster port.
type Client struct {
	api      ec2iface.EC2API
	resolver warehouse.PublicIPResolver
	port     int
	vpcId    string
}

func New(session *session.Session, resolver warehouse.PublicIPResolver, port int) *Client {
	return NewWithAPI(ec2.New(session), resolver, port)
}

func NewWithAPI(api ec2iface.EC2API, resolver warehouse.PublicIPResolver, port int) *Client {
	return &Client{api: api, resolver: resolver, port: port}
}

// WithVpc places the security group in the given VPC instead of the default one.
func (client *Client) WithVpc(vpcId string) *Client {
	client.vpcId = vpcId
	return client
}

func (client *Client) Create(ctx context.Context, name string) (*warehouse.NetworkRule, error) {

	address, err := client.resolver.PublicIP(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", warehouse.ErrPublicIPUnavailable, err)
	}
	cidr, err := hostCIDR(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", warehouse.ErrPublicIPUnavailable, err)
	}
	log.Infof("public ip address: %s", address)

	groupId, err := client.ensureGroup(ctx, name)
	if err != nil {
		return nil, err
	}

	permission := &ec2.IpPermission{
		IpProtocol: aws.String("tcp"),
		FromPort:   aws.Int64(int64(client.port)),
		ToPort:     aws.Int64(int64(client.port)),
	}
	if net.ParseIP(address).To4() != nil {
		permission.IpRanges = []*ec2.IpRange{{CidrIp: aws.String(cidr), Description: aws.String("redshift access")}}
	} else {
		permission.Ipv6Ranges = []*ec2.Ipv6Range{{CidrIpv6: aws.String(cidr), Description: aws.String("redshift access")}}
	}

	_, err = client.api.AuthorizeSecurityGroupIngressWithContext(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupId),
		IpPermissions: []*ec2.IpPermission{permission},
	})

	if err != nil {
		err = provider.Classify(err, "security group", name)
		if !warehouse.IsAlreadyExists(err) {
			return nil, fmt.Errorf("unable to open port %d on security group %s: %w", client.port, name, err)
		}
		log.Infof("ingress from %s already authorized on %s", cidr, name)
	}

	return &warehouse.NetworkRule{
		GroupName:   name,
		GroupID:     groupId,
		AllowedCIDR: cidr,
		FromPort:    client.port,
		ToPort:      client.port,
		Protocol:    "tcp",
	}, nil
}

func (client *Client) Delete(ctx context.Context, name string) error {

	groupId, err := client.lookupGroup(ctx, name)
	if err != nil {
		return err
	}

	if groupId == "" {
		log.Infof("no security group found with name %s", name)
		return nil
	}

	_, err = client.api.DeleteSecurityGroupWithContext(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupId),
	})

	if err != nil {
		err = provider.Classify(err, "security group", name)
		if warehouse.IsNotFound(err) {
			return nil
		}
		return err
	}

	log.Infof("deleted security group %s (%s)", name, groupId)
	return nil
}

func (client *Client) ensureGroup(ctx context.Context, name string) (string, error) {

	groupId, err := client.lookupGroup(ctx, name)
	if err != nil || groupId != "" {
		return groupId, err
	}

	input := &ec2.CreateSecurityGroupInput{
		Description: aws.String(groupDescription),
		GroupName:   aws.String(name),
	}
	if client.vpcId != "" {
		input.VpcId = aws.String(client.vpcId)
	}

	response, err := client.api.CreateSecurityGroupWithContext(ctx, input)

	if err != nil {
		return "", provider.Classify(err, "security group", name)
	}

	log.Infof("security group %s created with id %s", name, aws.StringValue(response.GroupId))

	return aws.StringValue(response.GroupId), nil
}

func (client *Client) lookupGroup(ctx context.Context, name string) (string, error) {

	filters := []*ec2.Filter{{Name: aws.String("group-name"), Values: []*string{aws.String(name)}}}
	if client.vpcId != "" {
		filters = append(filters, &ec2.Filter{Name: aws.String("vpc-id"), Values: []*string{aws.String(client.vpcId)}})
	}

	response, err := client.api.DescribeSecurityGroupsWithContext(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: filters,
	})

	if err != nil {
		err = provider.Classify(err, "security group", name)
		if warehouse.IsNotFound(err) {
			return "", nil
		}
		return "", err
	}

	log.Debug(response.String())

	if len(response.SecurityGroups) == 0 {
		return "", nil
	}

	return aws.StringValue(response.SecurityGroups[0].GroupId), nil
}

func hostCIDR(address string) (string, error) {
	ip := net.ParseIP(address)
	if ip == nil {
		return "", fmt.Errorf("%q is not an ip address", address)
	}
	if ip.To4() != nil {
		return ip.String() + "/32", nil
	}
	return ip.String() + "/128", nil
}
