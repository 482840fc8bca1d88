package warehouse

import "context"

const S3ReadOnlyPolicyArn = "arn:aws:iam::aws:policy/AmazonS3ReadOnlyAccess"

type RoleManager interface {
	Create(ctx context.Context, name string) (*AccessRole, error)
	Delete(ctx context.Context, name string) error
}

type NetworkAccessManager interface {
	Create(ctx context.Context, name string) (*NetworkRule, error)
	Delete(ctx context.Context, name string) error
}

type ClusterManager interface {
	Create(ctx context.Context, descriptor ClusterDescriptor) error
	Status(ctx context.Context, identifier string) (ClusterStatus, error)
	Delete(ctx context.Context, identifier string) error
}

type PublicIPResolver interface {
	PublicIP(ctx context.Context) (string, error)
}

type ConfigurationWriter interface {
	SetRoleArn(arn string)
	SetHost(host string)
	Save() error
}
