package service

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/ec2"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/iam"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/provider"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/publicip"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/redshift"
	"github.com/lunarway/redshift-dwh/pkg/configuration"
)

type LifecycleOptions struct {
	// SessionFactory defaults to static credentials taken from the AWS section.
	SessionFactory provider.SessionFactory
	// Resolver defaults to ifconfig.me.
	Resolver    warehouse.PublicIPResolver
	DeletePause time.Duration
}

func SessionFactoryFor(config configuration.Configuration) provider.SessionFactory {
	return provider.StaticSessionFactory{
		AccessKeyId:     config.Aws.AccessKeyId,
		SecretAccessKey: config.Aws.SecretAccessKey,
		Region:          config.Aws.Region,
	}
}

func ProvisionerConfigFor(config configuration.Configuration, deletePause time.Duration) warehouse.ProvisionerConfig {
	return warehouse.ProvisionerConfig{
		RoleName:          config.IamRole.Name,
		SecurityGroupName: config.Cluster.SecurityGroup,
		Cluster: warehouse.ClusterDescriptor{
			Identifier:     config.Cluster.Identifier,
			ClusterType:    config.Cluster.ClusterType,
			NodeType:       config.Cluster.NodeType,
			NodeCount:      config.Cluster.NodeCount,
			DatabaseName:   config.Cluster.DatabaseName,
			MasterUsername: config.Cluster.Username,
			MasterPassword: config.Cluster.Password,
			Port:           config.Cluster.Port,
		},
		DeletePause: deletePause,
	}
}

// NewProvisioner builds a provisioner whose derived values (role arn and host)
// are written back to store.
func NewProvisioner(store *configuration.Store, options LifecycleOptions, logger logr.Logger) (*warehouse.Provisioner, error) {

	config, err := store.Configuration()
	if err != nil {
		return nil, err
	}
	if err := config.ValidateLifecycle(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", store.Path(), err)
	}

	sessionFactory := options.SessionFactory
	if sessionFactory == nil {
		sessionFactory = SessionFactoryFor(config)
	}
	resolver := options.Resolver
	if resolver == nil {
		resolver = publicip.NewResolver("")
	}

	session, err := sessionFactory.CreateSession()
	if err != nil {
		return nil, err
	}

	return warehouse.NewProvisioner(
		ProvisionerConfigFor(config, options.DeletePause),
		iam.New(session),
		ec2.New(session, resolver, config.Cluster.Port),
		redshift.NewClusterClient(session),
		store,
		NewWarehouseEventRecorder(logger),
		logger,
	), nil
}
