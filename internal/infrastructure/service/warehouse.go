package service

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"github.com/lunarway/redshift-dwh/internal/core/etl"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/redshift"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/s3"
	"github.com/lunarway/redshift-dwh/pkg/configuration"
)

func CredentialsFor(config configuration.Configuration) redshift.ClusterCredentials {
	return redshift.ClusterCredentials{
		Username: config.Cluster.Username,
		Password: config.Cluster.Password,
		Database: config.Cluster.DatabaseName,
		Host:     config.Cluster.Host,
		Sslmode:  config.Cluster.Sslmode,
		Port:     config.Cluster.Port,
	}
}

func LoadConfigFor(config configuration.Configuration) etl.LoadConfig {
	return etl.LoadConfig{
		LogData:     config.S3.LogData,
		LogJsonPath: config.S3.LogJsonPath,
		SongData:    config.S3.SongData,
		RoleArn:     config.IamRole.Arn,
		Region:      config.S3.Region,
	}
}

// OpenWarehouse connects to the cluster recorded in the configuration. The
// caller owns the returned session and must close it.
func OpenWarehouse(ctx context.Context, config configuration.Configuration, logQueries bool) (*redshift.Client, error) {
	if err := config.ValidateWarehouse(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return redshift.Connect(ctx, CredentialsFor(config), logQueries)
}

type PipelineOptions struct {
	// SkipPreflight leaves the S3 sources unchecked before COPY.
	SkipPreflight bool
	Inspector     etl.SourceInspector
}

// NewPipeline wires the load and transform stages onto an open session. Unless
// preflight is skipped the sources are inspected through S3, using the key pair
// from the AWS section and the region of the source bucket.
func NewPipeline(config configuration.Configuration, session etl.Session, options PipelineOptions, logger logr.Logger) (*etl.Pipeline, error) {
	if err := config.ValidateLoad(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	inspector := options.Inspector
	if inspector == nil && !options.SkipPreflight {
		awsSession, err := SessionFactoryFor(config).CreateSession()
		if err != nil {
			return nil, err
		}
		inspector = s3.NewInspector(awsSession, config.S3.Region)
	}
	if options.SkipPreflight {
		inspector = nil
	}

	loader := etl.NewLoadManager(LoadConfigFor(config), session, inspector, logger)
	transformer := etl.NewTransformManager(session, logger)
	return etl.NewPipeline(loader, transformer, logger), nil
}

func NewSchemaManager(session etl.Session, logger logr.Logger) *etl.SchemaManager {
	return etl.NewSchemaManager(session, logger)
}
