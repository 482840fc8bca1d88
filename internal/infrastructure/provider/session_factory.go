package provider

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
)

type SessionFactory interface {
	CreateSession() (*session.Session, error)
}

// StaticSessionFactory uses the key pair from the configuration file and falls
// back to the default credential chain when it is empty.
type StaticSessionFactory struct {
	AccessKeyId     string
	SecretAccessKey string
	Region          string
}

type LocalStackSessionFactory struct {
	Endpoint string
	Region   string
}

func (f StaticSessionFactory) CreateSession() (*session.Session, error) {
	config := aws.Config{
		Region: aws.String(f.Region),
	}
	if f.AccessKeyId != "" {
		config.Credentials = credentials.NewStaticCredentials(f.AccessKeyId, f.SecretAccessKey, "")
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            config,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create aws session: %w", err)
	}
	return sess, nil
}

func (f LocalStackSessionFactory) CreateSession() (*session.Session, error) {
	endpoint := f.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:4566"
	}
	region := f.Region
	if region == "" {
		region = "us-west-2"
	}
	return session.NewSessionWithOptions(session.Options{
		Config: aws.Config{
			Credentials:      credentials.NewStaticCredentials("foo", "var", ""),
			Region:           aws.String(region),
			Endpoint:         aws.String(endpoint),
			S3ForcePathStyle: aws.Bool(true),
		},
	})
}
