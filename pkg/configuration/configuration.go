package configuration

import (
	"fmt"
	"strings"
)

const DefaultPath = "dwh.cfg"

const (
	SectionAws     = "AWS"
	SectionCluster = "CLUSTER"
	SectionIamRole = "IAM_ROLE"
	SectionS3      = "S3"
)

type ErrorCollector struct {
	Missing []string
}

func (e *ErrorCollector) Register(section string, key string) {
	e.Missing = append(e.Missing, fmt.Sprintf("%s.%s", section, key))
}

func (e *ErrorCollector) Error() error {
	if len(e.Missing) == 0 {
		return nil
	}
	var messages []string
	for _, name := range e.Missing {
		messages = append(messages, fmt.Sprintf("config key %s was not found", name))
	}
	return fmt.Errorf("%s", strings.Join(messages, ", "))
}

type AwsConfiguration struct {
	AccessKeyId     string
	SecretAccessKey string
	Region          string
}

type ClusterConfiguration struct {
	Identifier    string
	Host          string
	DatabaseName  string
	Username      string
	Password      string
	Port          int
	ClusterType   string
	NodeType      string
	NodeCount     int
	SecurityGroup string
	Sslmode       string
}

type IamRoleConfiguration struct {
	Name string
	Arn  string
}

type S3Configuration struct {
	LogData     string
	LogJsonPath string
	SongData    string
	Region      string
}

type Configuration struct {
	Aws     AwsConfiguration
	Cluster ClusterConfiguration
	IamRole IamRoleConfiguration
	S3      S3Configuration
}

func (c Configuration) ValidateLifecycle() error {
	errorCollector := &ErrorCollector{}
	require(errorCollector, SectionAws, "aws_region", c.Aws.Region)
	c.validateCluster(errorCollector)
	return errorCollector.Error()
}

func (c Configuration) ValidateWarehouse() error {
	errorCollector := &ErrorCollector{}
	c.validateCluster(errorCollector)
	require(errorCollector, SectionCluster, "host", c.Cluster.Host)
	return errorCollector.Error()
}

func (c Configuration) ValidateLoad() error {
	errorCollector := &ErrorCollector{}
	c.validateCluster(errorCollector)
	require(errorCollector, SectionCluster, "host", c.Cluster.Host)
	require(errorCollector, SectionIamRole, "arn", c.IamRole.Arn)
	require(errorCollector, SectionS3, "log_data", c.S3.LogData)
	require(errorCollector, SectionS3, "log_jsonpath", c.S3.LogJsonPath)
	require(errorCollector, SectionS3, "song_data", c.S3.SongData)
	return errorCollector.Error()
}

func (c Configuration) validateCluster(errorCollector *ErrorCollector) {
	require(errorCollector, SectionCluster, "cluster_id", c.Cluster.Identifier)
	require(errorCollector, SectionCluster, "db_name", c.Cluster.DatabaseName)
	require(errorCollector, SectionCluster, "db_user", c.Cluster.Username)
	require(errorCollector, SectionCluster, "db_password", c.Cluster.Password)
	if c.Cluster.Port == 0 {
		errorCollector.Register(SectionCluster, "db_port")
	}
}

func require(errorCollector *ErrorCollector, section string, key string, value string) {
	if value == "" {
		errorCollector.Register(section, key)
	}
}
