package configuration

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	defaultClusterType   = "multi-node"
	defaultNodeType      = "dc2.large"
	defaultNodeCount     = 2
	defaultSecurityGroup = "redshift_security_group"
	defaultSslmode       = "require"
	defaultRoleName      = "dwh_iam_role"
	defaultS3Region      = "us-west-2"
)

// Store is the INI file shared by the lifecycle tool and the ETL commands. It is
// the only place derived values (role ARN, cluster host) are handed between them.
type Store struct {
	path string
	file *ini.File
}

func Load(path string) (*Store, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveKeys:     true,
		IgnoreInlineComment: true,
		IgnoreContinuation:  true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration %s: %w", path, err)
	}
	return &Store{path: path, file: file}, nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Configuration() (Configuration, error) {
	port, err := s.intValue(SectionCluster, "db_port", 0)
	if err != nil {
		return Configuration{}, err
	}
	nodeCount, err := s.intValue(SectionCluster, "num_nodes", defaultNodeCount)
	if err != nil {
		return Configuration{}, err
	}

	return Configuration{
		Aws: AwsConfiguration{
			AccessKeyId:     s.value(SectionAws, "access_key_id", ""),
			SecretAccessKey: s.value(SectionAws, "secret_access_key", ""),
			Region:          s.value(SectionAws, "aws_region", ""),
		},
		Cluster: ClusterConfiguration{
			Identifier:    s.value(SectionCluster, "cluster_id", ""),
			Host:          s.value(SectionCluster, "host", ""),
			DatabaseName:  s.value(SectionCluster, "db_name", ""),
			Username:      s.value(SectionCluster, "db_user", ""),
			Password:      s.value(SectionCluster, "db_password", ""),
			Port:          port,
			ClusterType:   s.value(SectionCluster, "cluster_type", defaultClusterType),
			NodeType:      s.value(SectionCluster, "node_type", defaultNodeType),
			NodeCount:     nodeCount,
			SecurityGroup: s.value(SectionCluster, "security_group", defaultSecurityGroup),
			Sslmode:       s.value(SectionCluster, "sslmode", defaultSslmode),
		},
		IamRole: IamRoleConfiguration{
			Name: s.value(SectionIamRole, "role_name", defaultRoleName),
			Arn:  s.value(SectionIamRole, "arn", ""),
		},
		S3: S3Configuration{
			LogData:     s.value(SectionS3, "log_data", ""),
			LogJsonPath: s.value(SectionS3, "log_jsonpath", ""),
			SongData:    s.value(SectionS3, "song_data", ""),
			Region:      s.value(SectionS3, "region", defaultS3Region),
		},
	}, nil
}

func (s *Store) SetRoleArn(arn string) {
	s.file.Section(SectionIamRole).Key("arn").SetValue(arn)
}

func (s *Store) SetHost(host string) {
	s.file.Section(SectionCluster).Key("host").SetValue(host)
}

func (s *Store) Save() error {
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("unable to write configuration %s: %w", s.path, err)
	}
	return nil
}

func (s *Store) value(section string, key string, defaultValue string) string {
	sec, err := s.file.GetSection(section)
	if err != nil || !sec.HasKey(key) {
		return defaultValue
	}
	value := strings.TrimSpace(sec.Key(key).String())
	if value == "" {
		return defaultValue
	}
	return value
}

func (s *Store) intValue(section string, key string, defaultValue int) (int, error) {
	sec, err := s.file.GetSection(section)
	if err != nil || !sec.HasKey(key) || strings.TrimSpace(sec.Key(key).String()) == "" {
		return defaultValue, nil
	}
	value, err := sec.Key(key).Int()
	if err != nil {
		return 0, fmt.Errorf("config key %s.%s is not a number: %w", section, key, err)
	}
	return value, nil
}
