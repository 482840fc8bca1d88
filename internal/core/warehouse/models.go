package warehouse

import "fmt"

type ClusterState string

const (
	ClusterCreating  ClusterState = "creating"
	ClusterAvailable ClusterState = "available"
	ClusterDeleting  ClusterState = "deleting"
	ClusterAbsent    ClusterState = "absent"
)

type ClusterStatus struct {
	State    ClusterState
	Endpoint string
}

func (s ClusterStatus) IsAvailable() bool {
	return s.State == ClusterAvailable
}

func (s ClusterStatus) String() string {
	if s.Endpoint == "" {
		return string(s.State)
	}
	return fmt.Sprintf("%s (%s)", s.State, s.Endpoint)
}

type ClusterDescriptor struct {
	Identifier     string
	ClusterType    string
	NodeType       string
	NodeCount      int
	DatabaseName   string
	MasterUsername string
	MasterPassword string
	Port           int
	NetworkRule    *NetworkRule
	RoleArn        string
}

func (d ClusterDescriptor) IsSingleNode() bool {
	return d.ClusterType == "single-node" || d.NodeCount <= 1
}

type AccessRole struct {
	Name               string
	Arn                string
	TrustPolicy        string
	AttachedPolicyArns []string
}

type NetworkRule struct {
	GroupName   string
	GroupID     string
	AllowedCIDR string
	FromPort    int
	ToPort      int
	Protocol    string
}
