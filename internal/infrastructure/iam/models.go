package iam

import (
	"fmt"

	"github.com/goccy/go-json"
)

type PolicyDocument struct {
	Version   string
	Statement []PolicyStatement
}

type PolicyStatement struct {
	Effect    string
	Action    string
	Principal map[string]string
}

func RedshiftTrustPolicy() (string, error) {
	document := PolicyDocument{
		Version: "2012-10-17",
		Statement: []PolicyStatement{
			{
				Effect:    "Allow",
				Action:    "sts:AssumeRole",
				Principal: map[string]string{"Service": "redshift.amazonaws.com"},
			},
		},
	}

	result, err := json.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("unable to build trust policy: %w", err)
	}
	return string(result), nil
}
