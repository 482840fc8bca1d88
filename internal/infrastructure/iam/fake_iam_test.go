package iam

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/iam"
	"github.com/aws/aws-sdk-go/service/iam/iamiface"
)

// fakeIAM mimics the parts of IAM the role client touches.
type fakeIAM struct {
	iamiface.IAMAPI
	roles     map[string]*iam.Role
	attached  map[string][]string
	calls     []string
	createErr error
}

func newFakeIAM() *fakeIAM {
	return &fakeIAM{roles: map[string]*iam.Role{}, attached: map[string][]string{}}
}

func (f *fakeIAM) CreateRoleWithContext(ctx aws.Context, in *iam.CreateRoleInput, opts ...request.Option) (*iam.CreateRoleOutput, error) {
	f.calls = append(f.calls, "CreateRole")
	if f.createErr != nil {
		return nil, f.createErr
	}
	name := aws.StringValue(in.RoleName)
	if _, ok := f.roles[name]; ok {
		return nil, awserr.New(iam.ErrCodeEntityAlreadyExistsException, "Role with name "+name+" already exists.", nil)
	}
	role := &iam.Role{
		RoleName:                 in.RoleName,
		Path:                     in.Path,
		Arn:                      aws.String("arn:aws:iam::123456789012:role/" + name),
		AssumeRolePolicyDocument: in.AssumeRolePolicyDocument,
	}
	f.roles[name] = role
	return &iam.CreateRoleOutput{Role: role}, nil
}

func (f *fakeIAM) AttachRolePolicyWithContext(ctx aws.Context, in *iam.AttachRolePolicyInput, opts ...request.Option) (*iam.AttachRolePolicyOutput, error) {
	f.calls = append(f.calls, "AttachRolePolicy")
	name := aws.StringValue(in.RoleName)
	if _, ok := f.roles[name]; !ok {
		return nil, awserr.New(iam.ErrCodeNoSuchEntityException, "role not found", nil)
	}
	for _, arn := range f.attached[name] {
		if arn == aws.StringValue(in.PolicyArn) {
			return &iam.AttachRolePolicyOutput{}, nil
		}
	}
	f.attached[name] = append(f.attached[name], aws.StringValue(in.PolicyArn))
	return &iam.AttachRolePolicyOutput{}, nil
}

func (f *fakeIAM) GetRoleWithContext(ctx aws.Context, in *iam.GetRoleInput, opts ...request.Option) (*iam.GetRoleOutput, error) {
	f.calls = append(f.calls, "GetRole")
	role, ok := f.roles[aws.StringValue(in.RoleName)]
	if !ok {
		return nil, awserr.New(iam.ErrCodeNoSuchEntityException, "role not found", nil)
	}
	return &iam.GetRoleOutput{Role: role}, nil
}

func (f *fakeIAM) DetachRolePolicyWithContext(ctx aws.Context, in *iam.DetachRolePolicyInput, opts ...request.Option) (*iam.DetachRolePolicyOutput, error) {
	f.calls = append(f.calls, "DetachRolePolicy")
	name := aws.StringValue(in.RoleName)
	if _, ok := f.roles[name]; !ok {
		return nil, awserr.New(iam.ErrCodeNoSuchEntityException, "role not found", nil)
	}
	var remaining []string
	found := false
	for _, arn := range f.attached[name] {
		if arn == aws.StringValue(in.PolicyArn) {
			found = true
			continue
		}
		remaining = append(remaining, arn)
	}
	if !found {
		return nil, awserr.New(iam.ErrCodeNoSuchEntityException, "policy not attached", nil)
	}
	f.attached[name] = remaining
	return &iam.DetachRolePolicyOutput{}, nil
}

func (f *fakeIAM) DeleteRoleWithContext(ctx aws.Context, in *iam.DeleteRoleInput, opts ...request.Option) (*iam.DeleteRoleOutput, error) {
	f.calls = append(f.calls, "DeleteRole")
	name := aws.StringValue(in.RoleName)
	if _, ok := f.roles[name]; !ok {
		return nil, awserr.New(iam.ErrCodeNoSuchEntityException, "role not found", nil)
	}
	if len(f.attached[name]) > 0 {
		return nil, awserr.New(iam.ErrCodeDeleteConflictException, "policies still attached", nil)
	}
	delete(f.roles, name)
	return &iam.DeleteRoleOutput{}, nil
}
