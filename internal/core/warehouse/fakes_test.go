package warehouse

import (
	"context"
	"errors"
	"fmt"
)

type callLog struct {
	calls []string
}

func (c *callLog) record(format string, args ...interface{}) {
	c.calls = append(c.calls, fmt.Sprintf(format, args...))
}

type fakeRoles struct {
	log       *callLog
	createErr error
	deleteErr error
}

func (f *fakeRoles) Create(ctx context.Context, name string) (*AccessRole, error) {
	f.log.record("role.create %s", name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &AccessRole{
		Name:               name,
		Arn:                "arn:aws:iam::123456789012:role/" + name,
		AttachedPolicyArns: []string{S3ReadOnlyPolicyArn},
	}, nil
}

func (f *fakeRoles) Delete(ctx context.Context, name string) error {
	f.log.record("role.delete %s", name)
	return f.deleteErr
}

type fakeNetwork struct {
	log       *callLog
	createErr error
	deleteErr error
}

func (f *fakeNetwork) Create(ctx context.Context, name string) (*NetworkRule, error) {
	f.log.record("network.create %s", name)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &NetworkRule{
		GroupName:   name,
		GroupID:     "sg-0123",
		AllowedCIDR: "203.0.113.7/32",
		FromPort:    5439,
		ToPort:      5439,
		Protocol:    "tcp",
	}, nil
}

func (f *fakeNetwork) Delete(ctx context.Context, name string) error {
	f.log.record("network.delete %s", name)
	return f.deleteErr
}

type fakeClusters struct {
	log       *callLog
	created   *ClusterDescriptor
	statuses  []ClusterStatus
	createErr error
	deleteErr error
	statusErr error
	// transientStatuses is the number of Status calls failing transiently before
	// the statuses queue is served.
	transientStatuses int
}

func (f *fakeClusters) Create(ctx context.Context, descriptor ClusterDescriptor) error {
	f.log.record("cluster.create %s", descriptor.Identifier)
	if f.createErr != nil {
		return f.createErr
	}
	f.created = &descriptor
	return nil
}

func (f *fakeClusters) Status(ctx context.Context, identifier string) (ClusterStatus, error) {
	f.log.record("cluster.status %s", identifier)
	if f.statusErr != nil {
		return ClusterStatus{}, f.statusErr
	}
	if f.transientStatuses > 0 {
		f.transientStatuses--
		return ClusterStatus{}, NewResourceError(TransientFailure, "cluster", identifier, errors.New("Throttling"))
	}
	if len(f.statuses) == 0 {
		return ClusterStatus{State: ClusterAbsent}, nil
	}
	status := f.statuses[0]
	if len(f.statuses) > 1 {
		f.statuses = f.statuses[1:]
	}
	return status, nil
}

func (f *fakeClusters) Delete(ctx context.Context, identifier string) error {
	f.log.record("cluster.delete %s", identifier)
	return f.deleteErr
}

type fakeConfigWriter struct {
	arn     string
	host    string
	saves   int
	saveErr error
}

func (f *fakeConfigWriter) SetRoleArn(arn string) {
	f.arn = arn
}

func (f *fakeConfigWriter) SetHost(host string) {
	f.host = host
}

func (f *fakeConfigWriter) Save() error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves++
	return nil
}
