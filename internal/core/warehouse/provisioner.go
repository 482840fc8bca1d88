package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/wait"
)

const DefaultDeletePause = 5 * time.Second

type ProvisionerConfig struct {
	RoleName          string
	SecurityGroupName string
	Cluster           ClusterDescriptor
	// DeletePause is the wait between requesting cluster deletion and removing the
	// security group the cluster is attached to.
	DeletePause time.Duration
}

/*
The provisioner drives the lifecycle of a single warehouse cluster and the two resources it depends on.

Init creates, in order: the trust role, the security group with its ingress rule and finally the cluster.
The cluster request returns immediately, the cluster is usable once Status reports it as available.

Delete tears down in the order role, cluster, security group. The security group can only be removed once
the provider has released it from the cluster, hence the pause (or the poll when waiting) in between.
Every teardown step is attempted and the failures are returned together. Deleting something that is
already gone is not an error.
*/
type Provisioner struct {
	config        ProvisionerConfig
	roles         RoleManager
	network       NetworkAccessManager
	clusters      ClusterManager
	configWriter  ConfigurationWriter
	eventListener ApplyEventLister
	logger        logr.Logger
	pause         func(ctx context.Context, d time.Duration) error
}

func NewProvisioner(config ProvisionerConfig, roles RoleManager, network NetworkAccessManager, clusters ClusterManager, configWriter ConfigurationWriter, eventListener ApplyEventLister, logger logr.Logger) *Provisioner {
	return &Provisioner{
		config:        config,
		roles:         roles,
		network:       network,
		clusters:      clusters,
		configWriter:  configWriter,
		eventListener: eventListener,
		logger:        logger,
		pause:         sleep,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Provisioner) Init(ctx context.Context) (*ClusterDescriptor, error) {
	p.logger.Info("creating IAM role", "role", p.config.RoleName)
	role, err := p.roles.Create(ctx, p.config.RoleName)
	if err != nil {
		return nil, fmt.Errorf("unable to create role %s: %w", p.config.RoleName, err)
	}
	p.eventListener.Handle(RoleCreated, role.Arn)

	p.logger.Info("opening network access", "securityGroup", p.config.SecurityGroupName)
	rule, err := p.network.Create(ctx, p.config.SecurityGroupName)
	if err != nil {
		return nil, fmt.Errorf("unable to open network access %s: %w", p.config.SecurityGroupName, err)
	}
	p.eventListener.Handle(NetworkRuleCreated, rule.GroupID)

	descriptor := p.config.Cluster
	descriptor.RoleArn = role.Arn
	descriptor.NetworkRule = rule

	p.logger.Info("requesting cluster", "cluster", descriptor.Identifier, "nodeType", descriptor.NodeType, "nodes", descriptor.NodeCount)
	err = p.clusters.Create(ctx, descriptor)
	if err != nil {
		if !IsAlreadyExists(err) {
			return nil, fmt.Errorf("unable to create cluster %s: %w", descriptor.Identifier, err)
		}
		p.logger.Info("cluster already exists, leaving it as is", "cluster", descriptor.Identifier)
	} else {
		p.eventListener.Handle(ClusterRequested, descriptor.Identifier)
	}

	p.configWriter.SetRoleArn(role.Arn)
	if err := p.configWriter.Save(); err != nil {
		return nil, err
	}
	p.eventListener.Handle(ConfigurationUpdated, "arn")

	return &descriptor, nil
}

func (p *Provisioner) Status(ctx context.Context) (ClusterStatus, error) {
	status, err := p.clusters.Status(ctx, p.config.Cluster.Identifier)
	if err != nil {
		return ClusterStatus{}, fmt.Errorf("unable to get status of cluster %s: %w", p.config.Cluster.Identifier, err)
	}
	p.logger.Info("cluster status", "cluster", p.config.Cluster.Identifier, "status", string(status.State))

	if status.IsAvailable() {
		p.configWriter.SetHost(status.Endpoint)
		if err := p.configWriter.Save(); err != nil {
			return status, err
		}
		p.eventListener.Handle(ConfigurationUpdated, "host")
	}
	return status, nil
}

func (p *Provisioner) WaitAvailable(ctx context.Context, interval time.Duration, timeout time.Duration) (ClusterStatus, error) {
	var status ClusterStatus
	err := p.poll(ctx, interval, timeout, func() (bool, error) {
		var err error
		status, err = p.Status(ctx)
		if err != nil {
			return p.retryTransient(err)
		}
		if status.State == ClusterAbsent {
			return false, fmt.Errorf("cluster %s does not exist", p.config.Cluster.Identifier)
		}
		return status.IsAvailable(), nil
	})
	return status, err
}

func (p *Provisioner) Delete(ctx context.Context) error {
	return p.delete(ctx, func() error {
		return p.pause(ctx, p.config.DeletePause)
	})
}

// DeleteAndWait polls until the cluster is gone before removing the security group.
func (p *Provisioner) DeleteAndWait(ctx context.Context, interval time.Duration, timeout time.Duration) error {
	return p.delete(ctx, func() error {
		return p.poll(ctx, interval, timeout, func() (bool, error) {
			status, err := p.clusters.Status(ctx, p.config.Cluster.Identifier)
			if err != nil {
				return p.retryTransient(err)
			}
			p.logger.Info("waiting for cluster deletion", "cluster", p.config.Cluster.Identifier, "status", string(status.State))
			return status.State == ClusterAbsent, nil
		})
	})
}

func (p *Provisioner) delete(ctx context.Context, awaitCluster func() error) error {
	var errs []error

	p.logger.Info("deleting IAM role", "role", p.config.RoleName)
	if err := p.roles.Delete(ctx, p.config.RoleName); err != nil {
		errs = append(errs, fmt.Errorf("unable to delete role %s: %w", p.config.RoleName, err))
	} else {
		p.eventListener.Handle(RoleDeleted, p.config.RoleName)
	}

	p.logger.Info("deleting cluster", "cluster", p.config.Cluster.Identifier)
	if err := p.clusters.Delete(ctx, p.config.Cluster.Identifier); err != nil {
		errs = append(errs, fmt.Errorf("unable to delete cluster %s: %w", p.config.Cluster.Identifier, err))
	} else {
		p.eventListener.Handle(ClusterDeletionRequested, p.config.Cluster.Identifier)
	}

	if err := awaitCluster(); err != nil {
		errs = append(errs, fmt.Errorf("waiting for cluster %s: %w", p.config.Cluster.Identifier, err))
	}

	p.logger.Info("deleting security group", "securityGroup", p.config.SecurityGroupName)
	if err := p.network.Delete(ctx, p.config.SecurityGroupName); err != nil {
		errs = append(errs, fmt.Errorf("unable to delete security group %s: %w", p.config.SecurityGroupName, err))
	} else {
		p.eventListener.Handle(NetworkRuleDeleted, p.config.SecurityGroupName)
	}

	return utilerrors.NewAggregate(errs)
}

// retryTransient keeps a poll going through throttling and other transient
// provider failures, anything else ends it.
func (p *Provisioner) retryTransient(err error) (bool, error) {
	if IsTransient(err) {
		p.logger.Info("transient failure while polling, retrying", "cluster", p.config.Cluster.Identifier, "error", err.Error())
		return false, nil
	}
	return false, err
}

func (p *Provisioner) poll(ctx context.Context, interval time.Duration, timeout time.Duration, condition wait.ConditionFunc) error {
	pollCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := wait.PollImmediateUntil(interval, condition, pollCtx.Done())
	if err == wait.ErrWaitTimeout {
		return fmt.Errorf("gave up after %s: %w", timeout, err)
	}
	return err
}
