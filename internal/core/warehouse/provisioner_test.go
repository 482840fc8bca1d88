package warehouse

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var _ = Describe("Provisioner", func() {

	var (
		ctx           context.Context
		log           *callLog
		roles         *fakeRoles
		network       *fakeNetwork
		clusters      *fakeClusters
		configWriter  *fakeConfigWriter
		eventRecorder *EventRecorder
		provisioner   *Provisioner
		pauses        []time.Duration
	)

	BeforeEach(func() {
		ctx = context.Background()
		log = &callLog{}
		roles = &fakeRoles{log: log}
		network = &fakeNetwork{log: log}
		clusters = &fakeClusters{log: log}
		configWriter = &fakeConfigWriter{}
		eventRecorder = &EventRecorder{}
		pauses = nil

		config := ProvisionerConfig{
			RoleName:          "dwh_iam_role",
			SecurityGroupName: "redshift_security_group",
			Cluster: ClusterDescriptor{
				Identifier:     "dwhCluster",
				ClusterType:    "multi-node",
				NodeType:       "dc2.large",
				NodeCount:      2,
				DatabaseName:   "dwh",
				MasterUsername: "dwhuser",
				MasterPassword: "Passw0rd",
				Port:           5439,
			},
			DeletePause: DefaultDeletePause,
		}
		logger := zap.New(zap.WriteTo(GinkgoWriter), zap.UseDevMode(true))
		provisioner = NewProvisioner(config, roles, network, clusters, configWriter, eventRecorder, logger)
		provisioner.pause = func(ctx context.Context, d time.Duration) error {
			log.record("pause")
			pauses = append(pauses, d)
			return nil
		}
	})

	Describe("Init", func() {

		It("creates role, network access and cluster in that order and persists the role arn", func() {
			descriptor, err := provisioner.Init(ctx)
			Expect(err).NotTo(HaveOccurred())

			Expect(log.calls).To(Equal([]string{
				"role.create dwh_iam_role",
				"network.create redshift_security_group",
				"cluster.create dwhCluster",
			}))
			Expect(descriptor.RoleArn).To(Equal("arn:aws:iam::123456789012:role/dwh_iam_role"))
			Expect(clusters.created.NetworkRule.GroupID).To(Equal("sg-0123"))
			Expect(clusters.created.RoleArn).To(Equal(descriptor.RoleArn))
			Expect(configWriter.arn).To(Equal(descriptor.RoleArn))
			Expect(configWriter.saves).To(Equal(1))
			Expect(eventRecorder.Events()).To(Equal([]ApplyEventType{
				RoleCreated, NetworkRuleCreated, ClusterRequested, ConfigurationUpdated,
			}))
		})

		It("does not create a cluster when the public ip cannot be discovered", func() {
			network.createErr = ErrPublicIPUnavailable

			_, err := provisioner.Init(ctx)
			Expect(err).To(HaveOccurred())
			Expect(errors.Is(err, ErrPublicIPUnavailable)).To(BeTrue())

			Expect(log.calls).To(Equal([]string{
				"role.create dwh_iam_role",
				"network.create redshift_security_group",
			}))
			Expect(clusters.created).To(BeNil())
			Expect(configWriter.saves).To(Equal(0))
		})

		It("accepts an already existing cluster so init can be re-run", func() {
			clusters.createErr = NewResourceError(AlreadyExists, "cluster", "dwhCluster", errors.New("ClusterAlreadyExists"))

			_, err := provisioner.Init(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(configWriter.arn).NotTo(BeEmpty())
			Expect(eventRecorder.Count(ClusterRequested)).To(Equal(0))
		})

		It("surfaces typed provider failures", func() {
			clusters.createErr = NewResourceError(PermissionDenied, "cluster", "dwhCluster", errors.New("AccessDenied"))

			_, err := provisioner.Init(ctx)
			Expect(err).To(HaveOccurred())
			Expect(IsPermissionDenied(err)).To(BeTrue())
			Expect(configWriter.saves).To(Equal(0))
		})

		It("stops at the role when it cannot be created", func() {
			roles.createErr = NewResourceError(TransientFailure, "role", "dwh_iam_role", errors.New("Throttling"))

			_, err := provisioner.Init(ctx)
			Expect(IsTransient(err)).To(BeTrue())
			Expect(log.calls).To(Equal([]string{"role.create dwh_iam_role"}))
		})
	})

	Describe("Status", func() {

		It("persists the endpoint once the cluster is available", func() {
			clusters.statuses = []ClusterStatus{{State: ClusterAvailable, Endpoint: "dwhcluster.example.redshift.amazonaws.com"}}

			status, err := provisioner.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.IsAvailable()).To(BeTrue())
			Expect(configWriter.host).To(Equal("dwhcluster.example.redshift.amazonaws.com"))
			Expect(eventRecorder.HasHappened(ConfigurationUpdated)).To(BeTrue())
		})

		It("does not touch the configuration while the cluster is being created", func() {
			clusters.statuses = []ClusterStatus{{State: ClusterCreating}}

			status, err := provisioner.Status(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.State).To(Equal(ClusterCreating))
			Expect(status.Endpoint).To(BeEmpty())
			Expect(configWriter.saves).To(Equal(0))
		})

		It("waits until the cluster becomes available", func() {
			clusters.statuses = []ClusterStatus{
				{State: ClusterCreating},
				{State: ClusterCreating},
				{State: ClusterAvailable, Endpoint: "dwhcluster.example.redshift.amazonaws.com"},
			}

			status, err := provisioner.WaitAvailable(ctx, time.Millisecond, time.Second)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Endpoint).To(Equal("dwhcluster.example.redshift.amazonaws.com"))
			Expect(configWriter.saves).To(Equal(1))
		})

		It("keeps waiting through transient failures", func() {
			clusters.transientStatuses = 2
			clusters.statuses = []ClusterStatus{{State: ClusterAvailable, Endpoint: "dwhcluster.example.redshift.amazonaws.com"}}

			status, err := provisioner.WaitAvailable(ctx, time.Millisecond, time.Second)
			Expect(err).NotTo(HaveOccurred())
			Expect(status.IsAvailable()).To(BeTrue())
			Expect(log.calls).To(Equal([]string{
				"cluster.status dwhCluster",
				"cluster.status dwhCluster",
				"cluster.status dwhCluster",
			}))
		})

		It("stops waiting on a failure that is not transient", func() {
			clusters.statusErr = NewResourceError(PermissionDenied, "cluster", "dwhCluster", errors.New("AccessDenied"))

			_, err := provisioner.WaitAvailable(ctx, time.Millisecond, time.Second)
			Expect(IsPermissionDenied(err)).To(BeTrue())
			Expect(log.calls).To(HaveLen(1))
		})

		It("gives up waiting when the cluster does not exist", func() {
			clusters.statuses = []ClusterStatus{{State: ClusterAbsent}}

			_, err := provisioner.WaitAvailable(ctx, time.Millisecond, time.Second)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Delete", func() {

		It("deletes role, cluster and security group with a pause before the security group", func() {
			Expect(provisioner.Delete(ctx)).To(Succeed())

			Expect(log.calls).To(Equal([]string{
				"role.delete dwh_iam_role",
				"cluster.delete dwhCluster",
				"pause",
				"network.delete redshift_security_group",
			}))
			Expect(pauses).To(Equal([]time.Duration{5 * time.Second}))
			Expect(eventRecorder.HasHappened(RoleDeleted, ClusterDeletionRequested, NetworkRuleDeleted)).To(BeTrue())
		})

		It("attempts every step and reports all failures", func() {
			roles.deleteErr = NewResourceError(PermissionDenied, "role", "dwh_iam_role", errors.New("AccessDenied"))
			network.deleteErr = NewResourceError(TransientFailure, "security group", "redshift_security_group", errors.New("DependencyViolation"))

			err := provisioner.Delete(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("dwh_iam_role"))
			Expect(err.Error()).To(ContainSubstring("redshift_security_group"))
			Expect(log.calls).To(HaveLen(4))
			Expect(eventRecorder.Count(ClusterDeletionRequested)).To(Equal(1))
		})

		It("polls for the cluster to disappear when waiting", func() {
			clusters.statuses = []ClusterStatus{{State: ClusterDeleting}, {State: ClusterAbsent}}

			Expect(provisioner.DeleteAndWait(ctx, time.Millisecond, time.Second)).To(Succeed())
			Expect(log.calls).To(Equal([]string{
				"role.delete dwh_iam_role",
				"cluster.delete dwhCluster",
				"cluster.status dwhCluster",
				"cluster.status dwhCluster",
				"network.delete redshift_security_group",
			}))
			Expect(pauses).To(BeEmpty())
		})

		It("keeps polling for the cluster to disappear through transient failures", func() {
			clusters.transientStatuses = 1
			clusters.statuses = []ClusterStatus{{State: ClusterDeleting}, {State: ClusterAbsent}}

			Expect(provisioner.DeleteAndWait(ctx, time.Millisecond, time.Second)).To(Succeed())
			Expect(log.calls).To(Equal([]string{
				"role.delete dwh_iam_role",
				"cluster.delete dwhCluster",
				"cluster.status dwhCluster",
				"cluster.status dwhCluster",
				"cluster.status dwhCluster",
				"network.delete redshift_security_group",
			}))
		})
	})
})
