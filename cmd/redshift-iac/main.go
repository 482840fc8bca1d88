/*


Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/lunarway/redshift-dwh/internal/core/warehouse"
	"github.com/lunarway/redshift-dwh/internal/infrastructure/service"
	"github.com/lunarway/redshift-dwh/pkg/configuration"
	"github.com/prometheus/common/version"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const app = "redshift-iac"

var (
	configPath   string
	logLevel     string
	wait         bool
	pollInterval time.Duration
	waitTimeout  time.Duration
	deletePause  time.Duration

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "Provision and tear down the Redshift warehouse cluster",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create the IAM role, the security group and request the cluster",
		RunE:  runInit,
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the cluster status and record its endpoint once available",
		RunE:  runStatus,
	}

	deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete the IAM role, the cluster and the security group",
		RunE:  runDelete,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Print(app))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", configuration.DefaultPath, "Path to the INI configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", log.InfoLevel.String(), "The logging level")

	statusCmd.Flags().BoolVar(&wait, "wait", false, "Poll until the cluster is available")
	deleteCmd.Flags().BoolVar(&wait, "wait", false, "Poll until the cluster is gone before deleting the security group")
	deleteCmd.Flags().DurationVar(&deletePause, "pause", warehouse.DefaultDeletePause, "Pause between requesting cluster deletion and deleting the security group")

	for _, cmd := range []*cobra.Command{statusCmd, deleteCmd} {
		cmd.Flags().DurationVar(&pollInterval, "poll-interval", 30*time.Second, "Interval between status checks when waiting")
		cmd.Flags().DurationVar(&waitTimeout, "timeout", 30*time.Minute, "How long to wait before giving up")
	}
}

func main() {
	rootCmd.AddCommand(initCmd, statusCmd, deleteCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Errorf("%s failed", app)
		os.Exit(1)
	}
}

func setup() (*warehouse.Provisioner, logr.Logger, error) {
	logger, err := service.SetupLogging(app, logLevel)
	if err != nil {
		return nil, nil, err
	}

	store, err := configuration.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	provisioner, err := service.NewProvisioner(store, service.LifecycleOptions{DeletePause: deletePause}, logger)
	if err != nil {
		return nil, nil, err
	}
	return provisioner, logger, nil
}

func runInit(cmd *cobra.Command, args []string) error {
	provisioner, logger, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := service.SignalContext()
	defer cancel()

	descriptor, err := provisioner.Init(ctx)
	if err != nil {
		return err
	}

	logger.Info("cluster requested, run status until it is available",
		"cluster", descriptor.Identifier, "roleArn", descriptor.RoleArn, "securityGroup", descriptor.NetworkRule.GroupID)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	provisioner, _, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := service.SignalContext()
	defer cancel()

	var status warehouse.ClusterStatus
	if wait {
		status, err = provisioner.WaitAvailable(ctx, pollInterval, waitTimeout)
	} else {
		status, err = provisioner.Status(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Println(status.String())
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	provisioner, _, err := setup()
	if err != nil {
		return err
	}
	ctx, cancel := service.SignalContext()
	defer cancel()

	if wait {
		return provisioner.DeleteAndWait(ctx, pollInterval, waitTimeout)
	}
	return provisioner.Delete(ctx)
}
