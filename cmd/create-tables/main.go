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
	"os"

	"github.com/lunarway/redshift-dwh/internal/infrastructure/service"
	"github.com/lunarway/redshift-dwh/pkg/configuration"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const app = "create-tables"

var (
	configPath string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:           app,
		Short:         "Drop and recreate the staging and star schema tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCreateTables,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", configuration.DefaultPath, "Path to the INI configuration file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", log.InfoLevel.String(), "The logging level")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Errorf("%s failed", app)
		os.Exit(1)
	}
}

func runCreateTables(cmd *cobra.Command, args []string) error {
	logger, err := service.SetupLogging(app, logLevel)
	if err != nil {
		return err
	}

	store, err := configuration.Load(configPath)
	if err != nil {
		return err
	}
	config, err := store.Configuration()
	if err != nil {
		return err
	}

	ctx, cancel := service.SignalContext()
	defer cancel()

	session, err := service.OpenWarehouse(ctx, config, logLevel == log.TraceLevel.String())
	if err != nil {
		return err
	}
	defer session.Close()

	if err := service.NewSchemaManager(session, logger).Reset(ctx); err != nil {
		return err
	}

	logger.Info("tables created", "host", config.Cluster.Host, "database", config.Cluster.DatabaseName)
	return nil
}
