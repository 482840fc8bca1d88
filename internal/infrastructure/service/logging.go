package service

import (
	"github.com/go-logr/logr"
	log "github.com/sirupsen/logrus"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// SetupLogging sets the level of the logrus logger used by the AWS and SQL
// clients and returns the structured logger handed to everything else.
func SetupLogging(app string, logLevelStr string) (logr.Logger, error) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "01-02-2006 15:04:05",
	})

	logLevel, err := log.ParseLevel(logLevelStr)
	if err != nil {
		return nil, err
	}
	log.SetLevel(logLevel)

	return zap.New(zap.UseDevMode(logLevel >= log.DebugLevel)).WithName(app), nil
}
