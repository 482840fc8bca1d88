package redshift

import (
	"context"
	"database/sql"

	log "github.com/sirupsen/logrus"
)

type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type loggingExecer struct {
	execer     Execer
	logger     log.FieldLogger
	logQueries bool
}

func NewLoggingExecer(execer Execer, logger log.FieldLogger, logQueries bool) *loggingExecer {
	return &loggingExecer{
		execer:     execer,
		logger:     logger,
		logQueries: logQueries,
	}
}

func (l *loggingExecer) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	if l.logQueries {
		l.logger.Debugf("EXEC: %s", query)
	}
	result, err := l.execer.ExecContext(ctx, query, args...)
	if err != nil {
		l.logger.WithError(err).Debug("EXEC failed")
	}
	return result, err
}
