package etl

import (
	"context"

	"github.com/go-logr/logr"
)

type StatementRunner struct {
	session Session
	logger  logr.Logger
}

func NewStatementRunner(session Session, logger logr.Logger) *StatementRunner {
	return &StatementRunner{session: session, logger: logger}
}

// Run executes the statements in order and stops at the first failure. Nothing is
// retried and statements committed before the failure stay committed.
func (r *StatementRunner) Run(ctx context.Context, statements []Statement) error {
	for _, statement := range statements {
		r.logger.V(1).Info("executing statement", "statement", statement.Name)
		err := r.session.Execute(ctx, statement)
		if err != nil {
			return &StatementError{Statement: statement, Err: err}
		}
		r.logger.Info("statement executed", "statement", statement.Name)
	}
	return nil
}

func (r *StatementRunner) countRows(ctx context.Context, tables []string) (map[string]int64, error) {
	result := make(map[string]int64)
	for _, table := range tables {
		count, err := r.session.Count(ctx, table)
		if err != nil {
			return nil, err
		}
		r.logger.Info("table row count", "table", table, "rows", count)
		result[table] = count
	}
	return result, nil
}
