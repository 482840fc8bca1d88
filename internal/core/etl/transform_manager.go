package etl

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

type TransformManager struct {
	runner *StatementRunner
}

func NewTransformManager(session Session, logger logr.Logger) *TransformManager {
	return &TransformManager{runner: NewStatementRunner(session, logger)}
}

func (m *TransformManager) Transform(ctx context.Context) (map[string]int64, error) {
	if err := m.runner.Run(ctx, InsertStatements); err != nil {
		return nil, fmt.Errorf("unable to populate star schema: %w", err)
	}
	return m.runner.countRows(ctx, ModeledTables)
}
