package etl

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
)

type SchemaManager struct {
	runner *StatementRunner
	logger logr.Logger
}

func NewSchemaManager(session Session, logger logr.Logger) *SchemaManager {
	return &SchemaManager{runner: NewStatementRunner(session, logger), logger: logger}
}

func (m *SchemaManager) DropTables(ctx context.Context) error {
	m.logger.Info("dropping tables", "count", len(DropTableStatements))
	if err := m.runner.Run(ctx, DropTableStatements); err != nil {
		return fmt.Errorf("unable to drop tables: %w", err)
	}
	return nil
}

func (m *SchemaManager) CreateTables(ctx context.Context) error {
	m.logger.Info("creating tables", "count", len(CreateTableStatements))
	if err := m.runner.Run(ctx, CreateTableStatements); err != nil {
		return fmt.Errorf("unable to create tables: %w", err)
	}
	return nil
}

func (m *SchemaManager) Reset(ctx context.Context) error {
	if err := m.DropTables(ctx); err != nil {
		return err
	}
	return m.CreateTables(ctx)
}
